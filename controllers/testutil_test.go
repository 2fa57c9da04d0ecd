package controllers

import (
	"fmt"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/PrasadRajuPathapati/Calorie-App-backend/models"
)

var dbSeq atomic.Int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:ctrl_%s_%d?mode=memory&cache=shared", t.Name(), dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Food{}, &models.DailyLog{}, &models.DailyLogEntry{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func jsonID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// asUser stands in for the auth middleware in handler tests.
func asUser(id uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", id)
		c.Next()
	}
}
