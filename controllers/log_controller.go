package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PrasadRajuPathapati/Calorie-App-backend/services"
)

type LogController struct {
	logs *services.LogService
}

func NewLogController(logs *services.LogService) *LogController {
	return &LogController{logs: logs}
}

// parseDate accepts a plain calendar date or a full timestamp. An empty
// value means "now"; the service normalizes either form to a UTC day.
func parseDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

type logFoodRequest struct {
	FoodID   uint    `json:"foodId" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required"`
	Date     string  `json:"date"`
}

// LogFood appends a serving of a catalog food to the caller's daily log and
// returns the updated aggregate.
func (lc *LogController) LogFood(c *gin.Context) {
	var req logFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, ok := parseDate(req.Date)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD or RFC 3339"})
		return
	}

	userID := c.GetUint("userID")
	dailyLog, err := lc.logs.LogFood(c.Request.Context(), userID, req.FoodID, req.Quantity, date)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Food logged successfully", "dailyLog": dailyLog})
}

// DeleteEntry removes one food entry from a daily log the caller owns.
func (lc *LogController) DeleteEntry(c *gin.Context) {
	logID, err := strconv.ParseUint(c.Param("logId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log id"})
		return
	}
	entryID, err := strconv.ParseUint(c.Param("foodEntryId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid food entry id"})
		return
	}

	userID := c.GetUint("userID")
	dailyLog, err := lc.logs.DeleteEntry(c.Request.Context(), userID, uint(logID), uint(entryID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Food entry removed", "dailyLog": dailyLog})
}

// GetDailyLog returns the caller's log for one day, or a null log when
// nothing has been recorded for that day.
func (lc *LogController) GetDailyLog(c *gin.Context) {
	date, ok := parseDate(c.Query("date"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD or RFC 3339"})
		return
	}
	if date.IsZero() {
		date = time.Now()
	}

	userID := c.GetUint("userID")
	dailyLog, err := lc.logs.GetLog(c.Request.Context(), userID, date)
	if err != nil {
		respondError(c, err)
		return
	}
	if dailyLog == nil {
		c.JSON(http.StatusOK, gin.H{"dailyLog": nil, "message": "No food logged for this date."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"dailyLog": dailyLog})
}

// History returns per-day summaries for the trailing window, oldest first.
// Days with no log are simply absent.
func (lc *LogController) History(c *gin.Context) {
	days := 0
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive whole number"})
			return
		}
		days = n
	}

	userID := c.GetUint("userID")
	history, err := lc.logs.History(c.Request.Context(), userID, days)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}
