package services

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/PrasadRajuPathapati/Calorie-App-backend/models"
)

func newLogService(t *testing.T) (*LogService, *FoodService) {
	t.Helper()
	db := newTestDB(t)
	foods := NewFoodService(db, nil, 0)
	return NewLogService(db, foods), foods
}

func TestDayStartUTC(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// Late evening in New York is already the next day in UTC.
	in := time.Date(2026, 8, 14, 21, 30, 0, 0, loc)
	got := DayStartUTC(in)

	assert.Equal(t, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestLogFoodAccumulatesTotals(t *testing.T) {
	svc, foods := newLogService(t)
	ctx := context.Background()

	apple := mustCreateFood(t, foods.db, "apple", 52, 0.3, 14, 0.2)
	rice := mustCreateFood(t, foods.db, "rice", 130, 2.7, 28, 0.3)

	day := time.Date(2026, 8, 14, 9, 0, 0, 0, time.UTC)

	dailyLog, err := svc.LogFood(ctx, 1, apple.ID, 2, day)
	require.NoError(t, err)
	assert.InDelta(t, 104, dailyLog.TotalCalories, 1e-9)

	dailyLog, err = svc.LogFood(ctx, 1, rice.ID, 1.5, day)
	require.NoError(t, err)

	assert.InDelta(t, 2*52+1.5*130, dailyLog.TotalCalories, 1e-9)
	assert.InDelta(t, 2*0.3+1.5*2.7, dailyLog.TotalProtein, 1e-9)
	assert.InDelta(t, 2*14+1.5*28, dailyLog.TotalCarbohydrates, 1e-9)
	assert.InDelta(t, 2*0.2+1.5*0.3, dailyLog.TotalFats, 1e-9)
	assert.Len(t, dailyLog.Entries, 2)
}

func TestLogFoodMergesSameFood(t *testing.T) {
	svc, foods := newLogService(t)
	ctx := context.Background()

	apple := mustCreateFood(t, foods.db, "apple", 52, 0.3, 14, 0.2)
	day := time.Date(2026, 8, 14, 9, 0, 0, 0, time.UTC)

	_, err := svc.LogFood(ctx, 1, apple.ID, 1, day)
	require.NoError(t, err)
	dailyLog, err := svc.LogFood(ctx, 1, apple.ID, 2.5, day)
	require.NoError(t, err)

	require.Len(t, dailyLog.Entries, 1)
	assert.InDelta(t, 3.5, dailyLog.Entries[0].Quantity, 1e-9)
	assert.InDelta(t, 3.5*52, dailyLog.TotalCalories, 1e-9)
}

func TestLogFoodSameDayDifferentTimes(t *testing.T) {
	svc, foods := newLogService(t)
	ctx := context.Background()

	apple := mustCreateFood(t, foods.db, "apple", 52, 0.3, 14, 0.2)

	morning := time.Date(2026, 8, 14, 7, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 8, 14, 22, 45, 0, 0, time.UTC)

	first, err := svc.LogFood(ctx, 1, apple.ID, 1, morning)
	require.NoError(t, err)
	second, err := svc.LogFood(ctx, 1, apple.ID, 1, evening)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "same UTC day must reuse one aggregate")
}

// Drivers may surface a uniqueness violation even with the conflict clause in
// place. One retry must turn that into a lookup-then-merge, never a hard
// failure or a second aggregate.
func TestLogFoodRetriesOnDuplicateKey(t *testing.T) {
	svc, foods := newLogService(t)
	db := foods.db
	ctx := context.Background()

	apple := mustCreateFood(t, db, "apple", 52, 0.3, 14, 0.2)
	day := time.Date(2026, 8, 14, 9, 0, 0, 0, time.UTC)

	_, err := svc.LogFood(ctx, 1, apple.ID, 1, day)
	require.NoError(t, err)

	// Fail the next entry write once with a duplicate-key error.
	tripped := false
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("dup_key_once", func(tx *gorm.DB) {
		if tripped || tx.Statement.Schema == nil || tx.Statement.Schema.Table != "daily_log_entries" {
			return
		}
		tripped = true
		tx.AddError(gorm.ErrDuplicatedKey)
	}))
	t.Cleanup(func() {
		require.NoError(t, db.Callback().Create().Remove("dup_key_once"))
	})

	dailyLog, err := svc.LogFood(ctx, 1, apple.ID, 2, day)
	require.NoError(t, err)
	require.True(t, tripped, "first attempt must have hit the duplicate-key error")

	require.Len(t, dailyLog.Entries, 1)
	assert.InDelta(t, 3, dailyLog.Entries[0].Quantity, 1e-9)
	assert.InDelta(t, 3*52, dailyLog.TotalCalories, 1e-9)

	var aggregates int64
	require.NoError(t, db.Model(&models.DailyLog{}).Where("user_id = ?", 1).Count(&aggregates).Error)
	assert.EqualValues(t, 1, aggregates)
}

func TestLogFoodDuplicateKeyTwiceFails(t *testing.T) {
	svc, foods := newLogService(t)
	db := foods.db
	ctx := context.Background()

	apple := mustCreateFood(t, db, "apple", 52, 0.3, 14, 0.2)

	// A store that keeps reporting the violation exhausts the single retry.
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("dup_key_always", func(tx *gorm.DB) {
		if tx.Statement.Schema != nil && tx.Statement.Schema.Table == "daily_log_entries" {
			tx.AddError(gorm.ErrDuplicatedKey)
		}
	}))
	t.Cleanup(func() {
		require.NoError(t, db.Callback().Create().Remove("dup_key_always"))
	})

	_, err := svc.LogFood(ctx, 1, apple.ID, 1, time.Date(2026, 8, 14, 9, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestLogFoodRejectsInvalidQuantity(t *testing.T) {
	svc, foods := newLogService(t)
	ctx := context.Background()

	apple := mustCreateFood(t, foods.db, "apple", 52, 0.3, 14, 0.2)

	for _, q := range []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := svc.LogFood(ctx, 1, apple.ID, q, time.Time{})
		assert.ErrorIs(t, err, ErrInvalidQuantity, "quantity %v", q)
	}
}

func TestLogFoodUnknownFood(t *testing.T) {
	svc, _ := newLogService(t)

	_, err := svc.LogFood(context.Background(), 1, 9999, 1, time.Time{})
	assert.ErrorIs(t, err, ErrFoodNotFound)
}

func TestDeleteEntryRecomputesTotals(t *testing.T) {
	svc, foods := newLogService(t)
	ctx := context.Background()

	apple := mustCreateFood(t, foods.db, "apple", 52, 0.3, 14, 0.2)
	rice := mustCreateFood(t, foods.db, "rice", 130, 2.7, 28, 0.3)
	day := time.Date(2026, 8, 14, 9, 0, 0, 0, time.UTC)

	_, err := svc.LogFood(ctx, 1, apple.ID, 2, day)
	require.NoError(t, err)
	dailyLog, err := svc.LogFood(ctx, 1, rice.ID, 1, day)
	require.NoError(t, err)

	var appleEntryID uint
	for _, e := range dailyLog.Entries {
		if e.FoodID == apple.ID {
			appleEntryID = e.ID
		}
	}
	require.NotZero(t, appleEntryID)

	updated, err := svc.DeleteEntry(ctx, 1, dailyLog.ID, appleEntryID)
	require.NoError(t, err)

	require.Len(t, updated.Entries, 1)
	assert.Equal(t, rice.ID, updated.Entries[0].FoodID)
	assert.InDelta(t, 130, updated.TotalCalories, 1e-9)
	assert.InDelta(t, 2.7, updated.TotalProtein, 1e-9)
}

func TestDeleteEntryMissingEntryLeavesTotals(t *testing.T) {
	svc, foods := newLogService(t)
	ctx := context.Background()

	apple := mustCreateFood(t, foods.db, "apple", 52, 0.3, 14, 0.2)
	day := time.Date(2026, 8, 14, 9, 0, 0, 0, time.UTC)

	dailyLog, err := svc.LogFood(ctx, 1, apple.ID, 2, day)
	require.NoError(t, err)

	_, err = svc.DeleteEntry(ctx, 1, dailyLog.ID, 9999)
	assert.ErrorIs(t, err, ErrEntryNotFound)

	after, err := svc.GetLog(ctx, 1, day)
	require.NoError(t, err)
	require.NotNil(t, after)
	assert.InDelta(t, 104, after.TotalCalories, 1e-9)
	assert.Len(t, after.Entries, 1)
}

func TestDeleteEntryWrongOwner(t *testing.T) {
	svc, foods := newLogService(t)
	ctx := context.Background()

	apple := mustCreateFood(t, foods.db, "apple", 52, 0.3, 14, 0.2)
	day := time.Date(2026, 8, 14, 9, 0, 0, 0, time.UTC)

	dailyLog, err := svc.LogFood(ctx, 1, apple.ID, 1, day)
	require.NoError(t, err)

	// Another user sees someone else's log as nonexistent, not forbidden.
	_, err = svc.DeleteEntry(ctx, 2, dailyLog.ID, dailyLog.Entries[0].ID)
	assert.ErrorIs(t, err, ErrLogNotFound)
}

func TestGetLogAbsentDay(t *testing.T) {
	svc, _ := newLogService(t)

	got, err := svc.GetLog(context.Background(), 1, time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestHistorySparseAndOrdered(t *testing.T) {
	svc, foods := newLogService(t)
	ctx := context.Background()

	apple := mustCreateFood(t, foods.db, "apple", 52, 0.3, 14, 0.2)

	now := time.Now().UTC()
	// Log on D-3 and D-1, leaving D-2 empty.
	_, err := svc.LogFood(ctx, 1, apple.ID, 1, now.AddDate(0, 0, -3))
	require.NoError(t, err)
	_, err = svc.LogFood(ctx, 1, apple.ID, 2, now.AddDate(0, 0, -1))
	require.NoError(t, err)

	history, err := svc.History(ctx, 1, 7)
	require.NoError(t, err)

	require.Len(t, history, 2, "empty days are omitted, never zero-filled")
	assert.Equal(t, DayStartUTC(now.AddDate(0, 0, -3)).Format("2006-01-02"), history[0].Date)
	assert.Equal(t, DayStartUTC(now.AddDate(0, 0, -1)).Format("2006-01-02"), history[1].Date)
	assert.InDelta(t, 52, history[0].TotalCalories, 1e-9)
	assert.InDelta(t, 104, history[1].TotalCalories, 1e-9)
	// Carbohydrate totals come from the log itself, not from fats.
	assert.InDelta(t, 14, history[0].TotalCarbohydrates, 1e-9)
	assert.InDelta(t, 28, history[1].TotalCarbohydrates, 1e-9)
}

func TestHistoryScopedToUser(t *testing.T) {
	svc, foods := newLogService(t)
	ctx := context.Background()

	apple := mustCreateFood(t, foods.db, "apple", 52, 0.3, 14, 0.2)

	_, err := svc.LogFood(ctx, 1, apple.ID, 1, time.Now())
	require.NoError(t, err)

	history, err := svc.History(ctx, 2, 7)
	require.NoError(t, err)
	assert.Empty(t, history)
}
