package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PrasadRajuPathapati/Calorie-App-backend/services"
)

type FoodController struct {
	foods *services.FoodService
}

func NewFoodController(foods *services.FoodService) *FoodController {
	return &FoodController{foods: foods}
}

type getCaloriesRequest struct {
	FoodName string `json:"foodName" binding:"required"`
}

// GetCalories resolves a food by name, consulting the external source when
// the local catalog has no match. Whether the food is unknown or the source
// is down, the caller gets the same "no calorie information" message; the
// status code tells the two cases apart.
func (fc *FoodController) GetCalories(c *gin.Context) {
	var req getCaloriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	food, err := fc.foods.Resolve(c.Request.Context(), req.FoodName)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrFoodNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("No calorie information found for %q.", req.FoodName)})
		return
	case errors.Is(err, services.ErrSourceUnavailable):
		log.Printf("[RESOLVE] external lookup failed for %q: %v", req.FoodName, err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": fmt.Sprintf("No calorie information found for %q.", req.FoodName)})
		return
	default:
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"food":    food,
		"message": fmt.Sprintf("%s has approximately %.0f calories per %s.", food.Name, food.Calories, food.TypicalServingSize),
	})
}

// Search lists catalog foods whose names contain the query term.
func (fc *FoodController) Search(c *gin.Context) {
	foods, err := fc.foods.SearchLocal(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"foods": foods})
}
