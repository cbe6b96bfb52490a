package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/babytrack/internal/domain/models"
	"github.com/mamadbah2/babytrack/internal/service/nutrition"
)

// Vocabulary returns the suggested values for the profile and feeding forms.
func Vocabulary(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"feedingTypes": models.FeedingTypes,
		"restrictions": models.DietaryRestrictions,
		"amountUnits":  models.AmountUnits,
	})
}

// ListFoods returns the food catalog, optionally filtered by ?category=.
func ListFoods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories": nutrition.FoodCategories,
		"foods":      nutrition.FilterFoods(c.Query("category")),
	})
}

// GetFood returns one catalog entry.
func GetFood(c *gin.Context) {
	food, ok := nutrition.FoodByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "food not found"})
		return
	}
	c.JSON(http.StatusOK, food)
}
