package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/traymate/mealmenu/internal/domain"
	"github.com/traymate/mealmenu/internal/logger"
	"github.com/traymate/mealmenu/internal/service"
)

// MealHandler handles meal endpoints.
type MealHandler struct {
	mealService *service.MealService
}

// NewMealHandler creates a new meal handler.
func NewMealHandler(mealService *service.MealService) *MealHandler {
	return &MealHandler{mealService: mealService}
}

// ListMeals handles GET /meals. It takes no parameters and returns every
// meal as a JSON array.
func (h *MealHandler) ListMeals(c *gin.Context) {
	ctx := c.Request.Context()

	meals, err := h.mealService.ListMeals(ctx)
	if err != nil {
		logger.CtxError(ctx, "Failed to list meals: %v", err)

		msg := "Failed to list meals"
		if errors.Is(err, domain.ErrStorageUnavailable) {
			msg += ": " + domain.ErrStorageUnavailable.Error()
		}
		respondError(c, http.StatusInternalServerError, msg)
		return
	}

	c.JSON(http.StatusOK, meals)
}
