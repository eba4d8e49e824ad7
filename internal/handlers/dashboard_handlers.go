package handlers

import (
	"errors"
	"net/http"

	"github.com/epeers/marketwatch/internal/models"
	"github.com/epeers/marketwatch/internal/services"
	"github.com/epeers/marketwatch/internal/util"
	"github.com/gin-gonic/gin"
)

// DashboardHandler handles dashboard refresh and catalog endpoints
type DashboardHandler struct {
	dashboardSvc *services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardSvc *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardSvc: dashboardSvc,
	}
}

// Refresh handles POST /dashboard
// @Summary Refresh the dashboard
// @Description Fetch, align and rebase the selected assets and simulate their equal-weighted portfolio
// @Tags dashboard
// @Accept json
// @Produce json
// @Param request body models.DashboardRequest true "Symbols and date range"
// @Success 200 {object} models.DashboardResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /dashboard [post]
func (h *DashboardHandler) Refresh(c *gin.Context) {
	var req models.DashboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	result, err := h.dashboardSvc.Refresh(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Assets handles GET /assets
// @Summary List the asset catalog
// @Description Categories of assets offered by the dashboard, with display labels
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.Catalog
// @Router /assets [get]
func (h *DashboardHandler) Assets(c *gin.Context) {
	c.JSON(http.StatusOK, h.dashboardSvc.Catalog())
}

// isRequestError reports whether err was caused by invalid input
func isRequestError(err error) bool {
	return errors.Is(err, services.ErrNoSymbols) ||
		errors.Is(err, services.ErrInvalidSymbol) ||
		errors.Is(err, services.ErrInvalidDateRange) ||
		errors.Is(err, services.ErrInvalidBaseValue) ||
		errors.Is(err, util.ErrInvalidPeriod)
}

func writeServiceError(c *gin.Context, err error) {
	if isRequestError(err) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	})
}
