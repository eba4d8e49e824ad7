package handlers

import (
	"net/http"
	"time"

	"github.com/epeers/marketwatch/internal/models"
	"github.com/epeers/marketwatch/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// AdminHandler handles cache maintenance and raw price endpoints
type AdminHandler struct {
	pricingSvc *services.PricingService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(pricingSvc *services.PricingService) *AdminHandler {
	return &AdminHandler{
		pricingSvc: pricingSvc,
	}
}

// ClearCache handles POST /cache/clear
// @Summary Drop cached price series
// @Description Forces the next refresh to query the data source again
// @Tags admin
// @Produce json
// @Success 200 {object} models.CacheClearResponse
// @Router /cache/clear [post]
func (h *AdminHandler) ClearCache(c *gin.Context) {
	h.pricingSvc.ClearCache()
	c.JSON(http.StatusOK, models.CacheClearResponse{Message: "cache cleared"})
}

// GetDailyPrices handles GET /admin/get_daily_prices
// @Summary Get raw daily prices for a symbol
// @Description Fetch the unaligned daily closes of one symbol through the caches
// @Tags admin
// @Produce json
// @Param ticker query string true "Ticker symbol"
// @Param start_date query string true "Start date (YYYY-MM-DD)"
// @Param end_date query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} models.GetDailyPricesResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /admin/get_daily_prices [get]
func (h *AdminHandler) GetDailyPrices(c *gin.Context) {
	var req models.GetDailyPricesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "start_date must be in YYYY-MM-DD format",
		})
		return
	}

	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "end_date must be in YYYY-MM-DD format",
		})
		return
	}

	if endDate.Before(startDate) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "end_date must be after start_date",
		})
		return
	}

	series, source, err := h.pricingSvc.GetSeries(c.Request.Context(), req.Ticker, startDate, endDate)
	if err != nil {
		log.Errorf("GetDailyPrices failed for %s: %v", req.Ticker, err)
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "upstream_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.GetDailyPricesResponse{
		Symbol:    series.Symbol,
		Source:    source,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Count:     len(series.Points),
		Points:    series.Points,
	})
}
