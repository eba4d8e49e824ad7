package handlers

import (
	"errors"
	"net/http"

	"github.com/epeers/marketwatch/internal/models"
	"github.com/epeers/marketwatch/internal/renderer"
	"github.com/epeers/marketwatch/internal/services"
	"github.com/gin-gonic/gin"
)

// ChartHandler serves rendered PNG charts
type ChartHandler struct {
	dashboardSvc *services.DashboardService
}

// NewChartHandler creates a new ChartHandler
func NewChartHandler(dashboardSvc *services.DashboardService) *ChartHandler {
	return &ChartHandler{
		dashboardSvc: dashboardSvc,
	}
}

// AssetChart handles GET /charts/asset/:symbol
// @Summary Price chart of one asset
// @Description Line chart of the raw closes over the period, with the latest move in the subtitle
// @Tags charts
// @Produce png
// @Param symbol path string true "Ticker, e.g. ^GSPC"
// @Param period query string false "1mo, 3mo, 6mo, 1y, 2y or 5y"
// @Success 200 {file} binary
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /charts/asset/{symbol} [get]
func (h *ChartHandler) AssetChart(c *gin.Context) {
	series, metric, err := h.dashboardSvc.AssetHistory(c.Request.Context(), c.Param("symbol"), c.Query("period"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	title := metric.Label
	if title == "" {
		title = series.Symbol
	}
	img, err := renderer.PriceChart(series, metric, title)
	if err != nil {
		writeChartError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", img)
}

// PortfolioChart handles GET /charts/portfolio
// @Summary Normalized comparison chart
// @Description Rebased series of the selected assets plus their equal-weighted aggregate
// @Tags charts
// @Produce png
// @Param symbols query string false "Comma separated tickers; the whole catalog when empty"
// @Param period query string false "1mo, 3mo, 6mo, 1y, 2y or 5y"
// @Success 200 {file} binary
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /charts/portfolio [get]
func (h *ChartHandler) PortfolioChart(c *gin.Context) {
	symbols, err := ParseSymbolList(c.Query("symbols"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	result, err := h.dashboardSvc.Refresh(c.Request.Context(), models.DashboardRequest{
		Symbols: symbols,
		Period:  c.Query("period"),
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	img, err := renderer.ComparisonChart(result.Aligned, result.Portfolio, result.Summary)
	if err != nil {
		writeChartError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", img)
}

func writeChartError(c *gin.Context, err error) {
	if errors.Is(err, renderer.ErrNotEnoughPoints) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "no_data",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	})
}
