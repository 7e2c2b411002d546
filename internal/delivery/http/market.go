package http

import (
	"net/http"

	"market-scenario/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupMarket(base *echo.Group) {
	v1 := base.Group("/v1")
	{
		v1.GET("/symbols", h.ListSymbols)
		v1.GET("/market-data", h.GetMarketData)
	}
}

func (h *HttpAPIHandler) ListSymbols(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Symbols", dto.AvailableSymbols()))
}

func (h *HttpAPIHandler) GetMarketData(c echo.Context) error {
	symbol := c.QueryParam("symbol")
	if symbol == "" {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("symbol is required"))
	}

	data, err := h.service.MarketDataService.Get(c.Request().Context(), dto.GetMarketDataParam{
		Symbol:   symbol,
		Range:    c.QueryParam("range"),
		Interval: c.QueryParam("interval"),
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to get market data", nil))
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Market data", data))
}
