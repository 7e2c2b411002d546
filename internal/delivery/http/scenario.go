package http

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"time"

	"market-scenario/internal/dto"
	"market-scenario/internal/model"
	"market-scenario/internal/service"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupScenarios(base *echo.Group) {
	v1 := base.Group("/v1/scenarios")
	{
		v1.POST("/parse", h.ParseScenario)
		v1.POST("", h.SaveScenario)
		v1.GET("", h.ListScenarios)
		v1.GET("/:id", h.GetScenario)
		v1.DELETE("/:id", h.DeleteScenario)
		v1.GET("/:id/chart", h.ScenarioChart)
		v1.GET("/:id/commentary", h.ScenarioCommentary)
	}
}

// ParseScenario runs the extraction engine without saving. The response data
// is the document's plain map representation.
func (h *HttpAPIHandler) ParseScenario(c echo.Context) error {
	req := new(dto.ParseScenarioRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	doc := h.service.ScenarioService.Parse(req.Text)
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Scenario parsed", doc.ToMap()))
}

func (h *HttpAPIHandler) SaveScenario(c echo.Context) error {
	req := new(dto.SaveScenarioRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	stored, err := h.service.ScenarioService.Save(c.Request().Context(), *req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to save scenario", nil))
	}

	return c.JSON(http.StatusCreated, dto.NewBaseResponse(http.StatusCreated, "Scenario saved", stored))
}

func (h *HttpAPIHandler) ListScenarios(c echo.Context) error {
	param := model.ListScenariosParam{
		Symbol: c.QueryParam("symbol"),
		Limit:  100,
	}
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid limit"))
		}
		param.Limit = limit
	}

	// Optional created_at range filter.
	if start, end := c.QueryParam("start_date"), c.QueryParam("end_date"); start != "" && end != "" {
		startDate, errStart := time.Parse(time.RFC3339, start)
		endDate, errEnd := time.Parse(time.RFC3339, end)
		if errStart != nil || errEnd != nil {
			return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid date range, use RFC3339"))
		}

		scenarios, err := h.service.ScenarioService.SearchByDateRange(c.Request().Context(), model.SearchScenariosParam{
			Symbol:    param.Symbol,
			StartDate: startDate,
			EndDate:   endDate,
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to search scenarios", nil))
		}
		return c.JSON(http.StatusOK, dto.NewSuccessResponse("Scenarios found", scenarios))
	}

	scenarios, err := h.service.ScenarioService.List(c.Request().Context(), param)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to list scenarios", nil))
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Scenarios found", scenarios))
}

func (h *HttpAPIHandler) GetScenario(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid scenario id"))
	}

	stored, err := h.service.ScenarioService.Get(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to get scenario", nil))
	}
	if stored == nil {
		return c.JSON(http.StatusNotFound, dto.NewBaseResponse(http.StatusNotFound, "scenario not found", nil))
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Scenario found", stored))
}

func (h *HttpAPIHandler) DeleteScenario(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid scenario id"))
	}

	deleted, err := h.service.ScenarioService.Delete(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to delete scenario", nil))
	}
	if !deleted {
		return c.JSON(http.StatusNotFound, dto.NewBaseResponse(http.StatusNotFound, "scenario not found", nil))
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Scenario deleted", nil))
}

// ScenarioChart returns the candlestick chart HTML for a stored scenario.
// The chart is rendered into a buffer first so lookup and market data
// failures can still set an error status.
func (h *HttpAPIHandler) ScenarioChart(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid scenario id"))
	}

	var buf bytes.Buffer
	err = h.service.ScenarioService.RenderChart(
		c.Request().Context(),
		&buf,
		id,
		c.QueryParam("range"),
		c.QueryParam("interval"),
	)
	if err != nil {
		if errors.Is(err, service.ErrScenarioNotFound) {
			return c.JSON(http.StatusNotFound, dto.NewBaseResponse(http.StatusNotFound, "scenario not found", nil))
		}
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to render chart", nil))
	}

	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

func (h *HttpAPIHandler) ScenarioCommentary(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid scenario id"))
	}

	commentary, err := h.service.ScenarioService.Commentary(c.Request().Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrScenarioNotFound):
			return c.JSON(http.StatusNotFound, dto.NewBaseResponse(http.StatusNotFound, "scenario not found", nil))
		case errors.Is(err, service.ErrCommentaryDisabled):
			return c.JSON(http.StatusServiceUnavailable, dto.NewBaseResponse(http.StatusServiceUnavailable, "ai commentary is not enabled", nil))
		default:
			return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to generate commentary", nil))
		}
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Commentary generated", map[string]string{"commentary": commentary}))
}

func parseIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
