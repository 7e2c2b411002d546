package dto

import "net/http"

type BaseResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func NewBaseResponse(code int, message string, data interface{}) *BaseResponse {
	return &BaseResponse{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

func NewBadRequestResponse(message string) *BaseResponse {
	return NewBaseResponse(http.StatusBadRequest, message, nil)
}

func NewSuccessResponse(message string, data interface{}) *BaseResponse {
	return NewBaseResponse(http.StatusOK, message, data)
}

type ParseScenarioRequest struct {
	Text string `json:"text" validate:"required"`
}

type SaveScenarioRequest struct {
	Text  string `json:"text" validate:"required"`
	Notes string `json:"notes"`
}

type StoredScenario struct {
	ID           uint              `json:"id"`
	CreatedAt    string            `json:"created_at"`
	Symbol       string            `json:"symbol"`
	AnalysisDate string            `json:"analysis_date"`
	Notes        string            `json:"notes"`
	Document     *ScenarioDocument `json:"document"`
}
