// Package respond maps service and provider errors onto the HTTP error
// envelope shared by every controller.
package respond

import (
	"errors"
	"net/http"

	"quizforge/internal/dto"
	"quizforge/internal/llm"
	"quizforge/internal/service"

	"github.com/gin-gonic/gin"
)

// Error writes the envelope for err with the status its category maps to.
// Upstream model failures surface as 502 so clients can tell a bad request
// from a bad model day.
func Error(ctx *gin.Context, err error) {
	status, message := classify(err)
	ctx.JSON(status, dto.ErrorResponse{Error: message, Details: err.Error()})
}

// BadRequest is the envelope for binding and parameter failures.
func BadRequest(ctx *gin.Context, message string, err error) {
	resp := dto.ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	ctx.JSON(http.StatusBadRequest, resp)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrQuizNotFound):
		return http.StatusNotFound, "Quiz not found"
	case errors.Is(err, service.ErrAttemptNotFound):
		return http.StatusNotFound, "Attempt not found"
	}

	var stateErr *service.InvalidStateError
	if errors.As(err, &stateErr) {
		return http.StatusConflict, "Attempt is not in a state that allows this operation"
	}

	var genErr *service.GenerationError
	if errors.As(err, &genErr) {
		return http.StatusBadGateway, "Model produced an invalid question set"
	}
	var evalErr *service.EvaluationError
	if errors.As(err, &evalErr) {
		return http.StatusBadGateway, "Model produced an invalid evaluation"
	}
	var parseErr *llm.ParseError
	if errors.As(err, &parseErr) {
		return http.StatusBadGateway, "Model returned output that could not be parsed as JSON"
	}

	var provErr *llm.ProviderError
	if errors.As(err, &provErr) {
		switch llm.Categorize(err) {
		case llm.CategoryAuth:
			return http.StatusBadGateway, "Provider rejected the configured API key"
		case llm.CategoryRateLimit:
			return http.StatusBadGateway, "Provider rate limit exceeded"
		case llm.CategoryNetwork:
			return http.StatusBadGateway, "Provider is unreachable"
		}
		return http.StatusBadGateway, "Provider call failed"
	}

	return http.StatusInternalServerError, "Internal server error"
}
