package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/metcalfc/docqa/internal/pipeline"
)

// APIError is the JSON body of every failed request.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error codes.
const (
	CodeEmptyQuestion     = "EMPTY_QUESTION"
	CodeNoFiles           = "NO_FILES"
	CodeNoText            = "NO_TEXT"
	CodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	CodeBadRequest        = "BAD_REQUEST"
	CodeAnswerFailed      = "ANSWER_FAILED"
	CodeHTTP              = "HTTP_ERROR"
	CodeInternal          = "INTERNAL_ERROR"
)

// NewBadRequestError creates a 400 with cause as details.
func NewBadRequestError(message string, cause error) *APIError {
	err := &APIError{
		Status:  http.StatusBadRequest,
		Code:    CodeBadRequest,
		Message: message,
	}
	if cause != nil {
		err.Details = cause.Error()
	}
	return err
}

// NewUnsupportedFormatError rejects an upload outside the whitelist.
func NewUnsupportedFormatError(filename string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    CodeUnsupportedFormat,
		Message: fmt.Sprintf("unsupported file type: %s", filename),
		Details: fmt.Sprintf("accepted extensions: %v", pipeline.AcceptedExtensions),
	}
}

// fromPipeline maps pipeline errors to API errors. Input problems carry the
// same wording the interactive front ends show.
func fromPipeline(err error) *APIError {
	switch {
	case errors.Is(err, pipeline.ErrNoQuestion):
		return &APIError{Status: http.StatusBadRequest, Code: CodeEmptyQuestion, Message: pipeline.Message(err)}
	case errors.Is(err, pipeline.ErrNoFiles):
		return &APIError{Status: http.StatusBadRequest, Code: CodeNoFiles, Message: pipeline.Message(err)}
	case errors.Is(err, pipeline.ErrNoText):
		return &APIError{Status: http.StatusUnprocessableEntity, Code: CodeNoText, Message: pipeline.Message(err)}
	case errors.Is(err, pipeline.ErrAnswerFailed):
		return &APIError{Status: http.StatusBadGateway, Code: CodeAnswerFailed, Message: "the answerer failed", Details: err.Error()}
	default:
		return &APIError{Status: http.StatusInternalServerError, Code: CodeInternal, Message: "an unexpected error occurred", Details: err.Error()}
	}
}

// ErrorHandler renders any handler error as an APIError.
// Usage: e.HTTPErrorHandler = ErrorHandler
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var apiErr *APIError
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &apiErr):
	case errors.As(err, &httpErr):
		apiErr = &APIError{
			Status:  httpErr.Code,
			Code:    CodeHTTP,
			Message: fmt.Sprintf("%v", httpErr.Message),
		}
	default:
		apiErr = &APIError{
			Status:  http.StatusInternalServerError,
			Code:    CodeInternal,
			Message: "an unexpected error occurred",
			Details: err.Error(),
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(apiErr.Status)
		return
	}
	_ = c.JSON(apiErr.Status, apiErr)
}
