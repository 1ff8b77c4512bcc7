package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yanqian/faq-widget/pkg/errors"
)

// HTTPError is the transport form of a failure: status plus the code and
// message rendered in the JSON error envelope.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

type codeMapping struct {
	status int
	code   string
}

var domainCodes = map[string]codeMapping{
	apperrors.CodeInvalidInput:    {http.StatusBadRequest, "invalid_request"},
	apperrors.CodeSessionNotFound: {http.StatusNotFound, "session_not_found"},
	apperrors.CodeSessionClosed:   {http.StatusGone, "session_closed"},
	apperrors.CodeSessionLimit:    {http.StatusServiceUnavailable, "session_limit"},
}

// domainError translates an AppError into its HTTP status. Unknown codes
// become a 500 carrying the fallback code.
func domainError(err error, fallback string) *HTTPError {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return NewHTTPError(http.StatusInternalServerError, fallback, errMessage(err), err)
	}
	mapping, ok := domainCodes[appErr.Code]
	if !ok {
		return NewHTTPError(http.StatusInternalServerError, fallback, appErr.Message, err)
	}
	return NewHTTPError(mapping.status, mapping.code, appErr.Message, err)
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return domainError(err, "internal_error")
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
