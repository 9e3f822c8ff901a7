package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/smart-faq/internal/domain/faq"
	apperrors "github.com/yanqian/smart-faq/pkg/errors"
)

// HTTPError is the transport form of a failed request: the status, the
// machine-readable code and the message that reaches the client.
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

func (e *HTTPError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewHTTPError builds an HTTPError for request validation failures.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

type domainMapping struct {
	status int
	// message replaces the domain message so upstream details stay in logs.
	message string
}

// domainStatuses maps FAQ error codes to responses. invalid_input keeps the
// domain message because it describes the caller's own input.
var domainStatuses = map[string]domainMapping{
	faq.CodeInvalidInput:     {status: http.StatusBadRequest},
	faq.CodeEmbedding:        {status: http.StatusBadGateway, message: "upstream model provider failed"},
	faq.CodeGeneration:       {status: http.StatusBadGateway, message: "upstream model provider failed"},
	faq.CodeStoreUnavailable: {status: http.StatusServiceUnavailable, message: "storage temporarily unavailable"},
}

func internalError(err error) *HTTPError {
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "something went wrong",
		Err:     err,
	}
}

// asHTTPError resolves err to a response. Explicit HTTPErrors win, then
// domain codes, then a generic 500.
func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	code := apperrors.CodeOf(err)
	mapping, ok := domainStatuses[code]
	if !ok {
		return internalError(err)
	}
	message := mapping.message
	if message == "" {
		message = apperrors.MessageOf(err)
	}
	return NewHTTPError(mapping.status, code, message, err)
}

func abortWithError(c *gin.Context, err error) {
	httpErr := asHTTPError(err)
	if httpErr == nil {
		return
	}
	_ = c.Error(httpErr)
	c.Abort()
}
