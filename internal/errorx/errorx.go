// Package errorx maps pricing failures onto HTTP status codes.
package errorx

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/zeromicro/go-zero/core/logx"

	"pricebatch/pkg/pricing"
)

// CodeError is the JSON body of every non-2xx response.
type CodeError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *CodeError) Error() string {
	return e.Message
}

// BadRequest marks err as a client input problem.
func BadRequest(err error) error {
	return &CodeError{Code: http.StatusBadRequest, Message: err.Error()}
}

// BadRequestf builds a client input error from a format string.
func BadRequestf(format string, args ...any) error {
	return &CodeError{Code: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// Handler is installed with httpx.SetErrorHandlerCtx.
func Handler(ctx context.Context, err error) (int, any) {
	var ce *CodeError
	switch {
	case errors.As(err, &ce):
		return ce.Code, ce
	case errors.Is(err, pricing.ErrBatchNotFound), errors.Is(err, pricing.ErrPriceNotFound):
		return http.StatusNotFound, &CodeError{Code: http.StatusNotFound, Message: err.Error()}
	case errors.Is(err, pricing.ErrBatchClosed):
		return http.StatusBadRequest, &CodeError{Code: http.StatusBadRequest, Message: err.Error()}
	case errors.Is(err, pricing.ErrCapacityExceeded):
		return http.StatusServiceUnavailable, &CodeError{Code: http.StatusServiceUnavailable, Message: err.Error()}
	default:
		logx.WithContext(ctx).Errorf("errorx: unmapped error: %v", err)
		return http.StatusInternalServerError, &CodeError{Code: http.StatusInternalServerError, Message: "internal error"}
	}
}
