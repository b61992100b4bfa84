package errorx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"pricebatch/pkg/pricing"
)

func TestHandler(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"batch not found", fmt.Errorf("batch 1: %w", pricing.ErrBatchNotFound), http.StatusNotFound},
		{"price not found", fmt.Errorf("price 1: %w", pricing.ErrPriceNotFound), http.StatusNotFound},
		{"batch closed", fmt.Errorf("batch 1: %w", pricing.ErrBatchClosed), http.StatusBadRequest},
		{"capacity", pricing.ErrCapacityExceeded, http.StatusServiceUnavailable},
		{"bad request", BadRequestf("price %d: bad asOf", 3), http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := Handler(context.Background(), tt.err)
			assert.Equal(t, tt.code, code)
			ce, ok := body.(*CodeError)
			if assert.True(t, ok) {
				assert.Equal(t, tt.code, ce.Code)
			}
		})
	}
}

func TestHandler_HidesInternalMessage(t *testing.T) {
	_, body := Handler(context.Background(), errors.New("db password leaked"))
	assert.Equal(t, "internal error", body.(*CodeError).Message)
}
