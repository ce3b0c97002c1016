package httputil

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorMapper(t *testing.T) {
	errNotFound := errors.New("venue not found")
	errForbidden := errors.New("forbidden")

	mapper := NewErrorMapper().
		WithMapping(errNotFound, http.StatusNotFound, "venue not found").
		WithMapping(errForbidden, http.StatusForbidden, "forbidden").
		WithDefault(http.StatusBadGateway, "upstream failure")

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "nil error", err: nil, wantStatus: http.StatusOK},
		{name: "direct sentinel", err: errNotFound, wantStatus: http.StatusNotFound},
		{name: "wrapped sentinel", err: fmt.Errorf("lookup: %w", errForbidden), wantStatus: http.StatusForbidden},
		{name: "deadline wins", err: fmt.Errorf("%w: %w", errNotFound, context.DeadlineExceeded), wantStatus: http.StatusGatewayTimeout},
		{name: "cancelled", err: context.Canceled, wantStatus: http.StatusServiceUnavailable},
		{name: "unmatched uses default", err: errors.New("boom"), wantStatus: http.StatusBadGateway},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := mapper.Map(test.err)
			if got.Status != test.wantStatus {
				t.Fatalf("expected status %d, got %d (%s)", test.wantStatus, got.Status, got.Message)
			}
		})
	}
}
