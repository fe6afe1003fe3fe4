package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	apperr "github.com/yungbote/studyhours-backend/internal/pkg/errors"
)

func TestFromError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("x: %w", apperr.ErrNotFound), http.StatusNotFound, "not_found"},
		{fmt.Errorf("x: %w", apperr.ErrInvalidArgument), http.StatusBadRequest, "invalid_argument"},
		{fmt.Errorf("x: %w", apperr.ErrConflict), http.StatusConflict, "conflict"},
		{fmt.Errorf("add month: %w: %w", apperr.ErrPersist, errors.New("disk full")), http.StatusServiceUnavailable, "persist_failed"},
		{errors.New("boom"), http.StatusInternalServerError, "internal_error"},
		{New(http.StatusTeapot, "teapot", nil), http.StatusTeapot, "teapot"},
	}
	for _, c := range cases {
		got := FromError(c.err)
		if got.Status != c.status || got.Code != c.code {
			t.Errorf("FromError(%v) = %d/%s want %d/%s", c.err, got.Status, got.Code, c.status, c.code)
		}
	}
	if FromError(nil) != nil {
		t.Fatalf("nil error must map to nil")
	}
}
