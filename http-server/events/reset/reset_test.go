package reset

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockLogResetter struct {
	mock.Mock
}

func (m *MockLogResetter) Reset(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func TestResetEvents(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"reset", nil, http.StatusNoContent},
		{"store error", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetter := new(MockLogResetter)
			resetter.On("Reset", mock.Anything).Return(tt.err)

			rr := httptest.NewRecorder()
			ResetEvents(slog.Default(), resetter).ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/admin/events", nil))

			assert.Equal(t, tt.wantCode, rr.Code)
			resetter.AssertExpectations(t)
		})
	}
}
