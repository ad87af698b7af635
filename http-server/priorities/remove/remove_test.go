package remove

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"shopfloor/internal/storage"
)

type MockPriorityRemover struct {
	mock.Mock
}

func (m *MockPriorityRemover) RemovePriority(ctx context.Context, label string) error {
	return m.Called(ctx, label).Error(0)
}

func (m *MockPriorityRemover) ResetPriorities(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func newRouter(remover PriorityRemover) http.Handler {
	router := chi.NewRouter()
	router.Delete("/api/admin/priorities/{label}", DeletePriority(slog.Default(), remover))
	router.Delete("/api/admin/priorities", ResetPriorities(slog.Default(), remover))
	return router
}

func TestDeletePriority(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"deleted", nil, http.StatusNoContent},
		{"not found", fmt.Errorf("x: %w", storage.ErrNotFound), http.StatusNotFound},
		{"store error", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remover := new(MockPriorityRemover)
			remover.On("RemovePriority", mock.Anything, "MSN-12").Return(tt.err)

			rr := httptest.NewRecorder()
			newRouter(remover).ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/admin/priorities/MSN-12", nil))

			assert.Equal(t, tt.wantCode, rr.Code)
			remover.AssertExpectations(t)
		})
	}
}

func TestResetPriorities(t *testing.T) {
	remover := new(MockPriorityRemover)
	remover.On("ResetPriorities", mock.Anything).Return(nil)

	rr := httptest.NewRecorder()
	newRouter(remover).ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/admin/priorities", nil))

	assert.Equal(t, http.StatusNoContent, rr.Code)
	remover.AssertNotCalled(t, "RemovePriority", mock.Anything, mock.Anything)
	remover.AssertExpectations(t)
}
