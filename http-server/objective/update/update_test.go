package update

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockObjectiveUpdater struct {
	mock.Mock
}

func (m *MockObjectiveUpdater) SetObjective(ctx context.Context, value int) error {
	return m.Called(ctx, value).Error(0)
}

func TestUpdateObjective(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		storeErr error
		wantCall bool
		wantCode int
	}{
		{name: "success", body: `{"objective": 40}`, wantCall: true, wantCode: http.StatusOK},
		{name: "invalid json", body: `{`, wantCode: http.StatusBadRequest},
		{name: "zero", body: `{"objective": 0}`, wantCode: http.StatusBadRequest},
		{name: "store error", body: `{"objective": 40}`, storeErr: errors.New("db down"), wantCall: true, wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updater := new(MockObjectiveUpdater)
			if tt.wantCall {
				updater.On("SetObjective", mock.Anything, 40).Return(tt.storeErr)
			}

			req := httptest.NewRequest(http.MethodPut, "/api/admin/objective", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			UpdateObjective(slog.Default(), updater).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantCode, rr.Code)
			if tt.wantCall {
				updater.AssertExpectations(t)
			} else {
				updater.AssertNotCalled(t, "SetObjective")
			}
		})
	}
}
