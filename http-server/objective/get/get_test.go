package get

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockObjectiveProvider struct {
	mock.Mock
}

func (m *MockObjectiveProvider) Objective(ctx context.Context) int {
	return m.Called(ctx).Int(0)
}

func TestGetObjective(t *testing.T) {
	provider := new(MockObjectiveProvider)
	provider.On("Objective", mock.Anything).Return(35)

	rr := httptest.NewRecorder()
	GetObjective(slog.Default(), provider).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/objective", nil))

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp Response
	require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp))
	assert.Equal(t, 35, resp.Objective)
}
