package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"shopfloor/internal/service/dashboard"
	"shopfloor/internal/service/downtime"
)

type MockDowntimeProvider struct {
	mock.Mock
}

func (m *MockDowntimeProvider) Downtime(ctx context.Context) (dashboard.DowntimeReport, error) {
	args := m.Called(ctx)
	return args.Get(0).(dashboard.DowntimeReport), args.Error(1)
}

func TestGetDowntime_Success(t *testing.T) {
	provider := new(MockDowntimeProvider)
	provider.On("Downtime", mock.Anything).Return(dashboard.DowntimeReport{
		Summary: downtime.Summary{Count: 2, WaitMinutes: 5, RepairMinutes: 55, LostMinutes: 60},
	}, nil)

	rr := httptest.NewRecorder()
	GetDowntime(slog.Default(), provider).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/downtime", nil))

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp dashboard.DowntimeReport
	require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp))
	assert.Equal(t, 60, resp.Summary.LostMinutes)
}

func TestGetDowntime_Error(t *testing.T) {
	provider := new(MockDowntimeProvider)
	provider.On("Downtime", mock.Anything).Return(dashboard.DowntimeReport{}, errors.New("log unreadable"))

	rr := httptest.NewRecorder()
	GetDowntime(slog.Default(), provider).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/downtime", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
