package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func guarded(t *testing.T) http.Handler {
	t.Helper()
	pins := PINs{RoleAdjuster: "1234", RoleSupervisor: "0000"}
	return RequirePIN("Adjuster", pins)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := RoleFrom(r.Context())
		assert.True(t, ok)
		w.Write([]byte(role))
	}))
}

func TestRequirePIN(t *testing.T) {
	tests := []struct {
		name     string
		user     string
		pin      string
		noAuth   bool
		wantCode int
		wantBody string
	}{
		{name: "adjuster", user: "adjuster", pin: "1234", wantCode: http.StatusOK, wantBody: "adjuster"},
		{name: "role is case insensitive", user: "Supervisor", pin: "0000", wantCode: http.StatusOK, wantBody: "supervisor"},
		{name: "wrong pin", user: "adjuster", pin: "0000", wantCode: http.StatusUnauthorized},
		{name: "unknown role", user: "operator", pin: "1234", wantCode: http.StatusUnauthorized},
		{name: "no header", noAuth: true, wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if !tt.noAuth {
				req.SetBasicAuth(tt.user, tt.pin)
			}
			rr := httptest.NewRecorder()

			guarded(t).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantCode, rr.Code)
			if tt.wantCode == http.StatusOK {
				assert.Equal(t, tt.wantBody, rr.Body.String())
			} else {
				assert.Contains(t, rr.Header().Get("WWW-Authenticate"), `realm="Adjuster"`)
			}
		})
	}
}

func TestRequirePIN_EmptyPINDisablesRole(t *testing.T) {
	h := RequirePIN("Admin", PINs{RoleSupervisor: ""})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.SetBasicAuth(RoleSupervisor, "")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRequirePIN_MalformedHeader(t *testing.T) {
	for _, header := range []string{"Bearer abc", "Basic !!!", "Basic YWRqdXN0ZXI="} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		rr := httptest.NewRecorder()
		guarded(t).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, header)
	}
}
