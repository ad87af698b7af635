// Package auth guards the adjuster and supervisor routes with the role PINs
// using HTTP basic auth: the user name is the role, the password its PIN.
package auth

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"strings"
)

const (
	RoleAdjuster   = "adjuster"
	RoleSupervisor = "supervisor"
)

// PINs maps a role to its PIN. A role with an empty PIN cannot log in.
type PINs map[string]string

type ctxKey struct{}

// RoleFrom returns the role that passed RequirePIN, if any.
func RoleFrom(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(ctxKey{}).(string)
	return role, ok
}

func RequirePIN(realm string, pins PINs) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, pin, ok := credentials(r)
			if !ok {
				requireAuth(w, realm)
				return
			}

			want, known := pins[role]
			if !known || want == "" || subtle.ConstantTimeCompare([]byte(pin), []byte(want)) != 1 {
				requireAuth(w, realm)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, role)))
		})
	}
}

func credentials(r *http.Request) (string, string, bool) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Basic ") {
		return "", "", false
	}

	creds, err := base64.StdEncoding.DecodeString(authHeader[6:])
	if err != nil {
		return "", "", false
	}

	role, pin, ok := strings.Cut(string(creds), ":")
	if !ok {
		return "", "", false
	}

	return strings.ToLower(role), pin, true
}

func requireAuth(w http.ResponseWriter, realm string) {
	w.Header().Set("WWW-Authenticate", `Basic realm="`+realm+`"`)
	http.Error(w, "Unauthorized", http.StatusUnauthorized)
}
