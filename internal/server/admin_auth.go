package server

import (
	"errors"
	"net/http"
)

var errNoAdminSession = errors.New("no valid admin session")

const adminCookieName = "admin_session"

// adminFromRequest reads the admin_session cookie and verifies the session
// exists in the store.
func adminFromRequest(r *http.Request, store Store) (string, error) {
	cookie, err := r.Cookie(adminCookieName)
	if err != nil || cookie.Value == "" {
		return "", errNoAdminSession
	}

	ok, err := store.AdminSessionExists(r.Context(), cookie.Value)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errNoAdminSession
	}
	return cookie.Value, nil
}
