package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"
)

type ctxKey int

const (
	ctxKeyDevice ctxKey = iota
)

const deviceCookieName = "imposter_device"

// deviceMiddleware resolves the opaque device id that scopes a visitor's
// play history, minting and setting one on first contact. The id is the
// service-side stand-in for "this browser".
func deviceMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			device := ""
			if cookie, err := r.Cookie(deviceCookieName); err == nil {
				device = cookie.Value
			}
			if device == "" {
				device = newID()
				http.SetCookie(w, &http.Cookie{
					Name:     deviceCookieName,
					Value:    device,
					Path:     "/",
					MaxAge:   int(365 * 24 * time.Hour / time.Second),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), ctxKeyDevice, device)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func deviceFrom(r *http.Request) string {
	device, _ := r.Context().Value(ctxKeyDevice).(string)
	return device
}

// adminAuthMiddleware rejects requests without a valid admin session cookie.
func adminAuthMiddleware(store Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := adminFromRequest(r, store); err != nil {
				writeError(w, http.StatusUnauthorized, "not authenticated")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func newID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}
