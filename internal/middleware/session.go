package middleware

import (
	"context"
	"net/http"
	"time"

	"tosipeli/internal/model"

	"github.com/google/uuid"
)

const (
	// DeviceCookie long-lived id, keys the stored last preferences
	DeviceCookie = "tp_device"
	// SessionCookie browser-session id, keys the play count
	SessionCookie = "tp_session"

	deviceCookieMaxAge = 365 * 24 * time.Hour
)

type ctxKey int

const playSessionKey ctxKey = iota

// PlaySession makes sure every request carries both client ids, issuing
// cookies for the ones that are missing.
func PlaySession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := model.PlaySession{
			ID:       cookieValue(r, SessionCookie),
			DeviceID: cookieValue(r, DeviceCookie),
		}

		secure := r.TLS != nil
		if session.DeviceID == "" {
			session.DeviceID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     DeviceCookie,
				Value:    session.DeviceID,
				Path:     "/",
				MaxAge:   int(deviceCookieMaxAge.Seconds()),
				HttpOnly: true,
				Secure:   secure,
				SameSite: http.SameSiteLaxMode,
			})
		}
		if session.ID == "" {
			session.ID = uuid.NewString()
			// no MaxAge: dropped when the browser session ends
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    session.ID,
				Path:     "/",
				HttpOnly: true,
				Secure:   secure,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), playSessionKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func PlaySessionFromContext(ctx context.Context) (model.PlaySession, bool) {
	session, ok := ctx.Value(playSessionKey).(model.PlaySession)
	return session, ok
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	if _, err := uuid.Parse(c.Value); err != nil {
		return ""
	}
	return c.Value
}
