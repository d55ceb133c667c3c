// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"

	"bookmarkbrain/internal/logger"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

// SessionKey is the context key holding the browser session ID.
const SessionKey contextKey = "session"

// SessionIssuer hands out the session ID for a request, setting a cookie
// when the browser has none.
type SessionIssuer interface {
	Ensure(w http.ResponseWriter, r *http.Request) (string, error)
}

// LoadSession makes sure every web request carries a session ID and stores
// it in the request context. A failure leaves the request sessionless.
func LoadSession(issuer SessionIssuer, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := issuer.Ensure(w, r)
			if err != nil {
				log.Warn("session unavailable", "error", err)
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), SessionKey, id)))
		})
	}
}

// SessionFromCtx returns the session ID, or "" when none was loaded.
func SessionFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(SessionKey).(string)
	return id
}
