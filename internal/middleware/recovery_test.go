// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRecoverer(t *testing.T) {
	panicky := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("something went wrong")
	})

	t.Run("web request gets plain 500", func(t *testing.T) {
		log, logs := observed()
		rr := httptest.NewRecorder()
		Recoverer(log)(panicky).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/tweets", nil))

		if rr.Code != http.StatusInternalServerError {
			t.Errorf("status: got %d, want 500", rr.Code)
		}
		if !strings.Contains(rr.Body.String(), "Internal Server Error") {
			t.Errorf("body: got %q", rr.Body.String())
		}
		if logs.FilterMessage("panic recovered").Len() != 1 {
			t.Error("panic should be logged once")
		}
	})

	t.Run("api request gets JSON envelope", func(t *testing.T) {
		log, _ := observed()
		rr := httptest.NewRecorder()
		Recoverer(log)(panicky).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/tweets", nil))

		if rr.Code != http.StatusInternalServerError {
			t.Errorf("status: got %d, want 500", rr.Code)
		}
		if got := rr.Header().Get("Content-Type"); !strings.HasPrefix(got, "application/json") {
			t.Errorf("content type: got %q", got)
		}
		if rr.Body.String() != internalErrorJSON {
			t.Errorf("body: got %q", rr.Body.String())
		}
	})

	t.Run("catches panic with integer value", func(t *testing.T) {
		log, _ := observed()
		rr := httptest.NewRecorder()
		Recoverer(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic(42)
		})).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/crash", nil))

		if rr.Code != http.StatusInternalServerError {
			t.Errorf("status: got %d, want 500", rr.Code)
		}
	})

	t.Run("passes through without panic", func(t *testing.T) {
		log, logs := observed()
		rr := httptest.NewRecorder()
		Recoverer(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		if rr.Code != http.StatusNoContent {
			t.Errorf("status: got %d, want 204", rr.Code)
		}
		if logs.Len() != 0 {
			t.Errorf("unexpected log entries: %v", logs.All())
		}
	})

	t.Run("re-panics on ErrAbortHandler", func(t *testing.T) {
		log, _ := observed()
		defer func() {
			if rec := recover(); rec != http.ErrAbortHandler {
				t.Errorf("recovered %v, want ErrAbortHandler", rec)
			}
		}()
		Recoverer(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic(http.ErrAbortHandler)
		})).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}
