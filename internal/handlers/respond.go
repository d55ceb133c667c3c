// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the JSON handlers of the BookMarkBrain REST API.
// Handlers are grouped by resource and receive their engine through a
// narrow interface, so they can be tested with stubs.
package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"bookmarkbrain/internal/apperr"
	"bookmarkbrain/internal/logger"
)

// maxBodyBytes caps request bodies accepted by the API.
const maxBodyBytes = 1 << 20

// envelope is the success body of every API response.
type envelope struct {
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

// writeJSON writes data as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeData(w http.ResponseWriter, status int, data any, message string) {
	writeJSON(w, status, envelope{Data: data, Message: message})
}

// statusFor maps an error kind onto its HTTP status.
func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindValidation, apperr.KindAlreadyExists, apperr.KindAlreadyLinked,
		apperr.KindCircularReference, apperr.KindInUse:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError translates err into the error envelope. Store failures are
// logged and answered with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, log *logger.Logger, err error) {
	kind := apperr.KindOf(err)
	status := statusFor(kind)

	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		kind = "internal"
		msg = "internal server error"
	}
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: string(kind), Message: msg}})
}

// decodeJSON reads the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if err == io.EOF {
			return apperr.Validation("request body is required")
		}
		return apperr.Validation("invalid request body: %v", err)
	}
	return nil
}

// pathID parses the named chi URL parameter as a UUID.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.Validation("invalid %s: %q", name, raw)
	}
	return id, nil
}

// pageParams reads the page and page_size query parameters. Missing values
// are returned as zero so the engine applies its defaults.
func pageParams(r *http.Request) (page, size int, err error) {
	q := r.URL.Query()
	if page, err = queryInt(q.Get("page"), "page"); err != nil {
		return 0, 0, err
	}
	if size, err = queryInt(q.Get("page_size"), "page_size"); err != nil {
		return 0, 0, err
	}
	return page, size, nil
}

func queryInt(raw, name string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Validation("%s must be a number", name)
	}
	return n, nil
}

// respondByID parses the named path UUID, runs fn and writes its result.
func respondByID(w http.ResponseWriter, r *http.Request, log *logger.Logger, param string, fn func(uuid.UUID) (any, error)) {
	id, err := pathID(r, param)
	if err != nil {
		writeError(w, r, log, err)
		return
	}
	data, err := fn(id)
	if err != nil {
		writeError(w, r, log, err)
		return
	}
	writeData(w, http.StatusOK, data, "")
}
