// Package api exposes the daemon's control surface over HTTP. The CLI is
// the primary consumer; the JSON surface is also usable with curl.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wardenlabs/warden/internal/lifecycle"
)

// Controller is the lifecycle surface the handler needs.
//
//go:generate go run github.com/matryer/moq@latest -pkg mocks -out mocks/controller.go . Controller
type Controller interface {
	CreateServer(ctx context.Context) (<-chan error, error)
	StopServer(ctx context.Context) error
	ForceState(ctx context.Context, s lifecycle.State)
	Status() lifecycle.Status
}

// Handler routes control requests to the lifecycle controller.
type Handler struct {
	ctrl   Controller
	logger *slog.Logger
}

// NewHandler builds the daemon's HTTP handler.
func NewHandler(ctrl Controller, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	h := &Handler{ctrl: ctrl, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/status", h.handleStatus)
	mux.HandleFunc("POST /v1/server", h.handleCreate)
	mux.HandleFunc("DELETE /v1/server", h.handleDelete)
	mux.HandleFunc("PUT /v1/state", h.handleForceState)
	mux.HandleFunc("GET /healthz", h.handleHealthz)
	mux.Handle("GET /metrics", promhttp.Handler())

	return mux
}

func (h *Handler) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.ctrl.Status())
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	// The boot cycle outlives this request.
	ctx := context.WithoutCancel(r.Context())

	done, err := h.ctrl.CreateServer(ctx)
	if err != nil {
		writeControllerError(w, err)
		return
	}

	go func() {
		if err := <-done; err != nil {
			h.logger.Error("boot cycle failed", "error", err)
		}
	}()

	writeJSON(w, http.StatusAccepted, h.ctrl.Status())
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.ctrl.StopServer(r.Context()); err != nil {
		writeControllerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.ctrl.Status())
}

func (h *Handler) handleForceState(w http.ResponseWriter, r *http.Request) {
	var req struct {
		State string `json:"state"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	s, err := lifecycle.ParseState(req.State)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.ctrl.ForceState(r.Context(), s)
	writeJSON(w, http.StatusOK, h.ctrl.Status())
}

func (h *Handler) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeControllerError maps guard rejections to 409 and everything else
// to 500.
func writeControllerError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, lifecycle.ErrNotDown) || errors.Is(err, lifecycle.ErrNotRunning) {
		status = http.StatusConflict
	}
	writeError(w, status, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // response write errors are the client's problem
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
