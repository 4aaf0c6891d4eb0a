// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package web serves a JSON endpoint behind a single bcrypt-checked bearer
// token that looks up a stable pointer saved in a storage.PointerStore.
// It does not run a parse and does not report parse errors. It is
// explicitly a debugging convenience, not a user-facing product surface:
// no accounts, no sessions.
package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mdhender/evparse/storage"
)

// Handlers holds the dependencies HTTP handlers need: the pointer store
// and the token checker guarding every route.
type Handlers struct {
	store   *storage.PointerStore
	checker *tokenChecker
	log     *slog.Logger
}

// New creates Handlers backed by store, accepting bearer token as the
// single credential every request must present.
func New(store *storage.PointerStore, token string, log *slog.Logger) (*Handlers, error) {
	checker, err := newTokenChecker(token)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	return &Handlers{store: store, checker: checker, log: log}, nil
}

// Mux builds the HTTP routes: /healthz is unauthenticated, everything
// else requires the bearer token.
func (h *Handlers) Mux() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", h.handleHealthz)
	mux.Handle("GET /diagnostics/{fileID}", h.withAuth(http.HandlerFunc(h.handleDiagnostics)))
	return h.withRequestID(mux)
}

// Serve starts an HTTP server on addr using Handlers' routes, blocking
// until the server stops or ctx is cancelled.
func Serve(ctx context.Context, addr, token string, store *storage.PointerStore, log *slog.Logger) error {
	h, err := New(store, token, log)
	if err != nil {
		return err
	}
	srv := &http.Server{Addr: addr, Handler: h.Mux()}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (h *Handlers) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		w.Header().Set("X-Request-Id", reqID)
		h.log.Info("request", "id", reqID, "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func (h *Handlers) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok || !h.checker.check(token) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return "", false
	}
	return strings.TrimPrefix(auth, prefix), true
}

func (h *Handlers) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// pointerResponse is the JSON shape returned by /diagnostics/{fileID}:
// the one pointer this store holds for that file at the path the caller
// requests via the "path" query parameter, if any.
type pointerResponse struct {
	FileID   string `json:"file_id"`
	KindName string `json:"kind_name,omitempty"`
	Path     []int  `json:"path,omitempty"`
	Found    bool   `json:"found"`
}

func (h *Handlers) handleDiagnostics(w http.ResponseWriter, r *http.Request) {
	fileID := r.PathValue("fileID")
	path := parsePathParam(r.URL.Query().Get("path"))

	ptr, found, err := h.store.Get(r.Context(), fileID, path)
	if err != nil {
		h.log.Error("get pointer", "file_id", fileID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := pointerResponse{FileID: fileID, Found: found}
	if found {
		resp.KindName = ptr.KindName
		resp.Path = ptr.Path
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// parsePathParam parses a comma-separated list of child indices, e.g.
// "0,2,1". A malformed or empty parameter yields an empty (root) path.
func parsePathParam(s string) []int {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	path := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil
		}
		path = append(path, n)
	}
	return path
}
