// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"time"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/klauspost/compress/gzhttp"
	"github.com/xdg-go/lazyjson"
)

const maxBodyBytes = 1 << 20

// Server answers requests with documents derived from its template.
type Server struct {
	Spec Spec
}

// New creates a new Server, filling in defaults for unset Spec fields.
func New(spec *Spec) *Server {
	if spec.Log == nil {
		spec.Log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slogLevel(),
		}))
	}
	if spec.Addr == "" {
		spec.Addr = DefaultAddr
	}
	if spec.Template == "" {
		spec.Template = DefaultTemplate
	}
	return &Server{Spec: *spec}
}

func slogLevel() slog.Level {
	if os.Getenv("DEBUG") != "" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// Handler returns the server's routes, logging each request and gzipping
// responses for clients that accept it.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.answer)
	mux.HandleFunc("POST /{$}", s.answer)
	mux.HandleFunc("PATCH /{$}", s.patch)
	return gzhttp.GzipHandler(s.logRequests(mux))
}

// ListenAndServe serves on Spec.Addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Spec.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	s.Spec.Log.Info("listening", "addr", s.Spec.Addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) template() *lazyjson.Node {
	return lazyjson.New(s.Spec.Template)
}

func (s *Server) answer(w http.ResponseWriter, r *http.Request) {
	doc := s.template()
	if r.Method == http.MethodPost && !isForm(r) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			s.fail(w, r, http.StatusBadRequest, err)
			return
		}
		if len(body) > 0 {
			doc = lazyjson.New(string(body))
		}
	}

	question := r.FormValue("question")
	if r.Form.Has("question") {
		doc.Key("question").SetString(question)
	}
	s.reply(w, doc)
}

func (s *Server) patch(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	merged, err := jsonpatch.MergePatch([]byte(s.template().Text()), body)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	s.reply(w, lazyjson.New(string(merged)))
}

func (s *Server) reply(w http.ResponseWriter, doc *lazyjson.Node) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, doc.Text())
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, code int, err error) {
	s.Spec.Log.Warn("bad request", "method", r.Method, "path", r.URL.Path, "error", err)
	http.Error(w, err.Error(), code)
}

func isForm(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mt == "application/x-www-form-urlencoded" || mt == "multipart/form-data"
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		h.ServeHTTP(sw, r)
		s.Spec.Log.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"elapsed", time.Since(start))
	})
}
