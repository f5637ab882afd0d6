// Package preview serves stored chart documents over HTTP and notifies open
// pages when a document changes so they reload.
package preview

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/raykavin/gochartjs/pkg/logger"
	"github.com/raykavin/gochartjs/pkg/render"
	"github.com/raykavin/gochartjs/pkg/storage"
)

const wsPath = "/ws"

var wire = jsoniter.ConfigCompatibleWithStandardLibrary

// Option configures a Server.
type Option func(*Server)

// WithHTTPServer replaces the default StandardHTTPServer.
func WithHTTPServer(server HTTPServer) Option {
	return func(s *Server) {
		s.http = server
	}
}

// WithRenderer sets the renderer used for pages.
func WithRenderer(r *render.Renderer) Option {
	return func(s *Server) {
		s.renderer = r
	}
}

// WithLogger sets the logger.
func WithLogger(log logger.Logger) Option {
	return func(s *Server) {
		s.log = log
	}
}

// WithTitle sets the title of the index page.
func WithTitle(title string) Option {
	return func(s *Server) {
		s.title = title
	}
}

// Server is the chart preview server
type Server struct {
	store    storage.DocumentStore
	renderer *render.Renderer
	http     HTTPServer
	hub      *hub
	log      logger.Logger
	title    string
}

// NewServer creates a preview server over store and registers its routes.
func NewServer(store storage.DocumentStore, options ...Option) (*Server, error) {
	s := &Server{
		store: store,
		log:   logger.Nop(),
		title: "Charts",
	}

	for _, option := range options {
		option(s)
	}

	if s.http == nil {
		s.http = NewStandardHTTPServer(WithHTTPLogger(s.log))
	}

	if s.renderer == nil {
		r, err := render.NewRenderer(render.WithLogger(s.log))
		if err != nil {
			return nil, fmt.Errorf("failed to create renderer: %w", err)
		}
		s.renderer = r
	}

	s.hub = newHub(s.log)
	s.registerHandlers()

	return s, nil
}

func (s *Server) registerHandlers() {
	s.http.RegisterHandler("GET /{$}", s.handleIndex)
	s.http.RegisterHandler("GET /chart/{name}", s.handleChart)
	s.http.RegisterHandler("GET /config/{name}", s.handleConfig)
	s.http.RegisterHandler("GET /health", s.handleHealth)
	s.http.RegisterHandler("GET "+wsPath, s.hub.serve)
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.http.Handler()
}

// Publish stores doc and tells connected pages to reload.
func (s *Server) Publish(doc *storage.Document) error {
	if err := s.store.Save(doc); err != nil {
		return err
	}

	s.hub.publish(Message{Type: "updated", Name: doc.Name})
	s.log.WithField("name", doc.Name).Info("chart published")
	return nil
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	s.log.WithField("addr", addr).Info("starting preview server")
	return s.http.Start(ctx, addr)
}

// Close disconnects live-reload clients.
func (s *Server) Close() {
	s.hub.close()
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	docs, err := s.store.List()
	if err != nil {
		s.fail(w, err)
		return
	}

	charts := make([]*render.Chart, 0, len(docs))
	for i, doc := range docs {
		charts = append(charts, chartOf(doc, i))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.LivePage(w, s.title, wsPath, charts...); err != nil {
		s.log.WithError(err).Error("failed to render index page")
	}
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.lookup(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.LivePage(w, doc.Title, wsPath, chartOf(doc, 0)); err != nil {
		s.log.WithError(err).WithField("name", doc.Name).Error("failed to render chart page")
	}
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.lookup(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(doc.Config); err != nil {
		s.log.WithError(err).Warn("failed to write config")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = wire.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"clients": s.hub.count(),
	})
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*storage.Document, bool) {
	doc, err := s.store.Get(r.PathValue("name"))
	if errors.Is(err, storage.ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		s.fail(w, err)
		return nil, false
	}
	return doc, true
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	s.log.WithError(err).Error("preview request failed")
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func chartOf(doc *storage.Document, index int) *render.Chart {
	return &render.Chart{
		TargetID: fmt.Sprintf("chart-%d", index),
		Width:    doc.Width,
		Height:   doc.Height,
		Config:   doc.Config,
	}
}
