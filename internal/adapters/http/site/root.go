// Package site handles the embedded documentation site.
package site

import (
	"context"
	"errors"
	"net/http"
)

// Error constants
var (
	ErrGenerate = errors.New("docs site generation failed")
	ErrServe    = errors.New("docs site serve failed")
)

// Register attaches the embedded documentation site routes to mux.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	// Serve the embedded documentation site under /docs/
	files := http.StripPrefix("/docs/", http.FileServer(FS()))
	mux.Handle("/docs/", files)
	mux.HandleFunc("/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/docs/", http.StatusMovedPermanently)
	})
}

// DocsHandler handles documentation site requests.
type DocsHandler struct{}

// NewDocsHandler creates a new docs handler.
func NewDocsHandler() *DocsHandler {
	return &DocsHandler{}
}

// HandleDocs serves the embedded documentation site.
func (h *DocsHandler) HandleDocs(w http.ResponseWriter, r *http.Request) {
	files := http.FileServer(FS())
	files.ServeHTTP(w, r)
}
