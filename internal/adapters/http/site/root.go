// Package site serves the rendered static report next to the API.
package site

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/julienschmidt/httprouter"
)

// Error constants
var (
	ErrServe = errors.New("report site serve failed")
)

// Prefix is the path the report is served under.
const Prefix = "/report/"

// Register serves the report rendered into dir under /report/ and redirects / to its
// index page. dir must exist.
func Register(router *httprouter.Router, dir string) error {
	if router == nil {
		panic("router is nil")
	}

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", dir, ErrServe, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory: %w", dir, ErrServe)
	}

	router.ServeFiles(Prefix+"*filepath", http.Dir(dir))
	router.Handler(http.MethodGet, "/", NewRootHandler())
	return nil
}

// RootHandler redirects the bare root to the report; the file server answers the
// directory with its index.html.
type RootHandler struct{}

// NewRootHandler creates a new root handler
func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

// ServeHTTP handles GET / requests.
func (h *RootHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, Prefix, http.StatusFound)
}
