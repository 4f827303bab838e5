// Package swagger serves the OpenAPI description of the analytics API.
package swagger

import (
	_ "embed"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// OpenAPI contains the embedded OpenAPI YAML specification.
//
//go:embed openapi.yaml
var OpenAPI []byte

// Register attaches the OpenAPI document route to router.
//
//	GET /openapi.yaml
func Register(router *httprouter.Router) {
	if router == nil {
		panic("router is nil")
	}

	router.HandlerFunc(http.MethodGet, "/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		_, _ = w.Write(OpenAPI)
	})
}
