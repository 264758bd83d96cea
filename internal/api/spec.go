// Package api holds the HTTP contract of the paylink API: the embedded OpenAPI
// document, its wire types and the documentation routes.
package api

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var openAPIDocument []byte

var loadSwagger = sync.OnceValues(func() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	swagger, err := loader.LoadFromData(openAPIDocument)
	if err != nil {
		return nil, fmt.Errorf("error loading OpenAPI document: %w", err)
	}
	return swagger, nil
})

// GetSwagger returns the parsed OpenAPI document embedded in the binary.
// The returned value is shared and must not be modified.
func GetSwagger() (*openapi3.T, error) {
	return loadSwagger()
}
