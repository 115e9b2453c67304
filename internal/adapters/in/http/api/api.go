// Package api embeds the OpenAPI document of the HTTP surface. The same bytes
// drive request validation and the Swagger UI.
package api

import (
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.json
var spec []byte

// Spec returns the raw document.
func Spec() []byte {
	return spec
}

// Load parses and validates the embedded document.
func Load() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to parse openapi document: %w", err)
	}
	if err = doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}
	return doc, nil
}

type swaggerDoc struct{}

func (swaggerDoc) ReadDoc() string {
	return string(spec)
}

func init() {
	swag.Register(swag.Name, swaggerDoc{})
}
