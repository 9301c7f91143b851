package api

import (
	"context"
	_ "embed"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/pkg/errors"
)

//go:embed openapi.yaml
var OpenAPISpec []byte

// LoadSwagger parses the embedded OpenAPI document with every path rebased under basePath and
// the servers list removed, so request validation matches the mounted routes on any host.
func LoadSwagger(basePath string) (*openapi3.T, error) {
	swagger, err := openapi3.NewLoader().LoadFromData(OpenAPISpec)
	if err != nil {
		return nil, errors.Wrap(err, "LoadSwagger: parse failed")
	}
	if err := swagger.Validate(context.Background()); err != nil {
		return nil, errors.Wrap(err, "LoadSwagger: document is invalid")
	}

	paths := openapi3.Paths{}
	for path, item := range swagger.Paths {
		paths[basePath+path] = item
	}
	swagger.Paths = paths
	swagger.Servers = nil
	return swagger, nil
}
