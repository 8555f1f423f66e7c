package http

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed openapi.json
var openAPIDocument []byte

// OpenAPIDocument returns the OpenAPI 3 description of the API served under
// /api/v1.
func OpenAPIDocument() []byte {
	return openAPIDocument
}

type openAPISpec struct{}

func (openAPISpec) ReadDoc() string {
	return string(openAPIDocument)
}

// echo-swagger serves whatever is registered under swag.Name as doc.json.
func init() {
	swag.Register(swag.Name, openAPISpec{})
}
