package api

import _ "embed"

// OpenAPISpec is served on /openapi.json and backs the swagger UI. Embedded
// so the binary does not depend on its working directory.
//
//go:embed openapi.json
var OpenAPISpec []byte
