// Package static embeds the API reference assets served under /static.
package static

import "embed"

const (
	OpenAPISpec = "openapi.json"
	OpenAPIUI   = "openapi.html"
)

//go:embed openapi.json openapi.html
var FS embed.FS
