// types package contains the public API types
// shared between the REST and GraphQL endpoints
package types

import "net/http"

// Route represents a request route to be served
type Route struct {
	Method  string
	Pattern string
	Handler http.Handler
}
