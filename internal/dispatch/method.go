package dispatch

import (
	"fmt"
	"net/http"
	"strings"
)

// Method is the closed set of HTTP methods a command may be sent with.
type Method int

const (
	MethodGet Method = iota
	MethodPost
	MethodPut
	MethodDelete
	MethodPatch
)

// String returns the transport-level method name.
func (m Method) String() string {
	switch m {
	case MethodGet:
		return http.MethodGet
	case MethodPost:
		return http.MethodPost
	case MethodPut:
		return http.MethodPut
	case MethodDelete:
		return http.MethodDelete
	case MethodPatch:
		return http.MethodPatch
	default:
		return http.MethodPost
	}
}

// ParseMethod maps a method name (any case) to its Method value.
func ParseMethod(name string) (Method, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case http.MethodGet:
		return MethodGet, nil
	case http.MethodPost:
		return MethodPost, nil
	case http.MethodPut:
		return MethodPut, nil
	case http.MethodDelete:
		return MethodDelete, nil
	case http.MethodPatch:
		return MethodPatch, nil
	default:
		return MethodPost, fmt.Errorf("unsupported HTTP method: %s", name)
	}
}

// allowsBody reports whether a request body is attached for the method.
// GET and DELETE commands are sent without one regardless of the payload.
func (m Method) allowsBody() bool {
	return m != MethodGet && m != MethodDelete
}
