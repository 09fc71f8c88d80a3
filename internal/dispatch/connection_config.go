package dispatch

import (
	"fmt"
	"log"
	"strings"
)

const (
	minPort = 1
	maxPort = 65535
)

// ConnectionConfig describes where a command is sent: target host and port,
// whether to use TLS, the request path, and the optional API key attached as
// a header. Range-checked setters apply a reject-and-warn policy: an invalid
// value is logged and the previous value kept, so callers must not assume a
// set took effect.
type ConnectionConfig struct {
	host   string
	port   int
	apiKey string
	useTLS bool
	path   string

	logger *log.Logger
}

// NewConnectionConfig builds a config for the given target. The path is
// stored with a leading slash. A nil logger falls back to log.Default().
func NewConnectionConfig(host string, port int, path string, logger *log.Logger) *ConnectionConfig {
	if logger == nil {
		logger = log.Default()
	}
	c := &ConnectionConfig{host: host, logger: logger}
	c.SetPort(port)
	c.SetPath(path)
	return c
}

func (c *ConnectionConfig) Host() string   { return c.host }
func (c *ConnectionConfig) Port() int      { return c.port }
func (c *ConnectionConfig) APIKey() string { return c.apiKey }
func (c *ConnectionConfig) UseTLS() bool   { return c.useTLS }
func (c *ConnectionConfig) Path() string   { return c.path }

func (c *ConnectionConfig) SetHost(host string) { c.host = host }

// SetPort keeps the previous value when port is outside [1, 65535].
func (c *ConnectionConfig) SetPort(port int) {
	if port < minPort || port > maxPort {
		c.logger.Printf("WARN: rejected port %d: must be in [%d, %d], keeping %d", port, minPort, maxPort, c.port)
		return
	}
	c.port = port
}

func (c *ConnectionConfig) SetAPIKey(key string) { c.apiKey = key }

func (c *ConnectionConfig) SetUseTLS(useTLS bool) { c.useTLS = useTLS }

// SetPath stores the path normalized to carry a leading slash. An empty path
// stays empty and is caught by IsValid.
func (c *ConnectionConfig) SetPath(path string) {
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	c.path = path
}

// Scheme derives the URL scheme from the TLS flag.
func (c *ConnectionConfig) Scheme() string {
	if c.useTLS {
		return "https"
	}
	return "http"
}

// ConstructURL builds the full target URL from scheme, host, port and path.
func (c *ConnectionConfig) ConstructURL() string {
	return fmt.Sprintf("%s://%s:%d%s", c.Scheme(), c.host, c.port, c.path)
}

// IsValid reports whether the config can be dispatched, logging the first
// failing condition.
func (c *ConnectionConfig) IsValid() bool {
	switch {
	case strings.TrimSpace(c.host) == "":
		c.logger.Printf("WARN: connection config invalid: host is empty")
		return false
	case c.port < minPort || c.port > maxPort:
		c.logger.Printf("WARN: connection config invalid: port %d out of range [%d, %d]", c.port, minPort, maxPort)
		return false
	case strings.TrimSpace(c.path) == "":
		c.logger.Printf("WARN: connection config invalid: path is empty")
		return false
	}
	return true
}

// Clone returns an independent copy sharing only the logger.
func (c *ConnectionConfig) Clone() *ConnectionConfig {
	clone := *c
	return &clone
}

// CopyFrom overwrites every data field with other's values. A nil source is
// logged and ignored.
func (c *ConnectionConfig) CopyFrom(other *ConnectionConfig) {
	if other == nil {
		c.logger.Printf("WARN: connection config copy skipped: source is nil")
		return
	}
	c.host = other.host
	c.port = other.port
	c.apiKey = other.apiKey
	c.useTLS = other.useTLS
	c.path = other.path
}
