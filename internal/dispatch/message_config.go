package dispatch

import (
	"log"
	"strings"
	"time"
)

const (
	// DefaultTimeout bounds a command when no explicit timeout is configured.
	DefaultTimeout = 10 * time.Second

	// DefaultContentType is attached to command bodies unless overridden.
	DefaultContentType = "application/json"
)

// MessageConfig describes what a command sends: the payload (opaque text,
// typically JSON — never parsed at this layer), the per-call timeout, the
// content type and the HTTP method. The timeout setter applies the same
// reject-and-warn policy as ConnectionConfig's port setter.
type MessageConfig struct {
	payload     string
	timeout     time.Duration
	contentType string
	method      Method

	logger *log.Logger
}

// NewMessageConfig builds a config around the given payload with the default
// timeout, content type and POST method. A nil logger falls back to
// log.Default().
func NewMessageConfig(payload string, logger *log.Logger) *MessageConfig {
	if logger == nil {
		logger = log.Default()
	}
	return &MessageConfig{
		payload:     payload,
		timeout:     DefaultTimeout,
		contentType: DefaultContentType,
		method:      MethodPost,
		logger:      logger,
	}
}

func (m *MessageConfig) Payload() string        { return m.payload }
func (m *MessageConfig) Timeout() time.Duration { return m.timeout }
func (m *MessageConfig) ContentType() string    { return m.contentType }
func (m *MessageConfig) Method() Method         { return m.method }

func (m *MessageConfig) SetPayload(payload string) { m.payload = payload }

// SetTimeout keeps the previous value when timeout is not positive.
func (m *MessageConfig) SetTimeout(timeout time.Duration) {
	if timeout <= 0 {
		m.logger.Printf("WARN: rejected timeout %v: must be positive, keeping %v", timeout, m.timeout)
		return
	}
	m.timeout = timeout
}

func (m *MessageConfig) SetContentType(contentType string) { m.contentType = contentType }

func (m *MessageConfig) SetMethod(method Method) { m.method = method }

// IsValid reports whether the config can be dispatched, logging the first
// failing condition.
func (m *MessageConfig) IsValid() bool {
	switch {
	case strings.TrimSpace(m.payload) == "":
		m.logger.Printf("WARN: message config invalid: payload is empty")
		return false
	case m.timeout <= 0:
		m.logger.Printf("WARN: message config invalid: timeout %v is not positive", m.timeout)
		return false
	}
	return true
}

// Clone returns an independent copy sharing only the logger.
func (m *MessageConfig) Clone() *MessageConfig {
	clone := *m
	return &clone
}

// CopyFrom overwrites every data field with other's values. A nil source is
// logged and ignored.
func (m *MessageConfig) CopyFrom(other *MessageConfig) {
	if other == nil {
		m.logger.Printf("WARN: message config copy skipped: source is nil")
		return
	}
	m.payload = other.payload
	m.timeout = other.timeout
	m.contentType = other.contentType
	m.method = other.method
}
