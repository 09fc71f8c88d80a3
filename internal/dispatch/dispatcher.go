package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync/atomic"
)

const (
	maxResponseBodySize = 10 * 1024 * 1024 // 10 MB

	apiKeyHeader = "x-api-key"
)

// HTTPClient is the slice of *http.Client the dispatcher needs. The client is
// injected once and shared for the process lifetime; the dispatcher derives a
// per-call deadline from the message config instead of ever touching the
// client's own timeout settings.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Dispatcher fires one command at a time at a remote lock controller and
// reports the outcome through OnSuccess or OnFailure. A dispatcher owns a
// stored connection/message config pair, mutable for its lifetime, which the
// Send variants may override per call without touching the stored state.
//
// Sends are single-flight: while one command is between validation and
// completion, further Send calls are dropped with a diagnostic and fire
// neither callback. Every completed call fires exactly one callback, on the
// calling goroutine, and never returns an error or panics across Send.
type Dispatcher struct {
	// OnSuccess receives the response body of a 2xx reply.
	OnSuccess func(body string)
	// OnFailure receives a non-empty description of why the command failed:
	// a config validation message, "request timeout", a transport error, or
	// the status line and body of a non-2xx reply.
	OnFailure func(reason string)

	client HTTPClient
	conn   *ConnectionConfig
	msg    *MessageConfig
	logger *log.Logger

	inFlight atomic.Bool
}

// NewDispatcher builds a dispatcher around a shared HTTP client, typically a
// *http.Client tuned at startup. Nil configs start empty and stay invalid
// until configured; a nil logger falls back to log.Default().
func NewDispatcher(client HTTPClient, conn *ConnectionConfig, msg *MessageConfig, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.Default()
	}
	if conn == nil {
		conn = NewConnectionConfig("", 0, "", logger)
	}
	if msg == nil {
		msg = NewMessageConfig("", logger)
	}
	return &Dispatcher{
		client: client,
		conn:   conn,
		msg:    msg,
		logger: logger,
	}
}

// Connection returns the stored connection config. The object is live:
// mutating it retargets subsequent sends.
func (d *Dispatcher) Connection() *ConnectionConfig { return d.conn }

// Message returns the stored message config, live like Connection.
func (d *Dispatcher) Message() *MessageConfig { return d.msg }

// InFlight reports whether a command is currently between validation and
// completion.
func (d *Dispatcher) InFlight() bool { return d.inFlight.Load() }

// UpdateConnection overwrites the stored connection config in place. A nil
// argument is logged and ignored.
func (d *Dispatcher) UpdateConnection(conn *ConnectionConfig) {
	if conn == nil {
		d.logger.Printf("WARN: connection update skipped: config is nil")
		return
	}
	d.conn.CopyFrom(conn)
}

// UpdateMessage overwrites the stored message config in place. A nil argument
// is logged and ignored.
func (d *Dispatcher) UpdateMessage(msg *MessageConfig) {
	if msg == nil {
		d.logger.Printf("WARN: message update skipped: config is nil")
		return
	}
	d.msg.CopyFrom(msg)
}

// Send dispatches using the stored config pair.
func (d *Dispatcher) Send(ctx context.Context) {
	d.SendWith(ctx, d.conn, d.msg)
}

// SendTo dispatches to an alternate connection, keeping the stored message
// config. A nil conn falls back to the stored connection.
func (d *Dispatcher) SendTo(ctx context.Context, conn *ConnectionConfig) {
	d.SendWith(ctx, conn, d.msg)
}

// SendToHost dispatches to a transient connection that inherits the stored
// TLS flag and path with only host, port and API key replaced.
func (d *Dispatcher) SendToHost(ctx context.Context, host string, port int, apiKey string) {
	conn := d.conn.Clone()
	conn.SetHost(host)
	conn.SetPort(port)
	conn.SetAPIKey(apiKey)
	d.SendTo(ctx, conn)
}

// SendPayload dispatches a transient message that inherits the stored
// timeout, content type and method with only the payload replaced. A nil conn
// falls back to the stored connection.
func (d *Dispatcher) SendPayload(ctx context.Context, payload string, conn *ConnectionConfig) {
	msg := d.msg.Clone()
	msg.SetPayload(payload)
	d.SendWith(ctx, conn, msg)
}

// SendWith dispatches with explicit configs, leaving the stored pair
// untouched. Nil arguments fall back to the stored configs.
func (d *Dispatcher) SendWith(ctx context.Context, conn *ConnectionConfig, msg *MessageConfig) {
	if conn == nil {
		conn = d.conn
	}
	if msg == nil {
		msg = d.msg
	}

	// Single-flight gate. A concurrent send is caller misuse, not a command
	// outcome: log it and fire neither callback.
	if !d.inFlight.CompareAndSwap(false, true) {
		d.logger.Printf("WARN: dispatcher busy: send dropped while another command is in flight")
		return
	}

	body, err := d.dispatch(ctx, conn, msg)
	if err != nil {
		if d.OnFailure != nil {
			d.OnFailure(err.Error())
		}
		return
	}
	if d.OnSuccess != nil {
		d.OnSuccess(body)
	}
}

// dispatch runs one command to completion. The in-flight flag is cleared on
// every path out, before the caller fires a callback.
func (d *Dispatcher) dispatch(ctx context.Context, conn *ConnectionConfig, msg *MessageConfig) (string, error) {
	defer d.inFlight.Store(false)

	if !conn.IsValid() {
		return "", ErrInvalidConnection
	}
	if !msg.IsValid() {
		return "", ErrInvalidMessage
	}

	// Per-call deadline, never the shared client's. Cancel releases the
	// timer whatever the outcome.
	reqCtx, cancel := context.WithTimeout(ctx, msg.Timeout())
	defer cancel()

	var payload io.Reader
	if msg.Method().allowsBody() {
		payload = strings.NewReader(msg.Payload())
	}

	req, err := http.NewRequestWithContext(reqCtx, msg.Method().String(), conn.ConstructURL(), payload)
	if err != nil {
		return "", fmt.Errorf("request error: %v", err)
	}
	if msg.Method().allowsBody() {
		req.Header.Set("Content-Type", msg.ContentType())
	}
	if key := conn.APIKey(); key != "" {
		req.Header.Set(apiKeyHeader, key)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", ErrRequestTimeout
		}
		return "", fmt.Errorf("request error: %v", err)
	}
	defer resp.Body.Close()

	limited := &io.LimitedReader{R: resp.Body, N: maxResponseBodySize}
	raw, err := io.ReadAll(limited)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", ErrRequestTimeout
		}
		return "", fmt.Errorf("request error: reading response body: %v", err)
	}

	text := string(raw)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("request failed: %s: %s", resp.Status, text)
	}

	return text, nil
}
