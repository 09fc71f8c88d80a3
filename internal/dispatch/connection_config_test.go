package dispatch

import (
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestConnectionConfigSetPort(t *testing.T) {
	tests := []struct {
		name     string
		port     int
		expected int
	}{
		{"minimum accepted", 1, 1},
		{"maximum accepted", 65535, 65535},
		{"typical accepted", 8080, 8080},
		{"zero rejected", 0, 9000},
		{"negative rejected", -1, 9000},
		{"above range rejected", 65536, 9000},
		{"far above range rejected", 700000, 9000},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewConnectionConfig("10.0.0.5", 9000, "/api/lock", testLogger())
			c.SetPort(tc.port)
			assert.Equal(t, tc.expected, c.Port())
		})
	}
}

func TestConnectionConfigConstructURL(t *testing.T) {
	c := NewConnectionConfig("192.168.1.100", 8080, "/api/test", testLogger())

	assert.Equal(t, "http://192.168.1.100:8080/api/test", c.ConstructURL())

	c.SetUseTLS(true)
	assert.Equal(t, "https://192.168.1.100:8080/api/test", c.ConstructURL())
}

func TestConnectionConfigPathNormalization(t *testing.T) {
	c := NewConnectionConfig("192.168.1.100", 8080, "api/test", testLogger())
	assert.Equal(t, "/api/test", c.Path())
	assert.Equal(t, "http://192.168.1.100:8080/api/test", c.ConstructURL())

	c.SetPath("/already/normal")
	assert.Equal(t, "/already/normal", c.Path())

	c.SetPath("")
	assert.Equal(t, "", c.Path())
}

func TestConnectionConfigIsValid(t *testing.T) {
	tests := []struct {
		name  string
		host  string
		port  int
		path  string
		valid bool
	}{
		{"all fields set", "10.0.0.5", 9000, "/api/lock", true},
		{"empty host", "", 9000, "/api/lock", false},
		{"whitespace host", "   ", 9000, "/api/lock", false},
		{"port never set", "10.0.0.5", 0, "/api/lock", false},
		{"empty path", "10.0.0.5", 9000, "", false},
		{"whitespace path", "10.0.0.5", 9000, "   ", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewConnectionConfig(tc.host, tc.port, tc.path, testLogger())
			assert.Equal(t, tc.valid, c.IsValid())
		})
	}
}

func TestConnectionConfigClone(t *testing.T) {
	assert := assert.New(t)

	c := NewConnectionConfig("10.0.0.5", 9000, "/api/lock", testLogger())
	c.SetAPIKey("k1")
	c.SetUseTLS(true)

	clone := c.Clone()
	assert.Equal(c.Host(), clone.Host())
	assert.Equal(c.Port(), clone.Port())
	assert.Equal(c.APIKey(), clone.APIKey())
	assert.Equal(c.UseTLS(), clone.UseTLS())
	assert.Equal(c.Path(), clone.Path())

	// Mutating the clone must not touch the original.
	clone.SetHost("10.0.0.6")
	clone.SetPort(9001)
	assert.Equal("10.0.0.5", c.Host())
	assert.Equal(9000, c.Port())
}

func TestConnectionConfigCopyFrom(t *testing.T) {
	assert := assert.New(t)

	src := NewConnectionConfig("10.0.0.5", 9000, "/api/lock", testLogger())
	src.SetAPIKey("k1")
	src.SetUseTLS(true)

	dst := NewConnectionConfig("localhost", 8080, "/", testLogger())
	dst.CopyFrom(src)
	assert.Equal("10.0.0.5", dst.Host())
	assert.Equal(9000, dst.Port())
	assert.Equal("k1", dst.APIKey())
	assert.True(dst.UseTLS())
	assert.Equal("/api/lock", dst.Path())

	// A nil source leaves the destination untouched.
	dst.CopyFrom(nil)
	assert.Equal("10.0.0.5", dst.Host())
	assert.Equal(9000, dst.Port())
}
