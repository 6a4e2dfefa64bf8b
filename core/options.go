package core

import (
	"crypto/tls"
	"net/http"
	"time"
)

// Config holds construction-time configuration for a DataConnection.
type Config struct {
	// TLSConfig, when set, is used as-is for the connection (cloned so the
	// caller's copy is never mutated). It takes priority over
	// InsecureSkipVerify.
	TLSConfig *tls.Config

	// InsecureSkipVerify disables peer certificate verification. This is an
	// explicit opt-in for environments with self-signed service
	// certificates; never enable it against an untrusted network.
	InsecureSkipVerify bool

	// CertFile is a PEM file holding the client certificate for mutual TLS.
	CertFile string

	// KeyFile is the PEM file holding the client key. When empty, CertFile
	// is assumed to be a combined certificate+key PEM.
	KeyFile string

	// Timeout bounds each request end to end, including reading the
	// response body. Zero means no timeout.
	Timeout time.Duration

	// Headers contains optional extra headers to include in every request.
	Headers http.Header

	// Telemetry receives request lifecycle events.
	Telemetry TelemetryHook
}

// Option configures a DataConnection at construction.
type Option func(*Config)

// WithTLSConfig supplies a complete TLS configuration, used as-is.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(c *Config) {
		c.TLSConfig = cfg
	}
}

// WithInsecureSkipVerify disables peer certificate verification.
// This is an explicit opt-in; see Config.InsecureSkipVerify.
func WithInsecureSkipVerify() Option {
	return func(c *Config) {
		c.InsecureSkipVerify = true
	}
}

// WithClientCert loads a client certificate for mutual TLS. Pass the same
// path twice (or an empty keyFile) for a combined certificate+key PEM.
func WithClientCert(certFile, keyFile string) Option {
	return func(c *Config) {
		c.CertFile = certFile
		c.KeyFile = keyFile
	}
}

// WithTimeout bounds each request end to end. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithHeader adds an extra header to include in every request.
func WithHeader(key, value string) Option {
	return func(c *Config) {
		if c.Headers == nil {
			c.Headers = make(http.Header)
		}
		c.Headers.Set(key, value)
	}
}

// WithTelemetry sets the telemetry hook for the connection.
func WithTelemetry(h TelemetryHook) Option {
	return func(c *Config) {
		if h != nil {
			c.Telemetry = h
		}
	}
}
