package core

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
)

// DataConnection is a connection to a lightblue data service.
//
// A DataConnection owns exactly one underlying transport connection. The
// service protocol is strictly half-duplex request/response per connection,
// so concurrent calls on one DataConnection are not supported; callers that
// need parallelism should open one connection per goroutine.
//
// Release the connection with Close, typically via defer:
//
//	conn, err := core.Connect(ctx, "https://host.example/db/data")
//	if err != nil {
//	    return err
//	}
//	defer conn.Close()
type DataConnection struct {
	host      string // host:port
	basePath  string // trailing slash stripped
	client    *http.Client
	transport *http.Transport
	dialer    *primedDialer
	headers   http.Header
	telemetry TelemetryHook

	closed    atomic.Bool
	closeOnce sync.Once
}

// Connect opens a connection to the lightblue data service at rawURL.
//
// The URL scheme must be https; the port defaults to 443 and one trailing
// slash is stripped from the base path. Connect dials the service eagerly so
// DNS, TCP, and TLS handshake failures surface here rather than on the first
// request; such failures wrap ErrConnection.
//
// Peer certificate verification is on by default. Use WithInsecureSkipVerify
// to opt out, or WithTLSConfig to supply a complete TLS configuration.
func Connect(ctx context.Context, rawURL string, opts ...Option) (*DataConnection, error) {
	cfg := Config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	host, basePath, err := parseServiceURL(rawURL)
	if err != nil {
		return nil, connectError(err)
	}

	tlsCfg, err := resolveTLSConfig(&cfg)
	if err != nil {
		return nil, connectError(err)
	}

	dialer := &primedDialer{tlsConfig: tlsCfg}

	// Validate reachability now; the handshaked connection serves the
	// first request.
	conn, err := dialer.dial(ctx, host)
	if err != nil {
		return nil, connectError(err)
	}
	dialer.prime(conn)

	// One connection, no multiplexing: the service is half-duplex
	// request/response per connection, so HTTP/2 stays off (a non-nil
	// TLSClientConfig with DialTLSContext already disables it).
	transport := &http.Transport{
		TLSClientConfig: tlsCfg,
		DialTLSContext:  dialer.dialTLSContext,
		MaxConnsPerHost: 1,
		MaxIdleConns:    1,
	}

	telemetry := cfg.Telemetry
	if telemetry == nil {
		telemetry = NoopTelemetryHook{}
	}

	return &DataConnection{
		host:      host,
		basePath:  basePath,
		transport: transport,
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		dialer:    dialer,
		headers:   cfg.Headers,
		telemetry: telemetry,
	}, nil
}

// Close releases the underlying transport connection. Close runs exactly
// once; additional calls are no-ops, so it is safe to defer unconditionally.
// Operations issued after Close fail with ErrClosed.
func (c *DataConnection) Close() error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		c.dialer.discard()
		c.transport.CloseIdleConnections()
	})
	return nil
}

// BasePath returns the normalized base path requests are issued under.
func (c *DataConnection) BasePath() string {
	return c.basePath
}

// Host returns the host:port the connection is bound to.
func (c *DataConnection) Host() string {
	return c.host
}

// parseServiceURL splits a service URL into host:port and a normalized base
// path. The port defaults to 443 and one trailing slash is stripped.
func parseServiceURL(rawURL string) (host, basePath string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", err
	}
	if u.Scheme != "https" {
		return "", "", fmt.Errorf("unsupported scheme %q: the data service requires https", u.Scheme)
	}
	if u.Hostname() == "" {
		return "", "", fmt.Errorf("missing hostname in url %q", rawURL)
	}

	port := u.Port()
	if port == "" {
		port = "443"
	}
	host = net.JoinHostPort(u.Hostname(), port)

	basePath = strings.TrimSuffix(u.Path, "/")
	return host, basePath, nil
}

// resolveTLSConfig applies the construction-time TLS policy: a caller
// supplied config wins as-is, otherwise a config is built with verification
// on unless explicitly opted out, plus the client certificate if given.
func resolveTLSConfig(cfg *Config) (*tls.Config, error) {
	tlsCfg := cfg.TLSConfig
	if tlsCfg == nil {
		tlsCfg = &tls.Config{
			InsecureSkipVerify: cfg.InsecureSkipVerify,
		}
	} else {
		tlsCfg = tlsCfg.Clone()
	}

	if cfg.CertFile != "" {
		keyFile := cfg.KeyFile
		if keyFile == "" {
			// Combined PEM holding both certificate and key.
			keyFile = cfg.CertFile
		}
		cert, err := tls.LoadX509KeyPair(cfg.CertFile, keyFile)
		if err != nil {
			return nil, fmt.Errorf("load client certificate: %w", err)
		}
		tlsCfg.Certificates = append(tlsCfg.Certificates, cert)
	}

	return tlsCfg, nil
}

// primedDialer hands a pre-established TLS connection to the transport for
// its first dial and dials afresh after the service closes it.
type primedDialer struct {
	tlsConfig *tls.Config

	mu     sync.Mutex
	primed net.Conn
}

func (d *primedDialer) dial(ctx context.Context, addr string) (net.Conn, error) {
	td := &tls.Dialer{Config: d.tlsConfig}
	return td.DialContext(ctx, "tcp", addr)
}

func (d *primedDialer) prime(conn net.Conn) {
	d.mu.Lock()
	d.primed = conn
	d.mu.Unlock()
}

func (d *primedDialer) take() net.Conn {
	d.mu.Lock()
	conn := d.primed
	d.primed = nil
	d.mu.Unlock()
	return conn
}

func (d *primedDialer) discard() {
	if conn := d.take(); conn != nil {
		conn.Close()
	}
}

func (d *primedDialer) dialTLSContext(ctx context.Context, network, addr string) (net.Conn, error) {
	if conn := d.take(); conn != nil {
		return conn, nil
	}
	return d.dial(ctx, addr)
}
