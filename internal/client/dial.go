package client

import (
	"context"
	"crypto/tls"
	"net"
	"time"

	"github.com/pkg/errors"
)

// Dial opens a connection to a server at addr (host:port). If useTLS is set
// the connection is wrapped in TLS, verifying the server's certificate.
func Dial(
	ctx context.Context,
	addr string,
	useTLS bool,
	timeout time.Duration,
) (net.Conn, error) {
	dialer := &net.Dialer{
		Timeout:   timeout,
		KeepAlive: 30 * time.Second,
	}

	if !useTLS {
		conn, err := dialer.DialContext(ctx, "tcp", addr)
		if err != nil {
			return nil, errors.Wrap(err, "error dialing")
		}
		return conn, nil
	}

	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, errors.Wrap(err, "invalid address")
	}

	tlsDialer := &tls.Dialer{
		NetDialer: dialer,
		Config:    &tls.Config{ServerName: host},
	}

	conn, err := tlsDialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, errors.Wrap(err, "error dialing with TLS")
	}
	return conn, nil
}
