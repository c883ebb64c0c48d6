package main

import (
	"context"
	"log"
	"net"
	"time"

	"github.com/horgh/catchat/internal/client"
)

// How long we wait to connect.
const dialTimeout = 30 * time.Second

// connect opens a connection to the configured server.
func connect(ctx context.Context, cfg Config) (net.Conn, error) {
	addr := net.JoinHostPort(cfg.Server, cfg.Port)

	if cfg.TLS {
		log.Printf("Connecting to %s using TLS...", addr)
	} else {
		log.Printf("Connecting to %s...", addr)
	}

	conn, err := client.Dial(ctx, addr, cfg.TLS, dialTimeout)
	if err != nil {
		return nil, err
	}

	log.Printf("Connected to %s.", conn.RemoteAddr())
	return conn, nil
}
