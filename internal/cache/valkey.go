// Package cache provides the Valkey (Redis-compatible) client and a small
// JSON key/value cache used by the URL extractor and the web sessions.
package cache

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"

	"bookmarkbrain/internal/logger"
)

const (
	dialTimeout = 3 * time.Second
	ioTimeout   = 2 * time.Second
	pingTimeout = 5 * time.Second
)

// ConnectValkey returns a client for the Valkey server at host:port. The
// client is only returned once the server has answered a PING.
func ConnectValkey(host, port, password string, log *logger.Logger) (*redis.Client, error) {
	addr := net.JoinHostPort(host, port)
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DialTimeout:  dialTimeout,
		ReadTimeout:  ioTimeout,
		WriteTimeout: ioTimeout,
		MaxRetries:   2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("valkey ping %s: %w", addr, err)
	}

	log.Info("valkey connected", "addr", addr)
	return client, nil
}
