package model

import (
	"context"
	"net"
)

// SecurityLayer opens listeners, either plain or TLS-terminated.
type SecurityLayer interface {
	Listen(network, addr string) (net.Listener, error)
}

// Server is a network server with a managed lifecycle.
type Server interface {
	Name() string
	Start(securityLayer SecurityLayer) error
	Stop(ctx context.Context) error
	Address() string
}
