// Package ntrip provides a minimal NTRIP version 1 client used as a byte
// source for the augmentation decode pipeline: it opens a mountpoint on a
// caster and returns the raw bytes from Read, without interpreting the
// payload itself; framing them is left to the caller.
package ntrip

import (
	"fmt"

	"github.com/bramburn/gnssaug/pkg/gnssaug/stream"
)

// ntripStream is the subset of *stream.Stream used by Client, narrowed to
// an interface so tests can substitute a mock.
type ntripStream interface {
	InitStream()
	OpenStream(ctype, mode int, path string) int
	StreamRead(buff []byte, n int) int
	StreamClose()
}

// Client reads bytes from an NTRIP mountpoint.
type Client struct {
	server     string
	port       string
	username   string
	password   string
	mountpoint string
	connected  bool
	stream     ntripStream
}

// NewClient builds a Client for the given caster and mountpoint. It does
// not connect; call Connect to open the stream.
func NewClient(server, port, username, password, mountpoint string) (*Client, error) {
	if server == "" {
		return nil, fmt.Errorf("server is required")
	}
	if mountpoint == "" {
		return nil, fmt.Errorf("mountpoint is required")
	}
	return &Client{
		server:     server,
		port:       port,
		username:   username,
		password:   password,
		mountpoint: mountpoint,
		stream:     &stream.Stream{},
	}, nil
}

// Connect opens the NTRIP stream.
func (c *Client) Connect() error {
	path := fmt.Sprintf("%s:%s@%s:%s/%s", c.username, c.password, c.server, c.port, c.mountpoint)

	c.stream.InitStream()
	if c.stream.OpenStream(stream.STR_NTRIPCLI, stream.STR_MODE_R, path) == 0 {
		return fmt.Errorf("failed to connect to %s:%s/%s", c.server, c.port, c.mountpoint)
	}
	c.connected = true
	return nil
}

// Disconnect closes the stream.
func (c *Client) Disconnect() error {
	c.stream.StreamClose()
	c.connected = false
	return nil
}

// Read pulls raw bytes off the mountpoint. The caller is responsible for
// framing them (see pkg/gnssaug/framer).
func (c *Client) Read(buffer []byte) (int, error) {
	if !c.connected {
		return 0, fmt.Errorf("not connected")
	}
	n := c.stream.StreamRead(buffer, len(buffer))
	return n, nil
}

// IsConnected reports whether the stream is open.
func (c *Client) IsConnected() bool {
	return c.connected
}
