package hypr

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
)

// Conn is a connection to the Hyprland event socket.
type Conn struct {
	*net.UnixConn
}

// Dial connects to the event socket at path. No timeout is applied.
func Dial(path string) (*Conn, error) {
	addr := &net.UnixAddr{Name: path, Net: "unix"}

	conn, err := net.DialUnix("unix", nil, addr)
	if err != nil {
		return nil, fmt.Errorf("connecting to event socket: %w", err)
	}

	return &Conn{conn}, nil
}

// Subscribe writes the window subscription command.
func (c *Conn) Subscribe() error {
	if _, err := c.Write([]byte(SubscribeCommand)); err != nil {
		return fmt.Errorf("writing subscription: %w", err)
	}
	return nil
}

// MaxLineLength is the longest event line passed to ReadLines callers.
// Longer lines, such as window titles from misbehaving clients, are dropped.
const MaxLineLength = 64 * 1024

// ReadLines calls fn for every newline-delimited line until the socket
// closes, a read fails, or ctx is cancelled. EOF returns nil.
func (c *Conn) ReadLines(ctx context.Context, fn func(line string) error) error {
	rd := bufio.NewReader(c)
	line := make([]byte, 0, 256)
	overflow := false

	for {
		part, isPrefix, err := rd.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("error reading: %w", err)
		}

		if !overflow {
			if len(line)+len(part) > MaxLineLength {
				overflow = true
				line = line[:0]
			} else {
				line = append(line, part...)
			}
		}
		if isPrefix {
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !overflow {
			if err := fn(string(line)); err != nil {
				return err
			}
		}
		line = line[:0]
		overflow = false
	}
}
