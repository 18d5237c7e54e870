// Package client is a programmatic client for the broker's line protocol,
// used by the interactive CLI and the e2e suite.
package client

import (
	"bufio"
	"docsync/domain"
	"docsync/protocol"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"sync"
)

// Client speaks the broker protocol over one TCP connection. One goroutine
// may Recv while others Send.
type Client struct {
	conn    net.Conn
	scanner *bufio.Scanner
	mu      sync.Mutex
	log     *slog.Logger
}

func Dial(addr string, log *slog.Logger) (*Client, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dialing broker at %s: %w", addr, err)
	}
	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	return &Client{conn: conn, scanner: scanner, log: log}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// Send encodes and writes one frame. Raw newlines in param2 are escaped as
// the literal backslash-n for the line transport, mirroring the broker side.
func (c *Client) Send(msgType, param1, param2 string) error {
	frame := protocol.Encode(msgType, param1, param2)
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintf(c.conn, "%s\n", strings.ReplaceAll(frame, "\n", `\n`))
	return err
}

// Recv blocks until the next frame arrives and decodes it. io.EOF reports a
// closed connection.
func (c *Client) Recv() (msgType, param1, param2 string, err error) {
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", "", "", err
		}
		return "", "", "", io.EOF
	}
	msgType, param1, param2 = protocol.Decode(c.scanner.Text())
	return msgType, param1, param2, nil
}

// Login authenticates and waits for the broker's direct reply. Notifications
// from other sessions may interleave before it; they are skipped here. The
// courtesy LIST_FILES_RESPONSE that follows a successful login stays in the
// stream for the caller.
func (c *Client) Login(displayName string) error {
	if err := c.Send(string(domain.Login), displayName, ""); err != nil {
		return err
	}
	for {
		msgType, param1, param2, err := c.Recv()
		if err != nil {
			return err
		}
		switch msgType {
		case protocol.TypeSuccess:
			return nil
		case protocol.TypeError:
			return fmt.Errorf("login rejected: %s (%s)", param1, param2)
		default:
			c.log.Debug("skipping notification during login", "type", msgType)
		}
	}
}

func (c *Client) ListFiles() error {
	return c.Send(string(domain.ListFilesRequest), "", "")
}

func (c *Client) OpenFile(name string) error {
	return c.Send(string(domain.OpenFileRequest), name, "")
}

func (c *Client) CreateFile(name string) error {
	return c.Send(string(domain.CreateFile), name, "")
}

func (c *Client) SaveFile(name, content string) error {
	return c.Send(string(domain.SaveFile), name, content)
}

func (c *Client) Edit(name, content string) error {
	return c.Send(string(domain.Edit), name, content)
}
