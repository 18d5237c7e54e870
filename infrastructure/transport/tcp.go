package transport

import (
	"bufio"
	"context"
	"docsync/observability"
	"docsync/runtime"
	"docsync/storage"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// maxFrameSize bounds a single frame read from a client.
const maxFrameSize = 1 << 20

// tcpConn adapts one accepted TCP connection to the session layer's Conn
// capability. Frames are newline-delimited on this transport, so Send
// escapes raw newlines inside a frame as the literal two characters
// backslash-n to keep the frame a single line; the document store reverses
// that escape when content is persisted.
type tcpConn struct {
	id string
	mu sync.Mutex
	nc net.Conn
}

func (c *tcpConn) ID() string { return c.id }

func (c *tcpConn) Send(frame string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintf(c.nc, "%s\n", strings.ReplaceAll(frame, "\n", `\n`))
	return err
}

// TCPServer accepts line-delimited protocol connections and runs one
// engine per connection, processing its frames strictly in arrival order.
type TCPServer struct {
	addr     string
	registry *runtime.Registry
	router   *runtime.Router
	store    storage.IDocumentStore
	monitor  *observability.Monitor
	log      *slog.Logger
	lis      net.Listener
}

func NewTCPServer(addr string, registry *runtime.Registry, router *runtime.Router,
	store storage.IDocumentStore, monitor *observability.Monitor, log *slog.Logger) *TCPServer {
	return &TCPServer{addr: addr, registry: registry, router: router,
		store: store, monitor: monitor, log: log}
}

// Listen binds the address eagerly so Addr is known before Run starts
// accepting. Useful with ":0" in tests.
func (s *TCPServer) Listen() error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("tcp listen on %s: %w", s.addr, err)
	}
	s.lis = lis
	return nil
}

// Addr returns the bound address, or the configured one before Listen.
func (s *TCPServer) Addr() string {
	if s.lis != nil {
		return s.lis.Addr().String()
	}
	return s.addr
}

// Run accepts connections until the context is canceled. It satisfies the
// Worker contract so the supervisor can restart a crashed accept loop.
func (s *TCPServer) Run(ctx context.Context) error {
	if s.lis == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}
	go func() {
		<-ctx.Done()
		_ = s.lis.Close()
	}()

	s.log.Info("TCP transport listening", "addr", s.Addr())
	for {
		nc, err := s.lis.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			// Drop the listener so a supervised restart re-binds.
			_ = s.lis.Close()
			s.lis = nil
			return fmt.Errorf("tcp accept: %w", err)
		}
		go s.handle(nc)
	}
}

func (s *TCPServer) handle(nc net.Conn) {
	conn := &tcpConn{id: uuid.NewString(), nc: nc}
	s.monitor.ConnOpened()
	s.registry.Track(conn)
	engine := runtime.NewEngine(conn, s.registry, s.router, s.store, s.monitor, s.log)
	defer func() {
		engine.Disconnect()
		_ = nc.Close()
		s.monitor.ConnClosed()
	}()

	scanner := bufio.NewScanner(nc)
	scanner.Buffer(make([]byte, 0, 64*1024), maxFrameSize)
	for scanner.Scan() {
		engine.HandleFrame(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		s.log.Debug("connection read ended", "conn", conn.id, "error", err)
	}
}
