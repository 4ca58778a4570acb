package tcp

import (
	"context"
	"net"

	"go.uber.org/zap"

	"tesseract/server"
)

// ServerTransport listens on a TCP address and feeds each connection's
// frames to a bound Processor, one request at a time per connection.
type ServerTransport struct {
	address string
	logger  *zap.SugaredLogger
}

// NewServerTransport builds a listener binding for address.
func NewServerTransport(address string) *ServerTransport {
	return &ServerTransport{address: address, logger: zap.NewNop().Sugar()}
}

// WithLogger attaches a logger for accept/connection diagnostics.
func (st *ServerTransport) WithLogger(logger *zap.SugaredLogger) *ServerTransport {
	if logger != nil {
		st.logger = logger
	}
	return st
}

// Bind starts listening and returns once the listener is up; Close stops
// accepting and closes the listener.
func (st *ServerTransport) Bind(processor *server.Processor) server.BoundTransport {
	listener, err := net.Listen("tcp", st.address)
	if err != nil {
		st.logger.Errorw("tcp listen failed", "address", st.address, "error", err)
		return &boundTransport{}
	}

	bt := &boundTransport{listener: listener}
	go bt.acceptLoop(processor, st.logger)
	return bt
}

type boundTransport struct {
	listener net.Listener
}

func (bt *boundTransport) acceptLoop(processor *server.Processor, logger *zap.SugaredLogger) {
	if bt.listener == nil {
		return
	}
	for {
		conn, err := bt.listener.Accept()
		if err != nil {
			return
		}
		go handleConn(conn, processor, logger)
	}
}

// handleConn serves one request/response exchange at a time on conn for
// as long as the client keeps it open, closing it on the first frame or
// write error (a dropped connection, not a protocol-level condition).
func handleConn(conn net.Conn, processor *server.Processor, logger *zap.SugaredLogger) {
	defer conn.Close()

	for {
		body, err := readFrame(conn)
		if err != nil {
			return
		}

		reply := processor.Process(context.Background(), body)

		if err := writeFrame(conn, reply); err != nil {
			logger.Debugw("tcp write failed", "error", err)
			return
		}
	}
}

func (bt *boundTransport) Close() error {
	if bt.listener == nil {
		return nil
	}
	return bt.listener.Close()
}
