package wsock

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"tesseract/server"
)

// ServerTransport is an http.Handler that upgrades incoming requests to
// websockets and feeds each connection's messages to a bound Processor.
// Mount it on a mux like any other handler; Bind only records the
// Processor it should dispatch to.
type ServerTransport struct {
	upgrader websocket.Upgrader
	logger   *zap.SugaredLogger

	processor *server.Processor
}

// NewServerTransport builds an unbound websocket ServerTransport.
func NewServerTransport() *ServerTransport {
	return &ServerTransport{logger: zap.NewNop().Sugar()}
}

// WithLogger attaches a logger for connection diagnostics.
func (st *ServerTransport) WithLogger(logger *zap.SugaredLogger) *ServerTransport {
	if logger != nil {
		st.logger = logger
	}
	return st
}

func (st *ServerTransport) Bind(processor *server.Processor) server.BoundTransport {
	st.processor = processor
	return &boundTransport{}
}

// ServeHTTP upgrades the connection and serves it until the client closes
// it or a frame/write error occurs.
func (st *ServerTransport) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := st.upgrader.Upgrade(w, r, nil)
	if err != nil {
		st.logger.Errorw("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if messageType != websocket.BinaryMessage && messageType != websocket.TextMessage {
			continue
		}

		reply := st.processor.Process(context.Background(), data)

		if err := conn.WriteMessage(websocket.BinaryMessage, reply); err != nil {
			st.logger.Debugw("websocket write failed", "error", err)
			return
		}
	}
}

type boundTransport struct{}

func (boundTransport) Close() error { return nil }
