package server

// ServerTransport binds a Processor to a concrete listening mechanism
// (spec §4.10): TCP listener, websocket upgrader, or the in-process link.
// Bind is expected to start whatever background accept/serve loop the
// transport needs and return immediately; BoundTransport.Close stops it.
type ServerTransport interface {
	Bind(processor *Processor) BoundTransport
}

// BoundTransport is the live handle returned by Bind. Closing it must be
// safe to call more than once and must not block on in-flight requests
// draining — callers that need a graceful drain do it before Close.
type BoundTransport interface {
	Close() error
}
