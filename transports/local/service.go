package local

import "tesseract/server"

// ServerTransport binds a *server.Processor directly into a Link — the
// service side of an in-process pair.
type ServerTransport struct {
	link *Link
}

// NewServerTransport builds a service-side handle for link.
func NewServerTransport(link *Link) *ServerTransport {
	return &ServerTransport{link: link}
}

// Bind attaches processor to the link and returns a handle that detaches
// it again on Close. Satisfies server.ServerTransport.
func (st *ServerTransport) Bind(processor *server.Processor) server.BoundTransport {
	st.link.SetProcessor(processor)
	return &boundTransport{link: st.link}
}

type boundTransport struct {
	link *Link
}

func (bt *boundTransport) Close() error {
	bt.link.SetProcessor(nil)
	return nil
}
