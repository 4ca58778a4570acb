package config

import (
	"fmt"

	"tesseract/client"
	"tesseract/transports/tcp"
	wsock "tesseract/transports/websocket"
)

// Apply builds a client.Tesseract from the configured codec and
// transports, around the given delegate. "local" transports are skipped:
// they need a shared *local.Link supplied programmatically and have
// nothing declarative to carry besides an id, so config.Apply leaves them
// to WithTransport calls made by the caller after Apply returns.
func (c *TesseractConfig) Apply(delegate client.Delegate) (*client.Tesseract, error) {
	codecImpl, err := c.Codec()
	if err != nil {
		return nil, err
	}

	root := client.New(delegate).WithCodec(codecImpl)

	for _, tc := range c.Transports {
		switch tc.Kind {
		case TransportTCP:
			root = root.WithTransport(tcp.NewTransport(tc.ID, tc.Address))
		case TransportWebsocket:
			root = root.WithTransport(wsock.NewTransport(tc.ID, tc.Address))
		case TransportLocal:
			continue
		default:
			return nil, fmt.Errorf("config: unknown transport kind %q", tc.Kind)
		}
	}

	return root, nil
}
