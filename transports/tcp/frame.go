// Package tcp implements a length-prefixed transport over net.Conn: one
// tesseract frame (codec marker + envelope) per request, one connection per
// client Connect — no request multiplexing, matching spec §1's "exactly
// one request/response exchange at a time per connection".
package tcp

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Frame layout: 3-byte magic, 1-byte version, 4-byte big-endian body
// length, then the body (a tesseract marker+envelope frame). Adapted from
// the teacher's 14-byte header by dropping the CodecType/MsgType/Seq
// fields: the codec marker already travels inside the body, and this
// transport carries one exchange at a time per connection, so there is no
// sequence number to multiplex on.
const (
	magic0     = 't'
	magic1     = 's'
	magic2     = 'x'
	version    = 0x01
	headerSize = 8
)

func writeFrame(w io.Writer, body []byte) error {
	header := make([]byte, headerSize)
	header[0], header[1], header[2] = magic0, magic1, magic2
	header[3] = version
	binary.BigEndian.PutUint32(header[4:8], uint32(len(body)))

	if _, err := w.Write(header); err != nil {
		return err
	}
	_, err := w.Write(body)
	return err
}

func readFrame(r io.Reader) ([]byte, error) {
	header := make([]byte, headerSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}
	if header[0] != magic0 || header[1] != magic1 || header[2] != magic2 {
		return nil, fmt.Errorf("tcp: bad magic %x", header[0:3])
	}
	if header[3] != version {
		return nil, fmt.Errorf("tcp: unsupported frame version %d", header[3])
	}

	bodyLen := binary.BigEndian.Uint32(header[4:8])
	body := make([]byte, bodyLen)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, err
	}
	return body, nil
}
