// Package codec provides the serialization layer for Tesseract frames.
//
// It defines a pluggable Codec interface with two implementations:
//   - JSONCodec: human-readable, chosen as the default in diagnostic builds
//   - CBORCodec: compact binary format, chosen as the default otherwise
//
// Unlike a length-prefixed binary header, the codec in use for a frame is
// named by a 4-byte ASCII marker at the front of the frame (spec §4.1),
// so a client and a service never need to agree on a codec out of band —
// every frame is self-describing, and request/response may even use
// different codecs.
package codec

import (
	"encoding/json"

	"github.com/fxamacker/cbor/v2"

	"tesseract/errs"
)

// Marker is the 4-byte ASCII prefix naming a frame's codec.
type Marker string

const (
	MarkerJSON Marker = "json"
	MarkerCBOR Marker = "cbor"

	markerLen = 4
)

// Codec serializes and deserializes envelope values for one wire format.
type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
	Marker() Marker
}

// JSONCodec uses encoding/json.
type JSONCodec struct{}

func (JSONCodec) Encode(v any) ([]byte, error)    { return json.Marshal(v) }
func (JSONCodec) Decode(data []byte, v any) error { return json.Unmarshal(data, v) }
func (JSONCodec) Marker() Marker                  { return MarkerJSON }

// CBORCodec uses github.com/fxamacker/cbor/v2.
type CBORCodec struct{}

func (CBORCodec) Encode(v any) ([]byte, error)    { return cbor.Marshal(v) }
func (CBORCodec) Decode(data []byte, v any) error { return cbor.Unmarshal(data, v) }
func (CBORCodec) Marker() Marker                  { return MarkerCBOR }

// ForMarker returns the codec registered for a marker, or an error if the
// marker is unrecognized.
func ForMarker(m Marker) (Codec, error) {
	switch m {
	case MarkerJSON:
		return JSONCodec{}, nil
	case MarkerCBOR:
		return CBORCodec{}, nil
	default:
		return nil, errs.Described(errs.KindSerialization, "unrecognized marker: "+string(m))
	}
}

// ReadMarker reads the leading 4-byte marker off a frame and returns the
// matching codec plus the remaining bytes. It fails with KindSerialization
// if there are fewer than 4 bytes, the bytes aren't valid ASCII, or they
// don't name a known codec (spec §4.1, §8 boundaries).
func ReadMarker(frame []byte) (Codec, []byte, error) {
	if len(frame) < markerLen {
		return nil, nil, errs.Described(errs.KindSerialization, "frame shorter than marker")
	}
	raw := frame[:markerLen]
	for _, b := range raw {
		if b > 0x7F {
			return nil, nil, errs.Described(errs.KindSerialization, "marker is not ASCII")
		}
	}
	codec, err := ForMarker(Marker(raw))
	if err != nil {
		return nil, nil, err
	}
	return codec, frame[markerLen:], nil
}

// Serialize encodes v with the codec, optionally prefixing it with the
// 4-byte marker (spec §4.1).
func Serialize(c Codec, v any, mark bool) ([]byte, error) {
	body, err := c.Encode(v)
	if err != nil {
		return nil, errs.New(errs.KindSerialization, "can't serialize", err)
	}
	if !mark {
		return body, nil
	}
	out := make([]byte, 0, markerLen+len(body))
	out = append(out, []byte(c.Marker())...)
	out = append(out, body...)
	return out, nil
}

// Deserialize decodes data (without a marker) into v using the codec.
func Deserialize(c Codec, data []byte, v any) error {
	if err := c.Decode(data, v); err != nil {
		return errs.New(errs.KindSerialization, "can't deserialize", err)
	}
	return nil
}

// Default is the built-in default codec. It is JSON in diagnostic builds
// (controlled by the tesseract_diagnostics build tag, see codec_diagnostics.go /
// codec_release.go) and CBOR otherwise, mirroring the original's
// cfg(debug_assertions) switch (spec §4.1).
var Default Codec = defaultCodec()
