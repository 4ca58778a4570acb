//go:build !tesseract_diagnostics

package codec

// defaultCodec returns CBOR by default, reserving JSON for diagnostic
// builds (spec §4.1).
func defaultCodec() Codec {
	return CBORCodec{}
}
