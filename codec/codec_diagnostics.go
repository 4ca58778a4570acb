//go:build tesseract_diagnostics

package codec

// defaultCodec returns JSON when the tesseract_diagnostics build tag is
// set, matching the original's cfg(debug_assertions) default so traces
// stay human-readable during development (spec §4.1).
func defaultCodec() Codec {
	return JSONCodec{}
}
