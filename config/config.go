// Package config loads declarative Tesseract client configuration from
// YAML, the way cowsql-go-cowsql's YamlNodeStore persists its own node
// list — a thin, os.ReadFile-then-yaml.Unmarshal convenience layered over
// the builder API, never a replacement for it.
package config

import (
	"os"

	"github.com/goccy/go-yaml"

	"tesseract/codec"
)

// TransportKind names a built-in transport for declarative wiring.
type TransportKind string

const (
	TransportLocal     TransportKind = "local"
	TransportTCP       TransportKind = "tcp"
	TransportWebsocket TransportKind = "websocket"
)

// TransportConfig describes one configured client transport. Address is
// interpreted per Kind: a dial address for "tcp", a ws(s):// URL for
// "websocket", ignored for "local" (local transports are always wired
// programmatically, since they share an in-process Link with no address
// to name).
type TransportConfig struct {
	ID      string        `yaml:"id"`
	Kind    TransportKind `yaml:"kind"`
	Address string        `yaml:"address,omitempty"`
}

// TesseractConfig is the top-level declarative shape: which codec to
// default to and which transports to dial.
type TesseractConfig struct {
	CodecName  string            `yaml:"codec"`
	Transports []TransportConfig `yaml:"transports"`
}

// Load reads and parses a TesseractConfig from path.
func Load(path string) (*TesseractConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg TesseractConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Codec resolves the configured codec name to a codec.Codec, defaulting to
// codec.Default when unset.
func (c *TesseractConfig) Codec() (codec.Codec, error) {
	if c.CodecName == "" {
		return codec.Default, nil
	}
	return codec.ForMarker(codec.Marker(c.CodecName))
}
