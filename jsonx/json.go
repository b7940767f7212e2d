// Package jsonx provides a configurable JSON encoding/decoding layer.
// It defaults to github.com/bytedance/sonic but any implementation with a
// matching signature can be swapped in.
//
// Usage:
//
//	import "github.com/pvcache/pvcache-go/jsonx"
//
//	data, err := jsonx.Marshal(v)
//	err = jsonx.Unmarshal(data, &v)
//
// To use a different JSON library:
//
//	import (
//		"github.com/pvcache/pvcache-go/jsonx"
//		gojson "github.com/goccy/go-json"
//	)
//
//	func init() {
//		jsonx.SetConfig(jsonx.Config{
//			Marshal:   gojson.Marshal,
//			Unmarshal: gojson.Unmarshal,
//			NewEncoder: func(w io.Writer) jsonx.Encoder { return gojson.NewEncoder(w) },
//			NewDecoder: func(r io.Reader) jsonx.Decoder { return gojson.NewDecoder(r) },
//		})
//	}
package jsonx

import (
	"bytes"
	stdjson "encoding/json"
	"io"

	"github.com/bytedance/sonic"
	"github.com/bytedance/sonic/decoder"
	"github.com/bytedance/sonic/encoder"
)

// Encoder is the interface for streaming JSON encoding.
type Encoder interface {
	Encode(v any) error
}

// Decoder is the interface for streaming JSON decoding.
type Decoder interface {
	Decode(v any) error
}

// Config holds the JSON encoding/decoding functions in use.
type Config struct {
	Marshal       func(v any) ([]byte, error)
	MarshalIndent func(v any, prefix, indent string) ([]byte, error)
	Unmarshal     func(data []byte, v any) error
	NewEncoder    func(w io.Writer) Encoder
	NewDecoder    func(r io.Reader) Decoder
}

// DefaultConfig returns the default configuration, backed by sonic.
func DefaultConfig() Config {
	return Config{
		Marshal: sonic.Marshal,
		MarshalIndent: func(v any, prefix, indent string) ([]byte, error) {
			// sonic has no native indent support; marshal with sonic then
			// reindent with encoding/json, which is only used for
			// human-facing debug output, never on the hot path.
			b, err := sonic.Marshal(v)
			if err != nil {
				return nil, err
			}
			var buf []byte
			buf, err = stdjsonIndent(b, prefix, indent)
			if err != nil {
				return nil, err
			}
			return buf, nil
		},
		Unmarshal: sonic.Unmarshal,
		NewEncoder: func(w io.Writer) Encoder {
			return encoder.NewStreamEncoder(w)
		},
		NewDecoder: func(r io.Reader) Decoder {
			return decoder.NewStreamDecoder(r)
		},
	}
}

func stdjsonIndent(b []byte, prefix, indent string) ([]byte, error) {
	var buf bytes.Buffer
	if err := stdjson.Indent(&buf, b, prefix, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var config = DefaultConfig()

// SetConfig sets the global JSON configuration.
func SetConfig(c Config) { config = c }

// GetConfig returns the current JSON configuration.
func GetConfig() Config { return config }

// Marshal returns the JSON encoding of v.
func Marshal(v any) ([]byte, error) { return config.Marshal(v) }

// MarshalIndent is like Marshal but indents the output for readability.
func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return config.MarshalIndent(v, prefix, indent)
}

// Unmarshal parses JSON-encoded data into v.
func Unmarshal(data []byte, v any) error { return config.Unmarshal(data, v) }

// NewEncoder returns a streaming Encoder that writes to w.
func NewEncoder(w io.Writer) Encoder { return config.NewEncoder(w) }

// NewDecoder returns a streaming Decoder that reads from r.
func NewDecoder(r io.Reader) Decoder { return config.NewDecoder(r) }

// RawMessage delays JSON decoding of a value.
type RawMessage = stdjson.RawMessage
