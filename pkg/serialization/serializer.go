// Package serialization reads and writes flow documents in interchangeable
// on-disk encodings: plain JSON for files the routing engine consumes, and
// MessagePack with optional compression and AES-GCM encryption for compact
// archives.
package serialization

import (
	"bytes"
	"compress/gzip"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// Codec encodes and decodes a document payload.
type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
	Name() string
}

// Compression selects the compression layer applied after encoding.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
)

// Serializer runs the encode → compress → encrypt pipeline and its inverse.
type Serializer struct {
	codec       Codec
	compression Compression
	key         []byte // AES-256 key, nil disables encryption
}

// Option configures a Serializer.
type Option func(*Serializer)

// WithCodec selects the payload codec. Default is JSON.
func WithCodec(c Codec) Option {
	return func(s *Serializer) { s.codec = c }
}

// WithCompression selects the compression layer. Default is none.
func WithCompression(c Compression) Option {
	return func(s *Serializer) { s.compression = c }
}

// WithEncryptionKey enables AES-GCM encryption with a 32-byte key.
func WithEncryptionKey(key []byte) Option {
	return func(s *Serializer) { s.key = key }
}

// New creates a serializer. Without options it produces plain indented JSON,
// the format the routing engine accepts directly.
func New(opts ...Option) *Serializer {
	s := &Serializer{codec: JSONCodec{}, compression: CompressionNone}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Marshal encodes, compresses and encrypts v.
func (s *Serializer) Marshal(v any) ([]byte, error) {
	data, err := s.codec.Encode(v)
	if err != nil {
		return nil, fmt.Errorf("%s encoding failed: %w", s.codec.Name(), err)
	}
	if data, err = s.compress(data); err != nil {
		return nil, fmt.Errorf("compression failed: %w", err)
	}
	if len(s.key) > 0 {
		if data, err = s.encrypt(data); err != nil {
			return nil, fmt.Errorf("encryption failed: %w", err)
		}
	}
	return data, nil
}

// Unmarshal decrypts, decompresses and decodes data into v.
func (s *Serializer) Unmarshal(data []byte, v any) error {
	var err error
	if len(s.key) > 0 {
		if data, err = s.decrypt(data); err != nil {
			return fmt.Errorf("decryption failed: %w", err)
		}
	}
	if data, err = s.decompress(data); err != nil {
		return fmt.Errorf("decompression failed: %w", err)
	}
	if err = s.codec.Decode(data, v); err != nil {
		return fmt.Errorf("%s decoding failed: %w", s.codec.Name(), err)
	}
	return nil
}

func (s *Serializer) compress(data []byte) ([]byte, error) {
	switch s.compression {
	case CompressionGzip:
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case CompressionZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}
		defer enc.Close()
		return enc.EncodeAll(data, nil), nil
	default:
		return data, nil
	}
}

func (s *Serializer) decompress(data []byte) ([]byte, error) {
	switch s.compression {
	case CompressionGzip:
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	case CompressionZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(data, nil)
	default:
		return data, nil
	}
}

func (s *Serializer) encrypt(data []byte) ([]byte, error) {
	gcm, err := s.gcm()
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, data, nil), nil
}

func (s *Serializer) decrypt(data []byte) ([]byte, error) {
	gcm, err := s.gcm()
	if err != nil {
		return nil, err
	}
	if len(data) < gcm.NonceSize() {
		return nil, fmt.Errorf("ciphertext shorter than nonce")
	}
	nonce, ciphertext := data[:gcm.NonceSize()], data[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, nil)
}

func (s *Serializer) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// JSONCodec encodes documents as indented JSON without HTML escaping,
// matching the compiler's canonical encoding.
type JSONCodec struct{}

func (JSONCodec) Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (JSONCodec) Decode(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (JSONCodec) Name() string { return "json" }

// MsgPackCodec encodes documents as MessagePack for compact archives.
type MsgPackCodec struct{}

func (MsgPackCodec) Encode(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

func (MsgPackCodec) Decode(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}

func (MsgPackCodec) Name() string { return "msgpack" }
