package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/NC1107/CxBlueprint/pkg/serialization"
	"github.com/NC1107/CxBlueprint/pkg/wire"
)

// serializerFor builds a serializer from the shared --codec/--compress flag
// values.
func serializerFor(codec, compress string) (*serialization.Serializer, error) {
	var opts []serialization.Option
	switch codec {
	case "json":
	case "msgpack":
		opts = append(opts, serialization.WithCodec(serialization.MsgPackCodec{}))
	default:
		return nil, fmt.Errorf("unknown codec %q (want json or msgpack)", codec)
	}
	switch compress {
	case "none":
	case "gzip":
		opts = append(opts, serialization.WithCompression(serialization.CompressionGzip))
	case "zstd":
		opts = append(opts, serialization.WithCompression(serialization.CompressionZstd))
	default:
		return nil, fmt.Errorf("unknown compression %q (want none, gzip or zstd)", compress)
	}
	return serialization.New(opts...), nil
}

// serializerForPath guesses the on-disk encoding from the file name:
// .msgpack selects the MessagePack codec, a trailing .gz or .zst adds the
// matching compression layer.
func serializerForPath(path string) *serialization.Serializer {
	var opts []serialization.Option
	switch {
	case strings.HasSuffix(path, ".gz"):
		opts = append(opts, serialization.WithCompression(serialization.CompressionGzip))
		path = strings.TrimSuffix(path, ".gz")
	case strings.HasSuffix(path, ".zst"):
		opts = append(opts, serialization.WithCompression(serialization.CompressionZstd))
		path = strings.TrimSuffix(path, ".zst")
	}
	if strings.HasSuffix(path, ".msgpack") {
		opts = append(opts, serialization.WithCodec(serialization.MsgPackCodec{}))
	}
	return serialization.New(opts...)
}

// readDocument loads and parses a flow document from path.
func readDocument(path string) (*wire.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := serializerForPath(path)
	var doc wire.Document
	if err := s.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &doc, nil
}

// writeDocument writes a flow document to path using the given serializer.
func writeDocument(path string, doc *wire.Document, s *serialization.Serializer) error {
	data, err := s.Marshal(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
