package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NC1107/CxBlueprint/pkg/cxflow"
	"github.com/NC1107/CxBlueprint/pkg/wire"
)

func writeTestFlow(t *testing.T, dir string) (string, *wire.Document) {
	t.Helper()
	b := cxflow.New("cli-test")
	menu := b.GetInput("Press 1.", 5)
	bye := b.Disconnect()
	menu.When("1", bye).Otherwise(bye)

	doc, _, err := b.Compile()
	require.NoError(t, err)
	data, err := doc.Encode()
	require.NoError(t, err)

	path := filepath.Join(dir, "flow.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path, doc
}

func TestReadDocument_JSON(t *testing.T) {
	path, doc := writeTestFlow(t, t.TempDir())
	got, err := readDocument(path)
	require.NoError(t, err)
	assert.Equal(t, doc.Name, got.Name)
	assert.Len(t, got.Actions, 2)
}

func TestWriteAndReadDocument_ArchiveFormats(t *testing.T) {
	dir := t.TempDir()
	_, doc := writeTestFlow(t, dir)

	tests := []struct {
		name     string
		codec    string
		compress string
	}{
		{"flow.json", "json", "none"},
		{"flow.json.gz", "json", "gzip"},
		{"flow.msgpack", "msgpack", "none"},
		{"flow.msgpack.zst", "msgpack", "zstd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := serializerFor(tt.codec, tt.compress)
			require.NoError(t, err)

			path := filepath.Join(dir, tt.name)
			require.NoError(t, writeDocument(path, doc, s))

			// readDocument picks the right pipeline from the name.
			got, err := readDocument(path)
			require.NoError(t, err)
			assert.Equal(t, doc.Name, got.Name)
			assert.Equal(t, doc.StartAction, got.StartAction)
		})
	}
}

func TestSerializerFor_RejectsUnknownOptions(t *testing.T) {
	_, err := serializerFor("xml", "none")
	assert.Error(t, err)
	_, err = serializerFor("json", "lz4")
	assert.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	path, _ := writeTestFlow(t, t.TempDir())

	cmd := newValidateCmd()
	cmd.SetArgs([]string{path})
	assert.NoError(t, cmd.Execute())
}

func TestValidateCommand_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Name": "x"}`), 0o644))

	cmd := newValidateCmd()
	cmd.SetArgs([]string{path})
	assert.Error(t, cmd.Execute())
}

func TestFmtCommand_NormalizesAndConverts(t *testing.T) {
	dir := t.TempDir()
	path, _ := writeTestFlow(t, dir)
	out := filepath.Join(dir, "flow.msgpack")

	cmd := newFmtCmd()
	cmd.SetArgs([]string{path, "-o", out, "--codec", "msgpack"})
	require.NoError(t, cmd.Execute())

	got, err := readDocument(out)
	require.NoError(t, err)
	assert.Equal(t, "cli-test", got.Name)
}
