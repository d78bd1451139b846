package source

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/lgbarn/chess-replay-go/internal/errors"
	"github.com/lgbarn/chess-replay-go/internal/testutil"
)

const game = "[Event \"Test\"]\n\n1. e4 e5 *\n"

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func zstdBytes(t *testing.T, s string) []byte {
	t.Helper()
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		t.Fatalf("zstd.NewWriter failed: %v", err)
	}
	defer encoder.Close()
	return encoder.EncodeAll([]byte(s), nil)
}

func gzipBytes(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := io.WriteString(zw, s); err != nil {
		t.Fatalf("gzip write failed: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close failed: %v", err)
	}
	return buf.Bytes()
}

func TestDetect(t *testing.T) {
	tests := []struct {
		path string
		want Compression
	}{
		{"game.pgn", Plain},
		{"game.pgn.zst", Zstd},
		{"GAME.PGN.ZST", Zstd},
		{"game.pgn.zstd", Zstd},
		{"game.pgn.gz", Gzip},
		{"game", Plain},
	}
	for _, tt := range tests {
		if got := Detect(tt.path); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestOpen(t *testing.T) {
	tests := []struct {
		name string
		file string
		data func(*testing.T) []byte
	}{
		{"plain", "game.pgn", func(*testing.T) []byte { return []byte(game) }},
		{"zstd", "game.pgn.zst", func(t *testing.T) []byte { return zstdBytes(t, game) }},
		{"gzip", "game.pgn.gz", func(t *testing.T) []byte { return gzipBytes(t, game) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.data(t))
			rc, err := Open(path)
			if err != nil {
				t.Fatalf("Open(%s) error = %v", tt.file, err)
			}
			defer rc.Close()
			got, err := io.ReadAll(rc)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, string(got), game)
		})
	}
}

func TestOpen_Errors(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.pgn"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Open(missing) error = %v, want not-exist", err)
	}

	path := writeFile(t, "broken.pgn.gz", []byte("not gzip"))
	if _, err := Open(path); err == nil {
		t.Error("Open(broken gzip) should fail")
	}
}
