package ingest

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// fallbackEncodings is tried in order until one decodes the file without
// replacement characters. Latin-1 accepts any byte sequence, so it
// terminates the chain.
var fallbackEncodings = []struct {
	name string
	enc  encoding.Encoding
}{
	{"windows-1252", charmap.Windows1252},
	{"latin-1", charmap.ISO8859_1},
}

// ReadLines reads a pipe-delimited sales file, skipping the header row and
// blank lines. Encodings are attempted in a fixed fallback order; a missing
// file is reported immediately without any fallback attempt.
func ReadLines(ctx context.Context, path string) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sales file %q: %w", path, err)
	}

	text, encName, err := decode(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode sales file %q: %w", path, err)
	}
	logger.Debug().Str("encoding", encName).Str("path", path).Msg("sales file decoded")

	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if first {
			first = false
			continue
		}
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan sales file %q: %w", path, err)
	}

	logger.Info().Int("lines", len(lines)).Str("encoding", encName).Msg("sales file read")
	return lines, nil
}

func decode(raw []byte) (string, string, error) {
	if utf8.Valid(raw) {
		return string(raw), "utf-8", nil
	}
	for _, fe := range fallbackEncodings {
		decoded, err := fe.enc.NewDecoder().Bytes(raw)
		if err != nil {
			continue
		}
		if bytes.ContainsRune(decoded, utf8.RuneError) {
			continue
		}
		return string(decoded), fe.name, nil
	}
	return "", "", fmt.Errorf("no fallback encoding decoded the file")
}
