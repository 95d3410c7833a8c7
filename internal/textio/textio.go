// Package textio reads whole input text files and writes whole generated files.
package textio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html/charset"
	xencoding "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultEncoding is used when no encoding label is given.
const DefaultEncoding = "utf-8"

// ReadFile reads the whole file at path, decodes it from the named
// encoding and returns it with LF line endings. A leading byte order mark
// is dropped and overrides the named encoding. Invalid UTF-8 input is an
// error wrapping encoding.ErrInvalidUTF8.
func ReadFile(path, encoding string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	return Decode(file, encoding)
}

// Decode reads r to the end and decodes it like ReadFile.
func Decode(r io.Reader, encoding string) (string, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}

	enc, name := charset.Lookup(encoding)
	if enc == nil {
		return "", fmt.Errorf("unknown encoding: %s", encoding)
	}

	// The WHATWG UTF-8 decoder substitutes U+FFFD for bad bytes; reject them instead
	var t transform.Transformer = unicode.BOMOverride(enc.NewDecoder())
	if name == "utf-8" {
		t = transform.Chain(xencoding.UTF8Validator, t)
	}

	decoded := transform.NewReader(r, t)
	data, err := io.ReadAll(decoded)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", encoding, err)
	}

	return NormalizeNewlines(string(data)), nil
}

// NormalizeNewlines converts CRLF and lone CR line endings to LF.
func NormalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// WriteFile replaces the file at path with content. The data goes to a
// temporary file in the same directory first, so readers never observe a
// half-written file.
func WriteFile(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
