package textio

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding"
)

func TestReadFile(t *testing.T) {
	t.Run("normalizes line endings", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "novel.txt")
		require.NoError(t, os.WriteFile(path, []byte("CHAPTER I\r\n\r\nReader, I married him.\rEnd"), 0644))

		text, err := ReadFile(path, "utf-8")
		require.NoError(t, err)
		assert.Equal(t, "CHAPTER I\n\nReader, I married him.\nEnd", text)
	})

	t.Run("strips utf-8 bom", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cet4.txt")
		require.NoError(t, os.WriteFile(path, []byte("\xef\xbb\xbfabandon [əˈbændən] vt.丢弃"), 0644))

		text, err := ReadFile(path, "")
		require.NoError(t, err)
		assert.Equal(t, "abandon [əˈbændən] vt.丢弃", text)
	})

	t.Run("decodes named encoding", func(t *testing.T) {
		// "放弃" in GBK
		gbk := []byte{0xb7, 0xc5, 0xc6, 0xfa}
		text, err := Decode(bytes.NewReader(gbk), "gbk")
		require.NoError(t, err)
		assert.Equal(t, "放弃", text)
	})

	t.Run("invalid utf-8 is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "novel.txt")
		require.NoError(t, os.WriteFile(path, []byte("CHAPTER I\n\nbad \xff\xfe byte\n"), 0644))

		_, err := ReadFile(path, "utf-8")
		require.Error(t, err)
		assert.ErrorIs(t, err, encoding.ErrInvalidUTF8)
		assert.Contains(t, err.Error(), "decode utf-8")
	})

	t.Run("truncated utf-8 sequence at end", func(t *testing.T) {
		_, err := Decode(bytes.NewReader([]byte("丢弃\xe4\xb8")), "UTF8")
		assert.ErrorIs(t, err, encoding.ErrInvalidUTF8)
	})

	t.Run("unknown encoding", func(t *testing.T) {
		_, err := Decode(bytes.NewReader(nil), "klingon")
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadFile(filepath.Join(t.TempDir(), "nope.txt"), "utf-8")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestWriteFile(t *testing.T) {
	t.Run("creates directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data", "out.ts")
		require.NoError(t, WriteFile(path, []byte("export const x = 1;\n")))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "export const x = 1;\n", string(got))
	})

	t.Run("overwrites existing content", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "out.ts")
		require.NoError(t, os.WriteFile(path, []byte("a much longer previous body"), 0644))

		require.NoError(t, WriteFile(path, []byte("short")))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "short", string(got))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1, "temp file should not be left behind")
	})
}
