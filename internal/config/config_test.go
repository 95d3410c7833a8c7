package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env and restore after test
	origEnv := os.Environ()
	t.Cleanup(func() {
		os.Clearenv()
		for _, e := range origEnv {
			for i := 0; i < len(e); i++ {
				if e[i] == '=' {
					os.Setenv(e[:i], e[i+1:])
					break
				}
			}
		}
	})

	t.Run("defaults", func(t *testing.T) {
		os.Clearenv()
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "books/jane-eyre.txt", cfg.NovelPath)
		assert.Equal(t, "data/janeEyre.ts", cfg.ChaptersOutput)
		assert.Equal(t, "janeEyreChapters", cfg.ChaptersExport)
		assert.Equal(t, "wordlists/CET4_edited.txt", cfg.CET4Path)
		assert.Equal(t, "wordlists/CET6_edited.txt", cfg.CET6Path)
		assert.Equal(t, "data/mockWords.ts", cfg.VocabOutput)
		assert.Equal(t, "utf-8", cfg.InputEncoding)
		assert.Equal(t, "data/novelcards.db", cfg.DatabasePath)
		assert.Equal(t, "books", cfg.BooksDir)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("custom values", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("NOVEL_PATH", "/tmp/novel.txt")
		os.Setenv("VOCAB_OUTPUT", "/tmp/words.ts")
		os.Setenv("INPUT_ENCODING", "gbk")
		os.Setenv("DATABASE_PATH", "/custom/path.db")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "/tmp/novel.txt", cfg.NovelPath)
		assert.Equal(t, "/tmp/words.ts", cfg.VocabOutput)
		assert.Equal(t, "gbk", cfg.InputEncoding)
		assert.Equal(t, "/custom/path.db", cfg.DatabasePath)
	})

	t.Run("empty database path disables ledger", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("DATABASE_PATH", "")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Empty(t, cfg.DatabasePath)
	})

	t.Run("invalid encoding is left to the pipelines", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("INPUT_ENCODING", "not-a-charset")

		cfg, err := Load()
		require.NoError(t, err)
		assert.NoError(t, cfg.ValidateForStats())

		err = cfg.ValidateForChapters()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "INPUT_ENCODING")
	})
}

func TestConfig_ValidateForChapters(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cfg := &Config{
			NovelPath:      "novel.txt",
			ChaptersOutput: "out.ts",
			ChaptersExport: "chapters",
		}
		assert.NoError(t, cfg.ValidateForChapters())
	})

	t.Run("missing novel path", func(t *testing.T) {
		cfg := &Config{ChaptersOutput: "out.ts", ChaptersExport: "chapters"}
		err := cfg.ValidateForChapters()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "NOVEL_PATH")
	})

	t.Run("missing export name", func(t *testing.T) {
		cfg := &Config{NovelPath: "novel.txt", ChaptersOutput: "out.ts"}
		err := cfg.ValidateForChapters()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "CHAPTERS_EXPORT")
	})
}

func TestConfig_ValidateForVocab(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cfg := &Config{
			CET4Path:    "cet4.txt",
			CET6Path:    "cet6.txt",
			VocabOutput: "words.ts",
		}
		assert.NoError(t, cfg.ValidateForVocab())
	})

	t.Run("missing cet6 path", func(t *testing.T) {
		cfg := &Config{CET4Path: "cet4.txt", VocabOutput: "words.ts"}
		err := cfg.ValidateForVocab()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "CET6_PATH")
	})

	t.Run("bad encoding", func(t *testing.T) {
		cfg := &Config{
			CET4Path:      "cet4.txt",
			CET6Path:      "cet6.txt",
			VocabOutput:   "words.ts",
			InputEncoding: "klingon",
		}
		err := cfg.ValidateForVocab()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "INPUT_ENCODING")
	})
}

func TestConfig_ValidateForStats(t *testing.T) {
	assert.NoError(t, (&Config{DatabasePath: "test.db"}).ValidateForStats())

	err := (&Config{}).ValidateForStats()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_PATH")
}
