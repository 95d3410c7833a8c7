package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/net/html/charset"
)

// Config holds all application configuration.
type Config struct {
	// Novel pipeline
	NovelPath      string
	ChaptersOutput string
	ChaptersExport string // Exported identifier of the chapter list (default: janeEyreChapters)

	// Vocabulary pipeline
	CET4Path    string
	CET6Path    string
	VocabOutput string

	// Label of the input text encoding, e.g. "utf-8" or "gbk"
	InputEncoding string

	// Database for the generation run ledger; empty disables recording
	DatabasePath string

	// Where download saves books
	BooksDir string

	// Logging
	LogLevel string
}

// Load reads configuration from environment variables.
// It automatically loads .env file if present.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		NovelPath:      getEnv("NOVEL_PATH", "books/jane-eyre.txt"),
		ChaptersOutput: getEnv("CHAPTERS_OUTPUT", "data/janeEyre.ts"),
		ChaptersExport: getEnv("CHAPTERS_EXPORT", "janeEyreChapters"),
		CET4Path:       getEnv("CET4_PATH", "wordlists/CET4_edited.txt"),
		CET6Path:       getEnv("CET6_PATH", "wordlists/CET6_edited.txt"),
		VocabOutput:    getEnv("VOCAB_OUTPUT", "data/mockWords.ts"),
		InputEncoding:  getEnv("INPUT_ENCODING", "utf-8"),
		DatabasePath:   os.Getenv("DATABASE_PATH"),
		BooksDir:       getEnv("BOOKS_DIR", "books"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	// DATABASE_PATH may be set to an empty value on purpose to turn the ledger off
	if _, set := os.LookupEnv("DATABASE_PATH"); !set {
		cfg.DatabasePath = "data/novelcards.db"
	}

	return cfg, nil
}

// Validate checks settings shared by the pipelines that decode input.
func (c *Config) Validate() error {
	return c.validateEncoding()
}

// ValidateForChapters checks configuration needed for the novel pipeline.
func (c *Config) ValidateForChapters() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.NovelPath == "" {
		return fmt.Errorf("NOVEL_PATH is required")
	}
	if c.ChaptersOutput == "" {
		return fmt.Errorf("CHAPTERS_OUTPUT is required")
	}
	if c.ChaptersExport == "" {
		return fmt.Errorf("CHAPTERS_EXPORT is required")
	}
	return nil
}

// ValidateForVocab checks configuration needed for the vocabulary pipeline.
func (c *Config) ValidateForVocab() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.CET4Path == "" {
		return fmt.Errorf("CET4_PATH is required")
	}
	if c.CET6Path == "" {
		return fmt.Errorf("CET6_PATH is required")
	}
	if c.VocabOutput == "" {
		return fmt.Errorf("VOCAB_OUTPUT is required")
	}
	return nil
}

// ValidateForStats checks configuration needed to read the run ledger.
func (c *Config) ValidateForStats() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	return nil
}

func (c *Config) validateEncoding() error {
	if c.InputEncoding == "" {
		return nil
	}
	if enc, _ := charset.Lookup(c.InputEncoding); enc == nil {
		return fmt.Errorf("invalid INPUT_ENCODING: %s", c.InputEncoding)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
