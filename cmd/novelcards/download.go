package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/abdulachik/novelcards/internal/config"
	"github.com/abdulachik/novelcards/internal/textio"
	"github.com/spf13/cobra"
)

// Book is a novel to download.
type Book struct {
	Filename string
	Title    string
	URL      string
}

var janeEyre = Book{
	Filename: "jane-eyre.txt",
	Title:    "Jane Eyre",
	URL:      "https://www.gutenberg.org/cache/epub/1260/pg1260.txt",
}

var (
	downloadForce bool
	booksDir      string
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download Jane Eyre from Project Gutenberg",
	Long: `Download the plain-text edition of Jane Eyre from Project Gutenberg
into the books directory, where the chapters command expects it.`,
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().BoolVarP(&downloadForce, "force", "f", false, "Re-download even if file exists")
	downloadCmd.Flags().StringVar(&booksDir, "dir", "", "Directory to save books (default BOOKS_DIR)")
	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	dir := cfg.BooksDir
	if booksDir != "" {
		dir = booksDir
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create books directory: %w", err)
	}

	path := filepath.Join(dir, janeEyre.Filename)
	if !downloadForce {
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("  ✓ %s (already downloaded)\n", janeEyre.Title)
			return nil
		}
	}

	client := &http.Client{
		Timeout: 60 * time.Second,
	}

	fmt.Printf("  ↓ Downloading %s...", janeEyre.Title)
	if err := downloadFile(cmd.Context(), client, janeEyre.URL, path); err != nil {
		fmt.Println(" ERROR")
		slog.Error("failed to download book", "title", janeEyre.Title, "error", err)
		return fmt.Errorf("download %s: %w", janeEyre.Title, err)
	}
	fmt.Println(" done")
	fmt.Printf("Saved to: %s\n", path)

	return nil
}

func downloadFile(ctx context.Context, client *http.Client, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	return textio.WriteFile(path, body)
}
