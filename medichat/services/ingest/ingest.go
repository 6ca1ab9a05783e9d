// Package ingest turns source documents into the line-oriented hospital data
// file the embeddings index consumes.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"medichat/medichat/utils/logging"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

const (
	chunkSize    = 1000
	chunkOverlap = 200
)

// SplitText splits on newlines and re-packs the pieces into chunks of at
// most chunkSize characters with chunkOverlap carried between neighbors.
func SplitText(text string) []string {
	var parts []string
	for _, p := range strings.Split(text, "\n") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}

	var chunks []string
	var current string
	for _, p := range parts {
		if current == "" {
			current = p
			continue
		}
		if len(current)+1+len(p) <= chunkSize {
			current = current + "\n" + p
			continue
		}
		chunks = append(chunks, current)
		// keep the tail of the previous chunk as overlap
		tail := current
		if len(tail) > chunkOverlap {
			tail = tail[len(tail)-chunkOverlap:]
		}
		current = tail + "\n" + p
	}
	if current != "" {
		chunks = append(chunks, current)
	}
	return chunks
}

// ExtractHTMLText pulls visible text out of an HTML document.
func ExtractHTMLText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	doc.Find("script, style").Remove()
	var lines []string
	for _, line := range strings.Split(doc.Text(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n"), nil
}

// LoadDir reads every .txt, .md and .html file in a folder and returns one
// text per document.
func LoadDir(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, err
	}
	var docs []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".txt" && ext != ".md" && ext != ".html" {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(folder, e.Name()))
		if err != nil {
			logging.ErrorLogger.Error("document read error", zap.String("file", e.Name()), zap.Error(err))
			continue
		}
		text := string(raw)
		if ext == ".html" {
			if text, err = ExtractHTMLText(text); err != nil {
				logging.ErrorLogger.Error("html extract error", zap.String("file", e.Name()), zap.Error(err))
				continue
			}
		}
		docs = append(docs, text)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no ingestable documents in %s", folder)
	}
	return docs, nil
}

// Run loads a document folder, splits everything into chunks, and writes the
// data file the index embeds on next update.
func Run(folder, outPath string) (int, error) {
	docs, err := LoadDir(folder)
	if err != nil {
		return 0, err
	}
	return writeChunks(docs, outPath)
}

func writeChunks(docs []string, outPath string) (int, error) {
	var chunks []string
	for _, doc := range docs {
		chunks = append(chunks, SplitText(doc)...)
	}
	flat := make([]string, len(chunks))
	for i, c := range chunks {
		// the data file is line-oriented, one chunk per line
		flat[i] = strings.ReplaceAll(c, "\n", " ")
	}
	if err := os.WriteFile(outPath, []byte(strings.Join(flat, "\n")+"\n"), 0o644); err != nil {
		return 0, err
	}
	return len(chunks), nil
}
