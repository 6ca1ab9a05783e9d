package embeddings

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"os"
	"sort"
	"strings"
	"sync"

	"medichat/medichat/utils/logging"

	"go.uber.org/zap"
)

// Index holds one vector per chunk of the hospital data file. Search is a
// brute-force scan; the corpus is a single text file, not a retrieval index.
type Index struct {
	mu        sync.RWMutex
	dataPath  string
	cachePath string
	embedder  Embedder

	fileHash string
	chunks   []string
	vectors  [][]float32
}

type cacheFile struct {
	FileHash string      `json:"file_hash"`
	Chunks   []string    `json:"chunks"`
	Vectors  [][]float32 `json:"vectors"`
}

func NewIndex(dataPath, cachePath string, embedder Embedder) *Index {
	ix := &Index{dataPath: dataPath, cachePath: cachePath, embedder: embedder}
	ix.loadCache()
	return ix
}

func (ix *Index) loadCache() {
	raw, err := os.ReadFile(ix.cachePath)
	if err != nil {
		return
	}
	var c cacheFile
	if err := json.Unmarshal(raw, &c); err != nil {
		logging.ErrorLogger.Error("embeddings cache parse error", zap.Error(err))
		return
	}
	// Search indexes chunks by vector position, so a mismatched cache is
	// unusable and gets rebuilt on the next Update.
	if len(c.Chunks) != len(c.Vectors) {
		logging.ErrorLogger.Error("embeddings cache mismatch, discarding",
			zap.Int("chunks", len(c.Chunks)), zap.Int("vectors", len(c.Vectors)))
		return
	}
	ix.fileHash = c.FileHash
	ix.chunks = c.Chunks
	ix.vectors = c.Vectors
}

func (ix *Index) saveCache() {
	ix.mu.RLock()
	c := cacheFile{FileHash: ix.fileHash, Chunks: ix.chunks, Vectors: ix.vectors}
	ix.mu.RUnlock()
	raw, err := json.Marshal(c)
	if err == nil {
		err = os.WriteFile(ix.cachePath, raw, 0o644)
	}
	if err != nil {
		logging.ErrorLogger.Error("embeddings cache save error", zap.Error(err))
	}
}

// Update re-embeds the data file when its hash changed. Returns whether an
// update happened.
func (ix *Index) Update(ctx context.Context) (bool, error) {
	raw, err := os.ReadFile(ix.dataPath)
	if err != nil {
		return false, err
	}
	sum := md5.Sum(raw)
	hash := hex.EncodeToString(sum[:])

	ix.mu.RLock()
	unchanged := ix.fileHash == hash && len(ix.vectors) > 0
	ix.mu.RUnlock()
	if unchanged {
		logging.AppLogger.Info("No changes detected, skipping embedding update")
		return false, nil
	}

	var chunks []string
	for _, line := range strings.Split(string(raw), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			chunks = append(chunks, line)
		}
	}
	vectors, err := ix.embedder.Embed(ctx, chunks)
	if err != nil {
		return false, err
	}

	ix.mu.Lock()
	ix.fileHash = hash
	ix.chunks = chunks
	ix.vectors = vectors
	ix.mu.Unlock()
	ix.saveCache()
	logging.AppLogger.Info("Embeddings updated", zap.Int("chunks", len(chunks)))
	return true, nil
}

// Search returns the topK most similar chunks by L2 distance. Errors degrade
// to an empty result set; retrieval failure is never fatal to a query.
func (ix *Index) Search(ctx context.Context, query string, topK int) []string {
	qv, err := ix.embedder.Embed(ctx, []string{query})
	if err != nil || len(qv) == 0 {
		logging.ErrorLogger.Error("query embedding error", zap.Error(err))
		return nil
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()
	type scored struct {
		idx  int
		dist float32
	}
	results := make([]scored, 0, len(ix.vectors))
	for i, v := range ix.vectors {
		results = append(results, scored{i, l2(qv[0], v)})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].dist < results[j].dist })
	if topK > len(results) {
		topK = len(results)
	}
	out := make([]string, 0, topK)
	for _, r := range results[:topK] {
		out = append(out, ix.chunks[r.idx])
	}
	return out
}

func l2(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float32
	for i := 0; i < n; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
