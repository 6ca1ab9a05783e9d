package embeddings

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"medichat/medichat/utils/logging"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logging.InitTestLogger()
	m.Run()
}

// fakeEmbedder maps known texts to fixed vectors and counts calls.
type fakeEmbedder struct {
	vectors map[string][]float32
	calls   int
}

func (f *fakeEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, ok := f.vectors[t]
		if !ok {
			v = []float32{0, 0}
		}
		out[i] = v
	}
	return out, nil
}

func writeData(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "hospital_data.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func Test_Update_Embeds_NonEmpty_Lines(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	dataPath := writeData(t, dir, "visiting hours are 9am-8pm\n\ncafeteria on floor 2\n")
	emb := &fakeEmbedder{vectors: map[string][]float32{
		"visiting hours are 9am-8pm": {1, 0},
		"cafeteria on floor 2":       {0, 1},
	}}
	ix := NewIndex(dataPath, filepath.Join(dir, "cache.json"), emb)

	updated, err := ix.Update(context.Background())

	req.NoError(err)
	req.True(updated)
	req.Len(ix.chunks, 2)
}

func Test_Update_Skips_When_Hash_Unchanged(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	dataPath := writeData(t, dir, "one line of data\n")
	emb := &fakeEmbedder{vectors: map[string][]float32{"one line of data": {1, 1}}}
	ix := NewIndex(dataPath, filepath.Join(dir, "cache.json"), emb)

	updated, err := ix.Update(context.Background())
	req.NoError(err)
	req.True(updated)

	updated, err = ix.Update(context.Background())
	req.NoError(err)
	req.False(updated)
	req.Equal(1, emb.calls)
}

func Test_Cache_Survives_Restart(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	dataPath := writeData(t, dir, "one line of data\n")
	cachePath := filepath.Join(dir, "cache.json")
	emb := &fakeEmbedder{vectors: map[string][]float32{"one line of data": {1, 1}}}

	ix := NewIndex(dataPath, cachePath, emb)
	_, err := ix.Update(context.Background())
	req.NoError(err)

	// a fresh index reads the cache and needs no re-embedding
	emb2 := &fakeEmbedder{vectors: emb.vectors}
	ix2 := NewIndex(dataPath, cachePath, emb2)
	updated, err := ix2.Update(context.Background())
	req.NoError(err)
	req.False(updated)
	req.Zero(emb2.calls)
}

func Test_Search_Ranks_By_Distance(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	dataPath := writeData(t, dir, "visiting hours are 9am-8pm\ncafeteria on floor 2\nparking garage on level B1\n")
	emb := &fakeEmbedder{vectors: map[string][]float32{
		"visiting hours are 9am-8pm": {1, 0},
		"cafeteria on floor 2":       {0, 1},
		"parking garage on level B1": {0.9, 0.1},
		"when can I visit?":          {1, 0.05},
	}}
	ix := NewIndex(dataPath, filepath.Join(dir, "cache.json"), emb)
	_, err := ix.Update(context.Background())
	req.NoError(err)

	results := ix.Search(context.Background(), "when can I visit?", 2)

	req.Len(results, 2)
	req.Equal("visiting hours are 9am-8pm", results[0])
	req.Equal("parking garage on level B1", results[1])
}

func Test_Search_TopK_Larger_Than_Corpus(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	dataPath := writeData(t, dir, "only line\n")
	emb := &fakeEmbedder{vectors: map[string][]float32{"only line": {1, 0}}}
	ix := NewIndex(dataPath, filepath.Join(dir, "cache.json"), emb)
	_, err := ix.Update(context.Background())
	req.NoError(err)

	req.Len(ix.Search(context.Background(), "anything", 5), 1)
}

func Test_Mismatched_Cache_Is_Discarded(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	dataPath := writeData(t, dir, "one line of data\n")
	cachePath := filepath.Join(dir, "cache.json")
	// more vectors than chunks, as an interrupted rewrite could leave behind
	require.NoError(t, os.WriteFile(cachePath,
		[]byte(`{"file_hash":"abc","chunks":["one line of data"],"vectors":[[1,0],[0,1]]}`), 0o644))
	emb := &fakeEmbedder{vectors: map[string][]float32{"one line of data": {1, 1}}}
	ix := NewIndex(dataPath, cachePath, emb)

	// searching against the bad cache degrades to empty, never panics
	req.Empty(ix.Search(context.Background(), "one line of data", 2))

	// and the next update rebuilds from scratch
	updated, err := ix.Update(context.Background())
	req.NoError(err)
	req.True(updated)
	req.Len(ix.Search(context.Background(), "one line of data", 2), 1)
}

func Test_Update_Missing_Data_File_Fails(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	ix := NewIndex(filepath.Join(dir, "missing.txt"), filepath.Join(dir, "cache.json"), &fakeEmbedder{})

	_, err := ix.Update(context.Background())
	req.Error(err)
}
