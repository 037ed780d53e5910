package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphs/internal/embedding/tfidf"
	"graphs/internal/sentences"
)

type fakeEmbedder struct {
	prepared []string
	failOn   string
}

func (f *fakeEmbedder) Name() string { return "fake" }

func (f *fakeEmbedder) Prepare(corpus []string) error {
	f.prepared = corpus
	return nil
}

func (f *fakeEmbedder) Dimension() int { return 2 }

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	if text == f.failOn {
		return nil, errors.New("boom")
	}
	return []float64{float64(len(text)), 0.5}, nil
}

func writeSentences(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sentences.txt")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestEmbedFile_OneRowPerSentence(t *testing.T) {
	split, err := sentences.NewSplitter(sentences.ModeLines)
	require.NoError(t, err)
	emb := &fakeEmbedder{}
	svc := NewEmbedService(split, emb, nil)

	var out bytes.Buffer
	n, err := svc.EmbedFile(context.Background(), writeSentences(t, "abc\n\n  hello  \n"), &out)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"abc", "hello"}, emb.prepared)
	assert.Equal(t, "3,0.5\n5,0.5\n", out.String())
}

func TestEmbedFile_TFIDF(t *testing.T) {
	split, err := sentences.NewSplitter(sentences.ModeLines)
	require.NoError(t, err)
	svc := NewEmbedService(split, tfidf.NewEmbedder(), nil)

	var out bytes.Buffer
	n, err := svc.EmbedFile(context.Background(), writeSentences(t, "guards patrol walls\nthieves climb walls\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	rows, err := csv.NewReader(strings.NewReader(out.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// guards patrol walls thieves climb
	assert.Len(t, rows[0], 5)
	assert.Len(t, rows[1], 5)
}

func TestEmbedFile_Errors(t *testing.T) {
	split, err := sentences.NewSplitter(sentences.ModeLines)
	require.NoError(t, err)

	svc := NewEmbedService(split, &fakeEmbedder{}, nil)
	_, err = svc.EmbedFile(context.Background(), filepath.Join(t.TempDir(), "missing.txt"), &bytes.Buffer{})
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = svc.EmbedFile(context.Background(), writeSentences(t, "\n \n"), &bytes.Buffer{})
	assert.ErrorContains(t, err, "no sentences")

	svc = NewEmbedService(split, &fakeEmbedder{failOn: "two"}, nil)
	n, err := svc.EmbedFile(context.Background(), writeSentences(t, "one\ntwo\nthree"), &bytes.Buffer{})
	assert.ErrorContains(t, err, "sentence 2: boom")
	assert.Equal(t, 1, n)
}

func TestEmbedToFile_RemovesOutputOnFailure(t *testing.T) {
	split, err := sentences.NewSplitter(sentences.ModeLines)
	require.NoError(t, err)
	dir := t.TempDir()

	svc := NewEmbedService(split, &fakeEmbedder{failOn: "bad"}, nil)
	outPath := filepath.Join(dir, "vectors.csv")
	_, err = svc.EmbedToFile(context.Background(), writeSentences(t, "bad"), outPath)
	require.Error(t, err)
	_, statErr := os.Stat(outPath)
	assert.True(t, os.IsNotExist(statErr))

	svc = NewEmbedService(split, &fakeEmbedder{}, nil)
	n, err := svc.EmbedToFile(context.Background(), writeSentences(t, "good"), outPath)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "4,0.5\n", string(data))
}
