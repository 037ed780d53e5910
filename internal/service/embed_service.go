package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"graphs/internal/embedding"
	"graphs/internal/sentences"
	"graphs/internal/vectors"
)

// EmbedService turns a sentence file into rows of embedding vectors.
type EmbedService struct {
	splitter *sentences.Splitter
	embedder embedding.Embedder
	logger   *log.Logger
}

// NewEmbedService wires a splitter and an embedder. A nil logger discards output.
func NewEmbedService(splitter *sentences.Splitter, embedder embedding.Embedder, logger *log.Logger) *EmbedService {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &EmbedService{splitter: splitter, embedder: embedder, logger: logger}
}

// EmbedFile reads the sentences in inPath and writes one CSV row per
// sentence to out. It returns the number of rows written.
func (s *EmbedService) EmbedFile(ctx context.Context, inPath string, out io.Writer) (int, error) {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return 0, err
	}
	sents := s.splitter.Split(string(data))
	if len(sents) == 0 {
		return 0, fmt.Errorf("no sentences found in %s", inPath)
	}
	if err := s.embedder.Prepare(sents); err != nil {
		return 0, fmt.Errorf("prepare %s embedder: %w", s.embedder.Name(), err)
	}
	s.logger.Printf("embedding %d sentences from %s with %s", len(sents), inPath, s.embedder.Name())

	w := vectors.NewWriter(out)
	for i, sent := range sents {
		if err := ctx.Err(); err != nil {
			return w.Rows(), err
		}
		vec, err := s.embedder.Embed(ctx, sent)
		if err != nil {
			return w.Rows(), fmt.Errorf("sentence %d: %w", i+1, err)
		}
		if err := w.Write(vec); err != nil {
			return w.Rows(), err
		}
	}
	if err := w.Flush(); err != nil {
		return w.Rows(), err
	}
	s.logger.Printf("wrote %d vectors (dimension %d)", w.Rows(), s.embedder.Dimension())
	return w.Rows(), nil
}

// EmbedToFile is EmbedFile writing to outPath. The output file is removed
// when embedding fails.
func (s *EmbedService) EmbedToFile(ctx context.Context, inPath, outPath string) (n int, err error) {
	f, err := os.Create(outPath)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			err = errors.Join(err, os.Remove(outPath))
		}
	}()
	return s.EmbedFile(ctx, inPath, f)
}
