package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"graphs/internal/config"
	"graphs/internal/embedding"
	"graphs/internal/embedding/openai"
	"graphs/internal/embedding/tfidf"
	"graphs/internal/sentences"
	"graphs/internal/service"
)

type embedFlags struct {
	configPath string
	out        string
	split      string
}

func main() {
	for _, envFile := range []string{".env", "../../.env"} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	var flags embedFlags
	rootCmd := &cobra.Command{
		Use:   "embed [flags] <sentences.txt>",
		Short: "Write one embedding vector per sentence as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEmbed(cmd.Context(), flags, args[0])
		},
	}
	rootCmd.Flags().StringVar(&flags.configPath, "config", "", "Path to YAML config file (optional; uses ~/.config/graphs/config.yaml if not provided)")
	rootCmd.Flags().StringVarP(&flags.out, "out", "o", "", "CSV output path (default from config)")
	rootCmd.Flags().StringVar(&flags.split, "split", "", "Sentence split mode: lines or sentences (default from config)")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func runEmbed(ctx context.Context, flags embedFlags, input string) error {
	var cfg *config.AppConfig
	var err error
	if flags.configPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(flags.configPath)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger := log.New(os.Stderr, "[embed] ", log.LstdFlags|log.Lmicroseconds)

	emb, err := newEmbedder(cfg.Embedder)
	if err != nil {
		return err
	}

	mode := flags.split
	if mode == "" {
		mode = cfg.Sentences.Split
	}
	split, err := sentences.NewSplitter(mode)
	if err != nil {
		return err
	}

	out := flags.out
	if out == "" {
		out = cfg.Sentences.Output
	}
	svc := service.NewEmbedService(split, emb, logger)
	n, err := svc.EmbedToFile(ctx, input, out)
	if err != nil {
		return fmt.Errorf("embed %s: %w", input, err)
	}
	fmt.Printf("Wrote %d vectors to %s\n", n, out)
	return nil
}

func newEmbedder(cfg config.EmbedderConfig) (embedding.Embedder, error) {
	switch cfg.Type {
	case "tfidf", "":
		return tfidf.NewEmbedder(), nil
	case "openai":
		if cfg.OpenAI == nil {
			return nil, fmt.Errorf("openai embedder config missing")
		}
		client, err := openai.NewClient(openai.Config{
			BaseURL:    cfg.OpenAI.BaseURL,
			APIKeyEnv:  cfg.OpenAI.APIKeyEnv,
			Model:      cfg.OpenAI.Model,
			Timeout:    time.Duration(cfg.OpenAI.TimeoutSecs) * time.Second,
			MaxRetries: cfg.OpenAI.MaxRetries,
		})
		if err != nil {
			return nil, fmt.Errorf("openai embedder init failed: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown embedder: %s", cfg.Type)
	}
}
