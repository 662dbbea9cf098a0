/*
Package cli implements the codecoach command-line interface.

Each command constructs the component stack it needs from the shared app
builder: config, feedback store, knowledge catalog, retrieval indexes, the
Ollama client, and the solve pipeline.
*/
package cli

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/vuhm/codecoach/internal/config"
	"github.com/vuhm/codecoach/internal/knowledge"
	"github.com/vuhm/codecoach/internal/learning"
	"github.com/vuhm/codecoach/internal/llm"
	"github.com/vuhm/codecoach/internal/reasoner"
	"github.com/vuhm/codecoach/internal/retrieval"
	"github.com/vuhm/codecoach/internal/storage"
)

// app is the assembled component stack behind every command.
type app struct {
	cfg       *config.Config
	store     *storage.SQLiteStore
	catalog   *knowledge.Catalog
	client    *llm.OllamaClient
	retriever *retrieval.Retriever
	keyword   *retrieval.KeywordIndex
	hybrid    *retrieval.Hybrid
	coach     *reasoner.Reasoner
	tracker   *learning.Tracker
}

// newApp builds the full stack. The knowledge index is loaded from disk or
// rebuilt when missing; an unreachable embedder leaves retrieval empty but
// everything else working.
func newApp(ctx context.Context) (*app, error) {
	configPath, err := config.DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir, err = config.DefaultDataDir()
		if err != nil {
			return nil, err
		}
	}

	store, err := storage.Open(filepath.Join(dataDir, "feedback.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open feedback store: %w", err)
	}

	catalog := knowledge.NewCatalog(dataDir)
	if err := catalog.Load(); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to load knowledge catalog: %w", err)
	}

	client := llm.NewOllamaClient(llm.OllamaConfig{
		BaseURL:    cfg.Ollama.BaseURL,
		ChatModel:  cfg.Ollama.ChatModel,
		EmbedModel: cfg.Ollama.EmbedModel,
	})

	retriever := retrieval.NewRetriever(client, dataDir, cfg.Retrieval.Dimension)
	if err := retriever.LoadOrBuild(ctx, catalog); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to prepare knowledge index: %w", err)
	}

	keyword, err := retrieval.NewKeywordIndex()
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to create keyword index: %w", err)
	}
	if err := keyword.IndexEntries(catalog.Items("")); err != nil {
		log.Printf("Warning: keyword indexing failed, keyword search disabled: %v", err)
	}

	hybrid := retrieval.NewHybrid(retriever, keyword)
	hybrid.Config = retrieval.FusionConfig{
		SemanticWeight: cfg.Retrieval.SemanticWeight,
		KeywordWeight:  cfg.Retrieval.KeywordWeight,
	}

	coach := reasoner.New(client, retriever, store)
	if cfg.Retrieval.TopK > 0 {
		coach.TopK = cfg.Retrieval.TopK
	}

	var tracker *learning.Tracker
	if cfg.Analytics.Enabled {
		tracker = learning.NewTracker(store)
	}

	return &app{
		cfg:       cfg,
		store:     store,
		catalog:   catalog,
		client:    client,
		retriever: retriever,
		keyword:   keyword,
		hybrid:    hybrid,
		coach:     coach,
		tracker:   tracker,
	}, nil
}

// Close releases the stack in reverse dependency order.
func (a *app) Close() {
	if a.tracker != nil {
		a.tracker.Stop()
	}
	if a.keyword != nil {
		if err := a.keyword.Close(); err != nil {
			log.Printf("Warning: closing keyword index: %v", err)
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			log.Printf("Warning: closing feedback store: %v", err)
		}
	}
}
