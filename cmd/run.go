package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/edubridge/edubridge/internal/app"
	"github.com/edubridge/edubridge/internal/catalog"
	"github.com/edubridge/edubridge/internal/llm"
	"github.com/edubridge/edubridge/internal/store"
	"github.com/edubridge/edubridge/internal/tutor"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cat, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	fileCfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	llmCfg := fileCfg.LLMConfig()
	if llmCfg.Provider == "" || llmCfg.Validate() != nil {
		if discovered, ok := llm.DiscoverConfig(); ok {
			llmCfg = discovered
		}
	}

	opts := app.Options{
		Catalog:   cat,
		Favorites: st.Favorites(),
		Logger:    logger,
	}

	provider, err := llm.NewProvider(ctx, llmCfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "The tutor will answer with offline fallbacks.")
		provider = llm.NewMockProvider()
	}
	images, err := llm.NewImageProviderFor(ctx, llmCfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Image generation unavailable:", err)
		images = nil
	}
	opts.Tutor = tutor.New(provider, images, logger)

	return app.Run(opts)
}
