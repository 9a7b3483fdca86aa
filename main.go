package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"pitchdeck/internal/ai"
	"pitchdeck/internal/config"
	mcpserver "pitchdeck/internal/mcp"
	"pitchdeck/internal/server"
	"pitchdeck/internal/service"
	"pitchdeck/internal/storage"
	"pitchdeck/internal/theme"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to JSON config file")
		addr       = flag.String("addr", "", "HTTP listen address (overrides config)")
		mcpMode    = flag.Bool("mcp", false, "serve MCP over stdio instead of HTTP")
	)
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("load .env: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	if err := run(cfg, *mcpMode); err != nil {
		log.Fatal(err)
	}
}

func run(cfg *config.Config, mcpMode bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := storage.New(cfg.DBPath(), cfg.DataDir)
	if err != nil {
		return err
	}
	defer db.Close()

	blockStore := storage.NewBlockStore(db)
	deckStore := storage.NewDeckStore(db, blockStore)
	snapshotStore := storage.NewSnapshotStore(db)

	var client ai.Client
	if cfg.OpenAI.APIKey != "" {
		client, err = ai.NewOpenAIClient(&cfg.OpenAI)
		if err != nil {
			return err
		}
	} else {
		log.Println("no OPENAI_API_KEY set, using canned AI responses")
		client = &ai.Mock{}
	}

	themes := theme.NewRegistry(cfg.ThemesDir)
	if err := themes.Watch(ctx); err != nil {
		log.Printf("theme watch: %v", err)
	}
	defer themes.Close()

	guard := service.NewGenGuard()
	emitter := service.LogEmitter{}

	blocks := service.NewBlockService(blockStore, deckStore, guard, emitter)
	decks := service.NewDeckService(deckStore, blockStore, themes, guard, emitter)
	generation := service.NewGenerationService(client, deckStore, blocks, guard, emitter)
	suggestions := service.NewSuggestionService(client, deckStore, guard, emitter)
	analysis := service.NewAnalysisService(client, deckStore, snapshotStore, emitter)
	export := service.NewExportService(deckStore, blocks)
	importer := service.NewImportService(blocks)

	if err := decks.StartAutosave(ctx, cfg.AutosaveCron); err != nil {
		return err
	}
	defer decks.StopAutosave()

	if mcpMode {
		return mcpserver.New(mcpserver.Deps{
			Decks:       decks,
			Blocks:      blocks,
			Generation:  generation,
			Suggestions: suggestions,
			Analysis:    analysis,
			Export:      export,
		}).ServeStdio()
	}

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: server.New(cfg, decks, blocks, generation, suggestions, analysis, export, importer, themes).Handler(),
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("listening on %s", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
