// Package main is the HomeMatch CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/homematch/homematch/internal/cli"
	"github.com/homematch/homematch/internal/config"
	"github.com/homematch/homematch/internal/export"
	"github.com/homematch/homematch/internal/inventory"
	"github.com/homematch/homematch/internal/matching"
	"github.com/homematch/homematch/internal/models"
	"github.com/homematch/homematch/internal/server"
	"github.com/homematch/homematch/internal/watcher"
	"github.com/homematch/homematch/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/homematch/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used, so that "homematch server" from the project dir uses the
// project's config (including debug). When neither exists, built-in defaults
// apply so the CLI works without any config file.
// Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			cfg := &config.Config{}
			config.ApplyDefaults(cfg)
			return cfg, "", nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "recommend":
		runRecommend()
	case "seed":
		runSeed()
	case "export":
		runExport()
	case "version", "--version", "-v":
		fmt.Printf("homematch version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (scoring detail, seed reloads, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	ctx := context.Background()
	count, err := components.Store.CountListings(ctx)
	if err != nil {
		logger.Fatal("Failed to count listings", zap.Error(err))
	}
	if count == 0 {
		n, seedErr := inventory.Seed(ctx, components.Store, components.Index, cfg.Storage.SeedPath)
		if seedErr != nil {
			logger.Fatal("Failed to seed inventory", zap.Error(seedErr))
		}
		logger.Info("inventory seeded", zap.Int("listings", n))
	}

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	var seedWatcher *watcher.Watcher
	if cfg.Storage.SeedPath != "" {
		store, index := components.Store, components.Index
		watchOpts := []watcher.Option{}
		if debugMode {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		seedWatcher = watcher.NewWatcher(cfg.Storage.SeedPath, func(path string) {
			listings, loadErr := inventory.LoadSeedFile(path)
			if loadErr != nil {
				logger.Warn("seed reload failed", zap.String("path", path), zap.Error(loadErr))
				return
			}
			if replaceErr := store.ReplaceAll(context.Background(), listings); replaceErr != nil {
				logger.Warn("seed replace failed", zap.Error(replaceErr))
				return
			}
			if index != nil {
				if indexErr := index.ReplaceAll(context.Background(), listings); indexErr != nil {
					logger.Warn("seed reindex failed", zap.Error(indexErr))
				}
			}
			logger.Info("inventory reloaded", zap.String("path", path), zap.Int("listings", len(listings)))
		}, watchOpts...)
		if err := seedWatcher.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start seed watcher", zap.Error(err))
		}
	}

	srv := server.NewServer(
		components.Engine,
		components.Store,
		components.Index,
		&cfg.Server,
		&cfg.Matching,
		logger,
	)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	if seedWatcher != nil {
		seedWatcher.Stop()
	}
	watchCancel()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(shutdownCtx)
}

// preferenceFlags registers the four preference text flags on fs.
func preferenceFlags(fs *flag.FlagSet) (budget, area, school, commute *string) {
	budget = fs.String("budget", "", "budget preference text, e.g. \"300-500万\" or \"400万以内\"")
	area = fs.String("area", "", "preferred area text, e.g. \"朝阳区\"")
	school = fs.String("school", "", "preferred school district text")
	commute = fs.String("commute", "", "commute preference text, e.g. \"30分钟\"")
	return budget, area, school, commute
}

func runRecommend() {
	fs := flag.NewFlagSet("recommend", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "", "server URL (empty = direct storage access)")
	topK := fs.Int("top-k", 0, "number of recommendations (0 = config default)")
	prefilter := fs.Bool("prefilter", false, "drop listings violating any stated bound before scoring")
	outputFormat := fs.String("output", "text", "output format: text, compact, or json")
	budget, area, school, commute := preferenceFlags(fs)
	_ = fs.Parse(os.Args[2:])

	format := cli.OutputText
	switch *outputFormat {
	case "json":
		format = cli.OutputJSON
	case "compact":
		format = cli.OutputCompact
	case "text":
		format = cli.OutputText
	default:
		fmt.Printf("Unknown output format %q; use text, compact, or json\n", *outputFormat)
		os.Exit(1)
	}

	pref := models.PreferenceRecord{
		BudgetText:  *budget,
		AreaText:    *area,
		SchoolText:  *school,
		CommuteText: *commute,
	}

	report, err := buildReport(*configPath, *serverURL, pref, *topK, *prefilter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Recommend failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteReport(os.Stdout, report, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runExport() {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "", "server URL (empty = direct storage access)")
	topK := fs.Int("top-k", 0, "number of recommendations (0 = config default)")
	prefilter := fs.Bool("prefilter", false, "drop listings violating any stated bound before scoring")
	outputPath := fs.String("o", "recommendations.xlsx", "output .xlsx path")
	budget, area, school, commute := preferenceFlags(fs)
	_ = fs.Parse(os.Args[2:])

	pref := models.PreferenceRecord{
		BudgetText:  *budget,
		AreaText:    *area,
		SchoolText:  *school,
		CommuteText: *commute,
	}

	report, err := buildReport(*configPath, *serverURL, pref, *topK, *prefilter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
		os.Exit(1)
	}
	if err := export.ExportReport(report, pref, *outputPath); err != nil {
		fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Report written: %s\n", *outputPath)
}

// buildReport produces a summary report either via the HTTP API (when
// serverURL is set, avoiding SQLite/Bleve lock conflicts with a running
// server) or by direct storage access.
func buildReport(configPath, serverURL string, pref models.PreferenceRecord, topK int, prefilter bool) (*models.SummaryReport, error) {
	if serverURL != "" {
		return recommendViaHTTP(serverURL, pref, topK, prefilter)
	}

	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	components, err := initializeComponents(cfg)
	if err != nil {
		return nil, err
	}
	defer components.Close()

	ctx := context.Background()
	count, err := components.Store.CountListings(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		if _, seedErr := inventory.Seed(ctx, components.Store, components.Index, cfg.Storage.SeedPath); seedErr != nil {
			return nil, fmt.Errorf("failed to seed inventory: %w", seedErr)
		}
	}

	listings, err := components.Store.ListListings(ctx, 0, cfg.Matching.MaxTopK*10)
	if err != nil {
		return nil, err
	}
	if prefilter {
		listings = inventory.Filter(listings, components.Engine.Normalize(pref))
	}
	if topK == 0 {
		topK = cfg.Matching.DefaultTopK
	}
	if topK > cfg.Matching.MaxTopK {
		topK = cfg.Matching.MaxTopK
	}
	result := components.Engine.Rank(listings, pref, topK)
	return matching.Summarize(result), nil
}

func recommendViaHTTP(serverURL string, pref models.PreferenceRecord, topK int, prefilter bool) (*models.SummaryReport, error) {
	body, err := json.Marshal(server.RecommendRequest{
		Preference: pref,
		TopK:       topK,
		Prefilter:  prefilter,
	})
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/api/v1/recommendations", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var report models.SummaryReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &report, nil
}

func runSeed() {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	seedFile := fs.String("file", "", "seed JSON file (empty = built-in sample listings)")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	components, err := initializeComponents(cfg)
	if err != nil {
		fmt.Printf("Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer components.Close()

	path := *seedFile
	if path == "" {
		path = cfg.Storage.SeedPath
	}
	n, err := inventory.Seed(context.Background(), components.Store, components.Index, path)
	if err != nil {
		fmt.Printf("Seeding failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Seeded %d listing(s)\n", n)
}

// Components holds initialized services.
type Components struct {
	Store  inventory.Store
	Index  *inventory.KeywordIndex
	Engine *matching.Engine
}

func (c *Components) Close() {
	if c.Store != nil {
		_ = c.Store.Close()
	}
	if c.Index != nil {
		_ = c.Index.Close()
	}
}

func initializeComponents(cfg *config.Config) (*Components, error) {
	store, err := inventory.NewSQLiteStore(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	index, err := inventory.NewKeywordIndex(cfg.Storage.BleveIndexPath)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize keyword index: %w", err)
	}

	engine, err := matching.NewEngine(cfg.Matching.Weights, cfg.Matching.AreaAdjacency, cfg.Matching.SchoolQuality)
	if err != nil {
		_ = store.Close()
		_ = index.Close()
		return nil, fmt.Errorf("failed to initialize matching engine: %w", err)
	}

	return &Components{
		Store:  store,
		Index:  index,
		Engine: engine,
	}, nil
}

func printUsage() {
	fmt.Println(`homematch - Property listing recommendation engine

Usage:
  homematch server [flags]      Start the HTTP server
  homematch recommend [flags]   Rank listings against a preference
  homematch export [flags]      Export a ranked report to .xlsx
  homematch seed [flags]        Load listings into storage
  homematch version             Show version
  homematch help                Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/homematch/config.yaml)
  --debug            Enable debug logging (scoring detail, seed reloads, etc.)

Recommend Flags:
  --config string    Config file path (for direct storage mode)
  --server string    Server URL (empty = direct storage access)
  --budget string    Budget preference text, e.g. "300-500万" or "400万以内"
  --area string      Preferred area text, e.g. "朝阳区"
  --school string    Preferred school district text
  --commute string   Commute preference text, e.g. "30分钟"
  --top-k int        Number of recommendations (0 = config default)
  --prefilter        Drop listings violating any stated bound before scoring
  --output string    Output format: text, compact, or json (default: text)

Export Flags:
  Same as recommend, plus:
  -o string          Output .xlsx path (default: recommendations.xlsx)

Seed Flags:
  --config string    Config file path
  --file string      Seed JSON file (empty = built-in sample listings)

Examples:
  homematch server
  homematch recommend --budget "300-500万" --area 朝阳区 --commute 30分钟
  homematch recommend --output json --top-k 3 --budget "400万以内"
  homematch recommend --server http://localhost:8080 --area 海淀区
  homematch export --budget "300-500万" --area 朝阳区 -o report.xlsx
  homematch seed --file listings.json`)
}
