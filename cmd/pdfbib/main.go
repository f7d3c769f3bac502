package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"pdfbib/internal/app"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// A .env beside the binary may carry the Crossref contact.
	_ = godotenv.Load()

	var (
		inputDir        string
		outputDir       string
		mailto          string
		crossrefBase    string
		delay           time.Duration
		timeout         time.Duration
		threshold       float64
		titleAutoAccept bool
		titleMinLen     int
		titleRows       int
		firstPages      int
		configPath      string
		verbose         bool
	)

	flag.StringVar(&inputDir, "input", os.Getenv("PDFBIB_INPUT"), "Folder containing PDF files (non-recursive)")
	flag.StringVar(&outputDir, "out.dir", "", "Directory for output files (default: current directory)")
	flag.StringVar(&mailto, "crossref.mailto", os.Getenv("CROSSREF_MAILTO"), "Contact email sent to Crossref (polite pool)")
	flag.StringVar(&crossrefBase, "crossref.base", "", "Crossref API base URL override")
	flag.DurationVar(&delay, "delay", time.Second, "Minimum delay between Crossref requests")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "Per-request Crossref timeout")
	flag.Float64Var(&threshold, "sim.threshold", 0.55, "Title similarity threshold for low-trust acceptance")
	flag.BoolVar(&titleAutoAccept, "title.autoAccept", false, "Auto-accept title-search matches passing the guards (default: manual review)")
	flag.IntVar(&titleMinLen, "title.minLen", 30, "Minimum candidate-title length for title-search auto-accept")
	flag.IntVar(&titleRows, "title.rows", 5, "Result rows requested from title searches")
	flag.IntVar(&firstPages, "pages.first", 3, "Number of leading pages scanned first")
	flag.StringVar(&configPath, "config", "", "Optional YAML or JSON config file")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// A bare positional argument also names the input folder, matching
	// the obvious `pdfbib ./papers` invocation.
	if inputDir == "" && flag.NArg() > 0 {
		inputDir = flag.Arg(0)
	}

	cfg := app.Config{
		InputDir:            inputDir,
		OutputDir:           outputDir,
		Mailto:              mailto,
		CrossrefBaseURL:     crossrefBase,
		Delay:               delay,
		Timeout:             timeout,
		SimilarityThreshold: threshold,
		TitleAutoAccept:     titleAutoAccept,
		TitleMinLen:         titleMinLen,
		TitleRows:           titleRows,
		FirstPages:          firstPages,
		Verbose:             verbose,
	}
	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("path", configPath).Msg("config file")
			os.Exit(1)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	if cfg.Mailto == "" {
		log.Warn().Msg("no crossref.mailto configured; requests will not join the polite pool")
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func run(cfg app.Config) error {
	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	summary, err := a.Run(context.Background())
	if err != nil {
		return err
	}
	fmt.Println(renderSummary(summary))
	return nil
}
