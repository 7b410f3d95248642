package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jwhittle/stockscout/internal/app"
	"github.com/jwhittle/stockscout/internal/common"
	"github.com/jwhittle/stockscout/internal/models"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default $STOCKSCOUT_CONFIG or config/stockscout.toml)")
	flag.Parse()

	path := *configPath
	if path == "" {
		path = os.Getenv("STOCKSCOUT_CONFIG")
	}
	if path == "" {
		path = "config/stockscout.toml"
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Cancel in-flight analysis on interrupt
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	a, err := app.NewApp(ctx, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	common.PrintBanner(a.Config, a.Logger)

	// Positional args override the configured symbol list
	symbols := flag.Args()
	if len(symbols) == 0 {
		symbols = a.Config.Symbols
	}

	recs, err := a.Advisor.AnalyzeStocks(ctx, symbols)
	if err != nil {
		a.Logger.Error().Err(err).Msg("Batch analysis failed")
		common.PrintShutdownBanner(a.Logger)
		os.Exit(1)
	}

	printRecommendations(recs)

	a.Logger.Info().
		Int("requested", len(symbols)).
		Int("analyzed", len(recs)).
		Msg("Batch analysis complete")

	common.PrintShutdownBanner(a.Logger)
}

// printRecommendations writes the verdicts to stdout, highest confidence first
func printRecommendations(recs []*models.Recommendation) {
	if len(recs) == 0 {
		fmt.Println("No recommendations produced.")
		return
	}

	fmt.Printf("%-12s %-12s %7s %11s %12s\n", "SYMBOL", "ACTION", "SCORE", "CONFIDENCE", "TARGET")
	for _, rec := range recs {
		target := "-"
		if rec.TargetPrice != nil {
			target = fmt.Sprintf("$%.2f", *rec.TargetPrice)
		}
		fmt.Printf("%-12s %-12s %7.2f %11.2f %12s\n", rec.Symbol, rec.Action, rec.Score, rec.Confidence, target)
	}

	fmt.Println()
	for _, rec := range recs {
		fmt.Printf("%s: %s\n\n", rec.Symbol, rec.Reasoning)
	}
}
