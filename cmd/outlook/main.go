// Package main is the huntcast-outlook CLI. It prints a multi-day hunting
// outlook for a location to stdout, using the same engine and weather
// provider as the API server.
//
// Usage:
//
//	huntcast-outlook [-days N] [-location NAME]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"huntcast/internal/config"
	"huntcast/internal/engine"
	"huntcast/internal/outlook"
	"huntcast/internal/profile"
	"huntcast/internal/weather"
)

func main() {
	days := flag.Int("days", outlook.DefaultDays, "outlook horizon in days (1-7)")
	location := flag.String("location", "Colebrook", "location name to score against")
	flag.Parse()

	if err := run(*days, *location); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(days int, location string) error {
	cfg, params, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	eng, err := engine.New(params, profile.Builtin())
	if err != nil {
		return fmt.Errorf("building scoring engine: %w", err)
	}

	client := weather.NewClient(cfg.Weather)
	service := outlook.NewService(eng, client, cfg.Weather.Latitude, cfg.Weather.Longitude)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := service.Build(ctx, location, days)
	if err != nil {
		return fmt.Errorf("building outlook: %w", err)
	}

	printOutlook(result)
	return nil
}

func printOutlook(o *outlook.Outlook) {
	fmt.Printf("Hunting outlook for %s (generated %s)\n\n",
		o.Location, o.GeneratedAt.Format("2006-01-02 15:04 MST"))

	for _, day := range o.Days {
		fmt.Printf("%s  [%s]  %.0f-%.0f F, wind %.0f mph, %s\n",
			day.Date, day.Rating,
			day.Weather.TempMinF, day.Weather.TempMaxF,
			day.Weather.WindMPH, day.Weather.Sky,
		)
		for _, sp := range day.Species {
			fmt.Printf("    %-18s %5.1f%%  %s\n",
				sp.Species, sp.SuccessProbability*100, sp.Confidence)
		}
		fmt.Println()
	}

	if len(o.BestDays) > 0 {
		fmt.Printf("Best days: %s\n", strings.Join(o.BestDays, ", "))
	} else {
		fmt.Println("No standout days in this window.")
	}
}
