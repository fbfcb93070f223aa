// Command weather looks up the current weather for one or more cities.
//
// With city arguments it prints one report per city and exits non-zero if any
// lookup failed. Without arguments it prompts for cities on stdin; "clear"
// resets the display, "history" lists this session's lookups and "quit" exits.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	nethttp "net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/deepa-mylavarapu/XR26-APIs-Databases/internal/config"
	"github.com/deepa-mylavarapu/XR26-APIs-Databases/internal/delivery/console"
	"github.com/deepa-mylavarapu/XR26-APIs-Databases/internal/observability"
	"github.com/deepa-mylavarapu/XR26-APIs-Databases/internal/repository/postgres"
	"github.com/deepa-mylavarapu/XR26-APIs-Databases/internal/service"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [city ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(2)
	}
	if os.Getenv("LOG_LEVEL") == "" {
		cfg.LogLevel = "warn"
	}
	log := observability.NewLoggerTo(os.Stderr, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fetcher := service.NewWeatherFetcher(cfg.OpenWeatherBaseURL, cfg, &nethttp.Client{Timeout: cfg.HTTPTimeout})
	svc := service.NewWeatherService(fetcher, postgres.NewMemoryRepository(), observability.NewMetrics(), log)
	defer svc.WaitBackground()

	ctrl := console.NewController(svc, os.Stdout)

	if args := flag.Args(); len(args) > 0 {
		if failed := runBatch(ctx, ctrl, args); failed > 0 {
			svc.WaitBackground()
			os.Exit(1)
		}
		return
	}

	runInteractive(ctx, ctrl, svc, os.Stdin, os.Stdout, cfg.HistoryLimit)
}

func runBatch(ctx context.Context, ctrl *console.Controller, cities []string) int {
	failed := 0
	for _, city := range cities {
		if err := ctrl.Submit(ctx, city); err != nil {
			failed++
		}
		if ctx.Err() != nil {
			return failed + 1
		}
	}
	return failed
}

func runInteractive(ctx context.Context, ctrl *console.Controller, svc *service.WeatherService, in io.Reader, out io.Writer, historyLimit int) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}

		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "quit", "exit":
			return
		case "clear":
			ctrl.Clear()
			continue
		case "history":
			svc.WaitBackground()
			printHistory(ctx, svc, out, historyLimit)
			continue
		}

		err := ctrl.Submit(ctx, line)
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			return
		}
	}
}

func printHistory(ctx context.Context, svc *service.WeatherService, out io.Writer, limit int) {
	lookups, err := svc.History(ctx, "", limit)
	if err != nil {
		fmt.Fprintln(out, "history unavailable:", err)
		return
	}
	if len(lookups) == 0 {
		fmt.Fprintln(out, "no lookups yet")
		return
	}
	for _, l := range lookups {
		fmt.Fprintf(out, "%s  %-20s %6.1f°C  %s\n",
			l.FetchedAt.Local().Format("15:04:05"),
			l.Record.CityName,
			l.Record.TemperatureCelsius,
			l.Record.PrimaryDescription,
		)
	}
}
