package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dimiro1/banner"
	"github.com/harunnryd/sentez/pkg/errorsx"
	"github.com/harunnryd/sentez/pkg/logging"
	"github.com/harunnryd/sentez/pkg/sentez"
)

const version = "dev"

func printBanner() {
	tpl := "{{ .Title \"SENTEZ\" \"\" 0 }}\nVersion: " + version + "\n"
	banner.Init(os.Stdout, true, true, bytes.NewBufferString(tpl))
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	flag.Parse()

	printBanner()

	cfg, err := sentez.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log := logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := sentez.NewEngine(cfg, sentez.DefaultProviderRegistry(), log)
	summary, err := engine.Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn("run interrupted",
				slog.Int("accepted", summary.Accepted),
				slog.Int("skipped", summary.Skipped))
			return
		}
		if errorsx.HasReason(err, errorsx.ReasonConfig) {
			fmt.Fprintf(os.Stderr, "config error: %v\n", err)
			os.Exit(1)
		}
		log.Error("run failed", slog.String("error", err.Error()))
		return
	}

	log.Info("corpus generated",
		slog.String("run_id", summary.RunID),
		slog.Int("requested", summary.Requested),
		slog.Int("accepted", summary.Accepted),
		slog.Int("skipped", summary.Skipped),
		slog.Int("utterances", summary.Utterances),
		slog.Int("agent_utterances", summary.AgentUtterances),
		slog.Float64("audio_seconds", summary.AudioSeconds),
		slog.Int("first_id", summary.FirstID),
		slog.Int("last_id", summary.LastID),
		slog.Duration("elapsed", summary.Elapsed))
}
