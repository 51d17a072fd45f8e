// smartassist is a text-first personal assistant: it reads commands from
// stdin, interprets them with the AI resolver when one is configured and a
// keyword cascade otherwise, and executes them through feature plugins.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mcsmartbytes/smartassist/internal/assistant"
	"github.com/mcsmartbytes/smartassist/internal/config"
	"github.com/mcsmartbytes/smartassist/internal/intent"
	"github.com/mcsmartbytes/smartassist/internal/logging"
	"github.com/mcsmartbytes/smartassist/internal/plugin"
	"github.com/mcsmartbytes/smartassist/internal/store"
	"github.com/mcsmartbytes/smartassist/internal/timeparse"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	showVersion := flag.Bool("version", false, "Show version")
	oneShot := flag.String("c", "", "Handle a single command and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("smartassist v%s (built %s)\n", version, buildTime)
		os.Exit(0)
	}

	// Secrets may live in a .env file next to the binary.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewWithConfig(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.File)
	defer logger.Close()
	logger.Info("starting smartassist", "version", version)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("shutting down")
		cancel()
	}()

	if err := run(ctx, cfg, logger, *oneShot); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *logging.Logger, oneShot string) error {
	st, err := store.Open(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	policy := timeparse.Policy{
		AssumePM:        cfg.Parsing.AssumePMHours,
		RollSameWeekday: cfg.Parsing.WeekdayRollsForward,
	}

	registry := plugin.NewDefaultRegistry(st, policy, &plugin.SearchConfig{
		Timeout: cfg.Search.Timeout(),
		Limit:   cfg.Search.Limit,
	}, plugin.Collaborators{
		Mailer:    &plugin.LogMailer{Log: logger.Component("email")},
		Messenger: &plugin.LogMessenger{Log: logger.Component("sms")},
	})

	keyword := intent.NewKeywordResolver(registry, policy)
	resolvers := []intent.Resolver{}
	if ai := intent.NewAIResolver(intent.AIConfig{
		URL:              cfg.AI.URL,
		Token:            cfg.AI.Token,
		Model:            cfg.AI.Model,
		Timeout:          cfg.AI.Timeout(),
		FailureThreshold: cfg.AI.FailureThreshold,
		RecoveryTimeout:  cfg.AI.RecoveryTimeout(),
	}, logger.Component("ai")); ai != nil {
		resolvers = append(resolvers, ai)
		logger.Info("AI resolver enabled", "url", cfg.AI.URL, "model", cfg.AI.Model)
	} else {
		logger.Info("AI resolver disabled, keyword cascade only")
	}
	resolvers = append(resolvers, keyword)

	a := assistant.New(assistant.Config{
		Store:    st,
		Resolver: intent.NewFallbackResolver(resolvers...),
		Plugins:  registry,
		Log:      logger,
		Location: cfg.Search.Location,
	})

	if oneShot != "" {
		fmt.Println(a.Handle(ctx, oneShot).Message)
		return nil
	}
	return repl(ctx, a)
}

// repl reads one command per line until EOF or a shutdown signal.
func repl(ctx context.Context, a *assistant.Assistant) error {
	fmt.Println("smartassist ready. Type a command, or \"quit\" to exit.")

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	for {
		fmt.Print("> ")
		select {
		case <-ctx.Done():
			fmt.Println()
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if line == "quit" || line == "exit" {
				return nil
			}
			fmt.Println(a.Handle(ctx, line).Message)
		}
	}
}
