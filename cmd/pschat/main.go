package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"pschat/pkg/config"
	"pschat/pkg/logging"
	"pschat/pkg/session"
	"pschat/pkg/transport"
	"pschat/pkg/ui"
	"pschat/pkg/version"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"
)

type flags struct {
	configPath string
	serverURL  string
	name       string
	theme      string
}

func main() {
	var f flags
	flag.StringVar(&f.configPath, "config", config.GetConfigPath(), "path to the config file (.json or .toml)")
	flag.StringVar(&f.serverURL, "url", "", "server websocket URL (overrides config)")
	flag.StringVar(&f.name, "name", "", "name to request after connecting (overrides config)")
	flag.StringVar(&f.theme, "theme", "", "status bar theme: default, cyan or dark")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		printVersion()
		return
	}

	if err := run(f); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(f flags) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if f.serverURL != "" {
		cfg.Server.URL = f.serverURL
	}
	if strings.TrimSpace(cfg.Server.URL) == "" {
		cfg.Server.URL = config.Default().Server.URL
	}
	if f.name != "" {
		cfg.User.Name = f.name
	}
	if f.theme != "" {
		cfg.Theme = f.theme
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func run(f flags) error {
	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}
	if _, err := logging.Init(cfg); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := transport.Dial(ctx, cfg.Server.URL, transport.Options{
		Rate:      cfg.Server.SendRate,
		Burst:     cfg.Server.SendBurst,
		UserAgent: version.UserAgent(),
	})
	if err != nil {
		return err
	}
	defer client.Close()

	interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	opts := session.Options{
		BacklogSize: cfg.BacklogSize,
		Name:        cfg.User.Name,
	}
	if !interactive {
		opts.OnLine = printLine(os.Stdout)
	}
	sess := session.New(client, opts)
	for _, roomID := range cfg.Rooms.Autojoin {
		sess.Join(roomID)
	}
	slog.Info("pschat_started", "url", cfg.Server.URL, "interactive", interactive, "conn_id", client.ID(), "version", version.Summary())

	if !interactive {
		return runLineMode(ctx, sess, client, os.Stdin, os.Stdout)
	}

	model := ui.NewModel(sess, ui.Options{
		Source:       client,
		Theme:        cfg.Theme,
		HistoryLimit: cfg.HistoryLimit,
		HistoryTrim:  cfg.HistoryTrim,
	})
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
