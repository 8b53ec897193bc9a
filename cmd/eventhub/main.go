// Copyright 2026 The EventHub Authors
// SPDX-License-Identifier: Apache-2.0

// eventhub is the terminal client for the EventHub ticketing platform:
// browse and search events, buy and cancel tickets, manage events as
// an admin, and talk to the assistant, all against the EventHub REST
// backend.
//
// The session (bearer token plus user record) persists across runs in
// a 0600 JSON file under the user's config directory, so a login
// survives restarts until it expires server-side or the user logs out.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/eventhub-live/eventhub/lib/api"
	"github.com/eventhub-live/eventhub/lib/clock"
	"github.com/eventhub-live/eventhub/lib/config"
	"github.com/eventhub-live/eventhub/lib/eventui"
	"github.com/eventhub-live/eventhub/lib/querycache"
	"github.com/eventhub-live/eventhub/lib/session"
	"github.com/eventhub-live/eventhub/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	var serverFlag string
	var sessionFileFlag string
	var logOutput string

	flagSet := pflag.NewFlagSet("eventhub", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to YAML config file (default: $EVENTHUB_CONFIG)")
	flagSet.StringVar(&serverFlag, "server", "", "base URL of the EventHub API (overrides config)")
	flagSet.StringVar(&sessionFileFlag, "session-file", "", "path to the session file (overrides config)")
	flagSet.StringVar(&logOutput, "log-output", "", "write JSON log records to this file (in addition to the status bar)")
	flagSet.BoolP("help", "h", false, "show help")

	// Handle --version before flag parsing so it works with no config.
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("eventhub")
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	configuration, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if serverFlag != "" {
		configuration.Server = serverFlag
	}
	if sessionFileFlag != "" {
		configuration.SessionFile = sessionFileFlag
	}

	sessionPath := configuration.SessionFile
	if sessionPath == "" {
		sessionPath = session.FilePath()
	}

	// Background logging goes to the status bar, not stderr, which
	// would corrupt the alt-screen display. An optional JSON file
	// captures everything for post-mortem debugging.
	tuiHandler := eventui.NewTUILogHandler(slog.LevelWarn)
	logger := slog.New(tuiHandler)
	if logOutput != "" {
		fileHandler, closeFile, fileErr := openFileLogHandler(logOutput)
		if fileErr != nil {
			return fmt.Errorf("cannot open log file %s: %w", logOutput, fileErr)
		}
		defer closeFile()
		logger = slog.New(fanoutHandler{tuiHandler, fileHandler})
	}

	// The client, session store, and program reference each other in a
	// cycle (client asks the store for tokens; a 401 tears the session
	// down and notifies the program), so the later pieces are reached
	// through indirection set up before any request can fire.
	var store *session.Store
	var programHolder atomic.Pointer[tea.Program]

	client := api.New(configuration.Server,
		api.WithTokenSource(func() string {
			if store == nil {
				return ""
			}
			return store.Token()
		}),
		api.WithUnauthorizedHook(func() {
			if store != nil {
				store.Invalidate()
			}
			if program := programHolder.Load(); program != nil {
				program.Send(eventui.SessionInvalidated())
			}
			logger.Warn("session invalidated by server")
		}),
	)
	store = session.NewStore(client, sessionPath)

	realClock := clock.Real()
	cache := querycache.New(realClock, configuration.StaleAfter)

	model := eventui.New(eventui.Options{
		Client:          client,
		Store:           store,
		Cache:           cache,
		Clock:           realClock,
		Theme:           eventui.DefaultTheme,
		Keys:            eventui.DefaultKeyMap,
		EventsPageSize:  configuration.EventsPageSize,
		TicketsPageSize: configuration.TicketsPageSize,
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	programHolder.Store(program)
	tuiHandler.SetProgram(program)

	_, err = program.Run()
	return err
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `EventHub - terminal client for the EventHub ticketing platform.

Browse and search events, buy and cancel tickets, manage events as an
admin, and chat with the assistant. Your login persists across runs in
a session file under your config directory.

Usage:
  eventhub [flags]

Examples:
  # Connect to the default local backend
  eventhub

  # Connect to a specific backend
  eventhub --server https://api.eventhub.example/api

  # Use a config file
  eventhub --config ~/.config/eventhub/config.yaml

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}

// openFileLogHandler creates a slog.JSONHandler writing to the given
// path. The file is created or truncated.
func openFileLogHandler(path string) (slog.Handler, func(), error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug})
	return handler, func() { file.Close() }, nil
}

// fanoutHandler sends each record to multiple underlying handlers. A
// record is enabled if any sub-handler is enabled for its level.
type fanoutHandler []slog.Handler

func (handlers fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (handlers fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record); err != nil {
				return err
			}
		}
	}
	return nil
}

func (handlers fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithAttrs(attrs)
	}
	return derived
}

func (handlers fanoutHandler) WithGroup(name string) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithGroup(name)
	}
	return derived
}
