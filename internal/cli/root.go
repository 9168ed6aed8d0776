package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"tarefa/internal/config"
	"tarefa/internal/controller"
	"tarefa/internal/dialog"
	"tarefa/internal/logging"
	"tarefa/internal/storage"
	"tarefa/internal/task"
	"tarefa/internal/ui"
	"tarefa/internal/view"
)

type App struct {
	ConfigPath string
	DBPath     string
	Filter     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:           "tarefa",
		Short:         "Local to-do list (TUI + CLI)",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  tarefa

  # Scriptable commands
  tarefa add Comprar pão
  tarefa list --filter pending
  tarefa toggle 1718000000000
  tarefa rm 1718000000000 --yes
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "Path to config.toml (default: $"+config.EnvConfigPath+" or the user config dir)")
	cmd.PersistentFlags().StringVar(&app.DBPath, "db", "", "Path to the SQLite database (overrides db_path; \":memory:\" keeps nothing)")
	cmd.PersistentFlags().StringVar(&app.Filter, "filter", "", "Active filter: all, pending or completed (overrides default_filter)")

	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newToggleCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newRmCmd(app))
	cmd.AddCommand(newClearCmd(app))
	cmd.AddCommand(newReorderCmd(app))

	return cmd
}

// Execute runs the root command and reports errors on stderr.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "tarefa: %v\n", err)
		return 1
	}
	return 0
}

// session is one loaded collection bound to its store.
type session struct {
	ctrl   *controller.Controller
	cfg    config.Config
	logger *log.Logger
	closer []io.Closer
}

func (s *session) Close() {
	for i := len(s.closer) - 1; i >= 0; i-- {
		if err := s.closer[i].Close(); err != nil {
			s.logger.Warn("close", "err", err)
		}
	}
}

func openSession(cmd *cobra.Command, app *App, dialogs dialog.Provider) (*session, error) {
	cfgPath := config.ResolveConfigPath(app.ConfigPath)
	cfg, err := config.LoadOrCreate(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if app.DBPath != "" {
		cfg.DBPath = app.DBPath
	}
	if app.Filter != "" {
		cfg.DefaultFilter = app.Filter
	}
	filter, err := view.ParseFilter(cfg.DefaultFilter)
	if err != nil {
		return nil, err
	}
	msg, err := view.MessagesFor(cfg.Locale)
	if err != nil {
		return nil, err
	}

	logger, logCloser, err := logging.New(logging.Options{
		Level:    cfg.LogLevel,
		File:     cfg.LogFile,
		Fallback: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, err
	}
	s := &session{cfg: cfg, logger: logger, closer: []io.Closer{logCloser}}

	kv, err := storage.Open(cfg.DBPath)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}
	s.closer = append(s.closer, kv)
	store := storage.NewStore(kv, cfg.StoreKey, logger)

	s.ctrl = controller.New(task.NewCollection(store.Load()), store, dialogs, controller.Options{
		Filter:   filter,
		Messages: msg,
		Logger:   logger,
	})
	logger.Debug("session opened", "config", cfgPath, "db", cfg.DBPath, "key", store.Key())
	return s, nil
}

func runTUI(cmd *cobra.Command, app *App) error {
	answers := &dialog.Preset{}
	s, err := openSession(cmd, app, answers)
	if err != nil {
		return err
	}
	defer s.Close()
	return ui.Run(s.ctrl, answers, s.cfg)
}

func terminalDialogs(cmd *cobra.Command) dialog.Provider {
	return dialog.NewTerminal(cmd.InOrStdin(), cmd.ErrOrStderr())
}
