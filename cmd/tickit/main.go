package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/hylla/tickit/internal/adapters/storage/jsonfile"
	"github.com/hylla/tickit/internal/adapters/storage/sqlite"
	"github.com/hylla/tickit/internal/app"
	"github.com/hylla/tickit/internal/config"
	"github.com/hylla/tickit/internal/platform"
	"github.com/hylla/tickit/internal/tui"
	"github.com/spf13/cobra"
)

// version stores a package-level helper value.
var version = "dev"

// program represents program data used by this package.
type program interface {
	Run() (tea.Model, error)
}

// programFactory stores a package-level helper value.
var programFactory = func(m tea.Model) program {
	return tea.NewProgram(m)
}

// main handles main.
func main() {
	root := newRootCommand(os.Stdout, os.Stderr)
	if err := fang.Execute(context.Background(), root, fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

// run executes the command tree against args; tests drive the CLI through it.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := newRootCommand(stdout, stderr)
	root.SetArgs(args)
	root.SilenceUsage = true
	root.SilenceErrors = true
	return root.ExecuteContext(ctx)
}

// rootOptions holds the persistent flag values shared by every command.
type rootOptions struct {
	configPath string
	dataPath   string
	dbPath     string
	backend    string
	appName    string
	devMode    bool
}

// newRootCommand builds the tickit command tree.
func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	opts := &rootOptions{}
	defaultDevMode := version == "dev"
	if envDev, ok := parseBoolEnv("TICKIT_DEV_MODE"); ok {
		defaultDevMode = envDev
	}
	appName := platform.DefaultAppName
	if envApp := strings.TrimSpace(os.Getenv("TICKIT_APP_NAME")); envApp != "" {
		appName = envApp
	}

	root := &cobra.Command{
		Use:     "tickit",
		Short:   "A keyboard-driven task list for the terminal",
		Version: version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), opts, stderr)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to config TOML")
	flags.StringVar(&opts.dataPath, "data", "", "path to the JSON task file")
	flags.StringVar(&opts.dbPath, "db", "", "path to the sqlite database")
	flags.StringVar(&opts.backend, "backend", "", "storage backend override (json|sqlite)")
	flags.StringVar(&opts.appName, "app", appName, "application name for config/data path resolution")
	flags.BoolVar(&opts.devMode, "dev", defaultDevMode, "use dev mode paths (<app>-dev)")

	root.AddCommand(
		newPathsCommand(opts),
		newKeysCommand(opts),
		newInitConfigCommand(opts),
		newColorsCommand(opts),
	)
	return root
}

// newPathsCommand prints the resolved platform paths.
func newPathsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print resolved config and data paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			paths, err := resolvePaths(opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "app: %s\n", opts.appName)
			_, _ = fmt.Fprintf(out, "dev_mode: %t\n", opts.devMode)
			_, _ = fmt.Fprintf(out, "config: %s\n", resolveConfigPath(opts, paths))
			_, _ = fmt.Fprintf(out, "data_dir: %s\n", paths.DataDir)
			_, _ = fmt.Fprintf(out, "data: %s\n", paths.DataPath)
			_, _ = fmt.Fprintf(out, "db: %s\n", paths.DBPath)
			return nil
		},
	}
}

// newKeysCommand prints the effective binding table as Markdown.
func newKeysCommand(opts *rootOptions) *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Show the effective key bindings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			setup, err := resolveRuntime(opts)
			if err != nil {
				return err
			}
			bindings, err := setup.cfg.Bindings()
			if err != nil {
				return fmt.Errorf("resolve key bindings: %w", err)
			}
			markdown := tui.BindingsMarkdown(bindings)
			if !plain {
				markdown = tui.RenderMarkdown(markdown, 80)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), markdown)
			return err
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "print raw Markdown without styling")
	return cmd
}

// newColorsCommand previews the configured theme and the ANSI index palette.
func newColorsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "colors",
		Short: "Preview the configured colors and the ANSI 256 palette",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			setup, err := resolveRuntime(opts)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tui.RenderPalette(toTUIColors(setup.cfg.Colors)))
			return err
		},
	}
}

// newInitConfigCommand writes the default config file.
func newInitConfigCommand(opts *rootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init-config",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			paths, err := resolvePaths(opts)
			if err != nil {
				return err
			}
			configPath := resolveConfigPath(opts, paths)
			if _, statErr := os.Stat(configPath); statErr == nil && !force {
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", configPath)
			} else if statErr != nil && !errors.Is(statErr, os.ErrNotExist) {
				return fmt.Errorf("stat config: %w", statErr)
			}
			if err := config.Write(configPath, config.Default(paths.DataPath, paths.DBPath)); err != nil {
				return fmt.Errorf("write config %q: %w", configPath, err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote config: %s\n", configPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

// runtimeSetup carries everything resolved before the task repository opens.
type runtimeSetup struct {
	paths      platform.Paths
	configPath string
	cfg        config.Config
}

// resolvePaths computes platform paths once from the app/dev flags.
func resolvePaths(opts *rootOptions) (platform.Paths, error) {
	return platform.DefaultPathsWithOptions(platform.Options{
		AppName: opts.appName,
		DevMode: opts.devMode,
	})
}

// resolveConfigPath applies flag, then TICKIT_CONFIG, then the platform default.
func resolveConfigPath(opts *rootOptions, paths platform.Paths) string {
	if strings.TrimSpace(opts.configPath) != "" {
		return opts.configPath
	}
	if envPath := strings.TrimSpace(os.Getenv("TICKIT_CONFIG")); envPath != "" {
		return envPath
	}
	return paths.ConfigPath
}

// resolveRuntime loads config and applies flag overrides on top of it.
func resolveRuntime(opts *rootOptions) (runtimeSetup, error) {
	paths, err := resolvePaths(opts)
	if err != nil {
		return runtimeSetup{}, err
	}
	configPath := resolveConfigPath(opts, paths)
	cfg, err := config.Decode(configPath, config.Default(paths.DataPath, paths.DBPath))
	if err != nil {
		return runtimeSetup{}, fmt.Errorf("load config %q: %w", configPath, err)
	}
	if v := strings.TrimSpace(opts.dataPath); v != "" {
		cfg.Storage.JSONPath = v
	}
	if v := strings.TrimSpace(opts.dbPath); v != "" {
		cfg.Storage.SQLitePath = v
	}
	if v := strings.TrimSpace(opts.backend); v != "" {
		cfg.Storage.Backend = config.Backend(strings.ToLower(v))
	}
	if err := cfg.Validate(); err != nil {
		return runtimeSetup{}, fmt.Errorf("validate config: %w", err)
	}
	return runtimeSetup{paths: paths, configPath: configPath, cfg: cfg}, nil
}

// repository is the persistence port plus its release hook.
type repository interface {
	app.Repository
	Close() error
}

// jsonRepository adapts the file store, which holds no handle, to the repository shape.
type jsonRepository struct {
	*jsonfile.Repository
}

// Close is a no-op; the file is reopened on every load and save.
func (jsonRepository) Close() error {
	return nil
}

// openRepository opens the configured storage backend.
func openRepository(cfg config.Config) (repository, error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		repo, err := sqlite.Open(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite repository: %w", err)
		}
		return repo, nil
	default:
		repo, err := jsonfile.Open(cfg.Storage.JSONPath)
		if err != nil {
			return nil, fmt.Errorf("open json repository: %w", err)
		}
		return jsonRepository{repo}, nil
	}
}

// runTUI loads tasks, runs the program loop and saves the final collection.
func runTUI(ctx context.Context, opts *rootOptions, stderr io.Writer) error {
	setup, err := resolveRuntime(opts)
	if err != nil {
		return err
	}
	cfg := setup.cfg

	logger, err := newRuntimeLogger(stderr, opts.appName, opts.devMode, cfg.Logging, time.Now)
	if err != nil {
		return fmt.Errorf("configure runtime logger: %w", err)
	}
	// Runtime logs stay in the dev-file sink while the list is on screen.
	logger.SetConsoleEnabled(false)
	defer func() {
		if closeErr := logger.Close(); closeErr != nil && logger.ConsoleEnabled() {
			_, _ = fmt.Fprintf(stderr, "warning: close runtime log sink: %v\n", closeErr)
		}
	}()

	logger.Info("startup configuration resolved", "app", opts.appName, "dev_mode", opts.devMode)
	logger.Debug("runtime paths resolved", "config_path", setup.configPath, "data_dir", setup.paths.DataDir)
	logger.Info("configuration loaded", "config_path", setup.configPath, "backend", cfg.Storage.Backend, "log_level", cfg.Logging.Level)
	if devPath := logger.DevLogPath(); devPath != "" {
		logger.Info("dev file logging enabled", "path", devPath)
	}

	bindings, err := cfg.Bindings()
	if err != nil {
		return fmt.Errorf("resolve key bindings: %w", err)
	}

	logger.Info("opening task repository", "backend", cfg.Storage.Backend, "path", cfg.ActivePath())
	repo, err := openRepository(cfg)
	if err != nil {
		logger.Error("task repository open failed", "backend", cfg.Storage.Backend, "path", cfg.ActivePath(), "err", err)
		return err
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			logger.Warn("task repository close failed", "backend", cfg.Storage.Backend, "err", closeErr)
		}
	}()

	tasks, degraded, err := app.LoadTasks(ctx, repo)
	if err != nil {
		logger.Error("task load failed", "path", cfg.ActivePath(), "err", err)
		return err
	}
	if degraded {
		logger.Warn("task data malformed, starting with an empty list", "path", cfg.ActivePath())
	}
	logger.Info("tasks loaded", "count", len(tasks))

	state := app.NewState(tasks, bindings)
	m := tui.NewModel(state,
		tui.WithColors(toTUIColors(cfg.Colors)),
		tui.WithWelcomeMessage(cfg.UI.WelcomeText),
	)

	logger.Info("starting tui program loop")
	if _, err := programFactory(m).Run(); err != nil {
		logger.Error("tui program terminated with error", "err", err)
		return fmt.Errorf("run tui program: %w", err)
	}
	logger.Info("tui program loop finished", "confirmed_exit", state.Done())

	final := state.Tasks()
	if err := app.SaveTasks(ctx, repo, final); err != nil {
		logger.Error("task save failed", "path", cfg.ActivePath(), "err", err)
		return err
	}
	logger.Info("tasks saved", "count", len(final), "path", cfg.ActivePath())
	return nil
}

// toTUIColors maps config color slots onto renderer colors.
func toTUIColors(c config.ColorsConfig) tui.Colors {
	return tui.Colors{
		Foreground:     c.Foreground,
		Background:     c.Background,
		SelectionFG:    c.SelectionFG,
		SelectionBG:    c.SelectionBG,
		CheckSign:      c.CheckSign,
		WelcomeMessage: c.WelcomeMessage,
	}
}

// parseBoolEnv reads a boolean env var; ok is false when unset or unparsable.
func parseBoolEnv(name string) (bool, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
