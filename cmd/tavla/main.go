package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/fang"
	charmLog "github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/hylla/tavla/internal/adapters/storage/sqlite"
	"github.com/hylla/tavla/internal/app"
	"github.com/hylla/tavla/internal/config"
	"github.com/hylla/tavla/internal/platform"
	"github.com/hylla/tavla/internal/tui"
	"github.com/spf13/cobra"
)

// version is stamped at build time via -ldflags.
var version = "dev"

// program is the slice of tea.Program the runner needs, kept small so tests
// can swap in a fake.
type program interface {
	Run() (tea.Model, error)
}

var programFactory = func(m tea.Model) program {
	return tea.NewProgram(m)
}

func main() {
	root := newRootCmd(os.Stdout, os.Stderr)
	if err := fang.Execute(context.Background(), root, fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

// rootOptions holds the persistent flag state shared by every subcommand.
type rootOptions struct {
	configPath string
	dbPath     string
	appName    string
	devMode    bool
}

// newRootCmd builds the command tree. The bare command runs the board TUI.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	opts := &rootOptions{
		appName: defaultAppName(),
		devMode: defaultDevMode(),
	}
	root := &cobra.Command{
		Use:           "tavla",
		Short:         "tavla - a kanban board for the terminal",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBoard(cmd.Context(), opts, stderr)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "path to config TOML")
	pf.StringVar(&opts.dbPath, "db", "", "path to sqlite database")
	pf.StringVar(&opts.appName, "app", opts.appName, "application name for config/data path resolution")
	pf.BoolVar(&opts.devMode, "dev", opts.devMode, "use dev mode paths (<app>-dev)")

	root.AddCommand(newPathsCmd(opts, stdout))
	root.AddCommand(newExportCmd(opts, stdout, stderr))
	root.AddCommand(newImportCmd(opts, stderr))
	return root
}

// defaultAppName resolves the app name used for config/data paths.
func defaultAppName() string {
	if envApp := strings.TrimSpace(os.Getenv("TAVLA_APP_NAME")); envApp != "" {
		return envApp
	}
	return "tavla"
}

// defaultDevMode resolves whether dev-mode paths are used by default.
func defaultDevMode() bool {
	if envDev, ok := parseBoolEnv("TAVLA_DEV_MODE"); ok {
		return envDev
	}
	return version == "dev"
}

// environment bundles everything resolved before a command runs.
type environment struct {
	paths        platform.Paths
	configPath   string
	dbOverridden bool
	cfg          config.Config
}

// resolveEnvironment turns flags, env vars, and the config file into one
// consistent runtime setup.
func resolveEnvironment(opts *rootOptions) (environment, error) {
	paths, err := platform.DefaultPathsWithOptions(platform.Options{
		AppName: opts.appName,
		DevMode: opts.devMode,
	})
	if err != nil {
		return environment{}, fmt.Errorf("resolve platform paths: %w", err)
	}

	configPath := opts.configPath
	if configPath == "" {
		if envPath := strings.TrimSpace(os.Getenv("TAVLA_CONFIG")); envPath != "" {
			configPath = envPath
		} else {
			configPath = paths.ConfigPath
			// First run: make sure the app config dir exists so the user
			// has somewhere to drop a config file.
			if err := config.EnsureConfigDir(configPath); err != nil {
				return environment{}, fmt.Errorf("ensure config dir: %w", err)
			}
		}
	}
	dbPath := opts.dbPath
	dbOverridden := strings.TrimSpace(dbPath) != ""
	if !dbOverridden {
		if envPath := strings.TrimSpace(os.Getenv("TAVLA_DB_PATH")); envPath != "" {
			dbPath = envPath
			dbOverridden = true
		} else {
			dbPath = paths.DBPath
		}
	}

	cfg, err := config.Load(configPath, config.Default(dbPath))
	if err != nil {
		return environment{}, fmt.Errorf("load config %q: %w", configPath, err)
	}
	if dbOverridden {
		cfg.Database.Path = dbPath
	}
	return environment{
		paths:        paths,
		configPath:   configPath,
		dbOverridden: dbOverridden,
		cfg:          cfg,
	}, nil
}

// openStore opens the sqlite-backed repository and wraps it in the board store.
func openStore(env environment, logger *runtimeLogger) (*app.Store, *sqlite.Repository, error) {
	logger.Info("opening sqlite repository", "db_path", env.cfg.Database.Path)
	repo, err := sqlite.Open(env.cfg.Database.Path)
	if err != nil {
		logger.Error("sqlite open failed", "db_path", env.cfg.Database.Path, "err", err)
		return nil, nil, fmt.Errorf("open sqlite repository: %w", err)
	}
	store := app.NewStore(repo, uuid.NewString, nil, logger.AppLogger())
	return store, repo, nil
}

// runBoard loads the board and runs the TUI program loop.
func runBoard(ctx context.Context, opts *rootOptions, stderr io.Writer) error {
	env, err := resolveEnvironment(opts)
	if err != nil {
		return err
	}

	logger, err := newRuntimeLogger(stderr, opts.appName, opts.devMode, env.cfg.Logging, time.Now)
	if err != nil {
		return fmt.Errorf("configure runtime logger: %w", err)
	}
	// Keep TUI rendering clean: runtime logs stay in the dev-file sink while the board is active.
	logger.SetConsoleEnabled(false)
	defer func() {
		_ = logger.Close()
	}()

	logger.Info("startup configuration resolved", "app", opts.appName, "dev_mode", opts.devMode)
	logger.Info("configuration loaded", "config_path", env.configPath, "db_path", env.cfg.Database.Path, "log_level", env.cfg.Logging.Level)
	if devPath := logger.DevLogPath(); devPath != "" {
		logger.Info("dev file logging enabled", "path", devPath)
	}

	store, repo, err := openStore(env, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			logger.Warn("sqlite close failed", "db_path", env.cfg.Database.Path, "err", closeErr)
		}
	}()

	board := store.LoadBoard(ctx)
	logger.Info("board ready", "lists", len(board.Lists), "cards", board.CardCount())
	// Re-bucket due dates once at startup; the TUI tick handles the rest.
	store.RefreshStatuses(ctx)

	m := tui.NewModel(
		store,
		tui.WithCardFieldConfig(tui.CardFieldConfig{
			ShowLabels:   env.cfg.Board.ShowLabels,
			ShowDueDates: env.cfg.Board.ShowDueDates,
			ShowStatus:   env.cfg.Board.ShowStatus,
		}),
		tui.WithRefreshInterval(time.Duration(env.cfg.Refresh.IntervalMinutes)*time.Minute),
	)
	logger.Info("starting tui program loop")
	if _, err := programFactory(m).Run(); err != nil {
		logger.Error("tui program terminated with error", "err", err)
		return fmt.Errorf("run tui program: %w", err)
	}
	logger.Info("command flow complete", "command", "tui")
	return nil
}

// newPathsCmd prints the resolved config and data locations.
func newPathsCmd(opts *rootOptions, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print resolved config and data paths",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			paths, err := platform.DefaultPathsWithOptions(platform.Options{
				AppName: opts.appName,
				DevMode: opts.devMode,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(stdout, "app: %s\n", opts.appName)
			_, _ = fmt.Fprintf(stdout, "dev_mode: %t\n", opts.devMode)
			_, _ = fmt.Fprintf(stdout, "config: %s\n", paths.ConfigPath)
			_, _ = fmt.Fprintf(stdout, "data_dir: %s\n", paths.DataDir)
			_, _ = fmt.Fprintf(stdout, "db: %s\n", paths.DBPath)
			return nil
		},
	}
}

// newExportCmd writes the current board as JSON.
func newExportCmd(opts *rootOptions, stdout, stderr io.Writer) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the board as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd.Context(), opts, outPath, stdout, stderr)
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "-", "output file path ('-' for stdout)")
	return cmd
}

// runExport writes the persisted board as indented JSON to stdout or a file.
func runExport(ctx context.Context, opts *rootOptions, outPath string, stdout, stderr io.Writer) error {
	env, err := resolveEnvironment(opts)
	if err != nil {
		return err
	}
	logger, err := newRuntimeLogger(stderr, opts.appName, opts.devMode, env.cfg.Logging, time.Now)
	if err != nil {
		return fmt.Errorf("configure runtime logger: %w", err)
	}
	defer func() {
		_ = logger.Close()
	}()

	store, repo, err := openStore(env, logger)
	if err != nil {
		return err
	}
	defer func() {
		_ = repo.Close()
	}()

	board := store.LoadBoard(ctx)
	encoded, err := app.EncodeBoard(board)
	if err != nil {
		return fmt.Errorf("encode board: %w", err)
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, encoded, "", "  "); err != nil {
		return fmt.Errorf("format board json: %w", err)
	}
	pretty.WriteByte('\n')

	if outPath == "-" {
		if _, err := stdout.Write(pretty.Bytes()); err != nil {
			return fmt.Errorf("write board to stdout: %w", err)
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create export output dir: %w", err)
	}
	if err := os.WriteFile(outPath, pretty.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	logger.Info("board exported", "out", outPath, "lists", len(board.Lists), "cards", board.CardCount())
	return nil
}

// newImportCmd replaces the board from a JSON export.
func newImportCmd(opts *rootOptions, stderr io.Writer) *cobra.Command {
	var inPath string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a board from a JSON export",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runImport(cmd.Context(), opts, inPath, stderr)
		},
	}
	cmd.Flags().StringVar(&inPath, "in", "", "input board JSON file")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

// runImport replaces the persisted board with the contents of a JSON export.
func runImport(ctx context.Context, opts *rootOptions, inPath string, stderr io.Writer) error {
	if strings.TrimSpace(inPath) == "" {
		return fmt.Errorf("--in is required")
	}
	env, err := resolveEnvironment(opts)
	if err != nil {
		return err
	}
	logger, err := newRuntimeLogger(stderr, opts.appName, opts.devMode, env.cfg.Logging, time.Now)
	if err != nil {
		return fmt.Errorf("configure runtime logger: %w", err)
	}
	defer func() {
		_ = logger.Close()
	}()

	content, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("read import file: %w", err)
	}
	board, err := app.DecodeBoard(content)
	if err != nil {
		return fmt.Errorf("decode board json: %w", err)
	}

	store, repo, err := openStore(env, logger)
	if err != nil {
		return err
	}
	defer func() {
		_ = repo.Close()
	}()

	store.ReplaceBoard(ctx, board)
	logger.Info("board imported", "in", inPath, "lists", len(board.Lists), "cards", board.CardCount())
	return nil
}

// parseBoolEnv reads a boolean env var, reporting whether it was set and valid.
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

// runtimeLogger fans log events to a styled console sink and an optional dev-file sink.
type runtimeLogger struct {
	sinks          []*charmLog.Logger
	consoleSink    *charmLog.Logger
	fileSink       *charmLog.Logger
	consoleEnabled bool
	closeFile      func() error
	devLog         string
}

// newRuntimeLogger configures runtime log sinks from CLI/config state.
func newRuntimeLogger(stderr io.Writer, appName string, devMode bool, cfg config.LoggingConfig, now func() time.Time) (*runtimeLogger, error) {
	level, err := charmLog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse logging level %q: %w", cfg.Level, err)
	}

	if now == nil {
		now = time.Now
	}
	if stderr == nil {
		stderr = io.Discard
	}

	consoleLogger := charmLog.NewWithOptions(stderr, charmLog.Options{
		Level:           level,
		Prefix:          appName,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       charmLog.TextFormatter,
	})

	logger := &runtimeLogger{
		sinks:          []*charmLog.Logger{consoleLogger},
		consoleSink:    consoleLogger,
		consoleEnabled: true,
	}
	if !devMode || !cfg.DevFile.Enabled {
		return logger, nil
	}

	devLogPath, err := devLogFilePath(cfg.DevFile.Dir, appName, now().UTC())
	if err != nil {
		return nil, fmt.Errorf("resolve dev log file path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(devLogPath), 0o755); err != nil {
		return nil, fmt.Errorf("create dev log dir: %w", err)
	}
	logFile, err := os.OpenFile(devLogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open dev log file: %w", err)
	}

	// Keep file output parseable and unstyled while preserving styled console logs.
	fileLogger := charmLog.NewWithOptions(logFile, charmLog.Options{
		Level:           level,
		Prefix:          appName,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       charmLog.LogfmtFormatter,
	})
	logger.sinks = append(logger.sinks, fileLogger)
	logger.fileSink = fileLogger
	logger.closeFile = logFile.Close
	logger.devLog = devLogPath
	return logger, nil
}

// AppLogger returns the sink handed to the application store. It prefers the
// dev file so store warnings never draw over the board.
func (l *runtimeLogger) AppLogger() *charmLog.Logger {
	if l == nil {
		return charmLog.New(io.Discard)
	}
	if l.fileSink != nil {
		return l.fileSink
	}
	if l.consoleEnabled {
		return l.consoleSink
	}
	return charmLog.New(io.Discard)
}

// DevLogPath returns the active dev log file path.
func (l *runtimeLogger) DevLogPath() string {
	if l == nil {
		return ""
	}
	return l.devLog
}

// Close closes the optional dev-file sink.
func (l *runtimeLogger) Close() error {
	if l == nil || l.closeFile == nil {
		return nil
	}
	return l.closeFile()
}

// SetConsoleEnabled toggles whether the console sink receives runtime events.
func (l *runtimeLogger) SetConsoleEnabled(enabled bool) {
	if l == nil {
		return
	}
	l.consoleEnabled = enabled
}

// shouldLogToSink reports whether one sink should receive runtime output.
func (l *runtimeLogger) shouldLogToSink(sink *charmLog.Logger) bool {
	if l == nil || sink == nil {
		return false
	}
	if sink == l.consoleSink && !l.consoleEnabled {
		return false
	}
	return true
}

// Debug logs a debug event to all configured sinks.
func (l *runtimeLogger) Debug(msg string, keyvals ...any) {
	if l == nil {
		return
	}
	for _, sink := range l.sinks {
		if !l.shouldLogToSink(sink) {
			continue
		}
		sink.Debug(msg, keyvals...)
	}
}

// Info logs an informational event to all configured sinks.
func (l *runtimeLogger) Info(msg string, keyvals ...any) {
	if l == nil {
		return
	}
	for _, sink := range l.sinks {
		if !l.shouldLogToSink(sink) {
			continue
		}
		sink.Info(msg, keyvals...)
	}
}

// Warn logs a warning event to all configured sinks.
func (l *runtimeLogger) Warn(msg string, keyvals ...any) {
	if l == nil {
		return
	}
	for _, sink := range l.sinks {
		if !l.shouldLogToSink(sink) {
			continue
		}
		sink.Warn(msg, keyvals...)
	}
}

// Error logs an error event to all configured sinks.
func (l *runtimeLogger) Error(msg string, keyvals ...any) {
	if l == nil {
		return
	}
	for _, sink := range l.sinks {
		if !l.shouldLogToSink(sink) {
			continue
		}
		sink.Error(msg, keyvals...)
	}
}

// devLogFilePath resolves a workspace-local dev log file path for the current run day.
func devLogFilePath(configDir, appName string, now time.Time) (string, error) {
	baseDir := strings.TrimSpace(configDir)
	if baseDir == "" {
		baseDir = ".tavla/log"
	}
	if !filepath.IsAbs(baseDir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working dir: %w", err)
		}
		baseDir = filepath.Join(workspaceRootFrom(cwd), baseDir)
	}
	fileStem := sanitizeLogFileStem(appName)
	fileName := fmt.Sprintf("%s-%s.log", fileStem, now.Format("20060102"))
	return filepath.Join(filepath.Clean(baseDir), fileName), nil
}

// workspaceRootFrom resolves the nearest ancestor workspace marker for stable local log placement.
func workspaceRootFrom(start string) string {
	start = filepath.Clean(strings.TrimSpace(start))
	if start == "" {
		return "."
	}
	dir := start
	for {
		if hasWorkspaceMarker(dir) {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}
		dir = parent
	}
}

// hasWorkspaceMarker reports whether a directory looks like a project workspace root.
func hasWorkspaceMarker(dir string) bool {
	if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
		return true
	}
	if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
		return true
	}
	return false
}

// sanitizeLogFileStem normalizes app names into safe file-name segments.
func sanitizeLogFileStem(appName string) string {
	stem := strings.TrimSpace(appName)
	if stem == "" {
		return "tavla"
	}
	replacer := strings.NewReplacer("/", "-", "\\", "-", ":", "-", " ", "-")
	stem = strings.Trim(replacer.Replace(stem), "-")
	if stem == "" {
		return "tavla"
	}
	return stem
}
