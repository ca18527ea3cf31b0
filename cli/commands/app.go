package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/petal-labs/machinebox/boxes"
	"github.com/petal-labs/machinebox/cli/config"
	"github.com/petal-labs/machinebox/cli/keystore"
	mblogrus "github.com/petal-labs/machinebox/contrib/logrus"
	"github.com/petal-labs/machinebox/core"
)

// ConfigLoader loads CLI config from a path.
type ConfigLoader func(path string) (*config.Config, error)

// KeystoreFactory creates a keystore instance.
type KeystoreFactory func() (keystore.Keystore, error)

// AppOption customizes App dependencies.
type AppOption func(*App)

// App holds CLI state and runtime dependencies.
type App struct {
	root *cobra.Command

	loadConfig  ConfigLoader
	newKeystore KeystoreFactory
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	cfgFile     string
	url         string
	timeout     time.Duration
	retries     int
	jsonOutput  bool
	verbose     bool
	cfg         *config.Config
	log         *logrus.Logger
}

// WithConfigLoader injects a config loader dependency.
func WithConfigLoader(loader ConfigLoader) AppOption {
	return func(a *App) {
		if loader != nil {
			a.loadConfig = loader
		}
	}
}

// WithKeystoreFactory injects a keystore factory dependency.
func WithKeystoreFactory(factory KeystoreFactory) AppOption {
	return func(a *App) {
		if factory != nil {
			a.newKeystore = factory
		}
	}
}

// WithIO injects process I/O streams.
func WithIO(stdin io.Reader, stdout, stderr io.Writer) AppOption {
	return func(a *App) {
		if stdin != nil {
			a.stdin = stdin
		}
		if stdout != nil {
			a.stdout = stdout
		}
		if stderr != nil {
			a.stderr = stderr
		}
	}
}

// NewApp creates a new CLI app with default dependencies.
func NewApp(opts ...AppOption) *App {
	a := &App{
		loadConfig:  config.LoadConfig,
		newKeystore: keystore.NewKeystore,
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
	}

	for _, opt := range opts {
		opt(a)
	}

	a.root = a.newRootCommand()
	return a
}

func (a *App) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "machinebox",
		Short: "Command-line client for machinebox.io boxes",
		Long: `machinebox talks to running machinebox.io boxes.

Box URLs come from --url, then MACHINEBOX_<BOX>_URL, then the config file,
and default to http://localhost:8080.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	// Global flags available to all commands.
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/machinebox/config.yaml)")
	root.PersistentFlags().StringVar(&a.url, "url", "", "box URL, overriding config and environment")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", 0, "timeout for each call, retries included (e.g. 10s)")
	root.PersistentFlags().IntVar(&a.retries, "retries", 0, "retry connection failures this many times with backoff")
	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "emit JSON output")
	root.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "log every box call to stderr")

	root.AddCommand(a.newInfoCommand())
	root.AddCommand(a.newHealthCommand())
	root.AddCommand(a.newReadyCommand())
	root.AddCommand(a.newTextboxCommand())
	root.AddCommand(a.newSuggestionboxCommand())
	root.AddCommand(a.newFaceboxCommand())
	root.AddCommand(a.newTagboxCommand())
	root.AddCommand(a.newVideoboxCommand())
	root.AddCommand(a.newAuthCommand())
	root.AddCommand(a.newInitCommand())
	root.AddCommand(a.newVersionCommand())

	return root
}

// SetArgs sets the command-line arguments, for tests.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

// Execute runs the root command.
func (a *App) Execute() error {
	return a.ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx. Every returned error
// carries an exit code.
func (a *App) ExecuteContext(ctx context.Context) error {
	err := a.root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee
	}
	return a.fail(err)
}

func (a *App) configPath() string {
	if a.cfgFile != "" {
		return a.cfgFile
	}
	return config.DefaultConfigPath()
}

func (a *App) initConfig() error {
	cfg, err := a.loadConfig(a.configPath())
	if err != nil {
		return err
	}
	a.cfg = cfg

	if a.timeout == 0 && cfg.Timeout > 0 {
		a.timeout = time.Duration(cfg.Timeout)
	}

	a.log = logrus.New()
	a.log.SetOutput(a.stderr)
	a.log.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006/01/02 15:04:05",
		FullTimestamp:   true,
		DisableSorting:  true,
	})
	a.log.SetLevel(logrus.WarnLevel)
	if a.verbose {
		a.log.SetLevel(logrus.DebugLevel)
	}
	return nil
}

// boxURL resolves the URL for a box.
func (a *App) boxURL(id string) string {
	if a.url != "" {
		return a.url
	}
	return a.cfg.BoxURL(id)
}

// newBox builds a client for the box id from flags, config and keystore.
func (a *App) newBox(id string) (core.Box, error) {
	if !boxes.IsRegistered(id) {
		return nil, fmt.Errorf("unknown box %q (available: %v)", id, boxes.List())
	}

	opts := []core.Option{core.WithRequestIDs()}
	if a.timeout > 0 {
		opts = append(opts, core.WithTimeout(a.timeout))
	}
	if a.retries > 0 {
		policy := core.NewRetryPolicy(core.RetryConfig{MaxRetries: a.retries})
		opts = append(opts, core.WithTransport(core.NewRetryTransport(core.NewHTTPTransport(nil), policy)))
	}
	if bc := a.cfg.GetBox(id); bc != nil && bc.Username != "" {
		password, err := a.password(id)
		if err != nil {
			return nil, err
		}
		opts = append(opts, core.WithBasicAuth(bc.Username, password))
	}
	if a.verbose {
		opts = append(opts, core.WithTelemetry(mblogrus.NewHook(a.log)))
	}

	url := a.boxURL(id)
	a.log.WithFields(logrus.Fields{"box": id, "url": url}).Debug("using box")
	return boxes.Create(id, url, opts...)
}

func (a *App) password(id string) (string, error) {
	ks, err := a.newKeystore()
	if err != nil {
		return "", fmt.Errorf("failed to open keystore: %w", err)
	}
	password, err := ks.Get(id)
	if err != nil {
		var notFound *keystore.ErrKeyNotFound
		if errors.As(err, &notFound) {
			return "", fmt.Errorf("no password stored for %s: run 'machinebox auth set %s' first", id, id)
		}
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return password, nil
}

// boxAs builds the box id and asserts its concrete client type.
func boxAs[T core.Box](a *App, id string) (T, error) {
	var zero T
	box, err := a.newBox(id)
	if err != nil {
		return zero, err
	}
	b, ok := box.(T)
	if !ok {
		return zero, fmt.Errorf("box %s has client type %T", id, box)
	}
	return b, nil
}

var defaultApp = NewApp()

// Execute runs the default app root command.
func Execute(ctx context.Context) error {
	return defaultApp.ExecuteContext(ctx)
}
