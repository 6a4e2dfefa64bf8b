// Package commands implements the CLI command structure using Cobra.
package commands

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lightblue-platform/lightblue-client-go/cli/config"
	"github.com/lightblue-platform/lightblue-client-go/core"
)

// Exit codes
const (
	ExitSuccess    = 0
	ExitValidation = 1
	ExitRequest    = 2
	ExitNetwork    = 3
)

// ConfigLoader loads CLI config from a path.
type ConfigLoader func(path string) (*config.Config, error)

// Connector opens a connection to the data service.
type Connector func(ctx context.Context, url string, opts ...core.Option) (*core.DataConnection, error)

// AppOption customizes App dependencies.
type AppOption func(*App)

// App holds CLI state and runtime dependencies.
type App struct {
	root *cobra.Command

	loadConfig ConfigLoader
	connect    Connector
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer

	cfgFile  string
	url      string
	certFile string
	keyFile  string
	insecure bool
	timeout  time.Duration
	compact  bool
	verbose  bool
	cfg      *config.Config

	findProjection string
	findQuery      string
	findRange      string
	findSort       string
	findRequest    string

	insertData       string
	insertProjection string
	insertRequest    string
}

// WithConfigLoader injects a config loader dependency.
func WithConfigLoader(loader ConfigLoader) AppOption {
	return func(a *App) {
		if loader != nil {
			a.loadConfig = loader
		}
	}
}

// WithConnector injects the connection factory dependency.
func WithConnector(connect Connector) AppOption {
	return func(a *App) {
		if connect != nil {
			a.connect = connect
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
		loadConfig: config.LoadConfig,
		connect:    core.Connect,
		stdin:      os.Stdin,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
	}

	for _, opt := range opts {
		opt(a)
	}

	a.root = a.newRootCommand()
	return a
}

func (a *App) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "lbdata",
		Short: "lbdata - lightblue data service CLI",
		Long: `lbdata issues find and insert requests against a lightblue data service.

The service endpoint and TLS settings come from flags or from
~/.lightblue/config.yaml.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
		SilenceUsage: true,
	}

	// Global flags available to all commands.
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ~/.lightblue/config.yaml)")
	root.PersistentFlags().StringVar(&a.url, "url", "", "data service URL (e.g. https://host.example/db/data)")
	root.PersistentFlags().StringVar(&a.certFile, "cert", "", "client certificate PEM for mutual TLS")
	root.PersistentFlags().StringVar(&a.keyFile, "key", "", "client key PEM, when separate from --cert")
	root.PersistentFlags().BoolVar(&a.insecure, "insecure", false, "skip peer certificate verification")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", 0, "request timeout (0 = none)")
	root.PersistentFlags().BoolVar(&a.compact, "compact", false, "emit compact JSON even on a terminal")
	root.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "enable debug logging")

	root.AddCommand(a.newFindCommand())
	root.AddCommand(a.newInsertCommand())
	root.AddCommand(a.newVersionCommand())

	return root
}

// Execute runs the root command.
func (a *App) Execute() error {
	return a.root.Execute()
}

// SetArgs sets command-line arguments for testing.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

func (a *App) initConfig() error {
	path := a.cfgFile
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := a.loadConfig(path)
	if err != nil {
		return err
	}
	a.cfg = cfg

	// Apply config defaults if flags not set.
	if a.url == "" {
		a.url = cfg.URL
	}
	if a.certFile == "" {
		a.certFile = cfg.CertFile
	}
	if a.keyFile == "" {
		a.keyFile = cfg.KeyFile
	}
	if !a.insecure {
		a.insecure = cfg.InsecureSkipVerify
	}
	if a.timeout == 0 {
		a.timeout = time.Duration(cfg.Timeout)
	}

	return nil
}

// connectionOptions assembles core options from the effective settings.
func (a *App) connectionOptions() []core.Option {
	var opts []core.Option
	if a.certFile != "" {
		opts = append(opts, core.WithClientCert(a.certFile, a.keyFile))
	}
	if a.insecure {
		opts = append(opts, core.WithInsecureSkipVerify())
	}
	if a.timeout > 0 {
		opts = append(opts, core.WithTimeout(a.timeout))
	}
	if a.verbose {
		opts = append(opts, core.WithTelemetry(a.newLogHook()))
	}
	return opts
}

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) ExitCode() int {
	return e.code
}

func exitWithCode(code int, err error) error {
	return &exitError{code: code, err: err}
}

var defaultApp = NewApp()

// Execute runs the default app root command.
func Execute() error {
	return defaultApp.Execute()
}
