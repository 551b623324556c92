// Package cli is the command line surface of the integrator: flag parsing,
// parameter validation, console output and exit codes.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"dpm-integrator/internal/adapters/secondary/dpmtool"
	"dpm-integrator/internal/adapters/secondary/transport"
	"dpm-integrator/internal/config"
	"dpm-integrator/internal/core/domain"
	ports "dpm-integrator/internal/core/ports/output"
)

const (
	title                 = "DPM Tool Integrator"
	defaultToolConfigFile = "default-dpm-tool-config.json"
)

var errNoCommand = errors.New("single command with proper argument must be given")

// App runs one command line invocation.
type App struct {
	Stdout   io.Writer
	Stderr   io.Writer
	Prompter PasswordPrompter
	Settings *config.Config
	// DefaultToolConfig is used when --dpm-tool-config is not given.
	DefaultToolConfig string
	// Clock paces import polling. Nil means wall-clock time.
	Clock ports.Clock

	// status receives progress lines. It is stdout unless the command
	// writes a machine-readable document there.
	status io.Writer
}

func NewApp(settings *config.Config) *App {
	return &App{
		Stdout:            os.Stdout,
		Stderr:            os.Stderr,
		Prompter:          NewTerminalPrompter(os.Stdin, os.Stdout),
		Settings:          settings,
		DefaultToolConfig: defaultToolConfigPath(),
	}
}

func defaultToolConfigPath() string {
	exe, err := os.Executable()
	if err != nil {
		return defaultToolConfigFile
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), defaultToolConfigFile)
}

// Execute runs the command named by args and returns the process exit code.
func (a *App) Execute(ctx context.Context, args []string) (code int) {
	a.status = a.Stdout

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(a.Stderr, title)
			fmt.Fprintf(a.Stderr, "panic: %v\n\n%s\n", r, debug.Stack())
			code = 1
		}
	}()

	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(a.Stdout)
	root.SetErr(a.Stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		a.reportError(err)
		return 1
	}
	return 0
}

type globalOptions struct {
	toolConfig string
	username   string
	password   string
	verbose    string
}

func (a *App) rootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "dpm-integrator",
		Short:         "Imports databases into data models of a DPM tool",
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if f := cmd.Flags().Lookup("output"); f != nil && strings.ToLower(f.Value.String()) != outputText {
				a.status = a.Stderr
			}
			fmt.Fprintln(a.status, title)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return errNoCommand
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetVersionTemplate(versionText())

	defaultHelp := root.HelpFunc()
	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(a.Stdout, title)
		defaultHelp(cmd, args)
	})

	pf := root.PersistentFlags()
	pf.StringVar(&opts.toolConfig, "dpm-tool-config", "", fmt.Sprintf("DPM tool configuration file (default %s next to the executable)", defaultToolConfigFile))
	pf.StringVar(&opts.username, "username", "", "DPM tool user name")
	pf.StringVar(&opts.password, "password", "", "DPM tool password, asked interactively when omitted")
	pf.StringVar(&opts.verbose, "verbose", verboseNone, "logging: NONE, INFO, DEBUG or TRACE")

	root.AddCommand(a.listDataModelsCommand(opts))
	root.AddCommand(a.importDBCommand(opts))

	return root
}

func (a *App) reportError(err error) {
	fmt.Fprintf(a.Stderr, "\n%s\n\n", errorMessage(err))
}

func (a *App) newLogger(verbose string) *log.Logger {
	return newLogger(a.Settings.Logger, verbose, a.Stderr)
}

func (a *App) newClient(toolCfg *domain.ToolConfig, logger *log.Logger) ports.DPMToolClient {
	return dpmtool.NewDPMToolClient(toolCfg, transport.New(a.Settings.HTTP, logger), logger)
}

func (a *App) authenticate(ctx context.Context, client ports.DPMToolClient, p commonParams) error {
	fmt.Fprintf(a.status, "Authenticating: %s\n", p.Username)

	password, err := a.passwordFor(p)
	if err != nil {
		return err
	}
	return client.Authenticate(ctx, p.Username, password)
}
