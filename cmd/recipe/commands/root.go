// Package commands implements the CLI commands of recipe.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/recipe/internal/app"
	"go.trai.ch/recipe/internal/build"
	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/recipe/internal/engine/flags"
	"go.trai.ch/recipe/internal/engine/matrix"
)

// Application represents the application logic interface.
type Application interface {
	Evaluate(req app.Request) (*app.Evaluation, error)
	Layout(req app.Request) ([]domain.PackageRule, error)
	Matrix(ctx context.Context, req app.MatrixRequest) ([]matrix.Entry, error)
	Build(ctx context.Context, req app.Request, opts app.BuildOptions) (*app.BuildResult, error)
}

// LogControl is implemented by loggers that can be tuned from the command line.
type LogControl interface {
	SetJSON(enable bool)
	SetQuiet(quiet bool)
}

// CLI represents the command line interface for recipe.
type CLI struct {
	app     Application
	logs    LogControl
	rootCmd *cobra.Command

	recipePath  string
	profilePath string
	options     []string
	settings    []string
	jsonOutput  bool
	quiet       bool
	logJSON     bool
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "recipe",
		Short:         "Resolve build options of the blockchain library package",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&c.recipePath, "recipe", "r", "", "Recipe file (default: ./recipe.yaml or the built-in recipe)")
	pf.StringVarP(&c.profilePath, "profile", "p", "", "Toolchain profile, YAML or JSONC (default: detect the host)")
	pf.StringArrayVarP(&c.options, "option", "o", nil, "Override an option, name=value (repeatable)")
	pf.StringArrayVarP(&c.settings, "setting", "s", nil, "Override a toolchain setting, key=value (repeatable)")
	pf.BoolVar(&c.jsonOutput, "json", false, "Print results as JSON")
	pf.BoolVarP(&c.quiet, "quiet", "q", false, "Only log warnings and errors")
	pf.BoolVar(&c.logJSON, "log-json", false, "Write log records as JSON")

	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if c.logs == nil {
			return
		}
		c.logs.SetQuiet(c.quiet)
		c.logs.SetJSON(c.logJSON)
	}

	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newDepsCmd())
	rootCmd.AddCommand(c.newFlagsCmd())
	rootCmd.AddCommand(c.newIdentityCmd())
	rootCmd.AddCommand(c.newMatrixCmd())
	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newLayoutCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// SetLogControl lets the --quiet and --log-json flags reconfigure the logger.
func (c *CLI) SetLogControl(lc LogControl) {
	c.logs = lc
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// request builds the application request from the persistent flags.
// CONAN_CXX_FLAGS and CONAN_C_FLAGS from the environment seed the build flags.
func (c *CLI) request() (app.Request, error) {
	options, err := domain.ParseAssignments(c.options)
	if err != nil {
		return app.Request{}, err
	}
	settings, err := domain.ParseAssignments(c.settings)
	if err != nil {
		return app.Request{}, err
	}

	var base domain.BuildFlags
	for _, name := range []string{flags.DefCXXFlags, flags.DefCFlags} {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			base.Set(name, v)
		}
	}

	return app.Request{
		RecipePath:  c.recipePath,
		ProfilePath: c.profilePath,
		Options:     options,
		Settings:    settings,
		BaseFlags:   base,
	}, nil
}
