package main

import (
	"fmt"
	"io"
	"os"

	"github.com/irisql/irisql"
	"github.com/irisql/irisql/ansi"
	"github.com/irisql/irisql/internal/render"
	"github.com/irisql/irisql/iris"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ValidOutputs lists the accepted --output values.
var ValidOutputs = []string{"text", "json"}

// dialectRenderer is what the commands need from a renderer.
type dialectRenderer interface {
	irisql.DDLRenderer
	Dialect() render.Dialect
}

type app struct {
	vi         *viper.Viper
	log        *zap.Logger
	configFile string
}

// NewRootCommand creates the irisql command tree.
func NewRootCommand() *cobra.Command {
	a := &app{vi: newViperWithDefaults(), log: zap.NewNop()}

	cmd := &cobra.Command{
		Use:           "irisql",
		Short:         "Render declarative queries as IRIS SQL",
		Long:          "Render YAML or JSON query and table documents as InterSystems IRIS or ANSI SQL.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default ./irisql.yaml or $HOME/.config/irisql/irisql.yaml)")
	flags.String("dialect", "iris", "SQL dialect (iris|ansi)")
	flags.StringP("output", "o", "text", "output format (text|json)")
	a.vi.BindPFlag("dialect", flags.Lookup("dialect")) //nolint:errcheck
	a.vi.BindPFlag("output", flags.Lookup("output"))   //nolint:errcheck

	cmd.AddCommand(newRenderCommand(a))
	cmd.AddCommand(newDDLCommand(a))
	cmd.AddCommand(newIdentityCommand(a))
	cmd.AddCommand(newCapabilitiesCommand(a))

	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	if err := readConfig(a.vi, a.configFile); err != nil {
		return err
	}
	if !isValidOutput(a.vi.GetString("output")) {
		return fmt.Errorf("invalid output %q: must be one of %v", a.vi.GetString("output"), ValidOutputs)
	}

	log, err := newLogger(a.vi.GetString("log.format"), a.vi.GetString("log.level"), zapcore.AddSync(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	a.log = log
	if used := a.vi.ConfigFileUsed(); used != "" {
		a.log.Debug("loaded config", zap.String("file", used))
	}
	return nil
}

func (a *app) renderer() (dialectRenderer, error) {
	switch name := a.vi.GetString("dialect"); name {
	case "iris":
		return iris.New(), nil
	case "ansi":
		return ansi.New(), nil
	default:
		return nil, fmt.Errorf("unknown dialect %q: must be iris or ansi", name)
	}
}

func (a *app) jsonOutput() bool {
	return a.vi.GetString("output") == "json"
}

// readInput reads the named file, or stdin when name is "-".
func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "" {
		return nil, fmt.Errorf("an input file is required (-f)")
	}
	if name == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(name)
}

func isValidOutput(output string) bool {
	for _, o := range ValidOutputs {
		if o == output {
			return true
		}
	}
	return false
}
