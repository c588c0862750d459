package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MrJamesThe3rd/mockuments/internal/app"
)

const envPrefix = "MOCKUMENTS"

// CLI is the mockuments command line.
type CLI struct {
	out     io.Writer
	appOpts []app.Option
	now     func() time.Time
	v       *viper.Viper
	rootCmd *cobra.Command
}

type Options struct {
	Output io.Writer
	// AppOptions are passed through when the services are assembled.
	AppOptions []app.Option
	Now        func() time.Time
}

func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	if opts.Now == nil {
		opts.Now = time.Now
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cli := &CLI{out: opts.Output, appOpts: opts.AppOptions, now: opts.Now, v: v}
	cli.rootCmd = cli.newRootCmd()

	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

// SetArgs overrides os.Args, for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:           "mockuments",
		Short:         "Generate synthetic financial documents as PDFs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if configFile == "" {
				return nil
			}

			cli.v.SetConfigFile(configFile)

			if err := cli.v.ReadInConfig(); err != nil {
				return fmt.Errorf("failed to read config file: %w", err)
			}

			return nil
		},
	}

	cmd.SetOut(cli.out)
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "Optional config file with flag defaults (yaml, json or toml)")

	cmd.AddCommand(cli.newGenerateCmd())
	cmd.AddCommand(cli.newCatalogCmd())

	return cmd
}
