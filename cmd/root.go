package cmd

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-prompt/pkg/config"
)

// Options are the persistent flags shared by every command.
type Options struct {
	ConfigPath string
	Verbose    bool
	JSONOutput bool
}

// GetOptions reads the persistent flags of cmd.
func GetOptions(cmd *cobra.Command) Options {
	var opts Options
	opts.ConfigPath, _ = cmd.Flags().GetString("config")
	opts.Verbose, _ = cmd.Flags().GetBool("verbose")
	opts.JSONOutput, _ = cmd.Flags().GetBool("json")
	return opts
}

// loadConfig reads the configuration selected by the --config flag.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	return config.Load(GetOptions(cmd).ConfigPath)
}

// isTerminal reports whether stdin and stdout are both interactive.
func isTerminal() bool {
	in, out := os.Stdin.Fd(), os.Stdout.Fd()
	return (isatty.IsTerminal(in) || isatty.IsCygwinTerminal(in)) &&
		(isatty.IsTerminal(out) || isatty.IsCygwinTerminal(out))
}

// NewRootCmd creates the gprompt root command. Run without a subcommand on a
// terminal it opens the interactive view of the current directory.
func NewRootCmd() *cobra.Command {
	var closeLog func() error

	cmd := &cobra.Command{
		Use:   "gprompt",
		Short: "Assemble LLM prompts from selected files",
		Long: `Pick files from a folder, choose a task type and an instruction template, and
get a ready-to-paste prompt together with a difficulty estimate.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts := GetOptions(cmd)
			interactive := cmd.Name() == "view" || (cmd == cmd.Root() && isTerminal())
			closer, err := configureLogging(opts.Verbose, interactive)
			if err != nil {
				return err
			}
			closeLog = closer.Close
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if closeLog != nil {
				return closeLog()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal() {
				return cmd.Help()
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runView(cfg, ".")
		},
	}

	cmd.PersistentFlags().StringP("config", "c", "", "Path to a config file (default: $XDG_CONFIG_HOME/grove-prompt/config.yml)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format where supported")

	return cmd
}
