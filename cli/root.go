package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aledsdavies/luz/internal/luzerr"
)

// Execute parses the command line and runs the requested script,
// returning the process exit code. Forms accepted, per the usage
// contract: `luz run|r [--debug|-d] <filepath>`, `luz <filepath>`,
// `luz help`.
func Execute() int {
	exitCode := 0

	var (
		debug   bool
		noColor bool
	)

	rootCmd := &cobra.Command{
		Use:           "luz [options] [command]",
		Short:         "Run Luz scripts",
		Long:          "luz is the interpreter for the Luz scripting language.\nPass a .luz file directly, or use the run subcommand.",
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true, // error printing is ours
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				exitCode = int(luzerr.IncorrectUsage)
				return nil
			}
			exitCode = RunFile(args[0], RunOptions{Debug: debug, NoColor: noColor})
			return nil
		},
	}

	runCmd := &cobra.Command{
		Use:     "run <filepath>",
		Aliases: []string{"r"},
		Short:   "Run a .luz script ('.' means main.luz in the current directory)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exitCode = RunFile(args[0], RunOptions{Debug: debug, NoColor: noColor})
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Print token and result traces while running")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored diagnostics")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s%v\n", Colorize("Error: ", ColorRed, ShouldUseColor(noColor, nil)), err)
		return int(luzerr.IncorrectUsage)
	}
	return exitCode
}
