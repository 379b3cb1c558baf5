package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	logger    *zap.Logger
	stepLimit int
)

var rootCmd = &cobra.Command{
	Use:              "setdec [files...]",
	Short:            "setdec - a decision procedure for finite set formulas",
	TraverseChildren: true, // Prioritize subcommands
	Run: func(cmd *cobra.Command, args []string) {
		// no subcommand
		if len(args) == 0 {
			// display help when only 'setdec' is entered
			_ = cmd.Help()
			return
		}
		// Format: setdec [file1 file2 ...] => behaves like the prove subcommand
		proveCmd.Run(proveCmd, args)
	},
}

func Execute() error {
	var err error
	logger, err = zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().IntVar(&stepLimit, "limit", 0, "Step budget for the closure search (0 = unlimited)")
	rootCmd.AddCommand(proveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)
}
