package main

import (
	"context"
	"os"

	"github.com/knitlab/knitscope/analyzer"
	"github.com/knitlab/knitscope/logger"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:     "knitscope",
	Short:   "Dependency wiring analyzer",
	Version: analyzer.Version,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func main() {
	rootCmd.AddCommand(analyzeCmd)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}
