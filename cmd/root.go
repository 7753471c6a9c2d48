package cmd

import (
    "github.com/sirupsen/logrus"
    "github.com/spf13/cobra"
)

// Version is overridden at build time from the embedded VERSION file.
var Version = "dev"

var verboseFlag bool

var rootCmd = &cobra.Command{
    Use:   "datefix",
    Short: "Datefix capture-date analyzer and repair tool",
    PersistentPreRun: func(cmd *cobra.Command, args []string) {
        if verboseFlag {
            logrus.SetLevel(logrus.DebugLevel)
        }
    },
}

func Execute() error {
    return rootCmd.Execute()
}

// ApplyVersion pushes Version onto the root command after build-time injection.
func ApplyVersion() {
    rootCmd.Version = Version
}

func init() {
    rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")
    ApplyVersion()
}
