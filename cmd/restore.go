package cmd

import (
    "fmt"

    "github.com/spf13/cobra"
    "datefix/internal"
)

var restoreCmd = &cobra.Command{
    Use:   "restore [folder]",
    Short: "Restore original files from their backups",
    Args:  cobra.ExactArgs(1),
    RunE: func(cmd *cobra.Command, args []string) error {
        conf, err := internal.LoadConfig()
        if err != nil {
            return err
        }

        backups := internal.NewBackupManager(conf)
        restored, err := backups.RestoreAll(args[0])
        if err != nil {
            return err
        }

        fmt.Printf("Restored %d files from backups.\n", restored)
        return nil
    },
}

var cleanupCmd = &cobra.Command{
    Use:   "cleanup [folder]",
    Short: "Delete backup files left behind by previous updates",
    Args:  cobra.ExactArgs(1),
    RunE: func(cmd *cobra.Command, args []string) error {
        conf, err := internal.LoadConfig()
        if err != nil {
            return err
        }

        backups := internal.NewBackupManager(conf)
        removed, err := backups.Cleanup(args[0])
        if err != nil {
            return err
        }

        fmt.Printf("Removed %d backup files.\n", removed)
        return nil
    },
}

func init() {
    rootCmd.AddCommand(restoreCmd)
    rootCmd.AddCommand(cleanupCmd)
}
