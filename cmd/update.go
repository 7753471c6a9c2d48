package cmd

import (
    "bufio"
    "fmt"
    "os"
    "strings"

    "github.com/spf13/cobra"
    "datefix/internal"
)

var (
    dryRunFlag             bool
    noBackupFlag           bool
    noDatetimeOriginalFlag bool
    noDateCreatedFlag      bool
    yesFlag                bool
)

var updateCmd = &cobra.Command{
    Use:   "update [folder]",
    Short: "Write suggested dates into files with missing date metadata",
    Args:  cobra.ExactArgs(1),
    RunE: func(cmd *cobra.Command, args []string) error {
        folder := args[0]

        fields := internal.FieldSelection{
            DateTimeOriginal: !noDatetimeOriginalFlag,
            DateCreated:      !noDateCreatedFlag,
        }
        if fields.Empty() {
            return fmt.Errorf("at least one date field must be enabled for updates")
        }

        conf, err := internal.LoadConfig()
        if err != nil {
            return err
        }

        codec := internal.NewCodec()
        defer codec.Close()

        analyzer := internal.NewAnalyzer(conf, codec)
        fmt.Printf("Analyzing media files in: %s\n", folder)

        records, err := analyzer.AnalyzeFolder(folder)
        if err != nil {
            return err
        }
        printSummary(internal.ComputeStatistics(records))

        targets := internal.FilesWithSuggestions(records)
        printUpdatePreview(targets)
        if len(targets) == 0 {
            return nil
        }

        if dryRunFlag {
            fmt.Println("\n[DRY RUN MODE] - No actual changes will be made")
        } else if !yesFlag && !confirmUpdate() {
            fmt.Println("Update cancelled.")
            return nil
        }

        opts := internal.UpdateOptions{
            DryRun: dryRunFlag,
            Backup: !noBackupFlag,
        }

        // A dry run must leave no artifact, so the session manifest is
        // only opened for real runs.
        var session *internal.UpdateSession
        if !dryRunFlag {
            session, err = internal.NewUpdateSession(folder)
            if err != nil {
                return err
            }
            defer session.Close()
            session.LogSessionStart(len(targets))
        }

        updater := internal.NewUpdater(conf, codec, internal.NewBackupManager(conf))
        outcomes, err := updater.UpdateAll(targets, fields, opts, session)
        if err != nil {
            return err
        }

        summary := internal.Summarize(outcomes)
        if session != nil {
            session.LogSessionEnd(summary)
        }
        printOutcomes(outcomes, summary, opts)
        return nil
    },
}

func printUpdatePreview(records []internal.AnalysisRecord) {
    if len(records) == 0 {
        fmt.Println("\nNo files have date suggestions for updating.")
        return
    }

    fmt.Println("\nUPDATE PREVIEW - The following dates will be written:")
    for _, r := range records {
        fmt.Printf("\nFile: %s\n", r.Name)
        fmt.Printf("Suggested date: %s (from %s)\n",
            r.Suggestion.Value.Format("2006-01-02 15:04:05"), r.Suggestion.Source)
        fmt.Printf("Will update: %v\n", r.Missing)
    }
    fmt.Printf("\nTotal files to update: %d\n", len(records))
}

func confirmUpdate() bool {
    reader := bufio.NewReader(os.Stdin)
    for {
        fmt.Print("\nProceed with updating dates? (y/n): ")
        line, err := reader.ReadString('\n')
        if err != nil {
            return false
        }
        switch strings.ToLower(strings.TrimSpace(line)) {
        case "y", "yes":
            return true
        case "n", "no":
            return false
        }
        fmt.Println("Please enter 'y' or 'n'")
    }
}

func printOutcomes(outcomes []internal.UpdateOutcome, summary internal.UpdateSummary, opts internal.UpdateOptions) {
    fmt.Println("\n============================================================")
    fmt.Println("UPDATE SUMMARY")
    fmt.Println("============================================================")
    fmt.Printf("Updated: %d\n", summary.Succeeded)
    fmt.Printf("Skipped: %d\n", summary.Skipped)
    fmt.Printf("Failed:  %d\n", summary.Failed)

    for _, o := range outcomes {
        switch o.Status {
        case internal.StatusSkipped:
            fmt.Printf("  skipped %s: %s\n", o.Path, o.Reason)
        case internal.StatusFailed:
            fmt.Printf("  failed  %s: %v\n", o.Path, o.Err)
        }
    }

    if summary.Succeeded > 0 && !opts.DryRun && opts.Backup {
        fmt.Println("\nOriginal files have been backed up with a .backup extension.")
    }
}

func init() {
    updateCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Show what would be updated without making changes")
    updateCmd.Flags().BoolVar(&noBackupFlag, "no-backup", false, "Don't create backup files when updating")
    updateCmd.Flags().BoolVar(&noDatetimeOriginalFlag, "no-datetime-original", false, "Don't update the DateTimeOriginal field")
    updateCmd.Flags().BoolVar(&noDateCreatedFlag, "no-date-created", false, "Don't update the DateCreated field")
    updateCmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "Skip the confirmation prompt")

    rootCmd.AddCommand(updateCmd)
}
