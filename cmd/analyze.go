package cmd

import (
    "fmt"

    "github.com/spf13/cobra"
    "datefix/internal"
)

var detailedFlag bool

var analyzeCmd = &cobra.Command{
    Use:   "analyze [folder]",
    Short: "Analyze media files for missing capture-date metadata",
    Long: `Scan a folder recursively for images and videos, check which date
fields are missing from their metadata, and suggest the most reliable
replacement date from EXIF tags, video creation tags, the filename and
filesystem timestamps.`,
    Args: cobra.ExactArgs(1),
    RunE: func(cmd *cobra.Command, args []string) error {
        folder := args[0]

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

        missing := internal.FilesWithMissingDates(records)
        if detailedFlag {
            printFileAnalysis(missing)
        }

        if len(missing) > 0 {
            fmt.Printf("\nFound %d files with missing dates.\n", len(missing))
            fmt.Println("Use 'datefix update' to repair them or --detailed to see more.")
        } else {
            fmt.Println("\nAll files have complete date metadata.")
        }
        return nil
    },
}

func printSummary(stats internal.BatchStatistics) {
    fmt.Println("\n============================================================")
    fmt.Println("DATE ANALYSIS SUMMARY")
    fmt.Println("============================================================")
    fmt.Printf("Total files analyzed: %d\n", stats.TotalFiles)
    fmt.Printf("Image files: %d\n", stats.ImageFiles)
    fmt.Printf("Video files: %d\n", stats.VideoFiles)
    for _, field := range internal.TargetFields {
        fmt.Printf("Files missing %s: %d\n", field, stats.MissingByField[field])
    }
    fmt.Printf("Files with date suggestions: %d\n", stats.WithSuggestion)
    fmt.Println("============================================================")
}

func printFileAnalysis(records []internal.AnalysisRecord) {
    if len(records) == 0 {
        fmt.Println("No files with missing dates found.")
        return
    }

    fmt.Println("\nFILES WITH MISSING DATES")
    for _, r := range records {
        fmt.Printf("\nFile: %s\n", r.Name)
        fmt.Printf("Path: %s\n", r.Path)
        fmt.Printf("Kind: %s, size: %d bytes\n", r.Kind, r.SizeBytes)
        fmt.Printf("Missing: %v\n", r.Missing)

        fmt.Println("Available dates:")
        for _, c := range r.Candidates {
            fmt.Printf("  - %s: %s (confidence %.2f)\n", c.Source, c.Value.Format("2006-01-02 15:04:05"), c.Confidence)
        }

        if r.Suggestion != nil {
            fmt.Printf("Suggested date: %s (source: %s)\n",
                r.Suggestion.Value.Format("2006-01-02 15:04:05"), r.Suggestion.Source)
        } else {
            fmt.Println("No date suggestion available")
        }
    }
}

func init() {
    analyzeCmd.Flags().BoolVar(&detailedFlag, "detailed", false, "Show per-file analysis")

    rootCmd.AddCommand(analyzeCmd)
}
