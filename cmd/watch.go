package cmd

import (
    "fmt"
    "os"
    "os/signal"
    "syscall"

    "github.com/sirupsen/logrus"
    "github.com/spf13/cobra"
    "datefix/internal"
)

var watchCmd = &cobra.Command{
    Use:   "watch [folder]",
    Short: "Watch a folder and analyze media files as they arrive",
    Args:  cobra.ExactArgs(1),
    RunE: func(cmd *cobra.Command, args []string) error {
        folder := args[0]

        info, err := os.Stat(folder)
        if err != nil || !info.IsDir() {
            return fmt.Errorf("folder does not exist or is not a directory: %s", folder)
        }

        conf, err := internal.LoadConfig()
        if err != nil {
            return err
        }

        codec := internal.NewCodec()
        defer codec.Close()
        analyzer := internal.NewAnalyzer(conf, codec)

        watcher, err := internal.NewWatcher(folder, conf)
        if err != nil {
            return err
        }
        defer watcher.Close()

        fmt.Printf("Watching %s for new media files (Ctrl-C to stop)...\n", folder)

        stop := make(chan os.Signal, 1)
        signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

        for {
            select {
            case event := <-watcher.Events():
                record := analyzer.AnalyzeFile(event.Path)
                if record.Suggestion != nil && len(record.Missing) > 0 {
                    fmt.Printf("%s: missing %v, suggest %s (%s, confidence %.2f)\n",
                        record.Name, record.Missing,
                        record.Suggestion.Value.Format("2006-01-02 15:04:05"),
                        record.Suggestion.Source, record.Suggestion.Confidence)
                } else if len(record.Missing) == 0 {
                    fmt.Printf("%s: date metadata complete\n", record.Name)
                }
            case err := <-watcher.Errors():
                logrus.WithError(err).Warn("watcher error")
            case <-stop:
                fmt.Println("\nStopping watcher.")
                return nil
            }
        }
    },
}

func init() {
    rootCmd.AddCommand(watchCmd)
}
