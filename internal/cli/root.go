package cli

import (
    "fmt"
    "os"

    "github.com/spf13/cobra"

    "termctl/internal/app"
    "termctl/internal/config"
    "termctl/internal/ui"
)

var rootCmd = &cobra.Command{
    Use:   "termctl",
    Short: "termctl – terminal panes for local shells and remote sessions",
    Long:  "termctl renders a terminal pane bound to a local shell or a remote session server, and hosts sessions for other panes.",
    RunE: func(cmd *cobra.Command, args []string) error {
        settings, err := config.Load()
        if err != nil {
            return err
        }
        server, _ := cmd.Flags().GetString("server")
        name, _ := cmd.Flags().GetString("session")
        command, _ := cmd.Flags().GetString("command")
        if server == "" {
            server = settings.Server
        }
        if command != "" {
            settings.InitialCommand = command
        }
        return app.Start(ui.Options{
            Settings:    settings,
            Server:      server,
            SessionName: name,
        })
    },
    SilenceUsage:  true,
    SilenceErrors: true,
}

func init() {
    rootCmd.Flags().StringP("server", "s", "", "session server address (host:port); empty runs a local shell")
    rootCmd.Flags().StringP("session", "n", "", "session name to bind (default \"1\")")
    rootCmd.Flags().StringP("command", "c", "", "command sent to the session once it is ready")
}

// Execute runs the CLI.
func Execute() {
    if err := rootCmd.Execute(); err != nil {
        fmt.Fprintln(os.Stderr, err)
        os.Exit(1)
    }
}
