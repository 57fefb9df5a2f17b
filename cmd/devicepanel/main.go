// Devicepanel is a terminal panel for the devices on an account.
//
// It renders the account's device list with inline editing, removal with
// confirmation, and an optional map summary of device locations. The panel
// talks to the account console over HTTP and refreshes live when the console
// pushes device-change events.
//
// Usage:
//
//	devicepanel [command] [flags]
//
// Running without arguments launches the interactive panel.
// See 'devicepanel --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/devicepanel/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "devicepanel",
	Short: "Account Device Panel",
	Long: `A terminal panel for the devices on your account.

Shows the device list with inline editing of names and rooms, removal with
confirmation, and a map summary of device locations.

If no command is specified, the interactive panel will launch automatically.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: launch the panel when no subcommand provided
		return runPanel(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("devicepanel %s (commit: %s)\n", version.Version, version.Commit)
	},
}
