package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/muurk/devicepanel/internal/api"
	"github.com/muurk/devicepanel/internal/config"
	"github.com/muurk/devicepanel/internal/discovery"
	"github.com/muurk/devicepanel/internal/logging"
	"github.com/muurk/devicepanel/internal/panel"
	"github.com/muurk/devicepanel/internal/tui"
	"github.com/muurk/devicepanel/internal/ui"
)

// Command flags
var (
	noLiveRefresh bool
	skipConfirm   bool
	scanTimeout   int

	cfgBaseURL     string
	cfgToken       string
	cfgMapKey      string
	cfgLiveRefresh bool
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&noLiveRefresh, "no-live", false, "Disable live refresh from the console event stream")

	rootCmd.AddCommand(panelCmd)
	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(discoverCmd)
}

// setup initializes logging and loads the configuration registry.
func setup() (*config.Registry, error) {
	if err := logging.InitializeFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	registry, err := config.LoadRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return registry, nil
}

// consoleClient builds the API client from the registry. An unconfigured
// console is an error for commands that must talk to it; the panel itself
// handles the no-credential case with its empty state instead.
func consoleClient(registry *config.Registry) (*api.Client, error) {
	if registry.Console == nil || registry.Console.BaseURL == "" {
		return nil, fmt.Errorf("no console URL configured. Run 'devicepanel config --url <url> --token <token>' first")
	}
	if !registry.HasCredential() {
		return nil, fmt.Errorf("no access token configured. Run 'devicepanel config --token <token>' first")
	}
	return api.NewClient(registry.Console.BaseURL, registry.Console.AccessToken), nil
}

// panelCmd launches the interactive device panel
var panelCmd = &cobra.Command{
	Use:   "panel",
	Short: "Launch the interactive device panel",
	Long: `Launch the interactive TUI device panel.

The panel shows all devices on the account with their MAC address, name,
room, and location. Rows can be edited inline, and devices can be removed
after confirmation. When live refresh is enabled the panel refetches the
list whenever the console pushes a device-change event.`,
	Example: `  # Launch the panel (also the default when no command is given)
  devicepanel panel
  devicepanel

  # Launch without the live event stream
  devicepanel panel --no-live`,
	RunE: runPanel,
}

func runPanel(cmd *cobra.Command, args []string) error {
	registry, err := setup()
	if err != nil {
		return err
	}
	defer logging.Sync()

	hasCredential := registry.HasCredential() && registry.Console.BaseURL != ""

	var service tui.DeviceService
	var events <-chan api.DeviceEvent

	if hasCredential {
		client := api.NewClient(registry.Console.BaseURL, registry.Console.AccessToken)
		service = client

		liveRefresh := registry.Preferences != nil && registry.Preferences.LiveRefresh
		if liveRefresh && !noLiveRefresh {
			stream := api.NewStream(registry.Console.BaseURL, registry.Console.AccessToken)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			defer stream.Close()
			go stream.Run(ctx)
			events = stream.Events()
		}
	} else {
		// The panel renders the explanatory empty state; it never fetches.
		service = api.NewClient("", "")
	}

	model := tui.NewPanelModel(service, events, registry.MapKey(), hasCredential)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("panel error: %w", err)
	}

	return nil
}

// devicesCmd lists devices without entering the TUI
var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List the devices on the account",
	Long: `Print the account's device list to stdout.

Shows the same normalized rows as the interactive panel: MAC address, name,
room, and location. Devices whose coordinates could not be retrieved show
"Not found" as their location.`,
	Example: `  devicepanel devices`,
	RunE:    runDevices,
}

func runDevices(cmd *cobra.Command, args []string) error {
	registry, err := setup()
	if err != nil {
		return err
	}
	defer logging.Sync()

	client, err := consoleClient(registry)
	if err != nil {
		return err
	}

	devices, err := client.GetDevices(context.Background())
	if err != nil {
		return fmt.Errorf("failed to fetch devices: %w", err)
	}

	rows, invalid := panel.Build(devices)
	if len(rows) == 0 {
		fmt.Println("No devices on this account.")
		return nil
	}

	fmt.Printf("%-19s %-22s %-16s %s\n", "MAC", "Name", "Room", "Location")
	for _, row := range rows {
		fmt.Printf("%-19s %-22s %-16s %s\n", row.MACID, row.DeviceName, row.Room, row.Location)
	}

	if invalid > 0 {
		fmt.Printf("\nLocation info of %d device(s) could not be retrieved.\n", invalid)
	}

	return nil
}

// removeCmd removes a device from the account
var removeCmd = &cobra.Command{
	Use:   "remove <mac>",
	Short: "Remove a device from the account",
	Long: `Remove the device with the given MAC address from the account.

This is the non-interactive counterpart of the panel's removal flow. The
command looks the device up first and asks for a typed confirmation before
deleting it.`,
	Example: `  # Remove with confirmation prompt
  devicepanel remove AA:BB:CC:DD:EE:FF

  # Remove without prompting (for scripts)
  devicepanel remove AA:BB:CC:DD:EE:FF --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	removeCmd.Flags().BoolVar(&skipConfirm, "yes", false, "Skip the confirmation prompt")
}

func runRemove(cmd *cobra.Command, args []string) error {
	registry, err := setup()
	if err != nil {
		return err
	}
	defer logging.Sync()

	client, err := consoleClient(registry)
	if err != nil {
		return err
	}

	macID := strings.ToUpper(args[0])
	printer := ui.NewPrinter(nil)

	// Look the device up so the confirmation can name it
	devices, err := client.GetDevices(context.Background())
	if err != nil {
		return fmt.Errorf("failed to fetch devices: %w", err)
	}

	record, ok := devices[macID]
	if !ok {
		return fmt.Errorf("no device with MAC %s on this account", macID)
	}

	if !skipConfirm && !ui.RemoveDeviceConfirmation(record.Name, macID) {
		return nil
	}

	if err := client.RemoveDevice(context.Background(), macID); err != nil {
		printer.PrintError("Device removal", err, []string{
			"Check that the console is reachable",
			"Verify your access token with 'devicepanel devices'",
			"The device may have been removed by another session already",
		})
		return fmt.Errorf("failed to remove device %s", macID)
	}

	printer.PrintSuccess("Device removed", map[string]string{
		"Name": record.Name,
		"MAC":  macID,
	})

	return nil
}

// configCmd shows or updates the configuration registry
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update configuration",
	Long: `Show or update the devicepanel configuration.

Without flags, prints the current configuration. With flags, updates the
given settings and saves the file.`,
	Example: `  # Show current configuration
  devicepanel config

  # Point the panel at a console
  devicepanel config --url https://console.example.com/api --token <token>

  # Configure the static map key
  devicepanel config --map-key <key>

  # Disable live refresh permanently
  devicepanel config --live-refresh=false`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&cfgBaseURL, "url", "", "Console API base URL")
	configCmd.Flags().StringVar(&cfgToken, "token", "", "Console access token")
	configCmd.Flags().StringVar(&cfgMapKey, "map-key", "", "Static map provider API key")
	configCmd.Flags().BoolVar(&cfgLiveRefresh, "live-refresh", true, "Refetch on console device-change events")
}

func runConfig(cmd *cobra.Command, args []string) error {
	registry, err := setup()
	if err != nil {
		return err
	}
	defer logging.Sync()

	changed := false

	if cfgBaseURL != "" || cfgToken != "" {
		registry.SetConsole(cfgBaseURL, cfgToken)
		changed = true
	}
	if cmd.Flags().Changed("map-key") {
		registry.SetMapKey(cfgMapKey)
		changed = true
	}
	if cmd.Flags().Changed("live-refresh") {
		if registry.Preferences == nil {
			registry.Preferences = &config.Preferences{DiscoverTimeout: 10}
		}
		registry.Preferences.LiveRefresh = cfgLiveRefresh
		changed = true
	}

	if changed {
		if err := registry.Save(); err != nil {
			return fmt.Errorf("failed to save configuration: %w", err)
		}
		fmt.Println("Configuration saved.")
		return nil
	}

	// No flags: show current configuration
	configPath, err := config.GetConfigPath()
	if err != nil {
		return err
	}

	fmt.Printf("Configuration file: %s\n\n", configPath)
	if registry.Console != nil && registry.Console.BaseURL != "" {
		fmt.Printf("Console URL:  %s\n", registry.Console.BaseURL)
	} else {
		fmt.Println("Console URL:  (not set)")
	}
	if registry.HasCredential() {
		fmt.Println("Access token: (set)")
	} else {
		fmt.Println("Access token: (not set)")
	}
	if registry.MapKey() != "" {
		fmt.Println("Map key:      (set)")
	} else {
		fmt.Println("Map key:      (not set)")
	}
	if registry.Preferences != nil {
		fmt.Printf("Live refresh: %v\n", registry.Preferences.LiveRefresh)
	}

	return nil
}

// discoverCmd scans the local network for devices
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Scan the local network for devices",
	Long: `Scan the local network for devices using mDNS/DNS-SD.

Devices advertise their MAC address in their mDNS TXT records, so discovered
devices can be matched against the MAC addresses shown in the panel. This
helps identify which physical device a panel row refers to.`,
	Example: `  # Scan with the configured timeout (default 10s)
  devicepanel discover

  # Quick 3-second scan
  devicepanel discover --timeout 3`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().IntVar(&scanTimeout, "timeout", 0, "Scan timeout in seconds (0 uses the configured default)")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	registry, err := setup()
	if err != nil {
		return err
	}
	defer logging.Sync()

	timeout := scanTimeout
	if timeout <= 0 {
		timeout = 10
		if registry.Preferences != nil && registry.Preferences.DiscoverTimeout > 0 {
			timeout = registry.Preferences.DiscoverTimeout
		}
	}

	fmt.Printf("Scanning for devices (timeout: %ds)...\n\n", timeout)

	devices, err := discovery.ScanForDevices(time.Duration(timeout) * time.Second)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(devices) == 0 {
		fmt.Println("No devices found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Ensure devices are powered on and connected to this network")
		fmt.Println("  - Try increasing --timeout for slower networks")
		fmt.Println("  - Devices must advertise their MAC in their mDNS TXT records")
		return nil
	}

	fmt.Printf("Found %d device(s):\n\n", len(devices))

	for i, device := range devices {
		fmt.Printf("%d. %s\n", i+1, device.MAC)
		fmt.Printf("   Hostname: %s\n", device.Hostname)
		fmt.Printf("   IP:       %s:%d\n", device.IP, device.Port)
		fmt.Println()
	}

	fmt.Println("Match these MAC addresses against the rows in 'devicepanel devices'")

	return nil
}
