package ui

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ConfirmDestructiveAction displays a warning box and prompts the user to
// type the confirmation phrase to proceed. Returns true if the user
// confirmed, false otherwise.
func ConfirmDestructiveAction(title string, warnings []string, phrase string) bool {
	width := GetTerminalWidth()

	var lines []string

	titleLine := lipgloss.NewStyle().
		Foreground(WarningColor).
		Bold(true).
		Render(fmt.Sprintf("   ⚠  WARNING  ─  %s", title))
	lines = append(lines, "")
	lines = append(lines, titleLine)
	lines = append(lines, "")

	for _, warning := range warnings {
		bulletStyle := lipgloss.NewStyle().Foreground(TextColor)
		lines = append(lines, bulletStyle.Render("   • "+warning))
	}
	lines = append(lines, "")

	content := strings.Join(lines, "\n")
	fmt.Println(WarningBoxStyle(width).Render(content))
	fmt.Println()

	promptStyle := lipgloss.NewStyle().
		Foreground(WarningColor).
		Bold(true)
	fmt.Print(promptStyle.Render(fmt.Sprintf("To proceed, type %q and press Enter: ", phrase)))

	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		fmt.Println()
		return false
	}

	if strings.TrimSpace(input) == phrase {
		fmt.Println()
		return true
	}

	fmt.Println()
	fmt.Println(MutedStyle.Render("  Operation cancelled."))
	fmt.Println()
	return false
}

// RemoveDeviceConfirmation is a pre-configured confirmation for removing a
// device from the account via the CLI. The interactive panel has its own
// confirmation modal; this guards the non-interactive path.
func RemoveDeviceConfirmation(deviceName, macID string) bool {
	return ConfirmDestructiveAction(
		"REMOVE DEVICE",
		[]string{
			fmt.Sprintf("This will remove %q (%s) from your account", deviceName, macID),
			"The device will disappear from the panel and the map",
			"Reconnecting the device requires setting it up again",
		},
		"REMOVE",
	)
}
