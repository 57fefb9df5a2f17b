package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/devicepanel/internal/geomap"
)

// Table column widths. MAC addresses are fixed-width; the location column
// absorbs the rest.
const (
	colFlag = 2
	colMAC  = 19
	colName = 22
	colRoom = 16
)

// View renders the panel
func (m PanelModel) View() string {
	if m.loading {
		return fmt.Sprintf("\n  %s Loading devices...\n", m.spinner.View())
	}

	if m.confirm.active {
		return m.renderConfirmModal()
	}

	var b strings.Builder

	b.WriteString(TitleStyle.Render("Devices"))
	b.WriteString("\n")

	if len(m.rows) == 0 {
		b.WriteString(EmptyStateStyle.Render(m.emptyMessage))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderTable())
		b.WriteString(m.renderMapSection())
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(StatusStyle.Render("  " + m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(HelpStyle.Render(m.help.View(m.keys)))
	b.WriteString("\n")

	return b.String()
}

// renderTable renders the device rows with the cursor and edit indicators.
func (m PanelModel) renderTable() string {
	var b strings.Builder

	header := fmt.Sprintf("%-*s %-*s %-*s %-*s %s",
		colFlag, "",
		colMAC, "MAC",
		colName, "Name",
		colRoom, "Room",
		"Location",
	)
	b.WriteString(TableHeaderStyle.Render(header))
	b.WriteString("\n")

	editingIndex, editing := m.session.Editing()

	for i, row := range m.rows {
		// Flags are padded as plain text; the style is applied to the
		// whole line so column widths stay honest.
		flag := " "
		if row.SaveFailed {
			flag = "!"
		}
		if !editing && i == m.cursor {
			flag = ">"
		}

		name := row.DeviceName
		room := row.Room
		if editing && i == editingIndex {
			// The edited row shows live inputs in its editable cells
			name = m.nameInput.View()
			room = m.roomInput.View()
		}

		line := fmt.Sprintf("%-*s %-*s %-*s %-*s %s",
			colFlag, flag,
			colMAC, row.MACID,
			colName, name,
			colRoom, room,
			row.Location,
		)

		switch {
		case editing && i == editingIndex:
			b.WriteString(EditingRowStyle.Render(line))
		case !editing && i == m.cursor:
			b.WriteString(SelectedRowStyle.Render(line))
		case row.SaveFailed:
			b.WriteString(SaveFailedStyle.Render(line))
		default:
			b.WriteString(RowStyle.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// renderMapSection renders the map surface summary. The whole section is
// gated on a configured API key; the table is unaffected either way.
func (m PanelModel) renderMapSection() string {
	var b strings.Builder

	if m.mapKey != "" {
		markers := geomap.Markers(m.rows)

		b.WriteString("\n")
		b.WriteString(TitleStyle.Render("Map"))
		b.WriteString("\n")

		if len(markers) == 0 {
			b.WriteString(EmptyStateStyle.Render("No devices with a known location to plot."))
			b.WriteString("\n")
		} else {
			b.WriteString(RowStyle.Render(fmt.Sprintf("  %d device(s) plotted", len(markers))))
			b.WriteString("\n")
			b.WriteString(StatusStyle.Render("  " + geomap.StaticMapURL(m.mapKey, markers)))
			b.WriteString("\n")
		}
	}

	if m.invalidLocations > 0 {
		b.WriteString("\n")
		b.WriteString(MapNoteStyle.Render("  " + invalidLocationNote))
		b.WriteString("\n")
	}

	return b.String()
}

// renderConfirmModal renders the removal confirmation prompt.
func (m PanelModel) renderConfirmModal() string {
	cancel := ModalButtonStyle.Render("Cancel")
	remove := ModalButtonStyle.Render("Remove")
	if m.confirm.onRemove {
		remove = ModalButtonActiveStyle.Render("Remove")
	} else {
		cancel = ModalButtonActiveStyle.Render("Cancel")
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		fmt.Sprintf("Remove device %q?", m.confirm.deviceName),
		StatusStyle.Render(m.confirm.macID),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center, cancel, "  ", remove),
	)

	box := ModalStyle.Render(content)

	width := contentWidth(m.width)
	if m.height > 0 {
		return lipgloss.Place(width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}
