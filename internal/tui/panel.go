package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muurk/devicepanel/internal/api"
	"github.com/muurk/devicepanel/internal/logging"
	"github.com/muurk/devicepanel/internal/panel"
)

// Messages shown in the empty-state slot. Fetch failure is not a separate
// view state; it shares the slot and differs only by text.
const (
	defaultEmptyMessage = "You do not have any devices connected yet!"
	fetchErrorMessage   = "Some error occurred while fetching the devices!"
	noCredentialMessage = "No access token configured. Run 'devicepanel config --token <token>' to sign in."
)

// invalidLocationNote is shown under the map when one or more devices could
// not be located.
const invalidLocationNote = "NOTE: Location info of one or more devices could not be retrieved."

// DeviceService is the external device interface the panel consumes.
// *api.Client satisfies it; tests substitute a fake.
type DeviceService interface {
	GetDevices(ctx context.Context) (api.DeviceCollection, error)
	UpdateDevice(ctx context.Context, update api.DeviceUpdate) error
	RemoveDevice(ctx context.Context, macID string) error
}

// Message types for async operations
type devicesFetchedMsg struct {
	devices api.DeviceCollection
}

type fetchFailedMsg struct {
	err error
}

type saveResultMsg struct {
	macID string
	name  string
	err   error
}

type removeResultMsg struct {
	macID string
	name  string
	err   error
}

type streamEventMsg struct {
	event api.DeviceEvent
}

type streamClosedMsg struct{}

// editField identifies which input is focused while a row is in edit mode
type editField int

const (
	editName editField = iota
	editRoom
)

// confirmState is the Confirmation Gate: a single global modal slot.
// Opening a new prompt replaces any prior unconfirmed one. The device is
// captured by MAC at request time and resolved to an index only when the
// removal executes.
type confirmState struct {
	active     bool
	macID      string
	deviceName string
	onRemove   bool // modal button cursor: false = Cancel, true = Remove
}

// panelKeyMap defines key bindings for the panel
type panelKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Edit    key.Binding
	Save    key.Binding
	Switch  key.Binding
	Remove  key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k panelKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Edit, k.Remove, k.Refresh, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k panelKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Edit, k.Save},
		{k.Switch, k.Remove, k.Refresh, k.Quit},
	}
}

// PanelModel is the device panel: a single state container owning the row
// list, the derived invalid-location count, the edit session, and the
// confirmation modal slot. All transitions run through Update, so every
// read sees a consistent snapshot.
type PanelModel struct {
	// External collaborators
	service DeviceService
	events  <-chan api.DeviceEvent // nil disables live refresh
	mapKey  string

	// Reconciled device state
	rows             []panel.Row
	invalidLocations int
	session          panel.Session

	// View state
	cursor       int
	loading      bool
	emptyMessage string
	status       string
	confirm      confirmState

	// Inline edit inputs (draft display only; values are mirrored into the
	// row list on every keystroke, so switching rows keeps applied edits)
	nameInput textinput.Model
	roomInput textinput.Model
	focused   editField

	// UI chrome
	spinner spinner.Model
	help    help.Model
	keys    panelKeyMap

	width  int
	height int
}

// NewPanelModel creates the panel. A nil events channel disables live
// refresh. When no credential is configured the panel performs no fetch at
// all and lands in the empty state with an explanatory message.
func NewPanelModel(service DeviceService, events <-chan api.DeviceEvent, mapKey string, hasCredential bool) PanelModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	nameInput := textinput.New()
	nameInput.CharLimit = 64
	nameInput.Width = 20

	roomInput := textinput.New()
	roomInput.CharLimit = 64
	roomInput.Width = 16

	keys := panelKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter", "e"),
			key.WithHelp("enter/e", "edit"),
		),
		Save: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "remove"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}

	m := PanelModel{
		service:      service,
		events:       events,
		mapKey:       mapKey,
		session:      panel.NewSession(),
		emptyMessage: defaultEmptyMessage,
		nameInput:    nameInput,
		roomInput:    roomInput,
		spinner:      s,
		help:         help.New(),
		keys:         keys,
	}

	if hasCredential {
		m.loading = true
	} else {
		m.emptyMessage = noCredentialMessage
	}

	return m
}

// Init starts the initial fetch (when a credential exists) and the event
// stream listener.
func (m PanelModel) Init() tea.Cmd {
	cmds := []tea.Cmd{}

	if m.loading {
		cmds = append(cmds, m.spinner.Tick, m.fetchCmd())
	}
	if m.events != nil {
		cmds = append(cmds, m.waitForEventCmd())
	}

	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model
func (m PanelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case devicesFetchedMsg:
		return m.handleFetched(msg)

	case fetchFailedMsg:
		m.loading = false
		m.emptyMessage = fetchErrorMessage
		logging.Error("Device fetch failed", zap.Error(msg.err))
		return m, nil

	case saveResultMsg:
		return m.handleSaveResult(msg)

	case removeResultMsg:
		return m.handleRemoveResult(msg)

	case streamEventMsg:
		// Any device-change event triggers a silent refetch
		return m, tea.Batch(m.fetchCmd(), m.waitForEventCmd())

	case streamClosedMsg:
		m.events = nil
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// The confirmation modal owns the keyboard while open
		if m.confirm.active {
			return m.updateConfirmModal(msg)
		}

		if _, editing := m.session.Editing(); editing {
			return m.updateEditMode(msg)
		}
		return m.updateViewMode(msg)
	}

	return m, nil
}

// handleFetched rebuilds the row list from a fresh device collection.
func (m PanelModel) handleFetched(msg devicesFetchedMsg) (tea.Model, tea.Cmd) {
	m.loading = false

	// An absent collection means "not yet loaded"; keep previous state
	// rather than destructively overwriting it.
	if msg.devices == nil {
		return m, nil
	}

	m.rows, m.invalidLocations = panel.Build(msg.devices)
	m.emptyMessage = defaultEmptyMessage
	m.session = panel.NewSession()
	if m.cursor >= len(m.rows) {
		m.cursor = 0
	}
	return m, nil
}

// handleSaveResult records the outcome of a fire-and-forget persist. The
// edit stays applied either way; failures tag the row and the status line
// instead of rolling back.
func (m PanelModel) handleSaveResult(msg saveResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.rows = panel.MarkSaveFailed(m.rows, msg.macID, true)
		m.status = fmt.Sprintf("Could not save %q - the console rejected the update", msg.name)
		logging.Error("Device save failed",
			zap.String("mac_id", msg.macID),
			zap.Error(msg.err),
		)
		return m, nil
	}

	m.rows = panel.MarkSaveFailed(m.rows, msg.macID, false)
	m.status = fmt.Sprintf("Saved %q", msg.name)
	return m, nil
}

// handleRemoveResult splices the row out on success; on failure the row is
// retained and the failure reported.
func (m PanelModel) handleRemoveResult(msg removeResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = fmt.Sprintf("Could not remove %q", msg.name)
		logging.Error("Device removal failed",
			zap.String("mac_id", msg.macID),
			zap.Error(msg.err),
		)
		return m, nil
	}

	index := panel.IndexOfMAC(m.rows, msg.macID)
	m.rows = panel.RemoveByMAC(m.rows, msg.macID)
	if index >= 0 {
		m.session.Adjust(index)
	}
	// Removal can take a not-found row with it, so recount
	m.invalidLocations = panel.CountInvalidLocations(m.rows)
	if m.cursor >= len(m.rows) && m.cursor > 0 {
		m.cursor = len(m.rows) - 1
	}
	m.status = fmt.Sprintf("Removed %q", msg.name)
	return m, nil
}

// updateViewMode handles input when no row is being edited.
func (m PanelModel) updateViewMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Edit):
		if len(m.rows) > 0 {
			m.startEditing(m.cursor)
		}

	case key.Matches(msg, m.keys.Remove):
		if len(m.rows) > 0 {
			m.requestRemoval(m.cursor)
		}

	case key.Matches(msg, m.keys.Refresh):
		m.status = "Refreshing..."
		return m, m.fetchCmd()
	}

	return m, nil
}

// updateEditMode handles input while a row's fields are mutable.
func (m PanelModel) updateEditMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	index, _ := m.session.Editing()

	switch msg.String() {
	case "enter":
		return m.saveRow(index)

	case "esc":
		// Leaving without saving keeps the applied edits on screen; only
		// an explicit save persists them.
		m.session.Save()
		m.status = ""
		return m, nil

	case "tab":
		if m.focused == editName {
			m.focused = editRoom
			m.nameInput.Blur()
			m.roomInput.Focus()
		} else {
			m.focused = editName
			m.roomInput.Blur()
			m.nameInput.Focus()
		}
		return m, nil

	case "up":
		// Switching rows mid-edit moves the session without any implicit
		// save; field changes already applied to the old row are kept.
		if index > 0 {
			m.startEditing(index - 1)
		}
		return m, nil

	case "down":
		if index < len(m.rows)-1 {
			m.startEditing(index + 1)
		}
		return m, nil
	}

	// Route the keystroke to the focused input, then mirror its value into
	// the row list so state always reflects what is on screen.
	var cmd tea.Cmd
	if m.focused == editName {
		m.nameInput, cmd = m.nameInput.Update(msg)
		m.rows = panel.EditField(m.rows, index, panel.FieldDeviceName, m.nameInput.Value())
	} else {
		m.roomInput, cmd = m.roomInput.Update(msg)
		m.rows = panel.EditField(m.rows, index, panel.FieldRoom, m.roomInput.Value())
	}
	return m, cmd
}

// updateConfirmModal handles input while the removal confirmation is open.
func (m PanelModel) updateConfirmModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "right", "tab":
		m.confirm.onRemove = !m.confirm.onRemove
		return m, nil

	case "esc", "n":
		// Close without confirming: no state change
		m.confirm = confirmState{}
		return m, nil

	case "enter":
		if !m.confirm.onRemove {
			m.confirm = confirmState{}
			return m, nil
		}
		macID := m.confirm.macID
		name := m.confirm.deviceName
		m.confirm = confirmState{}
		m.status = fmt.Sprintf("Removing %q...", name)
		return m, m.removeCmd(macID, name)
	}

	return m, nil
}

// startEditing puts the given row into edit mode and seeds the inputs from
// its current values.
func (m *PanelModel) startEditing(index int) {
	m.session.Start(index)
	m.cursor = index

	row := m.rows[index]
	m.nameInput.SetValue(row.DeviceName)
	m.roomInput.SetValue(row.Room)
	m.focused = editName
	m.nameInput.Focus()
	m.roomInput.Blur()
	m.nameInput.CursorEnd()
}

// saveRow ends the edit session and fires the persist. The UI does not
// block on the result; failure comes back as a saveResultMsg.
func (m PanelModel) saveRow(index int) (tea.Model, tea.Cmd) {
	m.session.Save()
	m.nameInput.Blur()
	m.roomInput.Blur()

	if index < 0 || index >= len(m.rows) {
		return m, nil
	}
	row := m.rows[index]
	m.status = fmt.Sprintf("Saving %q...", row.DeviceName)
	return m, m.saveCmd(row)
}

// requestRemoval opens the confirmation prompt for the given row, capturing
// its identity by MAC. Opening a new prompt replaces any prior one.
func (m *PanelModel) requestRemoval(index int) {
	row := m.rows[index]
	m.confirm = confirmState{
		active:     true,
		macID:      row.MACID,
		deviceName: row.DeviceName,
	}
}

// Commands

func (m PanelModel) fetchCmd() tea.Cmd {
	service := m.service
	return func() tea.Msg {
		devices, err := service.GetDevices(context.Background())
		if err != nil {
			return fetchFailedMsg{err: err}
		}
		return devicesFetchedMsg{devices: devices}
	}
}

func (m PanelModel) saveCmd(row panel.Row) tea.Cmd {
	service := m.service
	update := api.DeviceUpdate{
		MACID: row.MACID,
		Name:  row.DeviceName,
		Room:  row.Room,
	}
	return func() tea.Msg {
		err := service.UpdateDevice(context.Background(), update)
		return saveResultMsg{macID: row.MACID, name: row.DeviceName, err: err}
	}
}

func (m PanelModel) removeCmd(macID, name string) tea.Cmd {
	service := m.service
	return func() tea.Msg {
		err := service.RemoveDevice(context.Background(), macID)
		return removeResultMsg{macID: macID, name: name, err: err}
	}
}

func (m PanelModel) waitForEventCmd() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return streamClosedMsg{}
		}
		return streamEventMsg{event: event}
	}
}

// Accessors used by the app layer and tests

// Rows returns the current row list.
func (m PanelModel) Rows() []panel.Row {
	return m.rows
}

// InvalidLocations returns the derived invalid-location count.
func (m PanelModel) InvalidLocations() int {
	return m.invalidLocations
}

// Loading reports whether the initial fetch is in flight.
func (m PanelModel) Loading() bool {
	return m.loading
}

// EmptyMessage returns the text shown when there are no rows.
func (m PanelModel) EmptyMessage() string {
	return m.emptyMessage
}

// ConfirmOpen reports whether the removal confirmation modal is open.
func (m PanelModel) ConfirmOpen() bool {
	return m.confirm.active
}

// EditingIndex returns the row in edit mode, or -1 when viewing.
func (m PanelModel) EditingIndex() int {
	index, ok := m.session.Editing()
	if !ok {
		return -1
	}
	return index
}
