package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/devicepanel/internal/api"
	"github.com/muurk/devicepanel/internal/panel"
)

// fakeService is an in-memory DeviceService for driving the panel.
type fakeService struct {
	devices   api.DeviceCollection
	fetchErr  error
	updates   []api.DeviceUpdate
	updateErr error
	removed   []string
	removeErr error
}

func (f *fakeService) GetDevices(ctx context.Context) (api.DeviceCollection, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.devices, nil
}

func (f *fakeService) UpdateDevice(ctx context.Context, update api.DeviceUpdate) error {
	f.updates = append(f.updates, update)
	return f.updateErr
}

func (f *fakeService) RemoveDevice(ctx context.Context, macID string) error {
	f.removed = append(f.removed, macID)
	return f.removeErr
}

func testDevices() api.DeviceCollection {
	return api.DeviceCollection{
		"AA:00": {Name: "Lamp", Room: "Hall", Geolocation: api.Geolocation{Latitude: "1.0", Longitude: "2.0"}},
		"AA:01": {Name: "Plug", Room: "Kitchen", Geolocation: api.Geolocation{
			Latitude:  panel.LatitudeUnavailable,
			Longitude: "2.0",
		}},
	}
}

// update runs one message through the model and returns the new model.
func update(t *testing.T, m PanelModel, msg tea.Msg) (PanelModel, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(PanelModel)
	if !ok {
		t.Fatalf("Update returned %T, want PanelModel", updated)
	}
	return next, cmd
}

func keyMsg(s string) tea.Msg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// populated builds a model that has completed a successful fetch.
func populated(t *testing.T, service *fakeService) PanelModel {
	t.Helper()
	m := NewPanelModel(service, nil, "", true)
	m, _ = update(t, m, devicesFetchedMsg{devices: service.devices})
	return m
}

func TestPanel_FetchSuccessPopulates(t *testing.T) {
	service := &fakeService{devices: testDevices()}
	m := populated(t, service)

	if m.Loading() {
		t.Error("loading should be false after fetch")
	}
	if len(m.Rows()) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(m.Rows()))
	}
	if m.InvalidLocations() != 1 {
		t.Errorf("invalid locations = %d, want 1", m.InvalidLocations())
	}
}

func TestPanel_EmptyCollectionShowsDefaultMessage(t *testing.T) {
	service := &fakeService{devices: api.DeviceCollection{}}
	m := populated(t, service)

	if len(m.Rows()) != 0 {
		t.Errorf("len(rows) = %d, want 0", len(m.Rows()))
	}
	if m.InvalidLocations() != 0 {
		t.Errorf("invalid locations = %d, want 0", m.InvalidLocations())
	}
	if m.EmptyMessage() != defaultEmptyMessage {
		t.Errorf("empty message = %q, want default", m.EmptyMessage())
	}
}

func TestPanel_FetchFailureShowsErrorMessage(t *testing.T) {
	m := NewPanelModel(&fakeService{}, nil, "", true)

	if !m.Loading() {
		t.Error("panel should start loading with a credential")
	}

	m, _ = update(t, m, fetchFailedMsg{err: errors.New("boom")})

	if m.Loading() {
		t.Error("loading should be false after a failed fetch")
	}
	if m.EmptyMessage() != fetchErrorMessage {
		t.Errorf("empty message = %q, want fetch error text", m.EmptyMessage())
	}
}

func TestPanel_NoCredentialSkipsFetch(t *testing.T) {
	m := NewPanelModel(&fakeService{}, nil, "", false)

	if m.Loading() {
		t.Error("no-credential panel must not be stuck loading")
	}
	if m.EmptyMessage() != noCredentialMessage {
		t.Errorf("empty message = %q, want no-credential text", m.EmptyMessage())
	}
	if cmd := m.Init(); cmd != nil {
		t.Error("Init should issue no fetch without a credential")
	}
}

func TestPanel_NilCollectionRetainsPreviousRows(t *testing.T) {
	service := &fakeService{devices: testDevices()}
	m := populated(t, service)

	m, _ = update(t, m, devicesFetchedMsg{devices: nil})

	if len(m.Rows()) != 2 {
		t.Errorf("len(rows) = %d, nil collection must not overwrite state", len(m.Rows()))
	}
}

func TestPanel_EditSaveCallsUpdateService(t *testing.T) {
	service := &fakeService{devices: testDevices()}
	m := populated(t, service)

	// Enter edit mode on the row under the cursor
	m, _ = update(t, m, keyMsg("e"))
	index := m.EditingIndex()
	if index == -1 {
		t.Fatal("panel should be editing after 'e'")
	}

	// Type into the focused name field
	m, _ = update(t, m, keyMsg("X"))
	if m.Rows()[index].DeviceName == "" {
		t.Fatal("typed edit should be applied to the row list immediately")
	}
	edited := m.Rows()[index]

	// Save fires the persist and returns to viewing
	m, cmd := update(t, m, keyMsg("enter"))
	if m.EditingIndex() != -1 {
		t.Error("save should return the session to viewing")
	}
	if cmd == nil {
		t.Fatal("save should issue a persist command")
	}

	msg := cmd()
	result, ok := msg.(saveResultMsg)
	if !ok {
		t.Fatalf("persist produced %T, want saveResultMsg", msg)
	}
	if result.err != nil {
		t.Errorf("save error = %v", result.err)
	}
	if len(service.updates) != 1 {
		t.Fatalf("update calls = %d, want 1", len(service.updates))
	}
	if service.updates[0].MACID != edited.MACID || service.updates[0].Name != edited.DeviceName {
		t.Errorf("persisted %+v, want values of %+v", service.updates[0], edited)
	}
}

func TestPanel_SwitchRowsKeepsAppliedEdits(t *testing.T) {
	service := &fakeService{devices: testDevices()}
	m := populated(t, service)

	m, _ = update(t, m, keyMsg("e"))
	first := m.EditingIndex()

	m, _ = update(t, m, keyMsg("X"))
	editedName := m.Rows()[first].DeviceName

	// Switch to the other row without saving
	var switchKey tea.Msg = keyMsg("down")
	if first == len(m.Rows())-1 {
		switchKey = keyMsg("up")
	}
	m, _ = update(t, m, switchKey)

	if m.EditingIndex() == first {
		t.Fatal("edit session should have switched rows")
	}
	if m.Rows()[first].DeviceName != editedName {
		t.Error("switching rows must not roll back applied edits")
	}
	if len(service.updates) != 0 {
		t.Error("switching rows must not trigger an implicit save")
	}
}

func TestPanel_SaveFailureTagsRow(t *testing.T) {
	service := &fakeService{devices: testDevices()}
	m := populated(t, service)

	mac := m.Rows()[0].MACID
	m, _ = update(t, m, saveResultMsg{macID: mac, name: "Lamp", err: errors.New("rejected")})

	if !m.Rows()[0].SaveFailed {
		t.Error("failed save should tag the row")
	}

	// A later successful save clears the tag
	m, _ = update(t, m, saveResultMsg{macID: mac, name: "Lamp", err: nil})
	if m.Rows()[0].SaveFailed {
		t.Error("successful save should clear the tag")
	}
}

func TestPanel_RemovalRequiresConfirmation(t *testing.T) {
	service := &fakeService{devices: testDevices()}
	m := populated(t, service)

	m, _ = update(t, m, keyMsg("x"))
	if !m.ConfirmOpen() {
		t.Fatal("removal request should open the confirmation prompt")
	}

	// Closing without confirming changes nothing
	m, _ = update(t, m, keyMsg("esc"))
	if m.ConfirmOpen() {
		t.Error("esc should close the prompt")
	}
	if len(m.Rows()) != 2 || len(service.removed) != 0 {
		t.Error("close without confirm must not remove anything")
	}
}

func TestPanel_ConfirmedRemovalRemovesRow(t *testing.T) {
	service := &fakeService{devices: testDevices()}
	m := populated(t, service)

	target := m.Rows()[m.cursor]

	m, _ = update(t, m, keyMsg("x"))
	m, _ = update(t, m, keyMsg("tab")) // move to the Remove button
	m, cmd := update(t, m, keyMsg("enter"))

	if m.ConfirmOpen() {
		t.Error("confirm should close the prompt")
	}
	if cmd == nil {
		t.Fatal("confirm should issue the removal command")
	}

	msg := cmd()
	result, ok := msg.(removeResultMsg)
	if !ok {
		t.Fatalf("removal produced %T, want removeResultMsg", msg)
	}
	if len(service.removed) != 1 || service.removed[0] != target.MACID {
		t.Errorf("removed %v, want [%s]", service.removed, target.MACID)
	}

	m, _ = update(t, m, result)
	if len(m.Rows()) != 1 {
		t.Fatalf("len(rows) = %d, want 1 after removal", len(m.Rows()))
	}
	if m.Rows()[0].MACID == target.MACID {
		t.Error("removed row should be gone")
	}
}

func TestPanel_FailedRemovalRetainsRow(t *testing.T) {
	service := &fakeService{devices: testDevices()}
	m := populated(t, service)

	mac := m.Rows()[0].MACID
	m, _ = update(t, m, removeResultMsg{macID: mac, name: "Lamp", err: errors.New("boom")})

	if len(m.Rows()) != 2 {
		t.Errorf("len(rows) = %d, failed removal must retain the row", len(m.Rows()))
	}
}

func TestPanel_RemovalRecountsInvalidLocations(t *testing.T) {
	service := &fakeService{devices: testDevices()}
	m := populated(t, service)

	// Remove the row without a location
	var mac string
	for _, row := range m.Rows() {
		if row.Location == panel.LocationNotFound {
			mac = row.MACID
		}
	}

	m, _ = update(t, m, removeResultMsg{macID: mac, name: "Plug", err: nil})

	if m.InvalidLocations() != 0 {
		t.Errorf("invalid locations = %d, want 0 after removing the unlocated row", m.InvalidLocations())
	}
}

func TestPanel_StreamEventTriggersRefetch(t *testing.T) {
	service := &fakeService{devices: testDevices()}
	events := make(chan api.DeviceEvent, 1)
	m := NewPanelModel(service, events, "", true)
	m, _ = update(t, m, devicesFetchedMsg{devices: service.devices})

	_, cmd := update(t, m, streamEventMsg{event: api.DeviceEvent{Event: api.EventDeviceUpdated}})
	if cmd == nil {
		t.Fatal("stream event should schedule a refetch")
	}
}
