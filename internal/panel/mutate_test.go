package panel

import (
	"reflect"
	"testing"
)

func sampleRows() []Row {
	return []Row{
		{MACID: "AA:00", DeviceName: "Lamp", Room: "Hall", Location: LocationNotFound},
		{MACID: "AA:01", DeviceName: "Plug", Room: "Kitchen", Location: "1.0, 2.0"},
		{MACID: "AA:02", DeviceName: "Cam", Room: "Porch", Location: "3.0, 4.0"},
	}
}

func TestEditField_TargetsSingleField(t *testing.T) {
	rows := sampleRows()
	out := EditField(rows, 1, FieldRoom, "Pantry")

	if out[1].Room != "Pantry" {
		t.Errorf("Room = %s, want Pantry", out[1].Room)
	}
	if out[1].DeviceName != "Plug" {
		t.Error("other fields of the target row must be untouched")
	}
}

func TestEditField_DoesNotDisturbOtherRows(t *testing.T) {
	rows := sampleRows()

	for target := range rows {
		out := EditField(rows, target, FieldDeviceName, "Renamed")

		for j := range rows {
			if j == target {
				continue
			}
			if !reflect.DeepEqual(out[j], rows[j]) {
				t.Errorf("edit on row %d changed row %d", target, j)
			}
		}
	}
}

func TestEditField_CopyOnWrite(t *testing.T) {
	rows := sampleRows()
	out := EditField(rows, 0, FieldDeviceName, "Desk Lamp")

	if rows[0].DeviceName != "Lamp" {
		t.Error("input slice must not be mutated")
	}
	if out[0].DeviceName != "Desk Lamp" {
		t.Errorf("DeviceName = %s, want Desk Lamp", out[0].DeviceName)
	}
}

func TestEditField_OutOfRangeOrUnknownField(t *testing.T) {
	rows := sampleRows()

	if got := EditField(rows, 7, FieldRoom, "x"); !reflect.DeepEqual(got, rows) {
		t.Error("out-of-range index should return input unchanged")
	}
	if got := EditField(rows, -1, FieldRoom, "x"); !reflect.DeepEqual(got, rows) {
		t.Error("negative index should return input unchanged")
	}
	if got := EditField(rows, 0, "location", "x"); !reflect.DeepEqual(got, rows) {
		t.Error("non-editable field should return input unchanged")
	}
}

func TestRemove_ShrinksByOnePreservingOrder(t *testing.T) {
	rows := sampleRows()
	out := Remove(rows, 1)

	if len(out) != len(rows)-1 {
		t.Fatalf("len = %d, want %d", len(out), len(rows)-1)
	}
	if out[0].MACID != "AA:00" || out[1].MACID != "AA:02" {
		t.Errorf("remaining order = %s, %s; want AA:00, AA:02", out[0].MACID, out[1].MACID)
	}
	if len(rows) != 3 {
		t.Error("input slice must not be mutated")
	}
}

func TestRemoveByMAC_ResolvesIndexAtExecutionTime(t *testing.T) {
	rows := sampleRows()

	// Capture identity, then reorder the list before executing the removal,
	// as a refetch between confirmation request and approval would.
	mac := rows[2].MACID
	reordered := []Row{rows[2], rows[0], rows[1]}

	out := RemoveByMAC(reordered, mac)

	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	for _, row := range out {
		if row.MACID == mac {
			t.Errorf("row %s should have been removed", mac)
		}
	}
}

func TestRemoveByMAC_UnknownMAC(t *testing.T) {
	rows := sampleRows()

	if got := RemoveByMAC(rows, "FF:FF"); !reflect.DeepEqual(got, rows) {
		t.Error("unknown MAC should return input unchanged")
	}
}

func TestIndexOfMAC(t *testing.T) {
	rows := sampleRows()

	if got := IndexOfMAC(rows, "AA:01"); got != 1 {
		t.Errorf("IndexOfMAC = %d, want 1", got)
	}
	if got := IndexOfMAC(rows, "FF:FF"); got != -1 {
		t.Errorf("IndexOfMAC for unknown MAC = %d, want -1", got)
	}
}

func TestMarkSaveFailed(t *testing.T) {
	rows := sampleRows()
	out := MarkSaveFailed(rows, "AA:01", true)

	if !out[1].SaveFailed {
		t.Error("target row should carry the failure flag")
	}
	if rows[1].SaveFailed {
		t.Error("input slice must not be mutated")
	}

	cleared := MarkSaveFailed(out, "AA:01", false)
	if cleared[1].SaveFailed {
		t.Error("flag should clear")
	}
}
