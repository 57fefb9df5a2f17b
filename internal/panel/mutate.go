package panel

// EditField returns a new row list with exactly one field of the row at
// index replaced. Every other row and field is untouched, and the input
// slice is never mutated, so concurrent readers of the old list stay
// consistent. No validation is performed on value.
//
// An out-of-range index or unknown field name returns the input unchanged.
func EditField(rows []Row, index int, field, value string) []Row {
	if index < 0 || index >= len(rows) {
		return rows
	}

	out := make([]Row, len(rows))
	copy(out, rows)

	switch field {
	case FieldDeviceName:
		out[index].DeviceName = value
	case FieldRoom:
		out[index].Room = value
	default:
		return rows
	}

	return out
}

// Remove returns a new row list with the row at index excluded, preserving
// the relative order of all other rows. An out-of-range index returns the
// input unchanged.
func Remove(rows []Row, index int) []Row {
	if index < 0 || index >= len(rows) {
		return rows
	}

	out := make([]Row, 0, len(rows)-1)
	out = append(out, rows[:index]...)
	out = append(out, rows[index+1:]...)
	return out
}

// IndexOfMAC resolves a MAC address to the row's current position, or -1
// when no row carries it.
func IndexOfMAC(rows []Row, macID string) int {
	for i, row := range rows {
		if row.MACID == macID {
			return i
		}
	}
	return -1
}

// RemoveByMAC removes the row identified by MAC address. The MAC is captured
// when a removal is requested and resolved to an index only here, at
// execution time, so a list reorder between confirmation request and
// approval cannot remove the wrong row. A MAC with no matching row returns
// the input unchanged.
func RemoveByMAC(rows []Row, macID string) []Row {
	return Remove(rows, IndexOfMAC(rows, macID))
}

// MarkSaveFailed returns a new row list with the save-failure flag of the
// row identified by MAC set accordingly. Unknown MACs return the input
// unchanged.
func MarkSaveFailed(rows []Row, macID string, failed bool) []Row {
	index := IndexOfMAC(rows, macID)
	if index < 0 {
		return rows
	}

	out := make([]Row, len(rows))
	copy(out, rows)
	out[index].SaveFailed = failed
	return out
}
