package fix

import (
	"cmp"
	"fmt"
	"slices"
)

// ValidationError describes an invalid edit.
type ValidationError struct {
	Edit    TextEdit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.StartOffset, e.Edit.EndOffset, e.Message)
}

// ValidateEdits checks that all edits have valid ranges for the given content length.
// Returns the first validation error encountered.
func ValidateEdits(edits []TextEdit, contentLen int) error {
	for _, edit := range edits {
		switch {
		case edit.StartOffset < 0:
			return &ValidationError{Edit: edit, Message: "start offset is negative"}
		case edit.EndOffset < edit.StartOffset:
			return &ValidationError{Edit: edit, Message: "end offset is before start offset"}
		case edit.EndOffset > contentLen:
			return &ValidationError{
				Edit:    edit,
				Message: fmt.Sprintf("end offset %d exceeds content length %d", edit.EndOffset, contentLen),
			}
		}
	}
	return nil
}

// SortEdits sorts edits by start offset, then by end offset.
func SortEdits(edits []TextEdit) {
	slices.SortStableFunc(edits, func(a, b TextEdit) int {
		if c := cmp.Compare(a.StartOffset, b.StartOffset); c != 0 {
			return c
		}
		return cmp.Compare(a.EndOffset, b.EndOffset)
	})
}

// MergeAndFilterConflicts walks sorted edits and drops the ones that overlap
// an already accepted edit. Identical duplicates and overlapping deletions
// are merged instead of dropped.
//
// Returns the accepted edits, the skipped edits and the number of merges.
func MergeAndFilterConflicts(edits []TextEdit) ([]TextEdit, []TextEdit, int) {
	if len(edits) == 0 {
		return nil, nil, 0
	}

	accepted := make([]TextEdit, 0, len(edits))
	var skipped []TextEdit
	merged := 0

	current := edits[0]
	for _, edit := range edits[1:] {
		switch {
		case edit == current:
			merged++
		case !overlaps(current, edit):
			accepted = append(accepted, current)
			current = edit
		case edit.NewText == "" && current.NewText == "":
			current = TextEdit{
				StartOffset: min(current.StartOffset, edit.StartOffset),
				EndOffset:   max(current.EndOffset, edit.EndOffset),
			}
			merged++
		default:
			skipped = append(skipped, edit)
		}
	}
	accepted = append(accepted, current)

	return accepted, skipped, merged
}

// overlaps reports whether b, sorted after a, touches bytes replaced by a or
// inserts at the same offset as a.
func overlaps(a, b TextEdit) bool {
	return b.StartOffset < a.EndOffset || b.StartOffset == a.StartOffset
}

// PrepareEditsFiltered validates, sorts, merges and filters conflicting edits.
// Conflicts are not errors: the earlier edit wins and the later one is
// reported as skipped. The error is only set for invalid ranges.
func PrepareEditsFiltered(edits []TextEdit, contentLen int) ([]TextEdit, []TextEdit, int, error) {
	if len(edits) == 0 {
		return nil, nil, 0, nil
	}

	if err := ValidateEdits(edits, contentLen); err != nil {
		return nil, nil, 0, err
	}

	sorted := slices.Clone(edits)
	SortEdits(sorted)

	accepted, skipped, merged := MergeAndFilterConflicts(sorted)
	return accepted, skipped, merged, nil
}
