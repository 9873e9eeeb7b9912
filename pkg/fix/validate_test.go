package fix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/htmlindent/pkg/fix"
)

func TestValidateEdits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		edits   []fix.TextEdit
		wantErr string
	}{
		{name: "empty"},
		{name: "valid", edits: []fix.TextEdit{{StartOffset: 0, EndOffset: 10}}},
		{name: "negative start", edits: []fix.TextEdit{{StartOffset: -1, EndOffset: 2}}, wantErr: "start offset is negative"},
		{name: "end before start", edits: []fix.TextEdit{{StartOffset: 5, EndOffset: 3}}, wantErr: "end offset is before start offset"},
		{name: "past end", edits: []fix.TextEdit{{StartOffset: 5, EndOffset: 11}}, wantErr: "exceeds content length 10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fix.ValidateEdits(tt.edits, 10)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}

			var valErr *fix.ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPrepareEditsFiltered(t *testing.T) {
	t.Parallel()

	t.Run("sorts edits", func(t *testing.T) {
		t.Parallel()

		accepted, skipped, merged, err := fix.PrepareEditsFiltered([]fix.TextEdit{
			{StartOffset: 8, EndOffset: 9, NewText: "b"},
			{StartOffset: 0, EndOffset: 1, NewText: "a"},
		}, 10)
		require.NoError(t, err)
		assert.Empty(t, skipped)
		assert.Zero(t, merged)
		assert.Equal(t, 0, accepted[0].StartOffset)
		assert.Equal(t, 8, accepted[1].StartOffset)
	})

	t.Run("earlier edit wins a conflict", func(t *testing.T) {
		t.Parallel()

		accepted, skipped, _, err := fix.PrepareEditsFiltered([]fix.TextEdit{
			{StartOffset: 2, EndOffset: 6, NewText: "x"},
			{StartOffset: 4, EndOffset: 8, NewText: "y"},
		}, 10)
		require.NoError(t, err)
		require.Len(t, accepted, 1)
		assert.Equal(t, "x", accepted[0].NewText)
		require.Len(t, skipped, 1)
		assert.Equal(t, "y", skipped[0].NewText)
	})

	t.Run("two insertions at one offset conflict", func(t *testing.T) {
		t.Parallel()

		accepted, skipped, _, err := fix.PrepareEditsFiltered([]fix.TextEdit{
			{StartOffset: 3, EndOffset: 3, NewText: "  "},
			{StartOffset: 3, EndOffset: 3, NewText: "\t"},
		}, 10)
		require.NoError(t, err)
		assert.Len(t, accepted, 1)
		assert.Len(t, skipped, 1)
	})

	t.Run("duplicates and deletions merge", func(t *testing.T) {
		t.Parallel()

		accepted, skipped, merged, err := fix.PrepareEditsFiltered([]fix.TextEdit{
			{StartOffset: 0, EndOffset: 2, NewText: "  "},
			{StartOffset: 0, EndOffset: 2, NewText: "  "},
			{StartOffset: 4, EndOffset: 6},
			{StartOffset: 5, EndOffset: 8},
		}, 10)
		require.NoError(t, err)
		assert.Empty(t, skipped)
		assert.Equal(t, 2, merged)
		assert.Equal(t, []fix.TextEdit{
			{StartOffset: 0, EndOffset: 2, NewText: "  "},
			{StartOffset: 4, EndOffset: 8},
		}, accepted)
	})

	t.Run("invalid edit is an error", func(t *testing.T) {
		t.Parallel()

		_, _, _, err := fix.PrepareEditsFiltered([]fix.TextEdit{{StartOffset: 0, EndOffset: 20}}, 10)
		require.Error(t, err)
	})
}
