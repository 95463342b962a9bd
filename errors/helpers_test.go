package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIs(t *testing.T) {
	sentinel := New(CategoryRead, "not found", testSite)
	wrapped := Wrap(sentinel, CategoryMove, "move failed", testSite)

	require.True(t, Is(wrapped, sentinel))

	other := New(CategoryRead, "not found", testSite)
	require.False(t, Is(wrapped, other))
}

func TestAs(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(CategoryRename, "rename failed", testSite))

	var report Report
	require.True(t, As(err, &report))
	require.Equal(t, CategoryRename, report.Category())
}

func TestGetCategory(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		want   Category
		wantOK bool
	}{
		{
			name:   "report",
			err:    New(CategoryDelete, "d", testSite),
			want:   CategoryDelete,
			wantOK: true,
		},
		{
			name:   "wrapped by fmt",
			err:    fmt.Errorf("ctx: %w", New(CategoryWrite, "w", testSite)),
			want:   CategoryWrite,
			wantOK: true,
		},
		{
			name:   "outermost wins",
			err:    Wrap(New(CategoryRead, "r", testSite), CategoryMove, "m", testSite),
			want:   CategoryMove,
			wantOK: true,
		},
		{
			name:   "standard error",
			err:    stderrors.New("plain"),
			wantOK: false,
		},
		{
			name:   "nil",
			err:    nil,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := GetCategory(tt.err)
			require.Equal(t, tt.wantOK, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestIsCategory(t *testing.T) {
	err := New(CategoryRead, "r", testSite)

	require.True(t, IsCategory(err, CategoryRead))
	require.False(t, IsCategory(err, CategoryWrite))
	require.False(t, IsCategory(nil, CategoryRead))
	require.False(t, IsCategory(stderrors.New("x"), CategoryRead))
}

func TestFormat_Helper(t *testing.T) {
	report := New(CategoryRead, "r", testSite)

	require.Equal(t, report.Format(), Format(fmt.Errorf("wrapped: %w", report)))
	require.Equal(t, "plain", Format(stderrors.New("plain")))
	require.Equal(t, "", Format(nil))
}
