package fileops_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/fsops/fileops"
	"github.com/jmgilman/go/fsops/fs/billy"
)

func TestParseDirectory(t *testing.T) {
	tests := []struct {
		in      string
		want    fileops.Directory
		wantErr bool
	}{
		{"documents", fileops.Documents, false},
		{"Documents", fileops.Documents, false},
		{"inbox", fileops.Inbox, false},
		{"Documents/Inbox", fileops.Inbox, false},
		{" library ", fileops.Library, false},
		{"temp", fileops.Temp, false},
		{"tmp", fileops.Temp, false},
		{"desktop", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := fileops.ParseDirectory(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, fileops.ErrUnknownDirectory)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDirectory_Valid(t *testing.T) {
	for _, d := range fileops.Directories() {
		assert.True(t, d.Valid(), d)

		parsed, err := fileops.ParseDirectory(d.Label())
		require.NoError(t, err)
		assert.Equal(t, d, parsed)
	}
	assert.False(t, fileops.Directory("Desktop").Valid())
	assert.False(t, fileops.Directory("").Valid())
}

func TestFile(t *testing.T) {
	m := fileops.New(billy.NewMemory())
	require.NoError(t, m.Init())

	f := m.File("dharma.txt", fileops.Inbox)
	assert.Equal(t, "dharma.txt", f.Name())
	assert.Equal(t, fileops.Inbox, f.Dir())
	assert.Equal(t, "Documents/Inbox/dharma.txt", f.Path())

	require.NoError(t, f.Write(dharma))

	// The text is shorter than the default window.
	text, ok, err := f.Read(0)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, text)

	require.NoError(t, f.MoveTo(fileops.Documents))
	assert.Equal(t, fileops.Documents, f.Dir())

	got, err := m.ReadFile(fileops.Documents, "dharma.txt")
	require.NoError(t, err)
	assert.Equal(t, dharma, got)

	// A failed move keeps tracking the old directory.
	require.NoError(t, m.WriteFile(fileops.Library, "dharma.txt", "taken"))
	require.Error(t, f.MoveTo(fileops.Library))
	assert.Equal(t, fileops.Documents, f.Dir())

	require.NoError(t, f.Delete())
	exists, err := m.Exists(fileops.Documents, "dharma.txt")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFile_ReadFullWindow(t *testing.T) {
	m := fileops.New(billy.NewMemory())
	long := karma + "!"
	f := m.File("karma.txt", fileops.Documents)
	require.NoError(t, f.Write(long))

	text, ok, err := f.Read(0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, long, text)
	assert.Len(t, text, fileops.DefaultWindow)
}
