package errors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var testSite = CallSite{Function: "fileops.(*Manager).ReadFile", File: "fileops/manager.go", Line: 42}

func TestNew(t *testing.T) {
	err := New(CategoryRead, "Error during read file.", testSite)

	require.NotNil(t, err)
	require.Equal(t, CategoryRead, err.Category())
	require.Equal(t, "Error during read file.", err.Reason())
	require.Equal(t, testSite, err.Site())
	require.Nil(t, err.Context())
	require.Nil(t, err.Unwrap())
}

func TestNew_AllCategories(t *testing.T) {
	for _, category := range Categories() {
		t.Run(string(category), func(t *testing.T) {
			err := New(category, "test reason", testSite)
			require.Equal(t, category, err.Category())
			require.Equal(t, "["+string(category)+"] test reason", err.Error())
		})
	}
}

func TestNew_InvalidCategoryPanics(t *testing.T) {
	tests := []struct {
		name     string
		category Category
	}{
		{"empty", ""},
		{"lowercase", "read"},
		{"unknown", "Copy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Panics(t, func() {
				_ = New(tt.category, "reason", testSite)
			})
		})
	}
}

func TestNew_NegativeLinePanics(t *testing.T) {
	require.Panics(t, func() {
		_ = New(CategoryWrite, "reason", CallSite{Function: "f", File: "f.go", Line: -1})
	})
}

func TestNew_ZeroLineAllowed(t *testing.T) {
	require.NotPanics(t, func() {
		_ = New(CategoryWrite, "reason", CallSite{Function: "f", File: "f.go", Line: 0})
	})
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryMove, testSite, "cannot move %s to %s", "a.txt", "Inbox")

	require.NotNil(t, err)
	require.Equal(t, CategoryMove, err.Category())
	require.Equal(t, "cannot move a.txt to Inbox", err.Reason())
	require.Equal(t, testSite, err.Site())
}

func TestHere_CapturesCaller(t *testing.T) {
	err := Here(CategoryDelete, "file is locked")

	site := err.Site()
	require.Equal(t, CategoryDelete, err.Category())
	require.Contains(t, site.Function, "TestHere_CapturesCaller")
	require.True(t, strings.HasSuffix(site.File, "constructors_test.go"), site.File)
	require.Positive(t, site.Line)
}
