package fstest

import (
	"errors"
	"math"
	"testing"

	"github.com/jmgilman/go/fsops/bounded"
	fserrors "github.com/jmgilman/go/fsops/errors"
	"github.com/jmgilman/go/fsops/fs/core"
)

// karma is 47 bytes including the trailing newline.
const karma = "We were talking\nAbout the space\nBetween us all\n"

// TestBoundedRead runs the bounded reader against the provider.
func TestBoundedRead(t *testing.T, filesystem core.FS) {
	TestBoundedReadWithConfig(t, filesystem, POSIXTestConfig())
}

// TestBoundedReadWithConfig tests bounded reads with behavior configuration.
func TestBoundedReadWithConfig(t *testing.T, filesystem core.FS, config FSTestConfig) {
	mustWrite(t, filesystem, "karma.txt", []byte(karma))
	r := bounded.New(filesystem)

	run(t, config, "BoundedRead", "Windows", func(t *testing.T) {
		for _, tc := range []struct {
			length, offset int64
			want           string
			ok             bool
		}{
			{48, 0, "", false},
			{47, 0, karma, true},
			{10, 37, "en us all\n", true},
			{10, 40, "", false},
			{0, 0, "", true},
			{0, 47, "", true},
			{15, 16, "About the space", true},
			{1, math.MaxInt64, "", false},
			{5, math.MaxInt64 - 2, "", false},
		} {
			text, ok, err := r.ReadBytes("karma.txt", tc.length, tc.offset)
			if err != nil {
				t.Errorf("ReadBytes(%d, %d): got error %v", tc.length, tc.offset, err)
				continue
			}
			if ok != tc.ok || text != tc.want {
				t.Errorf("ReadBytes(%d, %d): got (%q, %v), want (%q, %v)",
					tc.length, tc.offset, text, ok, tc.want, tc.ok)
			}
		}
	})

	run(t, config, "BoundedRead", "MissingFile", func(t *testing.T) {
		_, ok, err := r.ReadBytes("missing.txt", 1, 0)
		if ok || !fserrors.IsCategory(err, fserrors.CategoryRead) {
			t.Errorf("ReadBytes(missing): got ok=%v err=%v, want a Read report", ok, err)
		}
	})

	run(t, config, "BoundedRead", "NegativeRange", func(t *testing.T) {
		_, _, err := r.ReadBytes("karma.txt", -1, 0)
		if !errors.Is(err, bounded.ErrInvalidRange) {
			t.Errorf("ReadBytes(-1, 0): got error %v, want ErrInvalidRange", err)
		}
	})

	run(t, config, "BoundedRead", "Reopenable", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			if _, _, err := r.ReadBytes("karma.txt", 5, 0); err != nil {
				t.Fatalf("ReadBytes(): got error %v", err)
			}
		}
		mustWrite(t, filesystem, "karma.txt", []byte("rewritten"))
		text, ok, err := r.ReadBytes("karma.txt", 9, 0)
		if err != nil || !ok || text != "rewritten" {
			t.Errorf("ReadBytes() after rewrite: got (%q, %v, %v), want (%q, true, nil)", text, ok, err, "rewritten")
		}
	})
}
