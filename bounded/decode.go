package bounded

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// DecodePolicy controls how a window that is not valid UTF-8 is handled.
type DecodePolicy int

const (
	// DecodeStrict rejects invalid UTF-8 with a Read report wrapping
	// ErrInvalidUTF8.
	DecodeStrict DecodePolicy = iota

	// DecodeLossy replaces each invalid sequence with U+FFFD.
	DecodeLossy
)

// String returns the policy name as accepted by ParseDecodePolicy.
func (p DecodePolicy) String() string {
	switch p {
	case DecodeStrict:
		return "strict"
	case DecodeLossy:
		return "lossy"
	default:
		return fmt.Sprintf("DecodePolicy(%d)", int(p))
	}
}

// ParseDecodePolicy parses "strict" or "lossy", ignoring case.
// The empty string selects DecodeStrict.
func ParseDecodePolicy(s string) (DecodePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return DecodeStrict, nil
	case "lossy":
		return DecodeLossy, nil
	default:
		return DecodeStrict, fmt.Errorf("unknown decode policy %q (want strict or lossy)", s)
	}
}

// Decode converts p to a string under policy. Valid UTF-8 is returned
// unchanged.
func Decode(p []byte, policy DecodePolicy) (string, error) {
	if utf8.Valid(p) {
		return string(p), nil
	}
	if policy != DecodeLossy {
		return "", ErrInvalidUTF8
	}

	out, err := unicode.UTF8.NewDecoder().Bytes(p)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
