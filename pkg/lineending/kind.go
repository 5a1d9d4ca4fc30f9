// Package lineending classifies line endings in text and keeps an
// incrementally patched table of them while the text is edited.
package lineending

import (
	"fmt"
	"strings"
)

// Kind is one of the six recognised line ending sequences.
type Kind int

// Line ending kinds, in their canonical order.
const (
	LF Kind = iota
	CR
	CRLF
	NEL
	LineSeparator
	ParagraphSeparator
)

// Special characters that terminate a line.
const (
	runeLF  = '\n'
	runeCR  = '\r'
	runeNEL = '\u0085'
	runeLS  = '\u2028'
	runePS  = '\u2029'
)

// Kinds lists every kind in canonical order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var Kinds = []Kind{LF, CR, CRLF, NEL, LineSeparator, ParagraphSeparator}

//nolint:gochecknoglobals // Read-only lookup table.
var kindInfo = [...]struct {
	value string
	name  string
	label string
}{
	LF:                 {value: "\n", name: "LF", label: "macOS / Unix"},
	CR:                 {value: "\r", name: "CR", label: "Classic Mac OS"},
	CRLF:               {value: "\r\n", name: "CRLF", label: "Windows"},
	NEL:                {value: "\u0085", name: "NEL", label: "Unicode Next Line"},
	LineSeparator:      {value: "\u2028", name: "LS", label: "Unicode Line Separator"},
	ParagraphSeparator: {value: "\u2029", name: "PS", label: "Unicode Paragraph Separator"},
}

// IsValid reports whether k is a known kind.
func (k Kind) IsValid() bool {
	return k >= LF && k <= ParagraphSeparator
}

// String returns the characters that make up the line ending.
func (k Kind) String() string {
	if !k.IsValid() {
		return ""
	}

	return kindInfo[k].value
}

// Name returns the short name such as "CRLF" or "LS".
func (k Kind) Name() string {
	if !k.IsValid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return kindInfo[k].name
}

// Label returns a human readable description.
func (k Kind) Label() string {
	if !k.IsValid() {
		return ""
	}

	return kindInfo[k].label
}

// Length returns the number of characters in the line ending.
func (k Kind) Length() int {
	if k == CRLF {
		return 2
	}

	return 1
}

// IsBasic reports whether k is LF, CR, or CRLF.
func (k Kind) IsBasic() bool {
	return k == LF || k == CR || k == CRLF
}

// MarshalText implements encoding.TextMarshaler using the short name.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.IsValid() {
		return nil, fmt.Errorf("invalid line ending kind %d", int(k))
	}

	return []byte(k.Name()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}

	*k = parsed

	return nil
}

// ParseKind resolves a short name case-insensitively.
// The aliases "NL", "LINESEPARATOR", and "PARAGRAPHSEPARATOR" are accepted.
func ParseKind(name string) (Kind, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "LF":
		return LF, nil
	case "CR":
		return CR, nil
	case "CRLF":
		return CRLF, nil
	case "NEL", "NL":
		return NEL, nil
	case "LS", "LINESEPARATOR":
		return LineSeparator, nil
	case "PS", "PARAGRAPHSEPARATOR":
		return ParagraphSeparator, nil
	default:
		return LF, fmt.Errorf("unknown line ending %q (valid: LF, CR, CRLF, NEL, LS, PS)", name)
	}
}
