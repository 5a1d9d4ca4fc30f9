package fileencoding

import (
	"bytes"
	"errors"

	"github.com/samber/lo"
)

const (
	// MaxDeclarationScanLength is the number of leading characters searched
	// for an in-content encoding declaration.
	MaxDeclarationScanLength = 2000

	// maxEscapeSniffLength bounds the search for an ESC byte that hints at ISO-2022-JP.
	maxEscapeSniffLength = 8 * 1024
)

// Typical ISO-2022-JP escape sequences.
//
//nolint:gochecknoglobals // Read-only lookup table.
var iso2022JPEscapes = [][]byte{
	{0x1B, 0x28, 0x42},       // ASCII
	{0x1B, 0x28, 0x49},       // kana
	{0x1B, 0x24, 0x40},       // JIS C 6226-1978
	{0x1B, 0x24, 0x42},       // JIS X 0208-1983
	{0x1B, 0x24, 0x28, 0x44}, // JIS X 0212
}

// Options configures automatic detection.
type Options struct {
	// Candidates is the priority list tried in order. Invalid entries are skipped.
	Candidates []Encoding

	// XattrEncoding is the hint read from the file's extended attributes, or Invalid.
	XattrEncoding Encoding

	// ReferToDeclaration enables the in-content declaration override.
	ReferToDeclaration bool
}

// Strategy selects between automatic detection and a forced encoding.
type Strategy struct {
	forced   bool
	specific Encoding
	options  Options
}

// Automatic returns a strategy that detects the encoding. The zero Strategy
// is automatic with no options.
func Automatic(opts Options) Strategy {
	return Strategy{options: opts}
}

// Specific returns a strategy that decodes with exactly enc. Decoding with
// Specific(Invalid) always fails.
func Specific(enc Encoding) Strategy {
	return Strategy{forced: true, specific: enc}
}

// IsAutomatic reports whether the strategy detects the encoding.
func (s Strategy) IsAutomatic() bool {
	return !s.forced
}

// Encoding returns the forced encoding of a specific strategy.
func (s Strategy) Encoding() Encoding {
	return s.specific
}

// Options returns the detection options of an automatic strategy.
func (s Strategy) Options() Options {
	return s.options
}

// Decode converts data to text according to strategy.
//
// A specific strategy fails with *InapplicableEncodingError. Automatic
// detection fails with ErrUnknownEncoding when nothing decodes the data.
func Decode(data []byte, strategy Strategy) (string, FileEncoding, error) {
	if !strategy.IsAutomatic() {
		text, used, err := decodeAs(data, strategy.specific)
		if err != nil {
			return "", FileEncoding{}, &InapplicableEncodingError{Encoding: strategy.specific, Err: err}
		}

		return text, used, nil
	}

	return detect(data, strategy.options)
}

func detect(data []byte, opts Options) (string, FileEncoding, error) {
	if hint := opts.XattrEncoding; hint.IsValid() {
		if len(data) == 0 {
			return "", FileEncoding{Encoding: hint}, nil
		}

		if text, used, err := decodeAs(data, hint); err == nil {
			return text, used, nil
		}
	}

	text, used, err := guess(data, opts.Candidates)
	if err != nil {
		return "", FileEncoding{}, err
	}

	if !opts.ReferToDeclaration {
		return text, used, nil
	}

	declared, ok := ScanDeclaration(text, MaxDeclarationScanLength, opts.Candidates)
	if !ok || declared == used.Encoding || !lo.Contains(opts.Candidates, declared) {
		return text, used, nil
	}

	if declaredText, declaredUsed, err := decodeAs(data, declared); err == nil {
		return declaredText, declaredUsed, nil
	}

	return text, used, nil
}

// guess runs the byte-content heuristics followed by the candidate list.
func guess(data []byte, candidates []Encoding) (string, FileEncoding, error) {
	if len(data) > 0 {
		if enc, ok := SniffBOM(data); ok {
			if text, used, err := decodeAs(data, enc); err == nil {
				return text, used, nil
			}
		}

		if looksLikeISO2022JP(data) {
			if text, used, err := decodeAs(data, ISO2022JP); err == nil {
				return text, used, nil
			}
		}
	}

	var errs []error

	for _, enc := range candidates {
		if !enc.IsValid() {
			continue
		}

		text, used, err := decodeAs(data, enc)
		if err == nil {
			return text, used, nil
		}

		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return "", FileEncoding{}, errors.Join(append([]error{ErrUnknownEncoding}, errs...)...)
	}

	return "", FileEncoding{}, ErrUnknownEncoding
}

// SniffBOM identifies a byte-order mark and returns its encoding family.
// UTF-32 is checked before UTF-16 because the little-endian marks share a prefix.
func SniffBOM(data []byte) (Encoding, bool) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return UTF8, true
	case bytes.HasPrefix(data, bomUTF32BE), bytes.HasPrefix(data, bomUTF32LE):
		return UTF32, true
	case bytes.HasPrefix(data, bomUTF16BE), bytes.HasPrefix(data, bomUTF16LE):
		return UTF16, true
	default:
		return Invalid, false
	}
}

func looksLikeISO2022JP(data []byte) bool {
	head := data[:min(len(data), maxEscapeSniffLength)]
	if bytes.IndexByte(head, 0x1B) < 0 {
		return false
	}

	for _, seq := range iso2022JPEscapes {
		if bytes.Contains(head, seq) {
			return true
		}
	}

	return false
}
