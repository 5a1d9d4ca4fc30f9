package fileencoding

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// Byte-order marks.
//
//nolint:gochecknoglobals // Read-only lookup table.
var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF32BE = []byte{0x00, 0x00, 0xFE, 0xFF}
	bomUTF32LE = []byte{0xFF, 0xFE, 0x00, 0x00}
)

// HasUTF8BOM reports whether data starts with the UTF-8 byte-order mark.
func HasUTF8BOM(data []byte) bool {
	return bytes.HasPrefix(data, bomUTF8)
}

// decodeAs decodes data under enc, honouring a leading byte-order mark.
//
// The returned FileEncoding may name a byte-order specific variant of enc
// when a BOM decides it, so that encoding the text again reproduces data.
func decodeAs(data []byte, enc Encoding) (string, FileEncoding, error) {
	if !enc.IsValid() {
		return "", FileEncoding{}, fmt.Errorf("%w: invalid encoding", ErrDecodeFailure)
	}

	meta := enc.info()

	switch meta.family {
	case familyUTF8:
		body := data
		hasBOM := HasUTF8BOM(data)

		if hasBOM {
			body = data[len(bomUTF8):]
		}

		if !utf8.Valid(body) {
			return "", FileEncoding{}, fmt.Errorf("%w: invalid UTF-8 sequence", ErrDecodeFailure)
		}

		return string(body), FileEncoding{Encoding: enc, HasBOM: hasBOM}, nil

	case familyUTF16:
		return decodeWide(data, enc, 2, bomUTF16BE, bomUTF16LE, UTF16BE, UTF16LE)

	case familyUTF32:
		return decodeWide(data, enc, 4, bomUTF32BE, bomUTF32LE, UTF32BE, UTF32LE)

	default:
		text, err := meta.codec.NewDecoder().Bytes(data)
		if err != nil {
			return "", FileEncoding{}, fmt.Errorf("%w: %w", ErrDecodeFailure, err)
		}

		if bytes.ContainsRune(text, utf8.RuneError) {
			return "", FileEncoding{}, fmt.Errorf("%w: invalid %s sequence", ErrDecodeFailure, enc)
		}

		return string(text), FileEncoding{Encoding: enc}, nil
	}
}

// decodeWide handles the UTF-16 and UTF-32 families.
func decodeWide(
	data []byte,
	enc Encoding,
	unit int,
	bigBOM, littleBOM []byte,
	bigEnc, littleEnc Encoding,
) (string, FileEncoding, error) {
	order := enc.info().order
	body := data
	hasBOM := false
	resolved := enc

	switch {
	case order != orderLittle && bytes.HasPrefix(data, bigBOM):
		body, hasBOM, order = data[len(bigBOM):], true, orderBig
		resolved = bigEnc
	case order != orderBig && bytes.HasPrefix(data, littleBOM):
		body, hasBOM, order = data[len(littleBOM):], true, orderLittle
		resolved = littleEnc
	}

	if len(body)%unit != 0 {
		return "", FileEncoding{}, fmt.Errorf("%w: %d bytes is not a whole number of %s code units",
			ErrDecodeFailure, len(body), enc)
	}

	codec := wideCodec(enc.info().family, order)

	text, err := codec.NewDecoder().Bytes(body)
	if err != nil {
		return "", FileEncoding{}, fmt.Errorf("%w: %w", ErrDecodeFailure, err)
	}

	// Unpaired surrogates decode to U+FFFD and do not survive re-encoding.
	again, err := codec.NewEncoder().Bytes(text)
	if err != nil || !bytes.Equal(again, body) {
		return "", FileEncoding{}, fmt.Errorf("%w: invalid %s sequence", ErrDecodeFailure, enc)
	}

	return string(text), FileEncoding{Encoding: resolved, HasBOM: hasBOM}, nil
}

func wideCodec(fam family, order byteOrder) encoding.Encoding {
	if fam == familyUTF32 {
		if order == orderLittle {
			return utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM)
		}

		return utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM)
	}

	if order == orderLittle {
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	}

	return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
}

// Encode converts text to bytes under fe, prepending a byte-order mark
// when fe.HasBOM is set. Encodings without a byte order default to big
// endian. Characters the encoding cannot represent are an error.
func Encode(text string, fe FileEncoding) ([]byte, error) {
	enc := fe.Encoding
	if !enc.IsValid() {
		return nil, fmt.Errorf("encode: invalid encoding %d", int(enc))
	}

	meta := enc.info()

	var (
		bom  []byte
		body []byte
		err  error
	)

	switch meta.family {
	case familyUTF8:
		bom = bomUTF8
		body = []byte(text)
	case familyUTF16, familyUTF32:
		bom = bomUTF16BE

		switch {
		case meta.family == familyUTF16 && meta.order == orderLittle:
			bom = bomUTF16LE
		case meta.family == familyUTF32 && meta.order == orderLittle:
			bom = bomUTF32LE
		case meta.family == familyUTF32:
			bom = bomUTF32BE
		}

		body, err = wideCodec(meta.family, meta.order).NewEncoder().Bytes([]byte(text))
	default:
		body, err = meta.codec.NewEncoder().Bytes([]byte(text))
	}

	if err != nil {
		return nil, fmt.Errorf("encode as %s: %w", enc, err)
	}

	if !fe.HasBOM || bom == nil {
		return body, nil
	}

	out := make([]byte, 0, len(bom)+len(body))
	out = append(out, bom...)

	return append(out, body...), nil
}

// CanEncode reports whether every character of text is representable in enc.
func CanEncode(text string, enc Encoding) bool {
	_, err := Encode(text, FileEncoding{Encoding: enc})
	return err == nil
}

// ConvertYenSign replaces YEN SIGN (U+00A5) with a backslash when enc
// cannot represent it.
func ConvertYenSign(text string, enc Encoding) string {
	if CanEncode("¥", enc) {
		return text
	}

	return strings.ReplaceAll(text, "¥", `\`)
}
