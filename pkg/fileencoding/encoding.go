// Package fileencoding detects the text encoding of raw file contents and
// converts between bytes and text.
//
// Detection follows a fixed priority: an encoding hint from the file's
// extended attributes, then byte-order marks and ISO-2022-JP escape
// sequences, then an ordered candidate list, and finally an optional
// encoding declaration inside the decoded text.
package fileencoding

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
)

// Encoding identifies a supported text encoding.
// The zero value is Invalid and means "no encoding".
type Encoding int

// Supported encodings.
const (
	Invalid Encoding = iota
	UTF8
	UTF16
	UTF16BE
	UTF16LE
	UTF32
	UTF32BE
	UTF32LE
	ShiftJIS
	ShiftJISX0213
	DOSJapanese
	EUCJP
	ISO2022JP
	MacRoman
	WindowsLatin1
	ISOLatin1
	ISOLatin2
	WindowsLatin2
	WindowsCyrillic
	ISOLatinCyrillic
	MacCyrillic
	KOI8R
	WindowsGreek
	ISOLatinGreek
	GB18030
	Big5
	EUCKR
)

type family int

const (
	familyLegacy family = iota
	familyUTF8
	familyUTF16
	familyUTF32
)

type byteOrder int

const (
	orderDetect byteOrder = iota
	orderBig
	orderLittle
)

type info struct {
	name   string
	label  string
	iana   string
	cf     uint32
	family family
	order  byteOrder
	codec  encoding.Encoding
}

// Shift_JIS X0213 is decoded with the JIS X 0208 table, which covers the
// subset that round-trips through both encodings.
//
//nolint:gochecknoglobals // Read-only lookup table.
var registry = [...]info{
	Invalid:          {name: "invalid"},
	UTF8:             {name: "UTF-8", label: "Unicode (UTF-8)", iana: "UTF-8", cf: 0x08000100, family: familyUTF8},
	UTF16:            {name: "UTF-16", label: "Unicode (UTF-16)", iana: "UTF-16", cf: 0x00000100, family: familyUTF16},
	UTF16BE:          {name: "UTF-16BE", label: "Unicode (UTF-16BE)", iana: "UTF-16BE", cf: 0x10000100, family: familyUTF16, order: orderBig},
	UTF16LE:          {name: "UTF-16LE", label: "Unicode (UTF-16LE)", iana: "UTF-16LE", cf: 0x14000100, family: familyUTF16, order: orderLittle},
	UTF32:            {name: "UTF-32", label: "Unicode (UTF-32)", iana: "UTF-32", cf: 0x0c000100, family: familyUTF32},
	UTF32BE:          {name: "UTF-32BE", label: "Unicode (UTF-32BE)", iana: "UTF-32BE", cf: 0x18000100, family: familyUTF32, order: orderBig},
	UTF32LE:          {name: "UTF-32LE", label: "Unicode (UTF-32LE)", iana: "UTF-32LE", cf: 0x1c000100, family: familyUTF32, order: orderLittle},
	ShiftJIS:         {name: "Shift_JIS", label: "Japanese (Shift JIS)", iana: "Shift_JIS", cf: 0x0A01, codec: japanese.ShiftJIS},
	ShiftJISX0213:    {name: "Shift_JIS_X0213", label: "Japanese (Shift JIS X0213)", iana: "Shift_JIS", cf: 0x0628, codec: japanese.ShiftJIS},
	DOSJapanese:      {name: "CP932", label: "Japanese (Windows, DOS)", iana: "cp932", cf: 0x0421, codec: japanese.ShiftJIS},
	EUCJP:            {name: "EUC-JP", label: "Japanese (EUC)", iana: "EUC-JP", cf: 0x0920, codec: japanese.EUCJP},
	ISO2022JP:        {name: "ISO-2022-JP", label: "Japanese (ISO 2022-JP)", iana: "ISO-2022-JP", cf: 0x0820, codec: japanese.ISO2022JP},
	MacRoman:         {name: "macintosh", label: "Western (Mac OS Roman)", iana: "macintosh", cf: 0x0000, codec: charmap.Macintosh},
	WindowsLatin1:    {name: "windows-1252", label: "Western (Windows Latin 1)", iana: "windows-1252", cf: 0x0500, codec: charmap.Windows1252},
	ISOLatin1:        {name: "ISO-8859-1", label: "Western (ISO Latin 1)", iana: "ISO-8859-1", cf: 0x0201, codec: charmap.ISO8859_1},
	ISOLatin2:        {name: "ISO-8859-2", label: "Central European (ISO Latin 2)", iana: "ISO-8859-2", cf: 0x0202, codec: charmap.ISO8859_2},
	WindowsLatin2:    {name: "windows-1250", label: "Central European (Windows Latin 2)", iana: "windows-1250", cf: 0x0501, codec: charmap.Windows1250},
	WindowsCyrillic:  {name: "windows-1251", label: "Cyrillic (Windows)", iana: "windows-1251", cf: 0x0502, codec: charmap.Windows1251},
	ISOLatinCyrillic: {name: "ISO-8859-5", label: "Cyrillic (ISO 8859-5)", iana: "ISO-8859-5", cf: 0x0205, codec: charmap.ISO8859_5},
	MacCyrillic:      {name: "x-mac-cyrillic", label: "Cyrillic (Mac OS)", iana: "x-mac-cyrillic", cf: 0x0007, codec: charmap.MacintoshCyrillic},
	KOI8R:            {name: "KOI8-R", label: "Cyrillic (KOI8-R)", iana: "KOI8-R", cf: 0x0A02, codec: charmap.KOI8R},
	WindowsGreek:     {name: "windows-1253", label: "Greek (Windows)", iana: "windows-1253", cf: 0x0503, codec: charmap.Windows1253},
	ISOLatinGreek:    {name: "ISO-8859-7", label: "Greek (ISO 8859-7)", iana: "ISO-8859-7", cf: 0x0207, codec: charmap.ISO8859_7},
	GB18030:          {name: "GB18030", label: "Chinese (GB18030)", iana: "GB18030", cf: 0x0632, codec: simplifiedchinese.GB18030},
	Big5:             {name: "Big5", label: "Traditional Chinese (Big 5)", iana: "Big5", cf: 0x0A03, codec: traditionalchinese.Big5},
	EUCKR:            {name: "EUC-KR", label: "Korean (EUC)", iana: "EUC-KR", cf: 0x0940, codec: korean.EUCKR},
}

// All returns every supported encoding in registry order.
func All() []Encoding {
	all := make([]Encoding, 0, len(registry)-1)
	for enc := UTF8; int(enc) < len(registry); enc++ {
		all = append(all, enc)
	}

	return all
}

// DefaultCandidates returns the candidate order used when none is configured.
func DefaultCandidates() []Encoding {
	return []Encoding{
		UTF8,
		ShiftJIS,
		EUCJP,
		DOSJapanese,
		ShiftJISX0213,
		ISO2022JP,
		MacRoman,
		WindowsLatin1,
		GB18030,
		Big5,
		EUCKR,
		WindowsCyrillic,
		KOI8R,
		UTF16,
		UTF32,
	}
}

// IsValid reports whether e names a supported encoding.
func (e Encoding) IsValid() bool {
	return e > Invalid && int(e) < len(registry)
}

func (e Encoding) info() info {
	if !e.IsValid() {
		return registry[Invalid]
	}

	return registry[e]
}

// String returns the canonical name used in configuration files.
func (e Encoding) String() string {
	if !e.IsValid() {
		return fmt.Sprintf("Encoding(%d)", int(e))
	}

	return e.info().name
}

// Label returns a descriptive name such as "Japanese (Shift JIS)".
func (e Encoding) Label() string {
	return e.info().label
}

// IANAName returns the IANA charset name.
func (e Encoding) IANAName() string {
	return e.info().iana
}

// CFNumber returns the legacy Core Foundation encoding constant stored in
// the com.apple.TextEncoding extended attribute.
func (e Encoding) CFNumber() uint32 {
	return e.info().cf
}

// IsUnicode reports whether e is one of the UTF encodings.
func (e Encoding) IsUnicode() bool {
	return e.IsValid() && e.info().family != familyLegacy
}

// SupportsBOM reports whether a byte-order mark is meaningful for e.
func (e Encoding) SupportsBOM() bool {
	return e.IsUnicode()
}

// MarshalText implements encoding.TextMarshaler.
func (e Encoding) MarshalText() ([]byte, error) {
	if !e.IsValid() {
		return nil, fmt.Errorf("invalid encoding %d", int(e))
	}

	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Encoding) UnmarshalText(text []byte) error {
	enc, ok := Lookup(string(text))
	if !ok {
		return fmt.Errorf("unknown encoding %q", string(text))
	}

	*e = enc

	return nil
}

// Lookup resolves an encoding by canonical name, IANA name, or any alias
// known to the IANA registry. Matching is case-insensitive.
func Lookup(name string) (Encoding, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Invalid, false
	}

	for enc := UTF8; int(enc) < len(registry); enc++ {
		if strings.EqualFold(registry[enc].name, name) {
			return enc, true
		}
	}

	return ByIANAName(name)
}

// ByIANAName resolves an IANA charset name or alias.
// Names shared by several encodings resolve to the first registered one.
func ByIANAName(name string) (Encoding, bool) {
	if enc, ok := byIANA(name); ok {
		return enc, true
	}

	codec, err := ianaindex.IANA.Encoding(name)
	if err != nil || codec == nil {
		return Invalid, false
	}

	for _, index := range []*ianaindex.Index{ianaindex.MIME, ianaindex.IANA} {
		canonical, err := index.Name(codec)
		if err != nil {
			continue
		}

		if enc, ok := byIANA(canonical); ok {
			return enc, true
		}
	}

	return Invalid, false
}

func byIANA(name string) (Encoding, bool) {
	for enc := UTF8; int(enc) < len(registry); enc++ {
		if strings.EqualFold(registry[enc].iana, name) {
			return enc, true
		}
	}

	return Invalid, false
}

// ByCFNumber resolves a legacy Core Foundation encoding constant.
func ByCFNumber(number uint32) (Encoding, bool) {
	for enc := UTF8; int(enc) < len(registry); enc++ {
		if registry[enc].cf == number {
			return enc, true
		}
	}

	return Invalid, false
}

// IsCompatible reports whether a and b name the same IANA charset,
// treating Shift_JIS and Shift_JIS X0213 as interchangeable.
func IsCompatible(a, b Encoding) bool {
	if a == b {
		return true
	}

	return (a == ShiftJIS && b == ShiftJISX0213) || (a == ShiftJISX0213 && b == ShiftJIS)
}

// FileEncoding is the encoding a file was read with and whether the file
// started with a byte-order mark.
type FileEncoding struct {
	Encoding Encoding `json:"encoding"`
	HasBOM   bool     `json:"hasBOM"`
}

// String returns a description such as "UTF-8 with BOM".
func (f FileEncoding) String() string {
	if f.HasBOM && f.Encoding.SupportsBOM() {
		return f.Encoding.String() + " with BOM"
	}

	return f.Encoding.String()
}
