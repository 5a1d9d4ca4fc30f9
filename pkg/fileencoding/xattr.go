package fileencoding

import (
	"strconv"
	"strings"
)

// XattrName is the extended attribute that stores a file's encoding.
const XattrName = "com.apple.TextEncoding"

// ParseXattr decodes a com.apple.TextEncoding value of the form
// "IANA-name;cf-number". The number takes precedence when present.
func ParseXattr(value []byte) (Encoding, bool) {
	text := strings.TrimRight(string(value), "\x00")
	if text == "" {
		return Invalid, false
	}

	parts := strings.Split(text, ";")
	if len(parts) > 1 {
		number, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 32)
		if err != nil {
			return Invalid, false
		}

		return ByCFNumber(uint32(number))
	}

	return ByIANAName(parts[0])
}

// XattrValue returns the com.apple.TextEncoding value for enc.
func XattrValue(enc Encoding) ([]byte, bool) {
	if !enc.IsValid() {
		return nil, false
	}

	return []byte(enc.IANAName() + ";" + strconv.FormatUint(uint64(enc.CFNumber()), 10)), true
}
