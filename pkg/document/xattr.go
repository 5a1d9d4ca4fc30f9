package document

import (
	"errors"
	"fmt"

	"github.com/yaklabco/textkit/pkg/fileencoding"
)

// ErrXattrUnsupported is returned when the platform or file system has no
// extended attributes.
var ErrXattrUnsupported = errors.New("extended attributes not supported")

// flagValue is written for presence-only boolean attributes.
//
//nolint:gochecknoglobals // Read-only value.
var flagValue = []byte{1}

func readXattrs(path string, attrs *Attributes) error {
	value, found, err := getXattr(path, XattrEncoding)
	if err != nil {
		return err
	}

	if found {
		if enc, ok := fileencoding.ParseXattr(value); ok {
			attrs.XattrEncoding = enc
		}
	}

	if _, found, err = getXattr(path, XattrVerticalText); err != nil {
		return err
	}

	attrs.IsVerticalText = found

	if _, found, err = getXattr(path, XattrAllowInconsistentLines); err != nil {
		return err
	}

	attrs.AllowsInconsistentLineEndings = found

	return nil
}

func writeXattrs(path string, enc fileencoding.Encoding, attrs Attributes) error {
	if value, ok := fileencoding.XattrValue(enc); ok {
		if err := setXattr(path, XattrEncoding, value); err != nil {
			return fmt.Errorf("write %s: %w", XattrEncoding, err)
		}
	}

	flags := []struct {
		name string
		set  bool
	}{
		{XattrVerticalText, attrs.IsVerticalText},
		{XattrAllowInconsistentLines, attrs.AllowsInconsistentLineEndings},
	}

	for _, flag := range flags {
		var err error
		if flag.set {
			err = setXattr(path, flag.name, flagValue)
		} else {
			err = removeXattr(path, flag.name)
		}

		if err != nil {
			return fmt.Errorf("write %s: %w", flag.name, err)
		}
	}

	return nil
}

// SetFlag records a boolean attribute on the file at path.
func SetFlag(path, name string, set bool) error {
	if set {
		return setXattr(path, name, flagValue)
	}

	return removeXattr(path, name)
}
