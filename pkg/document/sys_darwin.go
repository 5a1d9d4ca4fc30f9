package document

import (
	"errors"

	"golang.org/x/sys/unix"
)

func xattrKey(name string) string {
	return name
}

func isMissingAttr(err error) bool {
	return errors.Is(err, unix.ENOATTR)
}
