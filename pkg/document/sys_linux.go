package document

import (
	"errors"

	"golang.org/x/sys/unix"
)

// Unprivileged attributes live in the user namespace on Linux.
func xattrKey(name string) string {
	return "user." + name
}

func isMissingAttr(err error) bool {
	return errors.Is(err, unix.ENODATA)
}
