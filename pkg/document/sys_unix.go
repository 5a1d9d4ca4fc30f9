//go:build darwin || linux

package document

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

func getXattr(path, name string) ([]byte, bool, error) {
	key := xattrKey(name)

	size, err := unix.Getxattr(path, key, nil)
	if err != nil {
		return nil, false, xattrError(err)
	}

	if size == 0 {
		return nil, true, nil
	}

	buf := make([]byte, size)

	size, err = unix.Getxattr(path, key, buf)
	if err != nil {
		return nil, false, xattrError(err)
	}

	return buf[:size], true, nil
}

func setXattr(path, name string, value []byte) error {
	if err := unix.Setxattr(path, xattrKey(name), value, 0); err != nil {
		return unsupported(err)
	}

	return nil
}

func removeXattr(path, name string) error {
	err := unix.Removexattr(path, xattrKey(name))
	if err == nil || isMissingAttr(err) {
		return nil
	}

	return unsupported(err)
}

// xattrError maps a missing attribute to a nil error.
func xattrError(err error) error {
	if isMissingAttr(err) {
		return nil
	}

	return unsupported(err)
}

func unsupported(err error) error {
	if errors.Is(err, unix.ENOTSUP) || errors.Is(err, unix.EOPNOTSUPP) {
		return fmt.Errorf("%w: %w", ErrXattrUnsupported, err)
	}

	return err
}

func fileOwner(path string) (int, int, bool) {
	var stat unix.Stat_t
	if err := unix.Stat(path, &stat); err != nil {
		return 0, 0, false
	}

	return int(stat.Uid), int(stat.Gid), true
}
