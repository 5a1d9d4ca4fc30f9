//go:build !darwin && !linux

package document

func getXattr(string, string) ([]byte, bool, error) {
	return nil, false, ErrXattrUnsupported
}

func setXattr(string, string, []byte) error {
	return ErrXattrUnsupported
}

func removeXattr(string, string) error {
	return ErrXattrUnsupported
}

func fileOwner(string) (int, int, bool) {
	return 0, 0, false
}
