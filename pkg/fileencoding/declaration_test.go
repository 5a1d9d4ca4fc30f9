package fileencoding_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/textkit/pkg/fileencoding"
)

func TestScanDeclaration_ShiftJIS(t *testing.T) {
	t.Parallel()

	text := `<meta charset="Shift_JIS"/>`

	_, found := fileencoding.ScanDeclaration(text, 16, []fileencoding.Encoding{
		fileencoding.UTF8, fileencoding.ShiftJIS, fileencoding.ShiftJISX0213,
	})
	assert.False(t, found)

	enc, found := fileencoding.ScanDeclaration(text, 128, []fileencoding.Encoding{
		fileencoding.UTF8, fileencoding.ShiftJIS, fileencoding.ShiftJISX0213,
	})
	assert.True(t, found)
	assert.Equal(t, fileencoding.ShiftJIS, enc)

	enc, found = fileencoding.ScanDeclaration(text, 128, []fileencoding.Encoding{
		fileencoding.UTF8, fileencoding.ShiftJISX0213, fileencoding.ShiftJIS,
	})
	assert.True(t, found)
	assert.Equal(t, fileencoding.ShiftJISX0213, enc)

	_, found = fileencoding.ScanDeclaration(text, 128, []fileencoding.Encoding{fileencoding.UTF8})
	assert.False(t, found)
}

func TestScanDeclaration_Styles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		expected fileencoding.Encoding
	}{
		{name: "xml", text: `<?xml version="1.0" encoding="EUC-JP"?>`, expected: fileencoding.EUCJP},
		{name: "html", text: "<html><head><meta charset='utf-8'>", expected: fileencoding.UTF8},
		{name: "html content type", text: `<meta http-equiv="Content-Type" content="text/html; charset=windows-1251">`, expected: fileencoding.WindowsCyrillic},
		{name: "css", text: `@charset "ISO-8859-1";`, expected: fileencoding.ISOLatin1},
		{name: "python", text: "#!/usr/bin/env python\n# -*- coding: euc-jp -*-\n", expected: fileencoding.EUCJP},
		{name: "vim", text: "# vim: set fileencoding=utf-8 :", expected: fileencoding.UTF8},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			enc, found := fileencoding.ScanDeclaration(tc.text, fileencoding.MaxDeclarationScanLength, nil)
			assert.True(t, found)
			assert.Equal(t, tc.expected, enc)
		})
	}
}

func TestScanDeclaration_Limits(t *testing.T) {
	t.Parallel()

	_, found := fileencoding.ScanDeclaration("", 100, nil)
	assert.False(t, found)

	_, found = fileencoding.ScanDeclaration("no declaration here", 100, nil)
	assert.False(t, found)

	// The limit counts characters, not bytes.
	padding := strings.Repeat("日", fileencoding.MaxDeclarationScanLength-len(`charset="utf-8"`))
	_, found = fileencoding.ScanDeclaration(padding+`charset="utf-8"`, fileencoding.MaxDeclarationScanLength, nil)
	assert.True(t, found)

	beyond := strings.Repeat("日", fileencoding.MaxDeclarationScanLength) + `charset="utf-8"`
	_, found = fileencoding.ScanDeclaration(beyond, fileencoding.MaxDeclarationScanLength, nil)
	assert.False(t, found)
}
