// Package langdetect guesses the language of a file from its name and
// content. It uses go-enry, trying the cheapest and most reliable signals
// first.
package langdetect

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
	"github.com/samber/lo"
)

// Strategy names the signal that produced a detection.
type Strategy string

// Detection strategies, in the order they are tried.
const (
	StrategyNone       Strategy = ""
	StrategyFilename   Strategy = "filename"
	StrategyExtension  Strategy = "extension"
	StrategyShebang    Strategy = "shebang"
	StrategyModeline   Strategy = "modeline"
	StrategyClassifier Strategy = "classifier"
)

// classifierSampleSize bounds the content handed to the classifier.
const classifierSampleSize = 16 * 1024

// Result is a detected language.
type Result struct {
	// Language is the go-enry language name, e.g. "Go" or "Shell".
	Language string

	// Strategy is how the language was found.
	Strategy Strategy
}

// Found reports whether a language was detected.
func (r Result) Found() bool {
	return r.Language != ""
}

// Detect returns the language of a file. Only unambiguous answers are
// accepted from the name, shebang, and modeline strategies. The classifier
// runs last and only when candidates are given; its answer is restricted
// to them and, when the name matched several languages, to those.
func Detect(filename string, content []byte, candidates []string) Result {
	base := filepath.Base(filename)

	// Ambiguous name matches narrow the classifier instead of deciding.
	var hinted []string

	if base != "" && base != "." {
		if lang, safe := enry.GetLanguageByFilename(base); safe {
			return Result{Language: lang, Strategy: StrategyFilename}
		}

		if lang, safe := enry.GetLanguageByExtension(base); safe {
			return Result{Language: lang, Strategy: StrategyExtension}
		}

		hinted = enry.GetLanguagesByFilename(base, nil, nil)
		if len(hinted) == 0 {
			hinted = enry.GetLanguagesByExtension(base, nil, nil)
		}
	}

	if len(content) == 0 {
		return Result{}
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return Result{Language: lang, Strategy: StrategyShebang}
	}

	if lang, safe := enry.GetLanguageByModeline(content); safe {
		return Result{Language: lang, Strategy: StrategyModeline}
	}

	if len(hinted) > 0 {
		candidates = lo.Intersect(candidates, hinted)
	}

	if len(candidates) == 0 || IsBinary(content) {
		return Result{}
	}

	sample := content
	if len(sample) > classifierSampleSize {
		sample = sample[:classifierSampleSize]
	}

	if lang, _ := enry.GetLanguageByClassifier(sample, candidates); lang != "" {
		return Result{Language: lang, Strategy: StrategyClassifier}
	}

	return Result{}
}

// IsBinary reports whether content looks like binary data.
func IsBinary(content []byte) bool {
	return enry.IsBinary(content)
}

// IsVendored reports whether path lies in a vendored or generated
// dependency directory.
func IsVendored(path string) bool {
	return enry.IsVendor(filepath.ToSlash(path))
}

// Interpreter returns the interpreter named in a shebang line, without
// its directory. "#!/usr/bin/env python3" yields "python3".
func Interpreter(content []byte) string {
	line, _, _ := strings.Cut(string(content[:min(len(content), 256)]), "\n")
	if !strings.HasPrefix(line, "#!") {
		return ""
	}

	fields := strings.Fields(strings.TrimPrefix(line, "#!"))
	if len(fields) == 0 {
		return ""
	}

	interpreter := filepath.Base(fields[0])

	if interpreter == "env" {
		for _, field := range fields[1:] {
			if strings.HasPrefix(field, "-") || strings.Contains(field, "=") {
				continue
			}

			return filepath.Base(field)
		}

		return ""
	}

	return interpreter
}
