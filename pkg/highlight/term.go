// Package highlight extracts the character ranges matched by lexical term
// definitions: literal words, literal begin/end pairs, regular expressions,
// and regular expression begin/end pairs.
//
// Extractors are stateless and safe for concurrent use. Combining the
// results of several terms into styled output is left to the caller.
package highlight

// Term is one lexical definition of a syntax category.
type Term struct {
	// Begin is the word, literal begin delimiter, or pattern.
	Begin string `json:"beginString" yaml:"beginString"`

	// End is the optional end delimiter or pattern.
	End string `json:"endString,omitempty" yaml:"endString,omitempty"`

	// IsRegularExpression treats Begin and End as patterns.
	IsRegularExpression bool `json:"regularExpression,omitempty" yaml:"regularExpression,omitempty"`

	// IgnoreCase matches case-insensitively.
	IgnoreCase bool `json:"ignoreCase,omitempty" yaml:"ignoreCase,omitempty"`
}

// Variant classifies a Term.
type Variant int

// Term variants.
const (
	LiteralWord Variant = iota
	LiteralPair
	RegexSingle
	RegexPair
)

// String returns the variant name.
func (v Variant) String() string {
	switch v {
	case LiteralWord:
		return "word"
	case LiteralPair:
		return "pair"
	case RegexSingle:
		return "regex"
	case RegexPair:
		return "regex pair"
	default:
		return "unknown"
	}
}

// Variant returns which of the four term shapes t has.
func (t Term) Variant() Variant {
	switch {
	case t.IsRegularExpression && t.End != "":
		return RegexPair
	case t.IsRegularExpression:
		return RegexSingle
	case t.End != "":
		return LiteralPair
	default:
		return LiteralWord
	}
}
