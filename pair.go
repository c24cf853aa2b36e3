package maidenhead

import "unicode"

// A locator is read two characters at a time. The alphabet of a pair
// depends only on its 0-based index: the leading field pair uses the
// letters A-R, after that digit pairs and A-X letter pairs alternate.
// Decode and encode both derive the alternation from kindOf so they
// cannot disagree.
type pairKind int

const (
	fieldPair  pairKind = iota // letters A-R, 18 values
	digitPair                  // digits 0-9
	letterPair                 // letters A-X, 24 values
)

func kindOf(p int) pairKind {
	switch {
	case p == 0:
		return fieldPair
	case p%2 == 1:
		return digitPair
	default:
		return letterPair
	}
}

// cells is the number of values one character of this pair kind can
// take, which is also the subdivision factor the pair applies to the
// cell left by its predecessor.
func (k pairKind) cells() int64 {
	switch k {
	case fieldPair:
		return 18
	case digitPair:
		return 10
	default:
		return 24
	}
}

// valid reports whether b is a legal character for this pair kind.
// Case is ignored; anything non-ASCII fails the range checks.
func (k pairKind) valid(b byte) bool {
	if k == digitPair {
		return isdigit(b)
	}
	l := tolower(b)
	return l >= 'a' && l <= 'a'+byte(k.cells())-1
}

// valueChar maps a 0-based pair value back to its character. Letters
// are emitted upper case; Humanize recases afterwards if asked.
func (k pairKind) valueChar(v int64) byte {
	if k == digitPair {
		return '0' + byte(v)
	}
	return 'A' + byte(v)
}

// charValue maps a pair character to its 0-based value: digits map
// 0-9, letters map case-insensitively with A=0. The same mapping
// serves both letter alphabets; validation already bounded the range.
func charValue(b byte) int64 {
	if isdigit(b) {
		return int64(b - '0')
	}
	return int64(tolower(b) - 'a')
}

func isdigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func tolower(b byte) byte {
	return byte(unicode.ToLower(rune(b)))
}

func toupper(b byte) byte {
	return byte(unicode.ToUpper(rune(b)))
}
