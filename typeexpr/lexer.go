package typeexpr

import (
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokDot
	tokDollar
	tokComma
	tokLess
	tokGreater
	tokQuestion
	tokLBracket
	tokRBracket
	tokInvalid
)

var tokenNames = map[tokenKind]string{
	tokEOF:      "end of input",
	tokIdent:    "identifier",
	tokDot:      "'.'",
	tokDollar:   "'$'",
	tokComma:    "','",
	tokLess:     "'<'",
	tokGreater:  "'>'",
	tokQuestion: "'?'",
	tokLBracket: "'['",
	tokRBracket: "']'",
	tokInvalid:  "invalid character",
}

func (k tokenKind) String() string {
	return tokenNames[k]
}

type token struct {
	kind   tokenKind
	value  string
	offset int
}

var punctuation = map[rune]tokenKind{
	'.': tokDot,
	'$': tokDollar,
	',': tokComma,
	'<': tokLess,
	'>': tokGreater,
	'?': tokQuestion,
	'[': tokLBracket,
	']': tokRBracket,
}

// tokenize splits src into tokens. Whitespace separates tokens and is dropped.
func tokenize(src string) []token {
	var tokens []token
	for i := 0; i < len(src); {
		r, size := utf8.DecodeRuneInString(src[i:])
		switch {
		case unicode.IsSpace(r):
			i += size
		case isIdentStart(r):
			start := i
			for i < len(src) {
				r, size = utf8.DecodeRuneInString(src[i:])
				if !isIdentPart(r) {
					break
				}
				i += size
			}
			tokens = append(tokens, token{kind: tokIdent, value: src[start:i], offset: start})
		default:
			kind, ok := punctuation[r]
			if !ok {
				kind = tokInvalid
			}
			tokens = append(tokens, token{kind: kind, value: string(r), offset: i})
			i += size
		}
	}
	return append(tokens, token{kind: tokEOF, offset: len(src)})
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
