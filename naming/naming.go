// Package naming turns namespace identifiers into short, legal identifiers
// for use as directive names.
package naming

import (
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Synthesize derives a candidate name from a namespace identifier. The
// result is not yet a legal identifier; pass it through Identifier.
//
// The last non-empty path segment wins, then the whole path (even "/"), then the
// authority of a hierarchical URI or the opaque part of an opaque one. An
// authority loses a leading "www." and its domain suffix, so
// "http://www.example.com" yields "example".
func Synthesize(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return uri
	}

	path := u.Path
	if i := strings.LastIndexByte(path, '/'); i >= 0 && i < len(path)-1 {
		return path[i+1:]
	}
	if path != "" {
		return path
	}

	if u.Opaque != "" {
		return u.Opaque
	}
	name := u.Host
	if name == "" {
		return uri
	}
	name = strings.TrimPrefix(name, "www.")
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	return name
}

// Identifier coerces name into a legal identifier using the casing rules of
// tag. Accents are removed, runs of characters that cannot appear in an
// identifier separate words that are joined in lower camel case, a leading
// digit gets an underscore prefix and reserved words an underscore suffix.
func Identifier(name string, tag language.Tag) string {
	folded, _, err := transform.String(transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), name)
	if err != nil {
		folded = name
	}

	words := strings.FieldsFunc(folded, func(r rune) bool { return !isPart(r) })
	if len(words) == 0 {
		return "_"
	}
	title := cases.Title(tag, cases.NoLower)
	var b strings.Builder
	for i, w := range words {
		if i == 0 {
			b.WriteString(w)
			continue
		}
		b.WriteString(title.String(w))
	}

	id := b.String()
	if r := []rune(id)[0]; !isStart(r) {
		id = "_" + id
	}
	if keywords[id] {
		id += "_"
	}
	return id
}

// Unique returns base if it is not taken, else the first of base_1,
// base_2, ... that is not.
func Unique(base string, taken func(string) bool) string {
	if !taken(base) {
		return base
	}
	for i := 1; ; i++ {
		candidate := base + "_" + strconv.Itoa(i)
		if !taken(candidate) {
			return candidate
		}
	}
}

func isStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isPart(r rune) bool {
	return isStart(r) || unicode.IsDigit(r)
}

var keywords = map[string]bool{
	"abstract": true, "annotation": true, "as": true, "class": true, "contains": true,
	"container": true, "derived": true, "enum": true, "extends": true, "false": true,
	"get": true, "id": true, "import": true, "interface": true, "local": true,
	"null": true, "op": true, "package": true, "readonly": true, "refers": true,
	"resolving": true, "super": true, "this": true, "throws": true, "transient": true,
	"true": true, "type": true, "unique": true, "unordered": true, "unsettable": true,
	"volatile": true, "wraps": true, "void": true, "return": true, "new": true,
}
