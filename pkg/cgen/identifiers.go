package cgen

import "strings"

// sanitizeIdent turns a NatureLang name into a legal C identifier. Spaces
// are the only character NatureLang identifiers can contain that C
// disallows, so a single space-to-underscore pass is
// sufficient; nothing else needs escaping.
func sanitizeIdent(name string) string {
	return strings.ReplaceAll(name, " ", "_")
}

// escapeString renders a NatureLang text literal as a C string literal
// body (without the surrounding quotes), escaping the characters
// original_source's lexer itself recognized as escape sequences.
func escapeString(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
