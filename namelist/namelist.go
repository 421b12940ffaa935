// Package namelist parses the comma-separated display-name literals used to
// label enumeration items.
//
// A literal such as "Cat, Dog, , Mouse" is split on commas. Blank characters
// (space and tab) that directly follow a comma are dropped; every other
// character is kept as written, including spaces inside a name and spaces
// before the next comma. Two adjacent commas produce an empty entry so that
// later names keep their positions.
package namelist

import "strings"

// Separator splits entries in a literal.
const Separator = ','

// Parse splits literal into its entries. The result always has one more
// entry than literal has separators, so the empty literal yields a single
// empty entry.
func Parse(literal string) []string {
	names := make([]string, 0, strings.Count(literal, string(Separator))+1)

	var (
		token    strings.Builder
		afterSep bool
	)
	for i := 0; i < len(literal); i++ {
		c := literal[i]
		switch {
		case c == Separator:
			names = append(names, token.String())
			token.Reset()
			afterSep = true
		case afterSep && isBlank(c):
			// still inside the run of blanks that follows a separator
		default:
			token.WriteByte(c)
			afterSep = false
		}
	}
	return append(names, token.String())
}

// Fit returns a copy of names with exactly n entries. Missing trailing
// entries are empty strings; extra entries are dropped.
func Fit(names []string, n int) []string {
	if n < 0 {
		n = 0
	}
	out := make([]string, n)
	copy(out, names)
	return out
}

// ParseN parses literal and fits the result to n entries.
func ParseN(literal string, n int) []string {
	return Fit(Parse(literal), n)
}

// Join renders names as a literal that Parse turns back into names, provided
// names is not empty and no name contains a separator or starts with a blank.
func Join(names []string) string {
	return strings.Join(names, string(Separator)+" ")
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}
