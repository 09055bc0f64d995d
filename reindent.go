package rollcall

import "strings"

// Reindent normalizes a block of code-like text so the first line starts at
// column zero, preserving the relative indentation of nested lines.
//
// Leading and trailing line breaks are trimmed, then the first line's count
// of leading ASCII spaces is removed from the start of every line. A line
// never loses more than that count, so a doubly-indented body keeps its
// extra indent, and a line shorter than the count is stripped of whatever
// leading spaces it has. Tabs are not treated as indentation and pass
// through untouched. The empty string comes back unchanged: missing
// documentation is empty text, not an error.
func Reindent(s string) string {
	if s == "" {
		return s
	}

	s = strings.Trim(s, "\n")
	leading := len(s) - len(strings.TrimLeft(s, " "))

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		// Strip spaces from at most the first `leading` characters; the
		// remainder of the line keeps its deeper indentation.
		cut := leading
		if cut > len(line) {
			cut = len(line)
		}
		lines[i] = strings.TrimLeft(line[:cut], " ") + line[cut:]
	}

	return strings.Join(lines, "\n")
}
