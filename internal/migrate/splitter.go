package migrate

import "strings"

// SplitStatements breaks a SQL resource into individual statements so
// the runner can execute them sequentially and downgrade a
// duplicate-column failure without losing the statements that follow
// it. It understands line comments, block comments, single-quoted
// strings, and dollar-quoted bodies; it does not attempt full parsing
// beyond what the shipped migration files need.
func SplitStatements(src string) []string {
	var (
		stmts   []string
		cur     strings.Builder
		i       int
		n       = len(src)
		dollarQ string // active dollar-quote tag, e.g. "$fn$"
	)

	flush := func() {
		s := strings.TrimSpace(cur.String())
		cur.Reset()
		if s != "" {
			stmts = append(stmts, s)
		}
	}

	for i < n {
		c := src[i]

		// Inside a dollar-quoted body: copy until the closing tag.
		if dollarQ != "" {
			if strings.HasPrefix(src[i:], dollarQ) {
				cur.WriteString(dollarQ)
				i += len(dollarQ)
				dollarQ = ""
				continue
			}
			cur.WriteByte(c)
			i++
			continue
		}

		switch {
		case c == '-' && i+1 < n && src[i+1] == '-':
			// Line comment: skip to end of line.
			for i < n && src[i] != '\n' {
				i++
			}

		case c == '/' && i+1 < n && src[i+1] == '*':
			// Block comment: skip to closing marker.
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				i = n
			} else {
				i += 2 + end + 2
			}

		case c == '\'':
			// Single-quoted string; '' escapes a quote.
			cur.WriteByte(c)
			i++
			for i < n {
				cur.WriteByte(src[i])
				if src[i] == '\'' {
					if i+1 < n && src[i+1] == '\'' {
						i++
						cur.WriteByte(src[i])
					} else {
						i++
						break
					}
				}
				i++
			}

		case c == '$':
			// Possible dollar-quote tag: $tag$ or $$.
			if tag, ok := dollarTag(src[i:]); ok {
				dollarQ = tag
				cur.WriteString(tag)
				i += len(tag)
			} else {
				cur.WriteByte(c)
				i++
			}

		case c == ';':
			flush()
			i++

		default:
			cur.WriteByte(c)
			i++
		}
	}
	flush()
	return stmts
}

// dollarTag reports whether s starts with a dollar-quote opener and
// returns it. Valid tags are $$ or $word$ with alphanumeric/underscore
// word characters.
func dollarTag(s string) (string, bool) {
	if len(s) < 2 || s[0] != '$' {
		return "", false
	}
	for j := 1; j < len(s); j++ {
		c := s[j]
		if c == '$' {
			return s[:j+1], true
		}
		if !isTagChar(c) {
			return "", false
		}
	}
	return "", false
}

func isTagChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
