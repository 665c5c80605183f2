package directive

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Fields are the parts of a menu directive line.
type Fields struct {
	// Count is the leading decimal count, if any.
	Count    string
	Special  string
	MenuPath string
	Label    string
	Help     string
	RHS      string
}

// Parse splits a directive line into its fields. It never fails; a field
// that cannot be read is left empty together with every field after it.
func Parse(line string) Fields {
	var f Fields
	sc := &scanner{s: strings.TrimSpace(line)}

	f.Count = sc.count()
	sc.skipSpace()
	f.Special = sc.special()
	sc.skipSpace()

	f.MenuPath = sc.path()
	if f.MenuPath == "" {
		return f
	}
	sc.skipSpace()

	var ok bool
	if f.Label, ok = sc.quoted(); !ok {
		return f
	}
	sc.skipSpace()
	if f.Help, ok = sc.quoted(); !ok {
		return f
	}
	sc.skipSpace()

	f.RHS = sc.rest()
	return f
}

// ParseBinding splits the argument text of a binding directive into its
// special tokens, the lhs and the rhs.
func ParseBinding(line string) (special, lhs, rhs string, err error) {
	sc := &scanner{s: strings.TrimSpace(line)}
	special = sc.special()
	sc.skipSpace()
	lhs = sc.word()
	sc.skipSpace()
	rhs = sc.rest()
	if lhs == "" || rhs == "" {
		return special, lhs, rhs, ErrMissingArgument
	}
	return special, lhs, rhs, nil
}

// SplitCount strips a leading decimal count from s.
func SplitCount(s string) (count, rest string) {
	sc := &scanner{s: strings.TrimSpace(s)}
	count = sc.count()
	sc.skipSpace()
	return count, sc.rest()
}

// Placeholders returns one "." per unescaped "." in path.
func Placeholders(path string) string {
	n := 0
	for i := 0; i < len(path); i++ {
		switch path[i] {
		case '\\':
			i++
		case '.':
			n++
		}
	}
	return strings.Repeat(".", n)
}

type scanner struct {
	s   string
	pos int
}

func (sc *scanner) eof() bool {
	return sc.pos >= len(sc.s)
}

func (sc *scanner) isSpaceAt(i int) bool {
	if i >= len(sc.s) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(sc.s[i:])
	return unicode.IsSpace(r)
}

func (sc *scanner) skipSpace() {
	for !sc.eof() && sc.isSpaceAt(sc.pos) {
		_, size := utf8.DecodeRuneInString(sc.s[sc.pos:])
		sc.pos += size
	}
}

// count reads a run of digits that is followed by whitespace or the end
// of the line.
func (sc *scanner) count() string {
	i := sc.pos
	for i < len(sc.s) && sc.s[i] >= '0' && sc.s[i] <= '9' {
		i++
	}
	if i == sc.pos || (i < len(sc.s) && !sc.isSpaceAt(i)) {
		return ""
	}
	c := sc.s[sc.pos:i]
	sc.pos = i
	return c
}

// special reads consecutive map argument tokens such as <silent> that are
// each followed by whitespace. The tokens are returned space separated.
func (sc *scanner) special() string {
	var toks []string
	for {
		end, ok := sc.specialEnd(sc.pos)
		if !ok {
			break
		}
		toks = append(toks, sc.s[sc.pos:end])
		sc.pos = end
		sc.skipSpace()
	}
	return strings.Join(toks, " ")
}

// specialArgs are the <name> tokens accepted before a path or lhs.
var specialArgs = map[string]bool{
	"buffer":  true,
	"expr":    true,
	"nowait":  true,
	"script":  true,
	"silent":  true,
	"special": true,
	"unique":  true,
}

func (sc *scanner) specialEnd(i int) (int, bool) {
	if i >= len(sc.s) || sc.s[i] != '<' {
		return 0, false
	}
	end := strings.IndexByte(sc.s[i:], '>')
	if end < 0 {
		return 0, false
	}
	end += i + 1
	if !specialArgs[sc.s[i+1:end-1]] || !sc.isSpaceAt(end) {
		return 0, false
	}
	return end, true
}

// path reads non-space characters, keeping "\ " escapes as they are.
func (sc *scanner) path() string {
	start := sc.pos
	for !sc.eof() {
		if sc.s[sc.pos] == '\\' && sc.pos+1 < len(sc.s) && sc.s[sc.pos+1] == ' ' {
			sc.pos += 2
			continue
		}
		if sc.isSpaceAt(sc.pos) {
			break
		}
		_, size := utf8.DecodeRuneInString(sc.s[sc.pos:])
		sc.pos += size
	}
	return sc.s[start:sc.pos]
}

func (sc *scanner) word() string {
	start := sc.pos
	for !sc.eof() && !sc.isSpaceAt(sc.pos) {
		_, size := utf8.DecodeRuneInString(sc.s[sc.pos:])
		sc.pos += size
	}
	return sc.s[start:sc.pos]
}

// quoted reads a single or double quoted string. A missing opening quote
// yields an empty field without consuming input; a missing closing quote
// reports false.
func (sc *scanner) quoted() (string, bool) {
	if sc.eof() {
		return "", true
	}
	switch sc.s[sc.pos] {
	case '\'':
		return sc.singleQuoted()
	case '"':
		return sc.doubleQuoted()
	}
	return "", true
}

// singleQuoted reads a single quoted string; a doubled quote stands for
// one quote.
func (sc *scanner) singleQuoted() (string, bool) {
	var b strings.Builder
	for i := sc.pos + 1; i < len(sc.s); i++ {
		if sc.s[i] != '\'' {
			b.WriteByte(sc.s[i])
			continue
		}
		if i+1 < len(sc.s) && sc.s[i+1] == '\'' {
			b.WriteByte('\'')
			i++
			continue
		}
		sc.pos = i + 1
		return b.String(), true
	}
	sc.pos = len(sc.s)
	return "", false
}

// doubleQuoted reads "..." where \" and \\ are escapes. Other backslashes
// are kept so key notation such as <C-\> survives.
func (sc *scanner) doubleQuoted() (string, bool) {
	var b strings.Builder
	for i := sc.pos + 1; i < len(sc.s); i++ {
		c := sc.s[i]
		switch {
		case c == '\\' && i+1 < len(sc.s) && (sc.s[i+1] == '"' || sc.s[i+1] == '\\'):
			b.WriteByte(sc.s[i+1])
			i++
		case c == '"':
			sc.pos = i + 1
			return b.String(), true
		default:
			b.WriteByte(c)
		}
	}
	sc.pos = len(sc.s)
	return "", false
}

func (sc *scanner) rest() string {
	r := sc.s[sc.pos:]
	sc.pos = len(sc.s)
	return r
}
