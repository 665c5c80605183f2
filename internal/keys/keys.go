// Package keys tokenizes key sequences written in Vim notation.
//
// Supported forms:
//   - Plain characters: "g", "gd", "\\w"
//   - Named keys: "<CR>", "<Esc>", "<Tab>", "<lt>", "<Space>", "<F5>"
//   - Modified keys: "<C-s>", "<C-S-p>", "<A-x>", "<M-CR>", "<C-\>"
//   - Pseudo keys: "<Leader>", "<LocalLeader>", "<Plug>", "<SID>", "<Nop>"
//
// Bracketed text that does not name a key ("<foo>") is kept as literal
// characters, and an unclosed "<" is a literal "<".
package keys

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Control sequences used to move between modes from a mapping.
const (
	// CtrlC leaves visual, command-line and operator-pending mode.
	CtrlC = "<C-C>"

	// CtrlBackslashCtrlG returns to the mode selected by 'insertmode'.
	CtrlBackslashCtrlG = `<C-\><C-G>`

	// CtrlBackslashCtrlO runs one normal-mode command from insert mode
	// without moving the cursor.
	CtrlBackslashCtrlO = `<C-\><C-O>`

	// CR is the enter key.
	CR = "<CR>"

	// Tab separates a menu name from its right-aligned hint text.
	Tab = "<Tab>"
)

// ErrEmpty is returned when tokenizing an empty sequence.
var ErrEmpty = errors.New("empty key sequence")

// Token is a single key.
type Token struct {
	// Text is the canonical notation: a single character or "<...>".
	Text string

	// Named reports whether the token is a bracketed key.
	Named bool
}

// String returns the canonical notation.
func (t Token) String() string {
	return t.Text
}

// names maps lower-case key names to their canonical spelling.
var names = map[string]string{
	"cr":              "CR",
	"return":          "CR",
	"enter":           "CR",
	"nl":              "NL",
	"esc":             "Esc",
	"escape":          "Esc",
	"tab":             "Tab",
	"bs":              "BS",
	"backspace":       "BS",
	"del":             "Del",
	"delete":          "Del",
	"ins":             "Insert",
	"insert":          "Insert",
	"space":           "Space",
	"lt":              "lt",
	"bar":             "Bar",
	"bslash":          "Bslash",
	"up":              "Up",
	"down":            "Down",
	"left":            "Left",
	"right":           "Right",
	"home":            "Home",
	"end":             "End",
	"pageup":          "PageUp",
	"pgup":            "PageUp",
	"pagedown":        "PageDown",
	"pgdn":            "PageDown",
	"nul":             "Nul",
	"nop":             "Nop",
	"leader":          "Leader",
	"localleader":     "LocalLeader",
	"plug":            "Plug",
	"sid":             "SID",
	"f1":              "F1",
	"f2":              "F2",
	"f3":              "F3",
	"f4":              "F4",
	"f5":              "F5",
	"f6":              "F6",
	"f7":              "F7",
	"f8":              "F8",
	"f9":              "F9",
	"f10":             "F10",
	"f11":             "F11",
	"f12":             "F12",
	"leftmouse":       "LeftMouse",
	"rightmouse":      "RightMouse",
	"middlemouse":     "MiddleMouse",
	"scrollwheelup":   "ScrollWheelUp",
	"scrollwheeldown": "ScrollWheelDown",
}

// Tokenize splits a Vim-notation key sequence into tokens.
func Tokenize(s string) ([]Token, error) {
	if s == "" {
		return nil, ErrEmpty
	}

	tokens := make([]Token, 0, len(s))
	for i := 0; i < len(s); {
		if s[i] == '<' {
			end := strings.IndexByte(s[i+1:], '>')
			if end >= 0 {
				if tok, ok := parseNamed(s[i+1 : i+1+end]); ok {
					tokens = append(tokens, tok)
					i += end + 2
					continue
				}
			}
		}

		_, size := utf8.DecodeRuneInString(s[i:])
		tokens = append(tokens, Token{Text: s[i : i+size]})
		i += size
	}
	return tokens, nil
}

// Normalize returns the canonical spelling of a key sequence.
func Normalize(s string) (string, error) {
	tokens, err := Tokenize(s)
	if err != nil {
		return "", err
	}
	return Join(tokens), nil
}

// Join concatenates token notation.
func Join(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}

// parseNamed parses the text between angle brackets. ok is false when the
// text does not name a key and should be read literally.
func parseNamed(inner string) (Token, bool) {
	var mods []string
	keyPart := inner
	// "C--" is Ctrl with the "-" key
	for len(keyPart) > 2 && keyPart[1] == '-' {
		mod, known := modifierName(keyPart[0])
		if !known {
			return Token{}, false
		}
		mods = append(mods, mod)
		keyPart = keyPart[2:]
	}

	var key string
	if canonical, known := names[strings.ToLower(keyPart)]; known {
		key = canonical
	} else if utf8.RuneCountInString(keyPart) == 1 && len(mods) > 0 {
		key = keyPart
		if hasCtrl(mods) {
			key = strings.ToUpper(key)
		}
	} else {
		return Token{}, false
	}

	if len(mods) == 0 {
		return Token{Text: "<" + key + ">", Named: true}, true
	}
	return Token{Text: "<" + strings.Join(mods, "-") + "-" + key + ">", Named: true}, true
}

func modifierName(b byte) (string, bool) {
	switch b {
	case 'c', 'C':
		return "C", true
	case 's', 'S':
		return "S", true
	case 'a', 'A':
		return "A", true
	case 'm', 'M':
		return "M", true
	case 'd', 'D':
		return "D", true
	default:
		return "", false
	}
}

func hasCtrl(mods []string) bool {
	for _, m := range mods {
		if m == "C" {
			return true
		}
	}
	return false
}
