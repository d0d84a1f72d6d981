// Package keymap normalises terminal key events and resolves configurable
// bindings into a lookup table once at startup.
package keymap

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Key is a normalised key press. Printable keys use tcell.KeyRune with Rune
// set (case carries shift). Control letters use tcell.KeyCtrlA..KeyCtrlZ with
// ModCtrl. Other named keys keep their tcell code and Ctrl/Alt modifiers.
type Key struct {
	Code tcell.Key
	Rune rune
	Mod  tcell.ModMask
}

const modMask = tcell.ModCtrl | tcell.ModAlt

// FromEvent normalises a tcell key event.
func FromEvent(ev *tcell.EventKey) Key {
	return Normalize(ev.Key(), ev.Rune(), ev.Modifiers())
}

// Normalize folds the many ways terminals report the same key into one Key.
func Normalize(code tcell.Key, r rune, mod tcell.ModMask) Key {
	mod &= modMask
	ctrl := mod&tcell.ModCtrl != 0

	switch {
	case code == tcell.KeyRune:
		if ctrl && unicode.IsLetter(r) && r < unicode.MaxASCII {
			return ctrlLetter(unicode.ToLower(r), mod)
		}
		return Key{Code: tcell.KeyRune, Rune: r, Mod: mod &^ tcell.ModCtrl}
	case code == tcell.KeyBackspace && !ctrl:
		return Key{Code: tcell.KeyBackspace2, Mod: mod}
	case (code == tcell.KeyTab || code == tcell.KeyEnter) && !ctrl:
		return Key{Code: code, Mod: mod}
	case code >= tcell.KeyCtrlA && code <= tcell.KeyCtrlZ:
		return Key{Code: code, Mod: mod | tcell.ModCtrl}
	}
	return Key{Code: code, Mod: mod}
}

func ctrlLetter(lower rune, mod tcell.ModMask) Key {
	return Key{Code: tcell.KeyCtrlA + tcell.Key(lower-'a'), Mod: mod | tcell.ModCtrl}
}

// IsText reports whether the key inserts its rune into a text buffer.
func (k Key) IsText() bool {
	return k.Code == tcell.KeyRune && k.Mod&tcell.ModCtrl == 0 && unicode.IsPrint(k.Rune)
}

var namedKeys = map[string]tcell.Key{
	"enter":     tcell.KeyEnter,
	"return":    tcell.KeyEnter,
	"esc":       tcell.KeyEscape,
	"escape":    tcell.KeyEscape,
	"tab":       tcell.KeyTab,
	"backtab":   tcell.KeyBacktab,
	"backspace": tcell.KeyBackspace2,
	"delete":    tcell.KeyDelete,
	"del":       tcell.KeyDelete,
	"insert":    tcell.KeyInsert,
	"up":        tcell.KeyUp,
	"down":      tcell.KeyDown,
	"left":      tcell.KeyLeft,
	"right":     tcell.KeyRight,
	"home":      tcell.KeyHome,
	"end":       tcell.KeyEnd,
	"pageup":    tcell.KeyPgUp,
	"pgup":      tcell.KeyPgUp,
	"pagedown":  tcell.KeyPgDn,
	"pgdn":      tcell.KeyPgDn,
}

// Parse reads a binding string such as "q", "M", "ctrl+k", "shift+m",
// "alt+x", "enter" or "f5".
func Parse(spec string) (Key, error) {
	raw := strings.TrimSpace(spec)
	if raw == "" {
		return Key{}, fmt.Errorf("empty key binding")
	}
	if raw == "+" {
		return Key{Code: tcell.KeyRune, Rune: '+'}, nil
	}

	parts := strings.Split(raw, "+")
	base := parts[len(parts)-1]
	if base == "" && len(parts) >= 2 {
		// "ctrl++"
		base = "+"
		parts = parts[:len(parts)-1]
	}
	var mod tcell.ModMask
	shift := false
	for _, m := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(m)) {
		case "ctrl", "control":
			mod |= tcell.ModCtrl
		case "alt", "meta":
			mod |= tcell.ModAlt
		case "shift":
			shift = true
		case "":
		default:
			return Key{}, fmt.Errorf("unknown modifier %q in %q", m, spec)
		}
	}

	if runes := []rune(base); len(runes) == 1 {
		r := runes[0]
		if shift {
			r = unicode.ToUpper(r)
		}
		return Normalize(tcell.KeyRune, r, mod), nil
	}

	lower := strings.ToLower(base)
	if lower == "space" {
		return Normalize(tcell.KeyRune, ' ', mod), nil
	}
	if code, ok := namedKeys[lower]; ok {
		if shift && code == tcell.KeyTab {
			code = tcell.KeyBacktab
		}
		return Normalize(code, 0, mod), nil
	}
	var n int
	if _, err := fmt.Sscanf(lower, "f%d", &n); err == nil && n >= 1 && n <= 64 && lower == fmt.Sprintf("f%d", n) {
		return Normalize(tcell.KeyF1+tcell.Key(n-1), 0, mod), nil
	}
	return Key{}, fmt.Errorf("unknown key %q", spec)
}

// String renders the key the way Parse reads it.
func (k Key) String() string {
	var b strings.Builder
	if k.Code >= tcell.KeyCtrlA && k.Code <= tcell.KeyCtrlZ && k.Mod&tcell.ModCtrl != 0 {
		if k.Mod&tcell.ModAlt != 0 {
			b.WriteString("alt+")
		}
		b.WriteString("ctrl+")
		b.WriteRune(rune('a' + (k.Code - tcell.KeyCtrlA)))
		return b.String()
	}
	if k.Mod&tcell.ModCtrl != 0 {
		b.WriteString("ctrl+")
	}
	if k.Mod&tcell.ModAlt != 0 {
		b.WriteString("alt+")
	}
	if k.Code == tcell.KeyRune {
		if k.Rune == ' ' {
			b.WriteString("space")
		} else {
			b.WriteRune(k.Rune)
		}
		return b.String()
	}
	for name, code := range canonicalNames {
		if code == k.Code {
			b.WriteString(name)
			return b.String()
		}
	}
	if k.Code >= tcell.KeyF1 && k.Code <= tcell.KeyF64 {
		fmt.Fprintf(&b, "f%d", int(k.Code-tcell.KeyF1)+1)
		return b.String()
	}
	b.WriteString(tcell.KeyNames[k.Code])
	return b.String()
}

var canonicalNames = map[string]tcell.Key{
	"enter":     tcell.KeyEnter,
	"esc":       tcell.KeyEscape,
	"tab":       tcell.KeyTab,
	"backtab":   tcell.KeyBacktab,
	"backspace": tcell.KeyBackspace2,
	"delete":    tcell.KeyDelete,
	"insert":    tcell.KeyInsert,
	"up":        tcell.KeyUp,
	"down":      tcell.KeyDown,
	"left":      tcell.KeyLeft,
	"right":     tcell.KeyRight,
	"home":      tcell.KeyHome,
	"end":       tcell.KeyEnd,
	"pageup":    tcell.KeyPgUp,
	"pagedown":  tcell.KeyPgDn,
}
