// Package tcellhost feeds tcell key events to the shortcut engine.
package tcellhost

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keychord/internal/input/key"
)

var namedKeys = map[tcell.Key]key.Key{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyInsert:     key.KeyInsert,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
	tcell.KeyPause:      key.KeyPause,
	tcell.KeyPrint:      key.KeyPrintScreen,
	tcell.KeyScrollLock: key.KeyScrollLock,
	tcell.KeyNumLock:    key.KeyNumLock,
	tcell.KeyCapsLock:   key.KeyCapsLock,
	tcell.KeyF1:         key.KeyF1,
	tcell.KeyF2:         key.KeyF2,
	tcell.KeyF3:         key.KeyF3,
	tcell.KeyF4:         key.KeyF4,
	tcell.KeyF5:         key.KeyF5,
	tcell.KeyF6:         key.KeyF6,
	tcell.KeyF7:         key.KeyF7,
	tcell.KeyF8:         key.KeyF8,
	tcell.KeyF9:         key.KeyF9,
	tcell.KeyF10:        key.KeyF10,
	tcell.KeyF11:        key.KeyF11,
	tcell.KeyF12:        key.KeyF12,
}

// convertMod converts tcell modifiers.
func convertMod(m tcell.ModMask) key.Modifier {
	return key.FromFlags(
		m&tcell.ModCtrl != 0,
		m&tcell.ModAlt != 0,
		m&tcell.ModShift != 0,
		m&tcell.ModMeta != 0,
	)
}

// Convert turns a tcell key event into an engine key event. It reports
// false for keys the engine has no name for.
func Convert(ev *tcell.EventKey) (key.Event, bool) {
	if ev == nil {
		return key.Event{}, false
	}
	mods := convertMod(ev.Modifiers())
	k := ev.Key()

	var out key.Event
	switch {
	case k == tcell.KeyRune:
		r := ev.Rune()
		if r == 0 {
			return key.Event{}, false
		}
		// tcell drops Shift on printable runes; an upper case letter is
		// the only trace of it.
		if unicode.IsUpper(r) {
			mods = mods.With(key.ModShift)
		}
		out = key.NewRuneEvent(r, mods)

	case k == tcell.KeyBacktab:
		out = key.NewSpecialEvent(key.KeyTab, mods.With(key.ModShift))

	case k == tcell.KeyCtrlSpace:
		out = key.NewRuneEvent(' ', mods.With(key.ModCtrl))

	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		out = key.NewRuneEvent('a'+rune(k-tcell.KeyCtrlA), mods.With(key.ModCtrl))

	default:
		named, ok := namedKeys[k]
		if !ok {
			return key.Event{}, false
		}
		out = key.NewSpecialEvent(named, mods)
	}

	return out.At(ev.When()), true
}
