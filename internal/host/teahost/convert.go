// Package teahost feeds Bubble Tea key messages to the shortcut engine.
package teahost

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dshills/keychord/internal/input/key"
)

type namedKey struct {
	key  key.Key
	mods key.Modifier
}

// namedKeys covers every key type except runes and the ctrl+letter range.
var namedKeys = map[tea.KeyType]namedKey{
	tea.KeyEnter:     {key.KeyEnter, key.ModNone},
	tea.KeyTab:       {key.KeyTab, key.ModNone},
	tea.KeyEsc:       {key.KeyEscape, key.ModNone},
	tea.KeyBackspace: {key.KeyBackspace, key.ModNone},
	tea.KeySpace:     {key.KeySpace, key.ModNone},
	tea.KeyShiftTab:  {key.KeyTab, key.ModShift},
	tea.KeyDelete:    {key.KeyDelete, key.ModNone},
	tea.KeyInsert:    {key.KeyInsert, key.ModNone},

	tea.KeyUp:     {key.KeyUp, key.ModNone},
	tea.KeyDown:   {key.KeyDown, key.ModNone},
	tea.KeyLeft:   {key.KeyLeft, key.ModNone},
	tea.KeyRight:  {key.KeyRight, key.ModNone},
	tea.KeyHome:   {key.KeyHome, key.ModNone},
	tea.KeyEnd:    {key.KeyEnd, key.ModNone},
	tea.KeyPgUp:   {key.KeyPageUp, key.ModNone},
	tea.KeyPgDown: {key.KeyPageDown, key.ModNone},

	tea.KeyCtrlUp:     {key.KeyUp, key.ModCtrl},
	tea.KeyCtrlDown:   {key.KeyDown, key.ModCtrl},
	tea.KeyCtrlLeft:   {key.KeyLeft, key.ModCtrl},
	tea.KeyCtrlRight:  {key.KeyRight, key.ModCtrl},
	tea.KeyCtrlHome:   {key.KeyHome, key.ModCtrl},
	tea.KeyCtrlEnd:    {key.KeyEnd, key.ModCtrl},
	tea.KeyCtrlPgUp:   {key.KeyPageUp, key.ModCtrl},
	tea.KeyCtrlPgDown: {key.KeyPageDown, key.ModCtrl},

	tea.KeyShiftUp:    {key.KeyUp, key.ModShift},
	tea.KeyShiftDown:  {key.KeyDown, key.ModShift},
	tea.KeyShiftLeft:  {key.KeyLeft, key.ModShift},
	tea.KeyShiftRight: {key.KeyRight, key.ModShift},
	tea.KeyShiftHome:  {key.KeyHome, key.ModShift},
	tea.KeyShiftEnd:   {key.KeyEnd, key.ModShift},

	tea.KeyCtrlShiftUp:    {key.KeyUp, key.ModCtrl | key.ModShift},
	tea.KeyCtrlShiftDown:  {key.KeyDown, key.ModCtrl | key.ModShift},
	tea.KeyCtrlShiftLeft:  {key.KeyLeft, key.ModCtrl | key.ModShift},
	tea.KeyCtrlShiftRight: {key.KeyRight, key.ModCtrl | key.ModShift},
	tea.KeyCtrlShiftHome:  {key.KeyHome, key.ModCtrl | key.ModShift},
	tea.KeyCtrlShiftEnd:   {key.KeyEnd, key.ModCtrl | key.ModShift},

	tea.KeyF1:  {key.KeyF1, key.ModNone},
	tea.KeyF2:  {key.KeyF2, key.ModNone},
	tea.KeyF3:  {key.KeyF3, key.ModNone},
	tea.KeyF4:  {key.KeyF4, key.ModNone},
	tea.KeyF5:  {key.KeyF5, key.ModNone},
	tea.KeyF6:  {key.KeyF6, key.ModNone},
	tea.KeyF7:  {key.KeyF7, key.ModNone},
	tea.KeyF8:  {key.KeyF8, key.ModNone},
	tea.KeyF9:  {key.KeyF9, key.ModNone},
	tea.KeyF10: {key.KeyF10, key.ModNone},
	tea.KeyF11: {key.KeyF11, key.ModNone},
	tea.KeyF12: {key.KeyF12, key.ModNone},
}

// Convert turns a Bubble Tea key message into an engine key event. Pastes,
// multi-rune messages and unnamed control codes report false.
//
// Tab, Enter and Escape share their codes with ctrl+i, ctrl+m and ctrl+[,
// so those always read as the named key.
func Convert(msg tea.KeyMsg) (key.Event, bool) {
	if msg.Paste {
		return key.Event{}, false
	}

	var alt key.Modifier
	if msg.Alt {
		alt = key.ModAlt
	}

	if msg.Type == tea.KeyRunes {
		if len(msg.Runes) != 1 {
			return key.Event{}, false
		}
		r := msg.Runes[0]
		mods := alt
		if unicode.IsUpper(r) {
			mods = mods.With(key.ModShift)
		}
		return key.NewRuneEvent(r, mods), true
	}

	if nk, ok := namedKeys[msg.Type]; ok {
		return key.NewSpecialEvent(nk.key, nk.mods|alt), true
	}

	switch {
	case msg.Type == tea.KeyCtrlAt:
		return key.NewRuneEvent(' ', key.ModCtrl|alt), true
	case msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ:
		r := 'a' + rune(msg.Type-tea.KeyCtrlA)
		return key.NewRuneEvent(r, key.ModCtrl|alt), true
	}

	return key.Event{}, false
}
