// Package demo is the small dashboard application that keychord run drives
// with the shortcut engine. It implements the engine's collaborators:
// navigation, focus lookup and the named callbacks of the default table.
//
// The dashboard is host-neutral. The tcell and Bubble Tea front ends in
// this package only draw Render output and feed it typed text.
package demo

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/dshills/keychord/internal/input/dispatch"
	"github.com/dshills/keychord/internal/input/fuzzy"
	"github.com/dshills/keychord/internal/input/guard"
	"github.com/dshills/keychord/internal/input/keymap"
)

// SearchID is the focus id of the search field.
const SearchID = "search"

// Route is a navigable page.
type Route struct {
	Path  string
	Title string
}

// Routes are the pages the default table navigates to.
var Routes = []Route{
	{"/", "Dashboard"},
	{"/samples", "Samples"},
	{"/projects", "Projects"},
	{"/runs", "Runs"},
	{"/settings", "Settings"},
}

// Host is the part of the shortcut engine the dashboard talks back to.
type Host interface {
	RegisterCallback(id string, h func())
	SetHelpVisible(visible bool)
	OnHelpChange(fn func(visible bool))
}

// Dashboard holds the application state.
type Dashboard struct {
	mu sync.Mutex

	route    string
	items    map[string][]string
	cursor   int
	selected map[int]bool
	focus    string
	search   string
	status   string
	help     bool
	bindings []keymap.Binding

	host     Host
	onChange func()
}

// New creates a dashboard listing bindings in its help panel.
func New(bindings []keymap.Binding) *Dashboard {
	return &Dashboard{
		route: "/",
		items: map[string][]string{
			"/":         {"Recent runs", "Pending reviews", "Storage usage"},
			"/samples":  {"S-0001 plasma", "S-0002 serum", "S-0003 tissue", "S-0004 saliva"},
			"/projects": {"Atlas", "Borealis", "Cygnus"},
			"/runs":     {"run-42 complete", "run-43 running", "run-44 queued"},
			"/settings": {"Profile", "Notifications", "Keyboard shortcuts"},
		},
		selected: make(map[int]bool),
		bindings: bindings,
		status:   "press ? for shortcuts",
	}
}

// OnChange sets a function called after every state change, outside the
// dashboard lock.
func (d *Dashboard) OnChange(fn func()) {
	d.mu.Lock()
	d.onChange = fn
	d.mu.Unlock()
}

// SetBindings replaces the bindings shown in the help panel.
func (d *Dashboard) SetBindings(bindings []keymap.Binding) {
	d.update(func() { d.bindings = bindings })
}

// Attach registers the dashboard callbacks with host and follows its help
// visibility.
func (d *Dashboard) Attach(host Host) {
	d.mu.Lock()
	d.host = host
	d.mu.Unlock()

	host.OnHelpChange(d.setHelp)
	for id, fn := range d.Callbacks() {
		host.RegisterCallback(id, fn)
	}
}

// Callbacks returns the named actions used by the default binding table.
func (d *Dashboard) Callbacks() map[string]func() {
	return map[string]func(){
		"nextItem":   func() { d.moveCursor(1) },
		"prevItem":   func() { d.moveCursor(-1) },
		"openItem":   d.openItem,
		"selectItem": d.toggleSelected,
		"selectAll":  d.selectAll,
		"new":        func() { d.setStatus("new item created") },
		"refresh":    func() { d.setStatus("refreshed " + d.Route()) },
		"save":       func() { d.setStatus("saved") },
		"export":     d.export,
		"cancel":     d.cancel,
	}
}

// Navigate switches to path. It is the engine's navigator.
func (d *Dashboard) Navigate(path string) {
	d.update(func() {
		if _, ok := d.items[path]; !ok {
			d.status = "no page at " + path
			return
		}
		d.route = path
		d.cursor = 0
		d.selected = make(map[int]bool)
		d.status = ""
	})
}

// Navigator returns Navigate as a dispatch.Navigator.
func (d *Dashboard) Navigator() dispatch.Navigator {
	return d.Navigate
}

// FocusFinder returns the engine's focus lookup.
func (d *Dashboard) FocusFinder() dispatch.FocusFinder {
	return func(id string) dispatch.Focusable {
		if id != SearchID {
			return nil
		}
		return searchField{d}
	}
}

type searchField struct{ d *Dashboard }

func (f searchField) Focus() {
	f.d.update(func() { f.d.focus = SearchID })
}

// FocusTarget reports the focused element for the context guard.
func (d *Dashboard) FocusTarget() guard.Target {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.focus == SearchID {
		return guard.TextInput
	}
	return guard.Body
}

// Typing reports whether a text field has focus.
func (d *Dashboard) Typing() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.focus != ""
}

// TypeRune appends r to the focused field.
func (d *Dashboard) TypeRune(r rune) {
	d.update(func() {
		if d.focus == SearchID {
			d.search += string(r)
		}
	})
}

// Backspace deletes the last rune of the focused field.
func (d *Dashboard) Backspace() {
	d.update(func() {
		if d.focus != SearchID || d.search == "" {
			return
		}
		r := []rune(d.search)
		d.search = string(r[:len(r)-1])
	})
}

// Blur drops text focus.
func (d *Dashboard) Blur() {
	d.update(func() { d.focus = "" })
}

// Route returns the current page path.
func (d *Dashboard) Route() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.route
}

// Cursor returns the highlighted list index.
func (d *Dashboard) Cursor() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cursor
}

// Selected returns the selected list indexes in order.
func (d *Dashboard) Selected() []int {
	d.mu.Lock()
	defer d.mu.Unlock()
	idx := make([]int, 0, len(d.selected))
	for i := range d.selected {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	return idx
}

// Search returns the search field text.
func (d *Dashboard) Search() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.search
}

// Status returns the status line.
func (d *Dashboard) Status() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

// HelpVisible reports whether the help panel is shown.
func (d *Dashboard) HelpVisible() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.help
}

// Render returns the screen as lines of text.
func (d *Dashboard) Render() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	var lines []string
	var tabs []string
	for _, r := range Routes {
		if r.Path == d.route {
			tabs = append(tabs, "["+r.Title+"]")
		} else {
			tabs = append(tabs, " "+r.Title+" ")
		}
	}
	lines = append(lines, strings.Join(tabs, " "), "")

	search := d.search
	if d.focus == SearchID {
		search += "_"
	}
	lines = append(lines, "Search: "+search, "")

	for i, item := range d.items[d.route] {
		cur := "  "
		if i == d.cursor {
			cur = "> "
		}
		mark := "[ ]"
		if d.selected[i] {
			mark = "[x]"
		}
		lines = append(lines, cur+mark+" "+item)
	}

	if d.help {
		lines = append(lines, "")
		lines = append(lines, helpLines(d.bindings, d.search)...)
	}

	lines = append(lines, "", d.status)
	return lines
}

// helpLines formats bindings grouped by category. A non-empty query keeps
// only the bindings that match it.
func helpLines(bindings []keymap.Binding, query string) []string {
	lines := []string{"Keyboard shortcuts"}
	if query != "" {
		matches := fuzzy.Bindings(query, bindings, 0)
		bindings = make([]keymap.Binding, len(matches))
		for i, m := range matches {
			bindings[i] = m.Binding
		}
		lines[0] += " matching " + strconv.Quote(query)
	}
	for _, cat := range keymap.GroupByCategory(bindings) {
		lines = append(lines, "  "+cat.Name)
		for _, b := range cat.Bindings {
			desc := b.Description
			if desc == "" {
				desc = b.Action.String()
			}
			lines = append(lines, fmt.Sprintf("    %-10s %s", b.Keys, desc))
		}
	}
	return lines
}

func (d *Dashboard) moveCursor(delta int) {
	d.update(func() {
		n := len(d.items[d.route])
		if n == 0 {
			return
		}
		d.cursor = (d.cursor + delta + n) % n
	})
}

func (d *Dashboard) openItem() {
	d.update(func() {
		items := d.items[d.route]
		if d.cursor < len(items) {
			d.status = "opened " + items[d.cursor]
		}
	})
}

func (d *Dashboard) toggleSelected() {
	d.update(func() {
		if d.selected[d.cursor] {
			delete(d.selected, d.cursor)
		} else {
			d.selected[d.cursor] = true
		}
	})
}

func (d *Dashboard) selectAll() {
	d.update(func() {
		for i := range d.items[d.route] {
			d.selected[i] = true
		}
	})
}

func (d *Dashboard) export() {
	d.update(func() {
		d.status = fmt.Sprintf("exported %d items", len(d.selected))
	})
}

// cancel leaves the search field, then closes help.
func (d *Dashboard) cancel() {
	d.mu.Lock()
	typing := d.focus != ""
	help := d.help
	host := d.host
	d.mu.Unlock()

	switch {
	case typing:
		d.Blur()
	case help && host != nil:
		host.SetHelpVisible(false)
	default:
		d.update(func() { d.selected = make(map[int]bool) })
	}
}

func (d *Dashboard) setHelp(visible bool) {
	d.update(func() { d.help = visible })
}

func (d *Dashboard) setStatus(s string) {
	d.update(func() { d.status = s })
}

// update runs fn under the lock and then notifies the change observer.
func (d *Dashboard) update(fn func()) {
	d.mu.Lock()
	fn()
	notify := d.onChange
	d.mu.Unlock()

	if notify != nil {
		notify()
	}
}
