// Package input is the global keyboard shortcut engine.
//
// The Engine turns raw key events into shortcut actions. Each event runs
// through four stages:
//
//   - Guard: events aimed at an editable target are dropped, except for
//     an allow-list of keys (escape and "?" by default).
//   - Normalize: the event becomes a canonical token such as "g" or
//     "control+s". Bare modifier presses are ignored.
//   - Match: the token is appended to a short buffer which is resolved
//     against the binding table. A buffer that is a strict prefix of a
//     longer binding waits for more keys until the sequence timeout.
//   - Dispatch: a resolved binding navigates, focuses an element or calls
//     a registered callback.
//
// Matching runs under the engine lock. Dispatch runs after the lock is
// released, so handlers may call back into the engine.
//
// # Usage
//
//	table := keymap.MustNewTable(keymap.Default())
//	engine := input.New(table, input.DefaultConfig(),
//	    input.WithNavigator(router.Go),
//	    input.WithFocusFinder(view.Find),
//	)
//	defer engine.Close()
//
//	engine.RegisterCallback("refresh", list.Reload)
//	engine.Start(source)
package input
