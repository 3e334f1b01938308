package keymap

// Reserved callback ids handled by the dispatcher itself.
const (
	// CallbackShowHelp toggles the engine's help visibility flag.
	CallbackShowHelp = "showHelp"
)

// Default returns the default binding table configuration.
//
// Navigation uses "g" followed by a letter, single keys act on the current
// list, and Ctrl chords replace the browser-style save, select-all and
// export shortcuts. Paths and ids are deployment configuration; hosts with
// different destinations load their own table.
func Default() []Binding {
	return []Binding{
		// Navigation
		{Keys: "g d", Action: Navigate("/"), Description: "Go to dashboard", Category: "Navigation"},
		{Keys: "g s", Action: Navigate("/samples"), Description: "Go to samples", Category: "Navigation"},
		{Keys: "g p", Action: Navigate("/projects"), Description: "Go to projects", Category: "Navigation"},
		{Keys: "g r", Action: Navigate("/runs"), Description: "Go to runs", Category: "Navigation"},
		{Keys: "g t", Action: Navigate("/settings"), Description: "Go to settings", Category: "Navigation"},

		// Lists
		{Keys: "j", Action: Callback("nextItem"), Description: "Next item", Category: "Lists"},
		{Keys: "k", Action: Callback("prevItem"), Description: "Previous item", Category: "Lists"},
		{Keys: "Enter", Action: Callback("openItem"), Description: "Open item", Category: "Lists"},
		{Keys: "x", Action: Callback("selectItem"), Description: "Toggle selection", Category: "Lists"},
		{Keys: "Ctrl+A", Action: Callback("selectAll"), Description: "Select all", Category: "Lists"},

		// Actions
		{Keys: "/", Action: Focus("search"), Description: "Focus search", Category: "Actions"},
		{Keys: "n", Action: Callback("new"), Description: "New item", Category: "Actions"},
		{Keys: "r", Action: Callback("refresh"), Description: "Refresh", Category: "Actions"},
		{Keys: "Ctrl+S", Action: Callback("save"), Description: "Save", Category: "Actions"},
		{Keys: "Ctrl+E", Action: Callback("export"), Description: "Export", Category: "Actions"},

		// General
		{Keys: "Escape", Action: Callback("cancel"), Description: "Cancel / blur", Category: "General"},
		{Keys: "?", Action: Callback(CallbackShowHelp), Description: "Toggle help", Category: "General"},
	}
}
