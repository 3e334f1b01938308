// Package lua lets Lua scripts register shortcut callbacks.
//
// Scripts run in a restricted gopher-lua state: only the base, table,
// string and math libraries are opened, and dofile, loadfile, load and
// loadstring are removed. A global "keychord" table exposes:
//
//	keychord.register(id, fn)    -- install fn as the callback for id
//	keychord.unregister(id)      -- remove the callback for id
//	keychord.help([visible])     -- read, and optionally set, help visibility
//	keychord.log(msg)            -- write msg to the application log
//
// Example:
//
//	keychord.register("refresh", function()
//	    keychord.log("refreshing")
//	end)
//
// Errors raised inside a callback are logged and otherwise ignored, the
// same as a callback that is not registered.
package lua
