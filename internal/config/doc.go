// Package config loads keychord settings.
//
// Settings are merged from built-in defaults, a config file and
// KEYCHORD_* environment variables, in that order of increasing priority:
//
//	engine.sequence_timeout    KEYCHORD_ENGINE_SEQUENCE_TIMEOUT
//	engine.allow_while_typing  KEYCHORD_ENGINE_ALLOW_WHILE_TYPING
//	engine.strict              KEYCHORD_ENGINE_STRICT
//	bindings                   KEYCHORD_BINDINGS
//	watch                      KEYCHORD_WATCH
//	scripts                    KEYCHORD_SCRIPTS
//	host                       KEYCHORD_HOST
//	log.level                  KEYCHORD_LOG_LEVEL
//	log.format                 KEYCHORD_LOG_FORMAT
//	log.file                   KEYCHORD_LOG_FILE
//
// Without an explicit path, Load looks for config.{toml,yaml,json} in the
// user config directory (for example ~/.config/keychord).
//
// Binding tables are not settings; the bindings key only names the file
// that the keymap loader reads. The watcher subpackage reloads that file
// when it changes.
package config
