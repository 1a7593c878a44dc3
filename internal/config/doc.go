// Package config loads viewcore options from a TOML or YAML file, with
// VIEWCORE_* environment variables layered on top, and can watch the file
// for changes.
//
// Keys use camelCase and are grouped in two sections:
//
//	[editor]
//	wrappingColumn = 80
//	tabSize = 4
//	wrappingIndent = "same"
//	autoClosingPairs = ["()", "[]"]
//	markdownAutoFormat = true
//
//	[logging]
//	level = "debug"
//	file = "/tmp/viewcore.log"
//
// Options converts to the option types of the linebreaks, cursor and
// logging packages.
package config
