// Package config loads the tally dashboard configuration.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/tally/config.toml
//  3. If the file does not exist, fall back to Default
//  4. If the file exists but fields are missing or empty, use defaults
//
// # TOML Format
//
//	title = "Users"
//	key_field = "id"
//
//	[source]
//	url = "http://127.0.0.1:8080/api/users"   # or: file = "~/users.json"
//	records_path = "data.users"               # gjson path, default is the document root
//
//	[grid]
//	sortable = true
//	filterable = true
//	pagination = true
//	search = true
//	page_size = 10
//
//	[log]
//	file = "~/.local/state/tally/tally.log"
//	level = "info"
//	format = "json"
//
//	[[columns]]
//	field = "age"
//	label = "Age"
//	kind = "number"   # text, number or time
//
// Grid and column toggles default to true when omitted. When no columns are
// configured the dashboard infers them from the loaded records.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML syntax errors, and invalid values such as a negative
// page size, duplicate column fields, or an unknown column kind. A missing
// config file is not an error.
package config
