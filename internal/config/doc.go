// Package config loads dapur's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/dapur/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//  5. DAPUR_API_URL, DAPUR_USER and DAPUR_LOG_LEVEL override the file; they
//     may also come from a .env file in the working directory
//
// # Default Values
//
//   - Config file: ~/.config/dapur/config.toml
//   - API root: http://127.0.0.1:3000
//   - Share links: http://localhost:5173/?recipe=<id>
//   - Log directory: ~/.local/share/dapur/logs
//   - Log file: <log_dir>/dapur.log
//   - Request timeout: 5s
//   - Page size: 12
//
// # TOML Format
//
//	api_url = "http://127.0.0.1:3000"
//	user_identifier = ""
//	share_base_url = "http://localhost:5173/"
//	log_dir = "~/.local/share/dapur/logs"
//	log_level = "info"
//	request_timeout = "5s"
//	page_size = 12
//
//	[profile]
//	name = "Faiz Abdul Hanif"
//	student_id = "21120123140138"
//	group = "Kelompok 21"
//	avatar_url = "https://avatars.githubusercontent.com/atvouzx"
//
// Every field is optional. Tilde expansion is performed on log_dir.
//
// # Error Handling
//
// Load returns errors for path expansion failures, unreadable files, TOML
// parse errors and malformed request_timeout durations. A missing file is
// not an error.
package config
