// Package app is the composition root of dapur.
//
// Run loads configuration and preferences, opens the log file, builds the
// API client and the recipe, favorite and review services, then starts a
// background poller and the TUI:
//
//	Run()
//	 ├─> config.Load()          config.toml + DAPUR_* environment
//	 ├─> prefs.Load()           theme, user identifier
//	 ├─> logging.Setup()        <log_dir>/dapur.log
//	 ├─> api.NewClient()        HTTP transport for the services
//	 ├─> StartPoller()          recipe page + favorites -> state.Store
//	 └─> ui.Run()               blocks until quit
//
// The poller reads the list query from the store on every pass, so filter
// and page changes made in the UI are picked up without restarting it. A
// failed poll keeps the previous data; the wait before the next attempt
// doubles per consecutive failure up to 30 seconds.
//
// The user identifier sent with favorites and reviews comes from the -user
// flag, then config (or DAPUR_USER), then prefs. If none is set a uuid is
// generated and saved to prefs.
package app
