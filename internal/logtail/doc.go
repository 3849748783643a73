// Package logtail reads and formats dapur's own log file.
//
// Read extracts the last N lines of a file in one pass using a ring buffer
// of size N, so memory stays O(N) regardless of file size. A non-positive N
// reads the whole file. Missing files return nil, nil.
//
// Parse and Format turn the logrus JSON lines written by internal/logging
// into the single-line form shown in the Logs view:
//
//	2025-01-01 08:00:00 WARN – api request failed method=GET path=/api/v1/recipes
//
// Lines that are not JSON objects are passed through unchanged.
package logtail
