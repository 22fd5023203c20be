// Package sqlite journals upload runs in a local SQLite database.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, enabling easy cross-compilation. The journal
// lives under the user's data directory and backs the history command.
package sqlite
