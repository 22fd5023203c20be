// Package file provides TOML-file-backed configuration.
//
// Keys use dot notation (e.g. "upload.collection", "store.project");
// nested TOML tables are flattened on load so both layouts read the
// same way.
package file
