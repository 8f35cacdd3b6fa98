// Package localstorage is the client's persistent key/value store, the
// terminal counterpart of browser local storage.
//
// Data lives in a single SQLite table:
//
//	local_storage(key TEXT PRIMARY KEY, value BLOB NOT NULL)
//
// created by the embedded goose migrations (see Open). Set is an upsert,
// Get returns (nil, nil) for missing keys, Delete is idempotent. All errors
// are wrapped with the failing operation and key.
package localstorage
