// Package storage is the durable key/value layer behind kindred's state
// cells.
//
// A Medium is a string-keyed, string-valued persistent store shaped like
// browser local storage. Three media are provided:
//
//   - FileMedium: a single JSON document written atomically (temp file + rename)
//   - SQLiteMedium: a kv table in a SQLite database (WAL mode)
//   - MemoryMedium: a map, used in tests and as the in-memory fallback
//
// Adapter wraps a Medium with JSON (de)serialization. Its operations never
// fail: read errors and undecodable values produce the caller's default,
// and write errors are logged and dropped. Callers that need to know whether
// anything survives a restart check Available.
package storage
