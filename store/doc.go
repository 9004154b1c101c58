// Package store provides DynamoDB access for user records.
//
// Records live in a single table keyed by the string attribute "userid".
// The schema is otherwise open: whatever fields a client submits are stored
// verbatim, so a [Record] is a plain map rather than a struct.
//
// # Operations
//
//   - [Store.Get] - fetch one record, [ErrNotFound] when absent
//   - [Store.Put] - full overwrite keyed by userid (no merge, no condition)
//   - [Store.Delete] - unconditional delete, missing ids are not an error
//   - [Store.ScanAll] - every record, following scan pages to the end
//
// # Configuration
//
// Use [DefaultConfig] and set the table name:
//
//	cfg := store.DefaultConfig()
//	cfg.Table = os.Getenv("USERS_TABLE")
//	s := store.New(dynamodb.NewFromConfig(awsCfg), cfg)
//
// The store never checks that the table exists. A wrong or missing table
// surfaces as an error from the first call that touches it.
//
// Writes are last-write-wins. There is no versioning or optimistic locking.
package store
