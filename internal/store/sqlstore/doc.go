// Package sqlstore keeps key-query snapshots in a SQL database through gorm.
//
// Each snapshot is one row holding its name, its BLAKE3 fingerprint and the
// JSON body exactly as it would be written to disk. Postgres DSNs
// (postgres:// or postgresql://) open the Postgres driver; anything else is
// handed to SQLite.
package sqlstore
