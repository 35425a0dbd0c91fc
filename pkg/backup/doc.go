// Package backup writes and restores ZIP archives of the whole portfolio.
//
// # Archive layout
//
//	catalog.json                 model.Snapshot of the catalog
//	photography-assets/<name>    every stored image file
//
// Archives are named portfolio_backup_YYYYMMDD_HHMMSS.zip and live in the
// configured backup directory. Every attempt is recorded as a model.Backup
// row, failed ones included.
//
// # Restore
//
// Restore validates the archive, takes an automatic safety backup of the
// current state, writes the archived assets to storage and then replaces
// the catalog in a single transaction. Stored files that the archive does
// not mention are left in place.
package backup
