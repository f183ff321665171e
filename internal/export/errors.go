// ABOUTME: Sentinel errors for the export and import package
// ABOUTME: Lets callers distinguish format problems from backup failures

package export

import "errors"

var (
	// ErrInvalidFormat means the document is not a recognizable
	// annotation export.
	ErrInvalidFormat = errors.New("invalid file format")

	// ErrBackupFailed means the safety backup before a destructive
	// import could not be written.
	ErrBackupFailed = errors.New("backup failed")
)
