//go:build unix

package journal

import (
	"os"

	"golang.org/x/sys/unix"
)

// lockFile blocks until the journal is exclusively locked
func lockFile(file *os.File) error {
	return unix.Flock(int(file.Fd()), unix.LOCK_EX)
}

// unlockFile releases the journal lock
func unlockFile(file *os.File) error {
	return unix.Flock(int(file.Fd()), unix.LOCK_UN)
}
