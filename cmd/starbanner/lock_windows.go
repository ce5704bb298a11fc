// Windows file locking using LockFileEx/UnlockFileEx.
//
// This file is compiled only on Windows. Watch mode locks "<output>.lock"
// with the Win32 LockFileEx API via [golang.org/x/sys/windows];
// LOCKFILE_FAIL_IMMEDIATELY mirrors LOCK_NB on Unix.

//go:build windows

package main

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows"
)

// ///////////////////////////////////////////////
// Output Locking
// ///////////////////////////////////////////////

// lockFile acquires an exclusive, non-blocking lock on the first byte of f
// using LockFileEx.
func lockFile(f *os.File) error {
	ol := new(windows.Overlapped)
	if err := windows.LockFileEx(
		windows.Handle(f.Fd()),
		windows.LOCKFILE_EXCLUSIVE_LOCK|windows.LOCKFILE_FAIL_IMMEDIATELY,
		0,
		1, 0,
		ol,
	); err != nil {
		return fmt.Errorf("lock file %s: %w", f.Name(), err)
	}
	return nil
}

// unlockFile releases the lock held on f via UnlockFileEx.
func unlockFile(f *os.File) error {
	ol := new(windows.Overlapped)
	if err := windows.UnlockFileEx(
		windows.Handle(f.Fd()),
		0,
		1, 0,
		ol,
	); err != nil {
		return fmt.Errorf("unlock file %s: %w", f.Name(), err)
	}
	return nil
}
