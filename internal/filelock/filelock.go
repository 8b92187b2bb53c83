// Package filelock guards the local data directory so only one
// interactive board runs at a time. Two concurrent boards would each run
// their own polling loop and fight over the session slot; the lock turns
// that into a clear error at startup.
//
// The lock is a file holding the owner's PID, created with O_EXCL. A lock
// whose PID no longer maps to a running process is treated as stale and
// taken over, so a crashed board does not wedge the next one.
package filelock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// LockFileName is the lock file created inside the data directory.
const LockFileName = "board.lock"

// ErrLocked is returned when another live process holds the lock.
var ErrLocked = errors.New("another teamtask board is already running")

// Lock is a held lock on a data directory.
type Lock struct {
	path string
}

// Acquire takes the lock for the current process. It returns ErrLocked
// (wrapped with the owner's PID) when a live process holds it, and steals
// the lock when the recorded owner is gone.
func Acquire(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, LockFileName)

	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			_, werr := fmt.Fprintf(f, "%d\n", os.Getpid())
			cerr := f.Close()
			if werr != nil || cerr != nil {
				os.Remove(path)
				return nil, errors.Join(werr, cerr)
			}
			return &Lock{path: path}, nil
		}
		if !os.IsExist(err) {
			return nil, err
		}

		pid, perr := readOwner(path)
		if perr == nil && processAlive(pid) {
			return nil, fmt.Errorf("%w (pid %d)", ErrLocked, pid)
		}
		// Stale or unreadable lock: remove it and retry once.
		if rerr := os.Remove(path); rerr != nil && !os.IsNotExist(rerr) {
			return nil, rerr
		}
	}
	return nil, ErrLocked
}

// Release removes the lock file. Safe to call on a nil Lock.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	err := os.Remove(l.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func readOwner(path string) (int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(b)))
}

// processAlive reports whether a process with the given PID exists.
// Signal 0 performs the existence check without delivering anything.
func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}
