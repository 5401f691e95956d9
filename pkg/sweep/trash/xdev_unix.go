//go:build unix

package trash

import (
	"errors"

	"golang.org/x/sys/unix"
)

// isCrossDevice reports whether err is a rename across filesystems.
func isCrossDevice(err error) bool {
	return errors.Is(err, unix.EXDEV)
}
