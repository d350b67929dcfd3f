package derr

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// strerrno translates an OS error code into its description. The lookup
// goes through the unix error table, which is immutable, so concurrent
// callers never share a scratch buffer. Codes the table cannot describe
// come back as a numeric placeholder.
func strerrno(errnum int) string {
	if errnum <= 0 {
		return fmt.Sprintf("errno %d", errnum)
	}
	return unix.Errno(errnum).Error()
}

// Errno extracts the numeric OS error code carried by err, unwrapping as
// needed. It returns 0 when err is nil or carries no errno. Use it to feed
// the *Errno emission helpers from ordinary error values:
//
//	f, err := os.Open(path)
//	if err != nil {
//		derr.ErrorErrno(derr.Errno(err), "cannot open %s", path)
//	}
func Errno(err error) int {
	var errno unix.Errno
	if errors.As(err, &errno) {
		return int(errno)
	}
	return 0
}
