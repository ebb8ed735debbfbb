package hookbatch

import (
	"golang.org/x/sys/unix"
)

// CurrentThread returns the id of the calling OS thread.
func CurrentThread() Thread {
	return Thread(unix.Gettid())
}
