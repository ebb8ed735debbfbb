package hookbatch

import (
	"golang.org/x/sys/windows"
)

// CurrentThread returns the id of the calling OS thread.
func CurrentThread() Thread {
	return Thread(windows.GetCurrentThreadId())
}
