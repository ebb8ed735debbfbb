//go:build !linux && !windows

package hookbatch

// CurrentThread returns 0; there is no portable thread id here.
func CurrentThread() Thread {
	return 0
}
