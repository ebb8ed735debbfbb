//go:build !amd64 || !(linux || windows)

package hookbatch

// NativeEngine returns nil; code patching is only implemented for
// x86-64 on linux and windows.
func NativeEngine() Engine {
	return nil
}
