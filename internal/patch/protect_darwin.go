package patch

import (
	"golang.org/x/sys/unix"
)

// pageProtections assumes text pages; darwin has no /proc to ask.
func pageProtections(start, length uintptr) ([]int, error) {
	prots := make([]int, length/PageSize)
	for i := range prots {
		prots[i] = unix.PROT_READ | unix.PROT_EXEC
	}
	return prots, nil
}
