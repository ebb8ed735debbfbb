package patch

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

type mapping struct {
	start, end uintptr
	prot       int
}

// pageProtections returns the protection of each page in
// [start, start+length) as listed in /proc/self/maps.
func pageProtections(start, length uintptr) ([]int, error) {
	maps, err := readMappings()
	if err != nil {
		return nil, err
	}
	prots := make([]int, 0, length/PageSize)
	for page := start; page < start+length; page += PageSize {
		prot, ok := lookupProt(maps, page)
		if !ok {
			return nil, fmt.Errorf("page %#x is not mapped", page)
		}
		prots = append(prots, prot)
	}
	return prots, nil
}

func lookupProt(maps []mapping, page uintptr) (int, bool) {
	for _, m := range maps {
		if page >= m.start && page < m.end {
			return m.prot, true
		}
	}
	return 0, false
}

func readMappings() ([]mapping, error) {
	f, err := os.Open("/proc/self/maps")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var maps []mapping
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		// 7f3c1a000000-7f3c1a021000 r-xp 00000000 08:01 1234 /lib/x.so
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			continue
		}
		lo, hi, ok := strings.Cut(fields[0], "-")
		if !ok {
			continue
		}
		s, err1 := strconv.ParseUint(lo, 16, 64)
		e, err2 := strconv.ParseUint(hi, 16, 64)
		if err1 != nil || err2 != nil {
			continue
		}
		maps = append(maps, mapping{start: uintptr(s), end: uintptr(e), prot: parsePerms(fields[1])})
	}
	return maps, sc.Err()
}

func parsePerms(perms string) int {
	prot := unix.PROT_NONE
	if strings.Contains(perms, "r") {
		prot |= unix.PROT_READ
	}
	if strings.Contains(perms, "w") {
		prot |= unix.PROT_WRITE
	}
	if strings.Contains(perms, "x") {
		prot |= unix.PROT_EXEC
	}
	return prot
}
