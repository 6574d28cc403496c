// Package pythons discovers and installs the newest Python 3 minor releases
// through asdf.
package pythons

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Select picks, from "asdf list all python" output, the count highest Python 3
// minors with the highest patch of each, newest first. Only plain X.Y.Z
// releases are considered; pre-releases, dev builds and other
// implementations are ignored.
func Select(output string, count int) []string {
	if count < 1 {
		return nil
	}

	highestPatch := make(map[int]int)
	for _, line := range strings.Split(output, "\n") {
		v := strings.TrimSpace(line)
		if v == "" || v[0] < '0' || v[0] > '9' {
			continue
		}
		major, minor, patch, ok := parseRelease(v)
		if !ok || major != 3 {
			continue
		}
		if p, seen := highestPatch[minor]; !seen || patch > p {
			highestPatch[minor] = patch
		}
	}

	minors := make([]int, 0, len(highestPatch))
	for m := range highestPatch {
		minors = append(minors, m)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(minors)))
	if len(minors) > count {
		minors = minors[:count]
	}

	out := make([]string, len(minors))
	for i, m := range minors {
		out[i] = fmt.Sprintf("3.%d.%d", m, highestPatch[m])
	}
	return out
}

func parseRelease(v string) (major, minor, patch int, ok bool) {
	parts := strings.Split(v, ".")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	nums := make([]int, 3)
	for i, p := range parts {
		if p == "" {
			return 0, 0, 0, false
		}
		for _, r := range p {
			if r < '0' || r > '9' {
				return 0, 0, 0, false
			}
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, 0, 0, false
		}
		nums[i] = n
	}
	return nums[0], nums[1], nums[2], true
}
