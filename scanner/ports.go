package scanner

import (
	"sort"
	"strconv"
	"strings"
)

const (
	minPort = 1
	maxPort = 65535
)

// ParsePorts parses a port specification such as "22,80,443,8000-8010" into a
// sorted, deduplicated list. Ranges are inclusive and may be given in either
// order. Each number is read from its leading digits, so "80abc" is 80 and
// "1-2-3" is the range 1-2. Tokens without digits and ports outside 1-65535
// are dropped rather than rejected.
func ParsePorts(expr string) []int {
	seen := make(map[int]struct{})

	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if strings.Contains(part, "-") {
			bounds := strings.Split(part, "-")
			a, okA := leadingInt(bounds[0])
			b, okB := leadingInt(bounds[1])
			if !okA || !okB {
				continue
			}
			start, end := min(a, b), max(a, b)
			// Clamp before expanding so huge ranges never allocate past the port space.
			start, end = max(start, minPort), min(end, maxPort)
			for p := start; p <= end; p++ {
				seen[p] = struct{}{}
			}
			continue
		}

		p, ok := leadingInt(part)
		if ok && p >= minPort && p <= maxPort {
			seen[p] = struct{}{}
		}
	}

	ports := make([]int, 0, len(seen))
	for p := range seen {
		ports = append(ports, p)
	}
	sort.Ints(ports)
	return ports
}

// leadingInt reads an optional sign followed by the leading decimal digits of
// s and ignores the rest. It reports false when there are no digits. Values
// past the port space saturate instead of overflowing.
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	n, digits := 0, 0
	for ; digits < len(s) && s[digits] >= '0' && s[digits] <= '9'; digits++ {
		if n <= maxPort {
			n = n*10 + int(s[digits]-'0')
		}
	}
	if digits == 0 {
		return 0, false
	}
	if negative {
		n = -n
	}
	return n, true
}

// FormatPorts renders a port list back into expression form, collapsing runs of
// consecutive ports into ranges.
func FormatPorts(ports []int) string {
	ports = normalizePorts(ports)

	var b strings.Builder
	for i := 0; i < len(ports); {
		j := i
		for j+1 < len(ports) && ports[j+1] == ports[j]+1 {
			j++
		}
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(ports[i]))
		if j > i {
			b.WriteByte('-')
			b.WriteString(strconv.Itoa(ports[j]))
		}
		i = j + 1
	}
	return b.String()
}

func normalizePorts(ports []int) []int {
	seen := make(map[int]struct{}, len(ports))
	out := make([]int, 0, len(ports))
	for _, p := range ports {
		if p < minPort || p > maxPort {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}
