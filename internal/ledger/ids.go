package ledger

import (
	"fmt"
	"strconv"
	"strings"
)

// nextClientIDLocked allocates the lowest available "G###" id: the first gap
// in the sorted sequence of existing numeric suffixes, else the next integer
// after the highest. Callers must hold s.mu.
func (s *Service) nextClientIDLocked() string {
	taken := make(map[int]bool, len(s.data.Clients))
	for _, c := range s.data.Clients {
		if n, ok := clientIDNumber(c.ID); ok {
			taken[n] = true
		}
	}
	n := 1
	for taken[n] {
		n++
	}
	return formatClientID(n)
}

func clientIDNumber(id string) (int, bool) {
	rest, ok := strings.CutPrefix(id, "G")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// formatClientID zero-pads to three digits; larger numbers keep their width.
func formatClientID(n int) string {
	return fmt.Sprintf("G%03d", n)
}
