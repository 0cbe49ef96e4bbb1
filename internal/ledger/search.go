package ledger

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/kreolabs/boutik/internal/models"
)

// stripDiacritics removes combining marks so "José" matches "jose".
var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeQuery lowercases, strips diacritics and turns punctuation into
// spaces, so "Marie-Claire" matches "marie claire".
func normalizeQuery(s string) string {
	stripped, _, err := transform.String(stripDiacritics, s)
	if err != nil {
		stripped = s
	}
	var b strings.Builder
	for _, r := range strings.ToLower(stripped) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// SearchClients finds clients by id or name.
//
// An all-digit query is zero-padded and prefixed with "G" for an exact id
// match ("7" finds "G007"). Anything else matches as a normalized substring
// of the name, or as an exact case-insensitive id.
func (s *Service) SearchClients(query string) []models.Client {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var matches []models.Client

	if isAllDigits(trimmed) {
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			return nil
		}
		wanted := formatClientID(n)
		for _, c := range s.data.Clients {
			if c.ID == wanted {
				matches = append(matches, c)
			}
		}
		return matches
	}

	needle := normalizeQuery(trimmed)
	for _, c := range s.data.Clients {
		if strings.Contains(normalizeQuery(c.Name), needle) || strings.EqualFold(c.ID, trimmed) {
			matches = append(matches, c)
		}
	}
	return matches
}
