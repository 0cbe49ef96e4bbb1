// Package returnables tallies outstanding returnable containers (bottles and
// chopines) per client from the free text of debt transactions.
//
// This is a best-effort legacy-compatible parser, not a grammar: quantities
// are regex-scanned out of descriptions like "2 Chopine Beer" or
// "1 1.5L Bouteille Green", and "returned: ..." transactions subtract from
// the tally. Key formatting is part of the contract and covered by tests.
package returnables

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// OverdueAfter is how long an issued container may stay out before the
// client is flagged.
const OverdueAfter = 21 * 24 * time.Hour

// Transaction is the minimal slice of a credit transaction the extractor
// needs. Only debt transactions should be passed in.
type Transaction struct {
	Description string
	Amount      float64
	Date        time.Time
}

var (
	// "2 Chopine", "3 chopines Guinness"
	chopineRe = regexp.MustCompile(`(?i)(\d+)\s+chopines?(?:\s+([a-zA-ZÀ-ÿ]+))?`)

	// "1 Bouteille", "2 1.5L Bouteille Green", "1 bouteilles Coca"
	bouteilleRe = regexp.MustCompile(`(?i)(\d+)\s+(?:(\d+(?:[.,]\d+)?)\s*l\s+)?bouteilles?(?:\s+([a-zA-ZÀ-ÿ]+))?`)
)

var titleCaser = cases.Title(language.English)

// Outstanding returns the outstanding quantity per normalized container key
// for one client's debt transactions. Returned quantities are subtracted and
// keys with nothing remaining are omitted.
func Outstanding(txns []Transaction) map[string]int {
	issued := make(map[string]int)
	returned := make(map[string]int)

	for _, tx := range txns {
		desc := strings.ToLower(tx.Description)
		switch {
		case strings.Contains(desc, "returned"):
			scanInto(returned, tx.Description)
		case strings.Contains(desc, "payment"):
			// Payments never issue containers.
		default:
			scanInto(issued, tx.Description)
		}
	}

	outstanding := make(map[string]int)
	for key, count := range issued {
		if remaining := count - returned[key]; remaining > 0 {
			outstanding[key] = remaining
		}
	}
	return outstanding
}

// HasOverdue reports whether any container-issuing transaction is at least
// OverdueAfter old as of now.
func HasOverdue(txns []Transaction, now time.Time) bool {
	for _, tx := range txns {
		desc := strings.ToLower(tx.Description)
		if strings.Contains(desc, "returned") || strings.Contains(desc, "payment") {
			continue
		}
		if !strings.Contains(desc, "chopine") && !strings.Contains(desc, "bouteille") {
			continue
		}
		if now.Sub(tx.Date) >= OverdueAfter {
			return true
		}
	}
	return false
}

// scanInto accumulates container quantities from one description.
// Bouteille patterns are matched first and their spans masked out so a
// chopine scan of the same text cannot double count.
func scanInto(tally map[string]int, description string) {
	masked := description
	for _, m := range bouteilleRe.FindAllStringSubmatchIndex(description, -1) {
		qty, key := bouteilleMatch(description, m)
		if qty > 0 {
			tally[key] += qty
		}
		masked = maskSpan(masked, m[0], m[1])
	}
	for _, m := range chopineRe.FindAllStringSubmatch(masked, -1) {
		qty, err := strconv.Atoi(m[1])
		if err != nil || qty <= 0 {
			continue
		}
		key := "Chopine"
		if m[2] != "" {
			key += " " + titleCaser.String(strings.ToLower(m[2]))
		}
		tally[key] += qty
	}
}

func bouteilleMatch(description string, idx []int) (int, string) {
	group := func(i int) string {
		if idx[2*i] < 0 {
			return ""
		}
		return description[idx[2*i]:idx[2*i+1]]
	}

	qty, err := strconv.Atoi(group(1))
	if err != nil {
		return 0, ""
	}

	var parts []string
	if size := group(2); size != "" {
		size = strings.ReplaceAll(size, ",", ".")
		parts = append(parts, strings.ToUpper(size)+"L")
	}
	parts = append(parts, "Bouteille")
	if brand := group(3); brand != "" {
		parts = append(parts, titleCaser.String(strings.ToLower(brand)))
	}
	return qty, strings.Join(parts, " ")
}

func maskSpan(s string, start, end int) string {
	return s[:start] + strings.Repeat(" ", end-start) + s[end:]
}
