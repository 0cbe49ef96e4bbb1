package ledger

import (
	"context"
	"testing"
)

func TestSearchClients(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	for _, name := range []string{"José Fernand", "Marie-Claire", "Jean Paul"} {
		if _, err := s.AddClient(ctx, name); err != nil {
			t.Fatalf("AddClient(%q) failed: %v", name, err)
		}
	}
	// G001 José Fernand, G002 Marie-Claire, G003 Jean Paul

	tests := []struct {
		name    string
		query   string
		wantIDs []string
	}{
		{"digit query zero-pads to id", "2", []string{"G002"}},
		{"three-digit query matches directly", "003", []string{"G003"}},
		{"digit query with no match", "9", nil},
		{"name substring", "paul", []string{"G003"}},
		{"diacritics are ignored", "jose", []string{"G001"}},
		{"punctuation is ignored", "marie claire", []string{"G002"}},
		{"exact id match case-insensitive", "g001", []string{"G001"}},
		{"blank query", "   ", nil},
		{"substring shared by several", "j", []string{"G001", "G003"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.SearchClients(tt.query)
			var ids []string
			for _, c := range got {
				ids = append(ids, c.ID)
			}
			if len(ids) != len(tt.wantIDs) {
				t.Fatalf("SearchClients(%q) = %v, want %v", tt.query, ids, tt.wantIDs)
			}
			for i := range ids {
				if ids[i] != tt.wantIDs[i] {
					t.Errorf("SearchClients(%q) = %v, want %v", tt.query, ids, tt.wantIDs)
				}
			}
		})
	}
}

func TestClientIDNumber(t *testing.T) {
	tests := []struct {
		id   string
		want int
		ok   bool
	}{
		{"G001", 1, true},
		{"G042", 42, true},
		{"G1000", 1000, true},
		{"X001", 0, false},
		{"G", 0, false},
		{"Gabc", 0, false},
	}
	for _, tt := range tests {
		got, ok := clientIDNumber(tt.id)
		if got != tt.want || ok != tt.ok {
			t.Errorf("clientIDNumber(%q) = %d, %v; want %d, %v", tt.id, got, ok, tt.want, tt.ok)
		}
	}
}
