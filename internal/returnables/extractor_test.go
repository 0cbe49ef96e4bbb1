package returnables

import (
	"reflect"
	"testing"
	"time"
)

func tx(desc string, daysAgo int) Transaction {
	return Transaction{
		Description: desc,
		Amount:      100,
		Date:        time.Now().AddDate(0, 0, -daysAgo),
	}
}

func TestOutstanding(t *testing.T) {
	tests := []struct {
		name string
		txns []Transaction
		want map[string]int
	}{
		{
			name: "chopine with brand",
			txns: []Transaction{tx("2 Chopine Beer", 1)},
			want: map[string]int{"Chopine Beer": 2},
		},
		{
			name: "bare chopine",
			txns: []Transaction{tx("3 chopines", 1)},
			want: map[string]int{"Chopine": 3},
		},
		{
			name: "sized bouteille with brand",
			txns: []Transaction{tx("1 1.5L Bouteille Green", 1)},
			want: map[string]int{"1.5L Bouteille Green": 1},
		},
		{
			name: "mixed line counts each family once",
			txns: []Transaction{tx("2 Chopine Beer, 1 1.5L Bouteille Green", 1)},
			want: map[string]int{"Chopine Beer": 2, "1.5L Bouteille Green": 1},
		},
		{
			name: "bouteille without size keeps brand",
			txns: []Transaction{tx("2 Bouteille Coca", 1)},
			want: map[string]int{"Bouteille Coca": 2},
		},
		{
			name: "bare bouteille",
			txns: []Transaction{tx("1 bouteille", 1)},
			want: map[string]int{"Bouteille": 1},
		},
		{
			name: "comma decimal size normalized",
			txns: []Transaction{tx("1 1,5l bouteille guinness", 1)},
			want: map[string]int{"1.5L Bouteille Guinness": 1},
		},
		{
			name: "accumulates across transactions",
			txns: []Transaction{
				tx("2 Chopine Beer", 5),
				tx("1 chopine beer", 2),
			},
			want: map[string]int{"Chopine Beer": 3},
		},
		{
			name: "returns subtract",
			txns: []Transaction{
				tx("3 Chopine Beer", 5),
				{Description: "returned: 2 Chopine Beer", Date: time.Now()},
			},
			want: map[string]int{"Chopine Beer": 1},
		},
		{
			name: "fully returned keys are omitted",
			txns: []Transaction{
				tx("2 Chopine Beer", 5),
				{Description: "returned: 2 Chopine Beer", Date: time.Now()},
			},
			want: map[string]int{},
		},
		{
			name: "over-returned clamps at zero",
			txns: []Transaction{
				tx("1 Bouteille Green", 5),
				{Description: "returned: 3 Bouteille Green", Date: time.Now()},
			},
			want: map[string]int{},
		},
		{
			name: "payment lines are ignored",
			txns: []Transaction{tx("payment for 2 Chopine Beer", 1)},
			want: map[string]int{},
		},
		{
			name: "non-container text yields nothing",
			txns: []Transaction{tx("rice and flour", 1)},
			want: map[string]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Outstanding(tt.txns)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Outstanding() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasOverdue(t *testing.T) {
	now := time.Now()

	// Dates must derive from the same now that is passed to HasOverdue;
	// a second time.Now() call would make a daysAgo-old transaction
	// fractionally younger than daysAgo*24h.
	txAt := func(desc string, daysAgo int) Transaction {
		return Transaction{
			Description: desc,
			Amount:      100,
			Date:        now.AddDate(0, 0, -daysAgo),
		}
	}

	tests := []struct {
		name string
		txns []Transaction
		want bool
	}{
		{
			name: "recent issue is not overdue",
			txns: []Transaction{txAt("2 Chopine Beer", 5)},
			want: false,
		},
		{
			name: "three-week-old issue is overdue",
			txns: []Transaction{txAt("2 Chopine Beer", 21)},
			want: true,
		},
		{
			name: "old returned line does not count",
			txns: []Transaction{{Description: "returned: 2 Chopine Beer", Date: now.AddDate(0, 0, -30)}},
			want: false,
		},
		{
			name: "old non-container debt does not count",
			txns: []Transaction{txAt("rice and flour", 40)},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasOverdue(tt.txns, now); got != tt.want {
				t.Errorf("HasOverdue() = %v, want %v", got, tt.want)
			}
		})
	}
}
