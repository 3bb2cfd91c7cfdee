package commands

import (
	"context"
	"testing"
)

func TestFuzzyScore(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		query     string
		wantScore int
		wantMin   int // use this for relative comparisons
	}{
		{
			name:      "exact match",
			target:    "0101-01",
			query:     "0101-01",
			wantScore: 150, // 100 for contains + 50 for prefix
		},
		{
			name:      "prefix match",
			target:    "0101-01",
			query:     "0101",
			wantScore: 150,
		},
		{
			name:      "substring match",
			target:    "PT-101",
			query:     "101",
			wantScore: 100, // contains only
		},
		{
			name:    "fuzzy match after separator",
			target:  "Connector_Main",
			query:   "cm",
			wantMin: 20,
		},
		{
			name:      "no match",
			target:    "PT-101",
			query:     "xyz",
			wantScore: 0,
		},
		{
			name:      "empty query",
			target:    "PT-101",
			query:     "",
			wantScore: 0,
		},
		{
			name:    "case insensitive",
			target:  "SC_LOCAL",
			query:   "sc_local",
			wantMin: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := FuzzyScore(tt.target, tt.query)

			if tt.wantScore > 0 {
				if score != tt.wantScore {
					t.Errorf("expected score %d, got %d", tt.wantScore, score)
				}
			} else if tt.wantMin > 0 {
				if score < tt.wantMin {
					t.Errorf("expected score >= %d, got %d", tt.wantMin, score)
				}
			} else {
				if score != 0 {
					t.Errorf("expected score 0, got %d", score)
				}
			}
		})
	}
}

func TestFuzzySort(t *testing.T) {
	rows := []FindRow{
		{Handle: "1", Name: "SC_LOCAL", Tag: "PT-101"},
		{Handle: "2", Name: "Connector_Main", Tag: "0101-01"},
		{Handle: "3", Name: "pipe_tag", Tag: "CW101-100-A1"},
		{Handle: "4", Name: "Valve", Tag: "XV-9"},
	}

	results := FuzzySort(rows, "101")
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("results not sorted: %d before %d", results[i-1].Score, results[i].Score)
		}
	}
}

func TestSearchCommand(t *testing.T) {
	s := loadSession(t, plantDrawing())

	t.Run("short query", func(t *testing.T) {
		results, err := NewSearchCommand(s, "0").Execute(context.Background())
		if err != nil {
			t.Fatalf("Execute failed: %v", err)
		}
		if results != nil {
			t.Errorf("expected no results for short query, got %d", len(results))
		}
	})

	t.Run("connector tags", func(t *testing.T) {
		results, err := NewSearchCommand(s, "0101").Execute(context.Background())
		if err != nil {
			t.Fatalf("Execute failed: %v", err)
		}
		if len(results) < 3 {
			t.Fatalf("expected at least 3 results, got %d", len(results))
		}
		for i, want := range []string{"C1", "C2", "C4"} {
			if results[i].Handle != want || results[i].Score != 150 {
				t.Errorf("result %d: expected %s with 150, got %s with %d", i, want, results[i].Handle, results[i].Score)
			}
		}
	})

	t.Run("bubble tags", func(t *testing.T) {
		results, err := NewSearchCommand(s, "PT-101").Execute(context.Background())
		if err != nil {
			t.Fatalf("Execute failed: %v", err)
		}
		if len(results) == 0 || results[0].Handle != "I1" {
			t.Errorf("expected bubble I1 first, got %+v", results)
		}
	})
}
