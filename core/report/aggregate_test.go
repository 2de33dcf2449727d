package report

import (
	"reflect"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		x      float64
		places int
		want   float64
	}{
		{x: 66.66666, places: 1, want: 66.7},
		{x: 33.33333, places: 2, want: 33.33},
		{x: 2.5, places: 0, want: 2},
		{x: 3.5, places: 0, want: 4},
		{x: 0.125, places: 2, want: 0.12},
		{x: 90, places: 2, want: 90},
	}
	for _, tt := range tests {
		if got := Round(tt.x, tt.places); got != tt.want {
			t.Errorf("Round(%v, %d) = %v, want %v", tt.x, tt.places, got, tt.want)
		}
	}
}

func TestRate(t *testing.T) {
	tests := []struct {
		name        string
		part, total int
		want        float64
	}{
		{"zero total", 0, 0, 0},
		{"none", 0, 4, 0},
		{"two thirds", 2, 3, 66.7},
		{"all", 5, 5, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Rate(tt.part, tt.total); got != tt.want {
				t.Errorf("Rate(%d, %d) = %v, want %v", tt.part, tt.total, got, tt.want)
			}
		})
	}
}

func TestAverage(t *testing.T) {
	if got := Average(nil); got != 0 {
		t.Errorf("Average(nil) = %v, want 0", got)
	}
	if got := Average([]float64{80, 100}); got != 90 {
		t.Errorf("Average(80, 100) = %v, want 90", got)
	}
	if got := Sum([]float64{19.99, 49.99}); Round(got, 2) != 69.98 {
		t.Errorf("Sum() = %v, want 69.98", got)
	}
}

type row struct {
	key   string
	count int
}

func metric(r row) float64 { return float64(r.count) }
func key(r row) string     { return r.key }

func TestGroupBy(t *testing.T) {
	keys, groups := GroupBy([]string{"b", "a", "b", "c", "a", "b"}, func(s string) string { return s })
	if want := []string{"b", "a", "c"}; !reflect.DeepEqual(keys, want) {
		t.Errorf("GroupBy() keys = %v, want %v", keys, want)
	}
	if len(groups["b"]) != 3 || len(groups["a"]) != 2 || len(groups["c"]) != 1 {
		t.Errorf("GroupBy() groups = %v", groups)
	}
}

func TestSortDesc(t *testing.T) {
	rows := []row{{"c", 1}, {"b", 3}, {"a", 1}, {"d", 3}}
	SortDesc(rows, metric, key)
	want := []row{{"b", 3}, {"d", 3}, {"a", 1}, {"c", 1}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("SortDesc() = %v, want %v", rows, want)
	}
}

func TestTopK(t *testing.T) {
	tests := []struct {
		name string
		k    int
		want []row
	}{
		{"fewer rows than k", 10, []row{{"x", 9}, {"y", 5}, {"z", 2}}},
		{"truncated", 2, []row{{"x", 9}, {"y", 5}}},
		{"zero", 0, []row{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := []row{{"z", 2}, {"x", 9}, {"y", 5}}
			if got := TopK(rows, tt.k, metric, key); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TopK() = %v, want %v", got, tt.want)
			}
		})
	}
}
