package fixture

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var emailRegex = regexp.MustCompile(`^.+@.+\..+$`)

func TestGenerator_UniqueEmail(t *testing.T) {
	g := New(42)
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		email := g.UniqueEmail()
		if seen[email] {
			t.Fatalf("UniqueEmail() returned %q twice", email)
		}
		if !emailRegex.MatchString(email) {
			t.Errorf("UniqueEmail() = %q, does not match the email pattern", email)
		}
		seen[email] = true
	}
}

func TestGenerator_repeatable(t *testing.T) {
	a, b := New(7), New(7)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.FirstName(), b.FirstName())
		assert.Equal(t, a.IntBetween(1, 100), b.IntBetween(1, 100))
	}
}

func TestGenerator_bounds(t *testing.T) {
	g := New(1)
	for i := 0; i < 200; i++ {
		if n := g.IntBetween(2, 6); n < 2 || n > 6 {
			t.Fatalf("IntBetween(2, 6) = %d", n)
		}
		if f := g.FloatBetween(10, 90); f < 10 || f > 90 {
			t.Fatalf("FloatBetween(10, 90) = %v", f)
		}
	}
	assert.Equal(t, 5, g.IntBetween(5, 5))
	assert.Equal(t, 3.5, g.FloatBetween(3.5, 1))
}

func TestGenerator_Sample(t *testing.T) {
	g := New(3)
	pool := []string{"Python", "MongoDB", "Data Analysis", "Machine Learning", "Web Development"}

	tests := []struct {
		name     string
		min, max int
		wantMin  int
		wantMax  int
	}{
		{"within pool", 1, 4, 1, 4},
		{"max beyond pool", 2, 10, 2, 5},
		{"exact", 3, 3, 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 50; i++ {
				got := g.Sample(pool, tt.min, tt.max)
				if len(got) < tt.wantMin || len(got) > tt.wantMax {
					t.Fatalf("Sample() returned %d items, want %d..%d", len(got), tt.wantMin, tt.wantMax)
				}
				seen := make(map[string]bool)
				for _, s := range got {
					if seen[s] {
						t.Fatalf("Sample() repeated %q", s)
					}
					assert.Contains(t, pool, s)
					seen[s] = true
				}
			}
		})
	}
	assert.Equal(t, "Python", pool[0], "Sample() must not reorder its input")
}
