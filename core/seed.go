package core

import (
	"fmt"
	"math"
	"time"
)

// Faker supplies realistic filler values for seeded documents.
type Faker interface {
	FirstName() string
	LastName() string
	// UniqueEmail never returns the same address twice for the life of the Faker.
	UniqueEmail() string
	Sentence(words int) string
	Paragraph(sentences int) string
	ImageURL() string
	// IntBetween and FloatBetween are inclusive.
	IntBetween(min, max int) int
	FloatBetween(min, max float64) float64
	Bool() bool
	Pick(options []string) string
	// Sample picks between min and max distinct elements of options.
	Sample(options []string, min, max int) []string
}

// SeedResult is the outcome of one seeding run.
type SeedResult struct {
	Entity    string
	Attempted int
	Inserted  int
	Failures  []error
	Elapsed   time.Duration
}

func (r SeedResult) Failed() int {
	return len(r.Failures)
}

func (r SeedResult) String() string {
	return fmt.Sprintf("%s: inserted %d of %d (%d failed)", r.Entity, r.Inserted, r.Attempted, r.Failed())
}

// Record accounts for one insert attempt.
func (r *SeedResult) Record(err error) {
	r.Attempted++
	if err != nil {
		r.Failures = append(r.Failures, err)
		return
	}
	r.Inserted++
}

// RoundTo rounds x to the given decimal places, half away from zero, for generated values.
func RoundTo(x float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(x*p) / p
}
