// Package fixture generates the filler values of seeded documents.
package fixture

import (
	"fmt"
	"strings"
	"sync"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/eduhub/eduhub/core"
)

const maxEmailRetries = 10

type Generator struct {
	fake *gofakeit.Faker

	mu     sync.Mutex
	emails map[string]struct{}
}

var _ core.Faker = (*Generator)(nil)

// New returns a Generator. A zero seed picks a random one; any other seed makes the output repeatable.
func New(seed int64) *Generator {
	return &Generator{fake: gofakeit.New(seed), emails: make(map[string]struct{})}
}

func (g *Generator) FirstName() string { return g.fake.FirstName() }
func (g *Generator) LastName() string  { return g.fake.LastName() }

func (g *Generator) UniqueEmail() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	email := strings.ToLower(g.fake.Email())
	for i := 0; i < maxEmailRetries; i++ {
		if _, taken := g.emails[email]; !taken {
			break
		}
		email = strings.ToLower(g.fake.Email())
	}
	if _, taken := g.emails[email]; taken {
		email = fmt.Sprintf("%d.%s", len(g.emails), email)
	}
	g.emails[email] = struct{}{}
	return email
}

func (g *Generator) Sentence(words int) string {
	return g.fake.Sentence(words)
}

func (g *Generator) Paragraph(sentences int) string {
	return g.fake.Paragraph(1, sentences, 10, " ")
}

func (g *Generator) ImageURL() string {
	return g.fake.ImageURL(300, 300)
}

func (g *Generator) IntBetween(min, max int) int {
	if max <= min {
		return min
	}
	return g.fake.Number(min, max)
}

func (g *Generator) FloatBetween(min, max float64) float64 {
	if max <= min {
		return min
	}
	return g.fake.Float64Range(min, max)
}

func (g *Generator) Bool() bool {
	return g.fake.Bool()
}

func (g *Generator) Pick(options []string) string {
	if len(options) == 0 {
		return ""
	}
	return g.fake.RandomString(options)
}

func (g *Generator) Sample(options []string, min, max int) []string {
	if max > len(options) {
		max = len(options)
	}
	if min > max {
		min = max
	}
	n := g.IntBetween(min, max)
	shuffled := append([]string(nil), options...)
	g.fake.ShuffleStrings(shuffled)
	return shuffled[:n]
}
