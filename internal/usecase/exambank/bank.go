// Package exambank serves multiple-choice questions from embedded YAML banks
// when no generated exam is available.
package exambank

import (
	_ "embed"
	"fmt"
	"math/rand/v2"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed banks.yaml
var banksYAML []byte

type Question struct {
	ID            int      `yaml:"-" json:"id"`
	Question      string   `yaml:"question" json:"question"`
	Options       []string `yaml:"options" json:"options"`
	CorrectAnswer int      `yaml:"answer" json:"correctAnswer"`
	Explanation   string   `yaml:"explanation,omitempty" json:"explanation,omitempty"`
}

type skillBank struct {
	Name      string     `yaml:"name"`
	Match     []string   `yaml:"match"`
	Exclude   []string   `yaml:"exclude"`
	Questions []Question `yaml:"questions"`
}

type genericTemplate struct {
	Template string   `yaml:"template"`
	Options  []string `yaml:"options"`
	Answer   int      `yaml:"answer"`
}

type file struct {
	Banks   []skillBank       `yaml:"banks"`
	Generic []genericTemplate `yaml:"generic"`
}

type Bank struct {
	banks   []skillBank
	generic []genericTemplate
}

func Load() (*Bank, error) {
	return Parse(banksYAML)
}

func MustLoad() *Bank {
	b, err := Load()
	if err != nil {
		panic(err)
	}
	return b
}

func Parse(raw []byte) (*Bank, error) {
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse exam banks: %w", err)
	}
	for _, b := range f.Banks {
		for i, q := range b.Questions {
			if err := validate(q.Options, q.CorrectAnswer); err != nil {
				return nil, fmt.Errorf("bank %s question %d: %w", b.Name, i+1, err)
			}
		}
	}
	for i, g := range f.Generic {
		if err := validate(g.Options, g.Answer); err != nil {
			return nil, fmt.Errorf("generic template %d: %w", i+1, err)
		}
	}
	if len(f.Generic) == 0 {
		return nil, fmt.Errorf("parse exam banks: no generic templates")
	}
	return &Bank{banks: f.Banks, generic: f.Generic}, nil
}

func validate(options []string, answer int) error {
	if len(options) != 4 {
		return fmt.Errorf("expected 4 options, got %d", len(options))
	}
	if answer < 0 || answer > 3 {
		return fmt.Errorf("answer index %d out of range", answer)
	}
	return nil
}

// Questions picks up to n questions for skill. Skill-specific banks are
// shuffled with rnd; otherwise n generic questions are rendered in template
// order.
func (b *Bank) Questions(skill string, n int, rnd *rand.Rand) []Question {
	if n <= 0 {
		return []Question{}
	}
	lower := strings.ToLower(strings.TrimSpace(skill))

	if bank, ok := b.match(lower); ok {
		qs := make([]Question, len(bank.Questions))
		copy(qs, bank.Questions)
		shuffle := rand.Shuffle
		if rnd != nil {
			shuffle = rnd.Shuffle
		}
		shuffle(len(qs), func(i, j int) { qs[i], qs[j] = qs[j], qs[i] })
		if n < len(qs) {
			qs = qs[:n]
		}
		for i := range qs {
			qs[i].ID = i + 1
			qs[i].Options = append([]string(nil), qs[i].Options...)
		}
		return qs
	}

	out := make([]Question, 0, n)
	for i := 0; i < n; i++ {
		g := b.generic[i%len(b.generic)]
		out = append(out, Question{
			ID:            i + 1,
			Question:      strings.ReplaceAll(g.Template, "{skill}", strings.TrimSpace(skill)),
			Options:       append([]string(nil), g.Options...),
			CorrectAnswer: g.Answer,
		})
	}
	return out
}

func (b *Bank) match(lower string) (skillBank, bool) {
	for _, bank := range b.banks {
		if containsAny(lower, bank.Exclude) {
			continue
		}
		if containsAny(lower, bank.Match) {
			return bank, true
		}
	}
	return skillBank{}, false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
