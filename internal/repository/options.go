package repository

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Options are the closed value sets the UI offers for each column.
type Options struct {
	Types      []string
	Statuses   []string
	ModelTypes []string
	BaseModels []string
}

// DefaultOptions mirrors the values the product ships with.
func DefaultOptions() Options {
	return Options{
		Types:      []string{"PDF", "CSV", "DOCX"},
		Statuses:   []string{"Uploaded", "Connected"},
		ModelTypes: []string{"Fine-tuned", "RAG", "Custom"},
		BaseModels: []string{"GPT-4", "Claude 3", "Llama 3", "Mistral"},
	}
}

// MatchOption returns the canonical spelling of value from options, matching
// case-insensitively. Unknown values wrap ErrUnknownOption and name the
// closest option when one is near enough to be a typo.
func MatchOption(kind, value string, options []string) (string, error) {
	v := strings.TrimSpace(value)
	for _, o := range options {
		if strings.EqualFold(o, v) {
			return o, nil
		}
	}
	if s := Suggest(v, options); s != "" {
		return "", fmt.Errorf("%w: %s %q (did you mean %q?)", ErrUnknownOption, kind, value, s)
	}
	return "", fmt.Errorf("%w: %s %q (expected one of %s)", ErrUnknownOption, kind, value, strings.Join(options, ", "))
}

// Suggest returns the option with the smallest edit distance to value, or ""
// when even the best one differs in more than half of its characters.
func Suggest(value string, options []string) string {
	v := strings.ToUpper(value)
	best, bestDist := "", -1
	for _, o := range options {
		d := levenshtein.ComputeDistance(v, strings.ToUpper(o))
		if bestDist < 0 || d < bestDist {
			best, bestDist = o, d
		}
	}
	if best == "" || float64(bestDist) > float64(len(best))/2 {
		return ""
	}
	return best
}
