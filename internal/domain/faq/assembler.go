package faq

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// TokenCounter estimates how many prompt tokens a text consumes.
type TokenCounter interface {
	Count(text string) int
}

// HeuristicCounter approximates tokens without a BPE table.
type HeuristicCounter struct{}

// Count returns max(runes/4, words), at least 1 for non-empty input.
func (HeuristicCounter) Count(text string) int {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0
	}
	words := len(strings.Fields(trimmed))
	tokens := utf8.RuneCountInString(trimmed) / 4
	if tokens < words {
		tokens = words
	}
	if tokens == 0 {
		tokens = 1
	}
	return tokens
}

// Assembler formats similarity results into a prompt context block.
type Assembler struct {
	maxTokens int
	counter   TokenCounter
}

// NewAssembler builds an assembler. maxTokens <= 0 disables the budget.
func NewAssembler(maxTokens int, counter TokenCounter) *Assembler {
	if counter == nil {
		counter = HeuristicCounter{}
	}
	return &Assembler{maxTokens: maxTokens, counter: counter}
}

// Assemble renders results in index order, one block per result, until the
// token budget is spent. An empty input yields an empty string.
func (a *Assembler) Assemble(results []SimilarityResult) string {
	if len(results) == 0 {
		return ""
	}
	var (
		builder strings.Builder
		used    int
	)
	for _, r := range results {
		block := fmt.Sprintf("Q: %s\nA: %s", strings.TrimSpace(r.Question), strings.TrimSpace(r.Answer))
		cost := a.counter.Count(block)
		if a.maxTokens > 0 && used+cost > a.maxTokens {
			break
		}
		if builder.Len() > 0 {
			builder.WriteString("\n\n")
		}
		builder.WriteString(block)
		used += cost
	}
	return builder.String()
}
