package services

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
	"github.com/vibecheck-labs/vibecheck/internal/core/ports"
)

const (
	classifierTemperature = 0.2
	// A single genre word is all we expect back; the tight ceiling bounds
	// cost and latency.
	classifierMaxTokens = 8
)

// GenreClassifier derives exactly one genre from free-text input, restricted
// to a fixed vocabulary. Classification is best-effort: every inference
// failure degrades to "no match" rather than an error.
type GenreClassifier struct {
	completer ports.ChatCompleter
	genres    *domain.GenreSet
	logger    *log.Logger
}

// NewGenreClassifier constructs a classifier over the given vocabulary.
// completer may be nil, in which case classification always fails closed.
func NewGenreClassifier(completer ports.ChatCompleter, genres *domain.GenreSet, logger *log.Logger) *GenreClassifier {
	return &GenreClassifier{completer: completer, genres: genres, logger: logger}
}

// Classify maps a prompt to one vocabulary genre. The second return value is
// false when no genre could be derived.
func (c *GenreClassifier) Classify(ctx context.Context, prompt string) (string, bool) {
	if c.completer == nil {
		c.logger.Warn("inference client not configured, skipping genre classification")
		return "", false
	}
	if c.genres.Len() == 0 {
		c.logger.Warn("genre vocabulary is empty, skipping genre classification")
		return "", false
	}

	reply, err := c.completer.Complete(ctx, ports.Completion{
		Prompt:      c.buildPrompt(prompt),
		Temperature: classifierTemperature,
		MaxTokens:   classifierMaxTokens,
	})
	if err != nil {
		c.logger.Warn("genre inference failed", "err", err)
		return "", false
	}

	genre := normalizeGenre(reply)
	if genre == "" {
		return "", false
	}
	if !c.genres.Contains(genre) {
		c.logger.Warn("inference reply not in genre vocabulary", "reply", genre)
		return "", false
	}
	return genre, true
}

func (c *GenreClassifier) buildPrompt(prompt string) string {
	vocabulary := strings.Join(c.genres.Sorted(), ", ")
	return fmt.Sprintf(`You are a music genre selector. Your job is to imagine what the user prompt would be like and choose the best fitting genre.
Return exactly one genre from this list and do not invent new genres: %s.
Return only the genre name from the list. If unsure, respond with "none".
No extra words, no explanations. Example: "rock", not "Rock music".

User said: %q

Respond with exactly one genre name from the list only.`, vocabulary, prompt)
}

// normalizeGenre reduces a freeform model reply to a single genre word:
// trim, lowercase, keep text before the first comma or newline, strip
// trailing spaces and periods, then capitalize the first rune to match the
// vocabulary casing convention. Returns "" when nothing remains.
func normalizeGenre(reply string) string {
	s := strings.ToLower(strings.TrimSpace(reply))
	if i := strings.IndexByte(s, ','); i >= 0 {
		s = s[:i]
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	s = strings.Trim(s, " .")
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
