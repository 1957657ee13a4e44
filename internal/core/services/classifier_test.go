package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
)

func TestGenreClassifier_Classify(t *testing.T) {
	vocabulary := []string{"rock", "pop", "electronic"}

	tests := []struct {
		name      string
		reply     string
		replyErr  error
		wantGenre string
		wantOK    bool
	}{
		{
			name:      "reply matching vocabulary",
			reply:     "Electronic",
			wantGenre: "Electronic",
			wantOK:    true,
		},
		{
			name:      "lowercase reply is capitalized",
			reply:     "rock",
			wantGenre: "Rock",
			wantOK:    true,
		},
		{
			name:      "reply with trailing period and newline",
			reply:     "pop.\nBecause it fits the mood",
			wantGenre: "Pop",
			wantOK:    true,
		},
		{
			name:      "comma-separated reply keeps first entry",
			reply:     "rock, pop",
			wantGenre: "Rock",
			wantOK:    true,
		},
		{
			name:   "reply outside vocabulary is rejected",
			reply:  "shoegaze",
			wantOK: false,
		},
		{
			name:   "literal none is rejected",
			reply:  "none",
			wantOK: false,
		},
		{
			name:   "empty reply after normalization",
			reply:  " . ",
			wantOK: false,
		},
		{
			name:     "inference error degrades to no match",
			replyErr: errors.New("connection refused"),
			wantOK:   false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			completer := &fakeCompleter{reply: tc.reply, err: tc.replyErr}
			c := NewGenreClassifier(completer, domain.NewGenreSet(vocabulary), testLogger())

			genre, ok := c.Classify(context.Background(), "energetic workout music")

			if ok != tc.wantOK {
				t.Fatalf("ok: got %v, want %v", ok, tc.wantOK)
			}
			if genre != tc.wantGenre {
				t.Fatalf("genre: got %q, want %q", genre, tc.wantGenre)
			}
		})
	}
}

func TestGenreClassifier_PromptEmbedsVocabulary(t *testing.T) {
	completer := &fakeCompleter{reply: "rock"}
	c := NewGenreClassifier(completer, domain.NewGenreSet([]string{"pop", "rock"}), testLogger())

	c.Classify(context.Background(), "loud guitars")

	if !strings.Contains(completer.gotPrompt, "pop, rock") {
		t.Errorf("prompt missing sorted vocabulary: %q", completer.gotPrompt)
	}
	if !strings.Contains(completer.gotPrompt, `"loud guitars"`) {
		t.Errorf("prompt missing user text: %q", completer.gotPrompt)
	}
	if completer.gotTemperature != classifierTemperature {
		t.Errorf("temperature: got %v, want %v", completer.gotTemperature, classifierTemperature)
	}
	if completer.gotMaxTokens != classifierMaxTokens {
		t.Errorf("max tokens: got %v, want %v", completer.gotMaxTokens, classifierMaxTokens)
	}
}

func TestGenreClassifier_FailsFast(t *testing.T) {
	t.Run("nil completer", func(t *testing.T) {
		c := NewGenreClassifier(nil, domain.NewGenreSet([]string{"rock"}), testLogger())
		if _, ok := c.Classify(context.Background(), "anything"); ok {
			t.Fatal("expected no match without a completer")
		}
	})

	t.Run("empty vocabulary", func(t *testing.T) {
		completer := &fakeCompleter{reply: "rock"}
		c := NewGenreClassifier(completer, domain.NewGenreSet(nil), testLogger())
		if _, ok := c.Classify(context.Background(), "anything"); ok {
			t.Fatal("expected no match with an empty vocabulary")
		}
		if completer.calls != 0 {
			t.Fatalf("expected no inference call, got %d", completer.calls)
		}
	})
}
