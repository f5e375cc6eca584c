package service

import (
	"math/rand/v2"
	"testing"
)

func TestDrawStylesDistinctTuples(t *testing.T) {
	s := NewCommentStylist(rand.New(rand.NewPCG(1, 1)))

	styles := s.DrawStyles(3)
	if len(styles) != 3 {
		t.Fatalf("expected 3 styles, got %d", len(styles))
	}

	seen := make(map[StyleTuple]bool)
	for _, st := range styles {
		if seen[st] {
			t.Fatalf("duplicate style tuple: %+v", st)
		}
		seen[st] = true
	}
}

func TestDrawStylesExhaustsSpaceBeforeRepeating(t *testing.T) {
	s := NewCommentStylist(rand.New(rand.NewPCG(2, 2)))

	space := len(commentTones) * len(commentFocuses) * len(commentPersonas)
	styles := s.DrawStyles(space + 5)

	if len(styles) != space+5 {
		t.Fatalf("expected %d styles, got %d", space+5, len(styles))
	}

	seen := make(map[StyleTuple]bool)
	for _, st := range styles[:space] {
		if seen[st] {
			t.Fatalf("repeat before exhausting the style space: %+v", st)
		}
		seen[st] = true
	}
}

func TestDrawStylesZero(t *testing.T) {
	s := NewCommentStylist(nil)
	if got := s.DrawStyles(0); got != nil {
		t.Fatalf("expected nil for k=0, got %v", got)
	}
}
