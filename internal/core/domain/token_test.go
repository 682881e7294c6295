package domain

import (
	"testing"
	"time"
)

func TestImageToken_Check(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tok := &ImageToken{ExpiresAt: now.Add(time.Minute)}

	if err := tok.Check(now); err != nil {
		t.Fatalf("fresh token rejected: %v", err)
	}
	if err := tok.Check(now.Add(2 * time.Minute)); err != ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
	tok.Used = true
	if err := tok.Check(now); err != ErrTokenUsed {
		t.Fatalf("expected ErrTokenUsed, got %v", err)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Velvet Matte Lipstick":   "velvet-matte-lipstick",
		"  Rose -- Glow Serum!! ": "rose-glow-serum",
		"SPF 50+":                 "spf-50",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMarkDefault(t *testing.T) {
	addrs := []*Address{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	MarkDefault(addrs, "b")
	count := 0
	for _, a := range addrs {
		if a.IsDefault {
			count++
		}
	}
	if count != 1 || !addrs[1].IsDefault {
		t.Fatalf("expected only b default, got %+v", addrs)
	}
	MarkDefault(addrs, "")
	for _, a := range addrs {
		if a.IsDefault {
			t.Fatalf("no address should be default")
		}
	}
}
