package format

import (
	"testing"
	"time"
)

func TestFmtNumber(t *testing.T) {
	cases := []struct {
		n    int
		lang string
		want string
	}{
		{0, "kif", "0"},
		{999, "kif", "999"},
		{1000, "kif", "1.000"},
		{10000, "fr", "10.000"},
		{1234567, "kif", "1.234.567"},
		{1000, "en", "1,000"},
		{-12345, "en", "-12,345"},
	}
	for _, c := range cases {
		if got := FmtNumber(c.n, c.lang); got != c.want {
			t.Fatalf("FmtNumber(%d, %q) = %q, want %q", c.n, c.lang, got, c.want)
		}
	}
}

func TestFmtDate(t *testing.T) {
	day := time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC)
	if got := FmtDate(day, "fr"); got != "09/03/2024" {
		t.Fatalf("fr: got %q", got)
	}
	if got := FmtDate(day, "kif"); got != "2024-03-09" {
		t.Fatalf("kif: got %q", got)
	}
	if got := FmtDate(day, "en"); got != "Mar 9, 2024" {
		t.Fatalf("en: got %q", got)
	}
	if got := FmtDate(time.Time{}, "en"); got != "" {
		t.Fatalf("zero time: got %q", got)
	}
}
