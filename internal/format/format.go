package format

import (
	"fmt"
	"strings"
	"time"
)

// FmtNumber renders an integer with thousand separators, for the large
// values in counting lessons (1.000, 10.000 and up use dots in the
// site's French-influenced convention; English keeps commas).
func FmtNumber(n int, lang string) string {
	sep := byte('.')
	if strings.ToLower(lang) == "en" {
		sep = ','
	}
	s := fmt.Sprintf("%d", n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var b strings.Builder
	for i := range s {
		if i != 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(sep)
		}
		b.WriteByte(s[i])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// FmtDate formats content timestamps in a locale-friendly short form.
func FmtDate(t time.Time, lang string) string {
	if t.IsZero() {
		return ""
	}
	switch strings.ToLower(lang) {
	case "fr":
		return t.Format("02/01/2006")
	case "sw", "kif":
		return t.Format("2006-01-02")
	default:
		return t.Format("Jan 2, 2006")
	}
}
