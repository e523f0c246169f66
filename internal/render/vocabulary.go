package render

import (
	"strings"

	"kifuliiru.net/kifuliiru-web/internal/content"
)

// WordCard is one entry of the dictionary-card view.
type WordCard struct {
	Kifuliiru     string
	English       string
	French        string
	Swahili       string
	Pronunciation string
	Category      string
	Example       string
}

// VocabularyView is the view model for vocabulary content.
type VocabularyView struct {
	Title       string
	Description string
	Words       []WordCard
}

// BuildVocabularyView shapes a word list for the template layer.
func BuildVocabularyView(d content.Vocabulary) VocabularyView {
	view := VocabularyView{Title: d.Title, Description: d.Description}
	for _, w := range d.Words {
		view.Words = append(view.Words, WordCard{
			Kifuliiru:     w.Kifuliiru,
			English:       w.English,
			French:        w.French,
			Swahili:       w.Swahili,
			Pronunciation: w.Pronunciation,
			Category:      w.Category,
			Example:       w.Example,
		})
	}
	return view
}

// FilterWords re-derives the visible cards for a search-box query with a
// case-insensitive substring match across the word and its translations.
func FilterWords(words []WordCard, query string) []WordCard {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return words
	}
	var out []WordCard
	for _, w := range words {
		hay := strings.ToLower(strings.Join([]string{
			w.Kifuliiru, w.English, w.French, w.Swahili, w.Category, w.Example,
		}, " "))
		if strings.Contains(hay, query) {
			out = append(out, w)
		}
	}
	return out
}
