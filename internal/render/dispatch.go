// Package render turns resolved content into typed view models for the
// template layer. Dispatch is a closed type switch over the content
// union; anything outside it degrades to a notice instead of failing.
package render

import (
	"fmt"

	"kifuliiru.net/kifuliiru-web/internal/content"
)

// View kinds, matched by the content template.
const (
	ViewNumbers    = "numbers"
	ViewVocabulary = "vocabulary"
	ViewArticle    = "article"
	ViewNotice     = "notice"
)

// View pairs a view kind with its typed payload.
type View struct {
	Kind string

	Numbers    NumberLessonView
	Vocabulary VocabularyView
	Article    ArticleView
	Notice     Notice
}

// Notice is rendered for content the site cannot display.
type Notice struct {
	Message string
}

// TOC returns the view's table-of-contents entries, when it has any.
func (v View) TOC() []Heading {
	if v.Kind == ViewArticle {
		return v.Article.TOC
	}
	return nil
}

// Dispatch selects the typed view for a content payload. Exercises have a
// schema but no renderer yet and say so; payloads outside the known union
// get a notice naming the unexpected type so schema drift is visible
// rather than silent.
func Dispatch(data content.Data) View {
	switch d := data.(type) {
	case content.NumberLesson:
		return View{Kind: ViewNumbers, Numbers: BuildNumberLessonView(d)}
	case content.Vocabulary:
		return View{Kind: ViewVocabulary, Vocabulary: BuildVocabularyView(d)}
	case content.Lesson:
		return View{Kind: ViewArticle, Article: BuildArticleView(d)}
	case content.Exercise:
		return View{Kind: ViewNotice, Notice: Notice{
			Message: "Exercises are not implemented yet.",
		}}
	case content.Unknown:
		return View{Kind: ViewNotice, Notice: Notice{
			Message: fmt.Sprintf("Content type %q is not supported.", d.Type),
		}}
	default:
		return View{Kind: ViewNotice, Notice: Notice{
			Message: "Content type is not supported.",
		}}
	}
}
