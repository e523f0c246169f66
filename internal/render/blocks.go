package render

import (
	"log"

	"kifuliiru.net/kifuliiru-web/internal/content"
)

// BlockView is one renderable unit of a lesson or article. Kind selects
// the layout rule in the template.
type BlockView struct {
	Kind  string
	Level int
	// ID is set for headings so the TOC can anchor to them.
	ID    string
	Text  string
	Items []string
	Src   string
	Alt   string
}

// ArticleView is the view model for lesson and article content.
type ArticleView struct {
	Title       string
	Description string
	Variant     content.Kind
	Blocks      []BlockView
	TOC         []Heading
}

// BuildArticleView shapes a block sequence for the template layer,
// preserving document order. A block with an unrecognized type renders as
// nothing; that is logged but never fatal.
func BuildArticleView(d content.Lesson) ArticleView {
	view := ArticleView{
		Title:       d.Title,
		Description: d.Description,
		Variant:     d.Kind(),
		TOC:         HeadingsFromBlocks(d.Blocks),
	}
	for _, b := range d.Blocks {
		switch b.Type {
		case content.BlockHeading:
			view.Blocks = append(view.Blocks, BlockView{
				Kind:  b.Type,
				Level: clampHeadingLevel(b.Level),
				ID:    HeadingID(b.Text),
				Text:  b.Text,
			})
		case content.BlockParagraph, content.BlockQuote:
			view.Blocks = append(view.Blocks, BlockView{Kind: b.Type, Text: b.Text})
		case content.BlockList:
			view.Blocks = append(view.Blocks, BlockView{Kind: b.Type, Items: b.Items})
		case content.BlockImage:
			view.Blocks = append(view.Blocks, BlockView{Kind: b.Type, Src: b.Src, Alt: b.Alt})
		default:
			log.Printf("render: unrecognized block type %q in %q, skipping", b.Type, d.Title)
		}
	}
	return view
}

func clampHeadingLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 4 {
		return 4
	}
	return level
}
