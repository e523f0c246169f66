package render

import (
	"strconv"
	"strings"

	"kifuliiru.net/kifuliiru-web/internal/content"
)

// NumberRow is one filterable row of the number-table view.
type NumberRow struct {
	Value         int
	Kifuliiru     string
	Pronunciation string
	Notes         string
	Section       string
}

// NumberSectionView groups rows under their range heading.
type NumberSectionView struct {
	Title string
	Range string
	Rows  []NumberRow
}

// NumberLessonView is the view model for number-lesson content.
type NumberLessonView struct {
	Title       string
	Description string
	Range       string
	Sections    []NumberSectionView
	// Rows flattens every section for the search-box filter.
	Rows []NumberRow
}

// BuildNumberLessonView shapes a number lesson for the template layer.
func BuildNumberLessonView(d content.NumberLesson) NumberLessonView {
	view := NumberLessonView{
		Title:       d.Title,
		Description: d.Description,
		Range:       d.Range,
	}
	for _, sec := range d.Sections {
		sv := NumberSectionView{Title: sec.Title, Range: sec.Range}
		for _, n := range sec.Numbers {
			row := NumberRow{
				Value:         n.Value,
				Kifuliiru:     n.Kifuliiru,
				Pronunciation: n.Pronunciation,
				Notes:         n.Notes,
				Section:       sec.Title,
			}
			sv.Rows = append(sv.Rows, row)
			view.Rows = append(view.Rows, row)
		}
		view.Sections = append(view.Sections, sv)
	}
	return view
}

// FilterNumbers re-derives the visible rows for a search-box query with a
// case-insensitive substring match over every displayed field. An empty
// query returns the full dataset.
func FilterNumbers(rows []NumberRow, query string) []NumberRow {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return rows
	}
	var out []NumberRow
	for _, row := range rows {
		hay := strings.ToLower(strings.Join([]string{
			strconv.Itoa(row.Value),
			row.Kifuliiru,
			row.Pronunciation,
			row.Notes,
		}, " "))
		if strings.Contains(hay, query) {
			out = append(out, row)
		}
	}
	return out
}
