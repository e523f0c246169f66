package resolver

import "strings"

// Section is one of the fixed top-level content groupings. Each carries
// its own aliasing rules for slug resolution.
type Section struct {
	// ID is the URL prefix and the content subdirectory name.
	ID string
	// Aliases are bare top-level slugs recognized under this section.
	// A request for one of them bypasses the section prefix and resolves
	// directly by that name.
	Aliases []string
	// HasRoot reports whether the bare section path has a canonical root
	// document. When false, resolving the section with no segments fails
	// immediately without any store lookup.
	HasRoot bool
	// Forced paths are always included in static enumeration even when no
	// backing file exists, so navigation links never 404.
	Forced [][]string
}

// Sections is the site's fixed section table.
var Sections = []Section{
	{
		// counting lessons, no root document
		ID: "ukuharura",
	},
	{
		ID:      "amagambo",
		Aliases: []string{"herufi", "ulufwabe"},
		HasRoot: true,
	},
	{
		ID:      "twehe",
		HasRoot: true,
	},
	{
		ID:      "imwitu",
		HasRoot: true,
	},
	{
		ID:      "bingi-ku-kifuliiru",
		HasRoot: true,
	},
	{
		ID:      "eng-frn-swa",
		Aliases: []string{"kiswahili", "english", "francais", "tukole"},
		HasRoot: true,
		Forced: [][]string{
			{"kiswahili"},
			{"english"},
			{"francais"},
			{"tukole"},
		},
	},
}

// SectionByID looks up a section by its identifier.
func SectionByID(id string) (Section, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, sec := range Sections {
		if sec.ID == id {
			return sec, true
		}
	}
	return Section{}, false
}

// HasAlias reports whether name is one of the section's bare aliases.
func (s Section) HasAlias(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, a := range s.Aliases {
		if a == name {
			return true
		}
	}
	return false
}
