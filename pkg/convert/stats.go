package convert

import (
	"maps"
	"slices"
)

// Stats counts the elements produced by one conversion, or by a batch when
// accumulated with Add.
type Stats struct {
	// Blocks is the number of top-level document blocks.
	Blocks int

	Headings   int
	Paragraphs int
	ListItems  int
	CodeBlocks int
	Tables     int

	// Images is the number of embedded pictures.
	Images int

	// Placeholders is the number of images replaced by placeholder text.
	Placeholders int

	// Languages counts code blocks by detected language.
	Languages map[string]int
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Blocks += other.Blocks
	s.Headings += other.Headings
	s.Paragraphs += other.Paragraphs
	s.ListItems += other.ListItems
	s.CodeBlocks += other.CodeBlocks
	s.Tables += other.Tables
	s.Images += other.Images
	s.Placeholders += other.Placeholders

	for lang, n := range other.Languages {
		s.countLanguage(lang, n)
	}
}

// LanguageNames returns the detected languages, sorted.
func (s *Stats) LanguageNames() []string {
	return slices.Sorted(maps.Keys(s.Languages))
}

func (s *Stats) countLanguage(lang string, n int) {
	if s.Languages == nil {
		s.Languages = make(map[string]int)
	}
	s.Languages[lang] += n
}
