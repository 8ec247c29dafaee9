package notes

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/adamspd/StudyNotes/models"
)

// Builder turns filtered rows into titled sections.
type Builder struct {
	md *Markdown
}

func NewBuilder(md *Markdown) *Builder {
	return &Builder{md: md}
}

// Build groups rows by GroupID. Sections follow group id order, or first
// appearance when the rows were sorted by frequency.
func (b *Builder) Build(rows []models.Row, f models.Filter, favorites map[string]bool) []models.Section {
	var order []string
	groups := make(map[string][]models.Row)
	for _, row := range rows {
		if _, ok := groups[row.GroupID]; !ok {
			order = append(order, row.GroupID)
		}
		groups[row.GroupID] = append(groups[row.GroupID], row)
	}
	if !f.SortByFrequency {
		sort.Strings(order)
	}

	sections := make([]models.Section, 0, len(order))
	lastMainCategory := ""
	for _, id := range order {
		section := b.buildSection(id, groups[id], f, favorites)
		if section.MainCategory != "" && section.MainCategory != lastMainCategory {
			section.MainHeader = section.MainCategory
			lastMainCategory = section.MainCategory
		}
		sections = append(sections, section)
	}
	return sections
}

func (b *Builder) buildSection(id string, group []models.Row, f models.Filter, favorites map[string]bool) models.Section {
	head := group[0]
	for _, row := range group {
		if row.SubCategory != "" {
			head = row
			break
		}
	}

	section := models.Section{
		GroupID:      id,
		MainCategory: strings.TrimSpace(head.MainCategory),
		Title:        SectionTitle(head.SubNumber, head.SubCategory),
	}

	for _, row := range group {
		if item, ok := b.conceptItem(row); ok {
			item.First = len(section.Concepts) == 0
			item.Favorite = favorites[item.RowKey] && item.RowKey != ""
			section.Concepts = append(section.Concepts, item)
		}
		if f.ConceptOnly {
			continue
		}
		if item, ok := b.problemItem(row); ok {
			item.First = len(section.Problems) == 0
			section.Problems = append(section.Problems, item)
		}
	}
	return section
}

// conceptItem skips rows with no label, concept text or concept image.
func (b *Builder) conceptItem(row models.Row) (models.ConceptItem, bool) {
	label := strings.TrimSpace(row.Label)
	concept := strings.TrimSpace(row.Concept)
	if label == "" && concept == "" && models.IsBlank(row.ConceptImage) {
		return models.ConceptItem{}, false
	}

	return models.ConceptItem{
		RowKey:    row.Key(),
		Number:    FormatNumber(row.LabelNumber),
		Label:     label,
		Frequency: row.Frequency,
		Body:      concept,
		BodyHTML:  b.md.Concept(concept),
		ImageURL:  DriveLink(row.ConceptImage),
	}, true
}

func (b *Builder) problemItem(row models.Row) (models.ProblemItem, bool) {
	problem := strings.TrimSpace(row.Problem)
	if models.IsBlank(problem) {
		return models.ProblemItem{}, false
	}

	answer := strings.TrimSpace(row.Answer)
	return models.ProblemItem{
		RowKey:     row.Key(),
		Number:     FormatNumber(row.ProblemNumber),
		Text:       problem,
		TextHTML:   b.md.Problem(problem),
		Answer:     answer,
		AnswerHTML: b.md.Answer(answer),
		ImageURL:   DriveLink(row.ProblemImage),
		Years:      strings.TrimSpace(row.Years),
	}, true
}

// SectionTitle prefixes the sub-category with its number when present.
func SectionTitle(number, name string) string {
	name = strings.TrimSpace(name)
	if n := FormatNumber(number); n != "" {
		return n + ". " + name
	}
	return name
}

// FormatNumber prints numeric cells without a fractional part ("3.0" -> "3")
// and leaves anything else, including values beyond int64, as written.
func FormatNumber(raw string) string {
	raw = strings.TrimSpace(raw)
	if models.IsBlank(raw) {
		return ""
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.Abs(f) >= math.MaxInt64 {
		return raw
	}
	return strconv.FormatInt(int64(f), 10)
}
