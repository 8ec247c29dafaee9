package notes

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamspd/StudyNotes/models"
)

func sectionRows() []models.Row {
	return []models.Row{
		{Index: 0, GroupID: "B-1-1", MainCategory: "구조", SubCategory: "하중", Label: "고정하중", Concept: "자중", Frequency: 1, PK: "B-1-1-1"},
		{Index: 1, GroupID: "A-1-1", MainCategory: "주거", SubCategory: "단독주택", SubNumber: "1.0", Label: "배치", LabelNumber: "2", Concept: "남향", Frequency: 3, PK: "A-1-1-1",
			Problem: "배치 원칙은?", ProblemNumber: "1", Answer: "남향", Years: "2020"},
		{Index: 2, GroupID: "A-1-1", Problem: "두번째 문제", Answer: "답"},
		{Index: 3, GroupID: "A-1-2", MainCategory: "주거", Label: "", Concept: "", ConceptImage: "https://drive.google.com/file/d/img1/view"},
		{Index: 4, GroupID: "A-1-2", MainCategory: "주거", SubCategory: "공동주택", SubNumber: "2", Label: "동선", Frequency: 7},
	}
}

func titles(sections []models.Section) []string {
	out := make([]string, len(sections))
	for i, s := range sections {
		out[i] = s.MainHeader + "|" + s.Title
	}
	return out
}

func TestBuildOrdersByGroupID(t *testing.T) {
	b := NewBuilder(NewMarkdown())

	sections := b.Build(sectionRows(), models.Filter{}, nil)

	want := []string{"주거|1. 단독주택", "|2. 공동주택", "구조|하중"}
	if diff := cmp.Diff(want, titles(sections)); diff != "" {
		t.Errorf("section titles mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildKeepsFirstAppearanceWhenSorted(t *testing.T) {
	b := NewBuilder(NewMarkdown())
	rows := Apply(sectionRows(), models.Filter{SortByFrequency: true}, nil)

	sections := b.Build(rows, models.Filter{SortByFrequency: true}, nil)

	want := []string{"주거|2. 공동주택", "|1. 단독주택", "구조|하중"}
	if diff := cmp.Diff(want, titles(sections)); diff != "" {
		t.Errorf("section titles mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildSectionItems(t *testing.T) {
	b := NewBuilder(NewMarkdown())

	sections := b.Build(sectionRows(), models.Filter{}, map[string]bool{"A-1-1-1": true})
	require.Len(t, sections, 3)

	house := sections[0]
	require.Len(t, house.Concepts, 1, "row without label, concept or image is skipped")
	concept := house.Concepts[0]
	assert.Equal(t, "2", concept.Number)
	assert.Equal(t, "배치", concept.Label)
	assert.Equal(t, 3, concept.Frequency)
	assert.True(t, concept.First)
	assert.True(t, concept.Favorite)

	require.Len(t, house.Problems, 2)
	assert.True(t, house.Problems[0].First)
	assert.False(t, house.Problems[1].First)
	assert.Equal(t, "1", house.Problems[0].Number)
	assert.Equal(t, "2020", house.Problems[0].Years)
	assert.Equal(t, "", house.Problems[1].Number)

	apartments := sections[1]
	require.Len(t, apartments.Concepts, 2, "image-only row still yields a concept")
	assert.Equal(t, "https://drive.google.com/thumbnail?id=img1&sz=w1000", apartments.Concepts[0].ImageURL)
	assert.False(t, apartments.Concepts[1].First)
}

func TestBuildConceptOnlyDropsProblems(t *testing.T) {
	b := NewBuilder(NewMarkdown())

	sections := b.Build(sectionRows(), models.Filter{ConceptOnly: true}, nil)

	for _, s := range sections {
		assert.Empty(t, s.Problems, s.GroupID)
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "3", FormatNumber("3.0"))
	assert.Equal(t, "12", FormatNumber(" 12 "))
	assert.Equal(t, "가", FormatNumber("가"))
	assert.Equal(t, "", FormatNumber("nan"))
	assert.Equal(t, "", FormatNumber(""))
	assert.Equal(t, "1e20", FormatNumber("1e20"))
	assert.Equal(t, "-1e20", FormatNumber("-1e20"))
	assert.Equal(t, "Inf", FormatNumber("Inf"))
}

func TestSectionTitle(t *testing.T) {
	assert.Equal(t, "4. 구조", SectionTitle("4.0", "구조"))
	assert.Equal(t, "구조", SectionTitle("", " 구조 "))
}
