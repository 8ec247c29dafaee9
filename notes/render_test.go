package notes

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamspd/StudyNotes/models"
)

func renderView(t *testing.T, filter models.Filter) *models.NotesView {
	t.Helper()
	b := NewBuilder(NewMarkdown())
	rows := Apply(sectionRows(), filter, nil)
	return &models.NotesView{
		Title:    "요약 노트",
		Filter:   filter,
		Sections: b.Build(rows, filter, nil),
		RowCount: len(rows),
	}
}

func TestDocument(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	out, err := r.DocumentString(renderView(t, models.Filter{}), true)
	require.NoError(t, err)

	assert.Contains(t, out, `<div class="main-section-header">주거</div>`)
	assert.Equal(t, 2, strings.Count(out, `class="main-section-header"`))
	assert.Contains(t, out, `<div class="section-header">1. 단독주택</div>`)
	assert.Contains(t, out, "2) 배치")
	assert.Contains(t, out, `<span class="freq-badge">3회</span>`)
	assert.Contains(t, out, "[2020 출제년도]")
	assert.Contains(t, out, "window.print()")
	assert.Contains(t, out, `class="column problem-col"`)
	assert.Contains(t, out, "display: flex;")
}

func TestDocumentConceptOnlyLayout(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	out, err := r.DocumentString(renderView(t, models.Filter{ConceptOnly: true}), false)
	require.NoError(t, err)

	assert.NotContains(t, out, `class="column problem-col"`)
	assert.Contains(t, out, "break-inside: avoid-column")
	assert.NotContains(t, out, "window.print()")
}

func TestDashboard(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = r.Dashboard(&buf, DashboardData{
		Title:        "요약 노트",
		Filter:       models.Filter{Subject: "계획", MinFrequency: 3},
		Options:      Options(filterRows(), "계획"),
		DocumentURL:  "/notes/document?subject=%EA%B3%84%ED%9A%8D",
		IframeHeight: IframeHeight(3),
		RowCount:     3,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `<option value="계획" selected>계획</option>`)
	assert.Contains(t, out, `value="3" checked`)
	assert.Contains(t, out, `height="2000"`)
	assert.Contains(t, out, "전체")
	assert.NotContains(t, out, "즐겨찾기만 보기", "favorites filter only for signed-in users")
}

func TestDashboardShowsLoadError(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Dashboard(&buf, DashboardData{Title: "요약 노트", Error: LoadFailedMessage}))

	assert.Contains(t, buf.String(), LoadFailedMessage)
	assert.NotContains(t, buf.String(), "<iframe")
}

func TestIframeHeight(t *testing.T) {
	assert.Equal(t, 2000, IframeHeight(0))
	assert.Equal(t, 2000, IframeHeight(11))
	assert.Equal(t, 3600, IframeHeight(20))
}
