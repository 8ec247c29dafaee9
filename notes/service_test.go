package notes

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamspd/StudyNotes/models"
)

type stubSource struct {
	table *models.Table
	err   error
}

func (s stubSource) Load(ctx context.Context) (*models.Table, error) {
	return s.table, s.err
}

func TestServiceNotes(t *testing.T) {
	table := &models.Table{Rows: sectionRows(), MissingColumns: []string{"과목"}}
	svc := NewService(stubSource{table: table}, NewMarkdown(), "요약 노트")

	result, err := svc.Notes(context.Background(), models.Filter{MainCategory: "주거", FavoritesOnly: true}, nil)
	require.NoError(t, err)

	assert.Equal(t, "요약 노트", result.View.Title)
	assert.False(t, result.View.Filter.FavoritesOnly, "anonymous users cannot filter by favorites")
	assert.Equal(t, 4, result.View.RowCount)
	assert.Len(t, result.View.Sections, 2)
	assert.Equal(t, []string{"과목"}, result.MissingColumns)
	assert.Equal(t, []string{"구조", "주거"}, result.Options.MainCategories)
}

func TestServicePropagatesLoadErrors(t *testing.T) {
	svc := NewService(stubSource{err: errors.New("boom")}, NewMarkdown(), "요약 노트")

	_, err := svc.Notes(context.Background(), models.Filter{}, nil)
	assert.EqualError(t, err, "boom")
}

func TestMarkdownTextAndPreview(t *testing.T) {
	view := renderView(t, models.Filter{})

	text := MarkdownText(view)
	assert.True(t, strings.HasPrefix(text, "# 요약 노트"))
	assert.Contains(t, text, "## 주거")
	assert.Contains(t, text, "### 1. 단독주택")
	assert.Contains(t, text, "**2) 배치 `3회`**")
	assert.Contains(t, text, "> [2020 출제년도] 1. 배치 원칙은?")

	out, err := Preview(view, 60)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
