// Package notes shapes sheet rows into filtered, grouped and rendered study notes.
package notes

import (
	"context"

	"github.com/adamspd/StudyNotes/models"
)

// LoadFailedMessage is shown instead of the notes whenever the sheet cannot be read.
const LoadFailedMessage = "데이터를 불러오지 못했습니다."

// TableSource provides the current sheet table.
type TableSource interface {
	Load(ctx context.Context) (*models.Table, error)
}

// Result is one filtered, grouped view of the sheet.
type Result struct {
	View           *models.NotesView
	Options        models.FilterOptions
	MissingColumns []string
}

type Service struct {
	source  TableSource
	builder *Builder
	title   string
}

func NewService(source TableSource, md *Markdown, title string) *Service {
	return &Service{
		source:  source,
		builder: NewBuilder(md),
		title:   title,
	}
}

func (s *Service) Title() string {
	return s.title
}

// Notes loads the sheet and applies the filter. favorites may be nil for
// anonymous users, in which case FavoritesOnly is ignored.
func (s *Service) Notes(ctx context.Context, filter models.Filter, favorites map[string]bool) (*Result, error) {
	table, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}

	filter = filter.Normalize()
	if favorites == nil {
		filter.FavoritesOnly = false
	}

	rows := Apply(table.Rows, filter, favorites)
	return &Result{
		View: &models.NotesView{
			Title:    s.title,
			Filter:   filter,
			Sections: s.builder.Build(rows, filter, favorites),
			RowCount: len(rows),
		},
		Options:        Options(table.Rows, filter.Subject),
		MissingColumns: table.MissingColumns,
	}, nil
}
