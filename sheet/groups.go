package sheet

import (
	"strings"

	"github.com/adamspd/StudyNotes/models"
)

// FallbackGroupID is used for leading rows without any composite key.
const FallbackGroupID = "ETC"

// GroupID derives the section id from a composite key: the first three
// dash-separated segments, or the whole key when it has fewer.
func GroupID(pk, fpk string) (string, bool) {
	for _, key := range []string{pk, fpk} {
		key = strings.TrimSpace(key)
		if models.IsBlank(key) {
			continue
		}
		parts := strings.Split(key, "-")
		if len(parts) >= 3 {
			return strings.Join(parts[:3], "-"), true
		}
		return key, true
	}
	return "", false
}

// AssignGroups fills GroupID on every row, carrying the previous id forward
// over rows without a key.
func AssignGroups(rows []models.Row) {
	last := ""
	for i := range rows {
		if id, ok := GroupID(rows[i].PK, rows[i].FPK); ok {
			last = id
		}
		if last == "" {
			rows[i].GroupID = FallbackGroupID
			continue
		}
		rows[i].GroupID = last
	}
}
