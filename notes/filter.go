package notes

import (
	"sort"

	"github.com/adamspd/StudyNotes/models"
)

// Options lists subjects of the whole table and main categories of the
// rows matching subject.
func Options(rows []models.Row, subject string) models.FilterOptions {
	subjects := make(map[string]bool)
	mainCategories := make(map[string]bool)

	for _, row := range rows {
		if row.Subject != "" {
			subjects[row.Subject] = true
		}
		if subject != "" && row.Subject != subject {
			continue
		}
		if row.MainCategory != "" {
			mainCategories[row.MainCategory] = true
		}
	}

	return models.FilterOptions{
		Subjects:       sortedKeys(subjects),
		MainCategories: sortedKeys(mainCategories),
		Frequencies:    models.FrequencyOptions,
	}
}

// Apply narrows rows by subject, main category, frequency and favorites, in
// that order, then optionally sorts by frequency (highest first, stable).
func Apply(rows []models.Row, f models.Filter, favorites map[string]bool) []models.Row {
	f = f.Normalize()
	out := make([]models.Row, 0, len(rows))

	for _, row := range rows {
		if f.Subject != "" && row.Subject != f.Subject {
			continue
		}
		if f.MainCategory != "" && row.MainCategory != f.MainCategory {
			continue
		}
		if f.MinFrequency > 0 && row.Frequency < f.MinFrequency {
			continue
		}
		if f.FavoritesOnly && favorites != nil && !favorites[row.Key()] {
			continue
		}
		out = append(out, row)
	}

	if f.SortByFrequency {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Frequency > out[j].Frequency
		})
	}
	return out
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
