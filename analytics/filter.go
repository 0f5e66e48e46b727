// Package analytics filters datasets by language and derives the tables
// behind each chart. Every function is pure: inputs are never modified.
package analytics

import "repodash/models"

// DistinctLanguages returns the language values of ds in order of first
// appearance.
func DistinctLanguages(ds *models.Dataset) []string {
	seen := make(map[string]struct{})
	languages := make([]string, 0)
	if ds == nil {
		return languages
	}
	for _, rec := range ds.Records {
		if _, ok := seen[rec.Language]; ok {
			continue
		}
		seen[rec.Language] = struct{}{}
		languages = append(languages, rec.Language)
	}
	return languages
}

// Filter returns the rows of ds whose language is in selected, preserving
// their relative order. An empty selection yields an empty view.
func Filter(ds *models.Dataset, selected []string) *models.Dataset {
	if ds == nil {
		return models.NewDataset(nil, nil)
	}

	allowed := make(map[string]struct{}, len(selected))
	for _, lang := range selected {
		allowed[lang] = struct{}{}
	}

	records := make([]models.Repository, 0, len(ds.Records))
	for _, rec := range ds.Records {
		if _, ok := allowed[rec.Language]; ok {
			records = append(records, rec)
		}
	}
	return ds.View(records)
}
