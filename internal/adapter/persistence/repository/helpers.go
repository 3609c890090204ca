package repository

import (
	"os"
	"slices"

	"managrr/internal/domain/entities"
)

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// sortNewestFirst orders estimates by submitted_at, most recent first.
func sortNewestFirst(list []entities.Estimate) {
	slices.SortStableFunc(list, func(a, b entities.Estimate) int {
		return b.SubmittedAt.Compare(a.SubmittedAt)
	})
}
