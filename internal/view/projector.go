// Package view derives the displayed coin list from a market snapshot and
// user-controlled criteria. Pure functions only; no state, no I/O.
package view

import (
	"sort"
	"strings"

	"crypto_dash/internal/domain"
)

// Project maps a snapshot and criteria to the ordered, filtered view.
// Deterministic for identical inputs; the input slice is never mutated.
func Project(snapshot []domain.Coin, criteria domain.ViewCriteria) []domain.Coin {
	filtered := make([]domain.Coin, 0, len(snapshot))
	search := strings.ToLower(criteria.SearchText)

	for _, coin := range snapshot {
		if !matchesSearch(&coin, search) {
			continue
		}
		if criteria.Bucket != domain.BucketAll && domain.Bucket(coin.MarketCap) != criteria.Bucket {
			continue
		}
		filtered = append(filtered, coin)
	}

	// Stable sort: ties keep their filtered (snapshot) relative order.
	sort.SliceStable(filtered, func(i, j int) bool {
		a := sortValue(&filtered[i], criteria.SortBy)
		b := sortValue(&filtered[j], criteria.SortBy)
		if criteria.Direction == domain.SortAsc {
			return a < b
		}
		return a > b
	})

	return filtered
}

// matchesSearch reports whether the coin's name or symbol contains the
// (already lowercased) search text. Empty search passes everything.
func matchesSearch(coin *domain.Coin, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(coin.Name), search) ||
		strings.Contains(strings.ToLower(coin.Symbol), search)
}

func sortValue(coin *domain.Coin, field domain.SortField) float64 {
	switch field {
	case domain.SortPrice:
		return coin.CurrentPrice
	case domain.SortChange24h:
		// Absent 24h change compares as 0.
		return coin.Change24h()
	default:
		return coin.MarketCap
	}
}
