package livefeed

// FilterAll valeur de filtre qui laisse passer tous les éléments
const FilterAll = "all"

// Filter applique un filtre catégoriel purement local sur un ensemble déjà
// chargé : jamais de re-fetch, jamais de mutation de l'ensemble d'origine.
// Repasser sur FilterAll restitue la liste complète telle quelle.
func Filter[T any](items []T, category string, key func(T) string) []T {
	if category == FilterAll {
		return items
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		if key(item) == category {
			out = append(out, item)
		}
	}
	return out
}
