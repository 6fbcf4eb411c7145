package catalog

import (
	"strings"

	"github.com/asteroid-belt/repcache/internal/models"
)

// FilterExercises applies an in-memory predicate over a cached exercise
// list: case-insensitive substring match on name combined, by AND, with
// equality filters on the optional facet selectors. A nil selector means
// no constraint on that facet.
func FilterExercises(exercises []models.CachedExercise, query string, bodyPart, target, equipment *string) []models.CachedExercise {
	q := strings.ToLower(strings.TrimSpace(query))

	filtered := make([]models.CachedExercise, 0, len(exercises))
	for _, e := range exercises {
		if q != "" && !strings.Contains(strings.ToLower(e.Name), q) {
			continue
		}
		if bodyPart != nil && e.BodyPart != *bodyPart {
			continue
		}
		if target != nil && e.Target != *target {
			continue
		}
		if equipment != nil && e.EquipmentName != *equipment {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}
