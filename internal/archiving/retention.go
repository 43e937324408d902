// Package archiving derives the retention policy of a publication from the
// information categories attached to it.
package archiving

import (
	"time"

	"github.com/gpp-woo/publicationbank/internal/model"
)

// Retention carries the derived retention policy fields of a publication.
type Retention struct {
	Source            string
	SelectionCategory string
	Nomination        model.Nomination
	ActionDate        time.Time
	Explanation       string
}

// Calculate derives the retention policy from the attached category set.
// Returns nil for an empty set: the policy is not determined yet and the
// publication's retention fields must stay blank.
//
// Selection logic:
//
//   - categories with nomination "retain" always win over "destroy" ones;
//   - among "retain" categories the smallest retention period governs: the
//     most conservative retention among must-keep categories is leading;
//   - when everything is disposable, the largest retention period governs,
//     since the longest-surviving category sets the actual disposal date.
//
// The action date is the registration date plus the selected retention
// period in whole calendar years. Ties on the retention period break on the
// category order, then the identifier.
func Calculate(registeredAt time.Time, categories []model.InformationCategory) *Retention {
	selected := selectCategory(categories)
	if selected == nil {
		return nil
	}

	return &Retention{
		Source:            selected.RetentionSource,
		SelectionCategory: selected.SelectionCategory,
		Nomination:        selected.Nomination,
		ActionDate:        registeredAt.AddDate(selected.RetentionYears, 0, 0),
		Explanation:       selected.RetentionExplanation,
	}
}

func selectCategory(categories []model.InformationCategory) *model.InformationCategory {
	var retain, destroy []model.InformationCategory
	for _, ic := range categories {
		if ic.Nomination == model.NominationRetain {
			retain = append(retain, ic)
		} else {
			destroy = append(destroy, ic)
		}
	}

	if len(retain) > 0 {
		return pick(retain, func(candidate, best model.InformationCategory) bool {
			return candidate.RetentionYears < best.RetentionYears
		})
	}
	if len(destroy) > 0 {
		return pick(destroy, func(candidate, best model.InformationCategory) bool {
			return candidate.RetentionYears > best.RetentionYears
		})
	}
	return nil
}

func pick(categories []model.InformationCategory, better func(candidate, best model.InformationCategory) bool) *model.InformationCategory {
	best := categories[0]
	for _, ic := range categories[1:] {
		if better(ic, best) {
			best = ic
			continue
		}
		if ic.RetentionYears == best.RetentionYears && lessByOrder(ic, best) {
			best = ic
		}
	}
	return &best
}

func lessByOrder(a, b model.InformationCategory) bool {
	if a.Order != b.Order {
		return a.Order < b.Order
	}
	return a.Identifier < b.Identifier
}
