// Package tracker holds the mutable ledgers of one selection run:
// cumulative nutrient intake against NRV and accumulated macro grams.
// A fresh ledger is created per run and discarded with it; nothing
// here survives across optimization calls.
package tracker

import "nutriplan/internal/models"

// NutrientStatus is the running intake of one nutrient
type NutrientStatus struct {
	Nutrient      models.Nutrient
	ConsumedGrams float64
}

// Percentage derives NRV coverage from the consumed amount. It is
// always recomputed, never stored, so it cannot drift from the
// consumed figure.
func (s NutrientStatus) Percentage() float64 {
	if s.Nutrient.NRV <= 0 {
		return 0
	}
	return s.ConsumedGrams / s.Nutrient.NRV * 100
}

// NutrientLedger tracks intake for every nutrient of the catalog
type NutrientLedger struct {
	statuses []NutrientStatus
	index    map[string]int
}

// NewNutrientLedger starts an empty ledger over the nutrient catalog
func NewNutrientLedger(nutrients models.Nutrients) *NutrientLedger {
	l := &NutrientLedger{
		statuses: make([]NutrientStatus, len(nutrients)),
		index:    make(map[string]int, len(nutrients)),
	}
	for i, n := range nutrients {
		l.statuses[i] = NutrientStatus{Nutrient: n}
		l.index[n.Name] = i
	}
	return l
}

// Add records the nutrient content of grams of an ingredient.
// Nutrients the ledger does not know are silently skipped: a failed
// name lookup drops the contribution, it is not an error.
func (l *NutrientLedger) Add(ing models.Ingredient, grams float64) {
	factor := grams / 100
	for _, na := range ing.Nutrients {
		i, ok := l.index[na.Nutrient.Name]
		if !ok {
			continue
		}
		l.statuses[i].ConsumedGrams += na.AmountPer100g * factor
	}
}

// Percentage returns the NRV coverage of one nutrient by name.
// Unknown names report zero coverage.
func (l *NutrientLedger) Percentage(name string) float64 {
	i, ok := l.index[name]
	if !ok {
		return 0
	}
	return l.statuses[i].Percentage()
}

// Consumed returns the consumed grams of one nutrient by name
func (l *NutrientLedger) Consumed(name string) float64 {
	i, ok := l.index[name]
	if !ok {
		return 0
	}
	return l.statuses[i].ConsumedGrams
}

// AllCovered reports whether every tracked nutrient reached its NRV
func (l *NutrientLedger) AllCovered() bool {
	for _, s := range l.statuses {
		if s.Percentage() < 100 {
			return false
		}
	}
	return true
}

// Statuses returns a copy of the per-nutrient state, for reporting
// and tests
func (l *NutrientLedger) Statuses() []NutrientStatus {
	out := make([]NutrientStatus, len(l.statuses))
	copy(out, l.statuses)
	return out
}

// MacroLedger accumulates macro grams over a selection run
type MacroLedger struct {
	totals models.Macros
}

// Add records grams of an ingredient, scaling its per-100g macros
func (m *MacroLedger) Add(ing models.Ingredient, grams float64) {
	m.totals = m.totals.Add(ing.Macros.Scale(grams / 100))
}

// Totals returns the accumulated macro grams
func (m *MacroLedger) Totals() models.Macros {
	return m.totals
}

// Calories derives the accumulated energy from the macro totals
func (m *MacroLedger) Calories() float64 {
	return m.totals.Calories()
}
