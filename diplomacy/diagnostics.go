package diplomacy

// Diagnostics carries every piece of explanatory detail a caller needs
// after a movement resolution: who moved, who bounced, who was dislodged,
// which supports were cut or invalid, and which orders were illegal.
type Diagnostics struct {
	Results []ResolvedOrder

	// IllegalOrders lists every order that failed static well-formedness
	// and was silently replaced by Hold.
	IllegalOrders []IllegalOrderError

	// InvalidSupports lists support orders that were well-formed but
	// produced no effect: the referenced unit's real order didn't match
	// what the support claimed to back, or the support would have helped
	// dislodge a unit of the supporter's own power.
	InvalidSupports []Order

	// CutSupports lists support orders that were well-formed, matched the
	// supported unit's real order, but were severed by an attack on the
	// supporter's own province.
	CutSupports []Order

	// Dislodged lists every unit forced off the board this phase.
	Dislodged []DislodgedUnit

	// Contested lists every province that saw a standoff (two or more
	// attackers tied for the highest strength). Retreats into these
	// provinces are forbidden this phase.
	Contested []string

	// GuessCount is how many times the resolver had to back off and
	// re-guess a cyclic order dependency. Zero for the common case; nonzero
	// only on boards with circular support/move chains.
	GuessCount int
}

// Outcome returns the closed-vocabulary human-readable description for
// the order that was submitted for the unit at province, or "" if no
// order was resolved for that province.
func (d *Diagnostics) Outcome(province string) string {
	for _, ro := range d.Results {
		if ro.Order.Location != province {
			continue
		}
		origin := ""
		for _, dl := range d.Dislodged {
			if dl.DislodgedFrom == province {
				origin = dl.DislodgerOrigin
				break
			}
		}
		return ro.Outcome(origin)
	}
	return ""
}
