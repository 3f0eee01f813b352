package diplomacy

// ValidateRetreatOrder checks if a retreat order is legal against the
// dislodgement record it answers.
func ValidateRetreatOrder(order RetreatOrder, dislodged *DislodgedUnit, bs *BoardState, m *Map) error {
	if order.Type == RetreatDisband {
		return nil
	}

	if order.Target == dislodged.DislodgerOrigin {
		return &IllegalOrderError{
			Order:   Order{Location: order.Location, Power: order.Power},
			Message: "cannot retreat to the province the attacker came from",
		}
	}

	for _, p := range dislodged.ContestedProvinces {
		if p == order.Target {
			return &IllegalOrderError{
				Order:   Order{Location: order.Location, Power: order.Power},
				Message: "cannot retreat into a province that stood off this phase",
			}
		}
	}

	isFleet := order.UnitType == Fleet
	if !m.Adjacent(order.Location, order.Coast, order.Target, order.TargetCoast, isFleet) {
		return &IllegalOrderError{
			Order:   Order{Location: order.Location, Power: order.Power},
			Message: "retreat target not adjacent",
		}
	}

	if bs.UnitAt(order.Target) != nil {
		return &IllegalOrderError{
			Order:   Order{Location: order.Location, Power: order.Power},
			Message: "cannot retreat to an occupied province",
		}
	}

	if isFleet && m.HasCoasts(order.Target) {
		if order.TargetCoast == NoCoast {
			// An ambiguous destination is a rejected order, not an
			// auto-resolved one: the retreating player must name the coast.
			return &IllegalOrderError{
				Order:   Order{Location: order.Location, Power: order.Power},
				Message: "must specify a coast to retreat to " + order.Target,
			}
		}
		reachable := false
		for _, c := range m.FleetCoastsTo(order.Location, order.Coast, order.Target) {
			if c == order.TargetCoast {
				reachable = true
				break
			}
		}
		if !reachable {
			return &IllegalOrderError{
				Order:   Order{Location: order.Location, Power: order.Power},
				Message: "fleet cannot retreat to that coast of " + order.Target,
			}
		}
	}

	return nil
}

// ResolveRetreats processes retreat orders. If two or more units try to
// retreat to the same province, all of them are disbanded instead. Any
// dislodged unit that received no order, or an illegal one, is disbanded.
func ResolveRetreats(orders []RetreatOrder, bs *BoardState, m *Map) []RetreatResult {
	var results []RetreatResult

	dislodgedByLoc := make(map[string]*DislodgedUnit, len(bs.Dislodged))
	for i := range bs.Dislodged {
		dislodgedByLoc[bs.Dislodged[i].DislodgedFrom] = &bs.Dislodged[i]
	}

	ordered := make(map[string]bool, len(orders))
	for _, o := range orders {
		ordered[o.Location] = true
	}

	for _, d := range bs.Dislodged {
		if !ordered[d.DislodgedFrom] {
			results = append(results, RetreatResult{
				Order: RetreatOrder{
					UnitType: d.Unit.Type,
					Power:    d.Unit.Power,
					Location: d.DislodgedFrom,
					Coast:    d.Unit.Coast,
					Type:     RetreatDisband,
				},
				Result: ResultSucceeded,
			})
		}
	}

	targetCounts := make(map[string]int)
	for _, o := range orders {
		if o.Type == RetreatMove {
			targetCounts[o.Target]++
		}
	}

	for _, o := range orders {
		if o.Type == RetreatDisband {
			results = append(results, RetreatResult{Order: o, Result: ResultSucceeded})
			continue
		}

		d := dislodgedByLoc[o.Location]
		if d == nil {
			results = append(results, RetreatResult{Order: o, Result: ResultVoid})
			continue
		}

		if err := ValidateRetreatOrder(o, d, bs, m); err != nil {
			results = append(results, RetreatResult{Order: o, Result: ResultVoid})
			continue
		}

		if targetCounts[o.Target] > 1 {
			results = append(results, RetreatResult{Order: o, Result: ResultBounced})
		} else {
			results = append(results, RetreatResult{Order: o, Result: ResultSucceeded})
		}
	}

	return results
}

// ApplyRetreats updates the board state based on resolved retreat orders
// and clears the dislodged list, since every dislodgement is settled one
// way or another by the end of the retreat phase.
func ApplyRetreats(bs *BoardState, results []RetreatResult) {
	for _, r := range results {
		if r.Order.Type == RetreatMove && r.Result == ResultSucceeded {
			bs.Units = append(bs.Units, Unit{
				Type:     r.Order.UnitType,
				Power:    r.Order.Power,
				Province: r.Order.Target,
				Coast:    r.Order.TargetCoast,
			})
		}
	}
	bs.Dislodged = nil
}
