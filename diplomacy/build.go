package diplomacy

import "sort"

// ValidateBuildOrder checks if a build order is legal.
func ValidateBuildOrder(order BuildOrder, bs *BoardState, m *Map) error {
	switch order.Type {
	case BuildUnit:
		return validateBuild(order, bs, m)
	case DisbandUnit:
		return validateDisband(order, bs)
	case WaiveBuild:
		return nil
	default:
		return &IllegalOrderError{
			Order:   Order{Location: order.Location, Power: order.Power},
			Message: "unknown build order type",
		}
	}
}

func validateBuild(order BuildOrder, bs *BoardState, m *Map) error {
	if bs.SupplyCenterCount(order.Power) <= bs.UnitCount(order.Power) {
		return &IllegalOrderError{
			Order:   Order{Location: order.Location, Power: order.Power},
			Message: "no builds available (units >= supply centers)",
		}
	}

	prov := m.Provinces[order.Location]
	if prov == nil {
		return &IllegalOrderError{
			Order:   Order{Location: order.Location, Power: order.Power},
			Message: "province does not exist",
		}
	}
	if !prov.IsSupplyCenter {
		return &IllegalOrderError{
			Order:   Order{Location: order.Location, Power: order.Power},
			Message: "not a supply center",
		}
	}
	if prov.HomePower != order.Power {
		return &IllegalOrderError{
			Order:   Order{Location: order.Location, Power: order.Power},
			Message: "not a home supply center",
		}
	}

	if bs.SupplyCenters[order.Location] != order.Power {
		return &IllegalOrderError{
			Order:   Order{Location: order.Location, Power: order.Power},
			Message: "supply center not currently owned",
		}
	}

	if bs.UnitAt(order.Location) != nil {
		return &IllegalOrderError{
			Order:   Order{Location: order.Location, Power: order.Power},
			Message: "province is occupied",
		}
	}

	if order.UnitType == Fleet && prov.Type == Land {
		return &IllegalOrderError{
			Order:   Order{Location: order.Location, Power: order.Power},
			Message: "cannot build fleet in inland province",
		}
	}

	if order.UnitType == Fleet && len(prov.Coasts) > 0 && order.Coast == NoCoast {
		return &IllegalOrderError{
			Order:   Order{Location: order.Location, Power: order.Power},
			Message: "must specify coast for fleet build",
		}
	}

	return nil
}

func validateDisband(order BuildOrder, bs *BoardState) error {
	if bs.UnitCount(order.Power) <= bs.SupplyCenterCount(order.Power) {
		return &IllegalOrderError{
			Order:   Order{Location: order.Location, Power: order.Power},
			Message: "no disbands required (units <= supply centers)",
		}
	}

	unit := bs.UnitAt(order.Location)
	if unit == nil {
		return &IllegalOrderError{
			Order:   Order{Location: order.Location, Power: order.Power},
			Message: "no unit at location",
		}
	}
	if unit.Power != order.Power {
		return &IllegalOrderError{
			Order:   Order{Location: order.Location, Power: order.Power},
			Message: "unit belongs to another power",
		}
	}

	return nil
}

// ResolveBuildOrders processes build/disband orders for every power at
// once. A power short of orders for a required disband falls into civil
// disorder and has units chosen automatically.
func ResolveBuildOrders(orders []BuildOrder, bs *BoardState, m *Map) []BuildResult {
	var results []BuildResult

	buildsByPower := make(map[Power][]BuildOrder)
	for _, o := range orders {
		buildsByPower[o.Power] = append(buildsByPower[o.Power], o)
	}

	for _, power := range AllPowers() {
		diff := bs.SupplyCenterCount(power) - bs.UnitCount(power)
		submitted := buildsByPower[power]

		switch {
		case diff > 0:
			built := 0
			for _, o := range submitted {
				if o.Type != BuildUnit && o.Type != WaiveBuild {
					continue
				}
				if built >= diff {
					results = append(results, BuildResult{Order: o, Result: ResultFailed})
					continue
				}
				if o.Type == WaiveBuild {
					results = append(results, BuildResult{Order: o, Result: ResultSucceeded})
					built++
					continue
				}
				if err := ValidateBuildOrder(o, bs, m); err != nil {
					results = append(results, BuildResult{Order: o, Result: ResultVoid})
					continue
				}
				results = append(results, BuildResult{Order: o, Result: ResultSucceeded})
				built++
			}

		case diff < 0:
			needed := -diff
			disbanded := 0
			ordered := make(map[string]bool)
			for _, o := range submitted {
				if o.Type != DisbandUnit {
					continue
				}
				if err := ValidateBuildOrder(o, bs, m); err != nil {
					results = append(results, BuildResult{Order: o, Result: ResultVoid})
					continue
				}
				if disbanded >= needed {
					results = append(results, BuildResult{Order: o, Result: ResultFailed})
					continue
				}
				results = append(results, BuildResult{Order: o, Result: ResultSucceeded})
				ordered[o.Location] = true
				disbanded++
			}

			if disbanded < needed {
				results = append(results, civilDisorder(power, needed-disbanded, bs, m, ordered)...)
			}
		}
	}

	return results
}

// civilDisorder auto-disbands units when a power hasn't submitted enough
// disband orders. The tiebreak among equally-stranded units is fixed so
// the same input always produces the same choice: greatest distance from
// a home supply center first, fleets before armies, then the
// lexicographically smallest province code. ordered excludes units already
// named by the power's own successful disband orders, so the same unit is
// never picked twice.
func civilDisorder(power Power, count int, bs *BoardState, m *Map, ordered map[string]bool) []BuildResult {
	var units []Unit
	for _, u := range bs.UnitsOf(power) {
		if !ordered[u.Province] {
			units = append(units, u)
		}
	}
	if len(units) == 0 || count == 0 {
		return nil
	}

	homes := HomeCenters(power)

	type candidate struct {
		unit Unit
		dist int
	}
	candidates := make([]candidate, len(units))
	for i, u := range units {
		candidates[i] = candidate{u, minDistanceToHome(u.Province, homes, m)}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.dist != b.dist {
			return a.dist > b.dist
		}
		if a.unit.Type != b.unit.Type {
			return a.unit.Type == Fleet
		}
		return a.unit.Province < b.unit.Province
	})

	if count > len(candidates) {
		count = len(candidates)
	}

	results := make([]BuildResult, count)
	for i := 0; i < count; i++ {
		u := candidates[i].unit
		results[i] = BuildResult{
			Order: BuildOrder{
				Power:    power,
				Type:     DisbandUnit,
				UnitType: u.Type,
				Location: u.Province,
			},
			Result: ResultSucceeded,
		}
	}
	return results
}

// minDistanceToHome computes the minimum BFS distance from a province to any home SC.
func minDistanceToHome(from string, homes []string, m *Map) int {
	if len(homes) == 0 {
		return 999
	}

	homeSet := make(map[string]bool, len(homes))
	for _, h := range homes {
		homeSet[h] = true
	}
	if homeSet[from] {
		return 0
	}

	visited := map[string]bool{from: true}
	queue := []string{from}
	dist := 0

	for len(queue) > 0 {
		dist++
		var next []string
		for _, prov := range queue {
			for _, adj := range m.Adjacencies[prov] {
				if visited[adj.To] {
					continue
				}
				if homeSet[adj.To] {
					return dist
				}
				visited[adj.To] = true
				next = append(next, adj.To)
			}
		}
		queue = next
	}

	return 999
}

// ApplyBuildOrders updates the board state based on resolved build orders.
func ApplyBuildOrders(bs *BoardState, results []BuildResult) {
	for _, r := range results {
		if r.Result != ResultSucceeded {
			continue
		}
		switch r.Order.Type {
		case BuildUnit:
			bs.Units = append(bs.Units, Unit{
				Type:     r.Order.UnitType,
				Power:    r.Order.Power,
				Province: r.Order.Location,
				Coast:    r.Order.Coast,
			})
		case DisbandUnit:
			for i := range bs.Units {
				if bs.Units[i].Province == r.Order.Location && bs.Units[i].Power == r.Order.Power {
					bs.Units = append(bs.Units[:i], bs.Units[i+1:]...)
					break
				}
			}
		}
	}
}
