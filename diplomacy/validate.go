package diplomacy

import "fmt"

// ValidateOrder checks a single movement-phase order for static
// well-formedness against the current board. It does not check
// support-cutting, strength, or anything that depends on the other orders
// in the set — that is the resolver's job.
func ValidateOrder(order Order, bs *BoardState, m *Map) error {
	unit := bs.UnitAt(order.Location)
	if unit == nil {
		return &IllegalOrderError{order, "no unit at " + order.Location}
	}
	if unit.Power != order.Power {
		return &IllegalOrderError{order, fmt.Sprintf("unit belongs to %s, not %s", unit.Power, order.Power)}
	}
	if unit.Type != order.UnitType {
		return &IllegalOrderError{order, fmt.Sprintf("unit is a %s, not a %s", unit.Type, order.UnitType)}
	}

	switch order.Type {
	case OrderHold:
		return nil
	case OrderMove:
		return validateMove(order, bs, m)
	case OrderSupport:
		return validateSupport(order, bs, m)
	case OrderConvoy:
		return validateConvoy(order, bs, m)
	default:
		return &IllegalOrderError{order, "unknown order type"}
	}
}

func validateMove(order Order, bs *BoardState, m *Map) error {
	if order.Location == order.Target {
		return &IllegalOrderError{order, "cannot move to the same province"}
	}

	isFleet := order.UnitType == Fleet
	target := m.Provinces[order.Target]
	if target == nil {
		return &IllegalOrderError{order, "unknown target province: " + order.Target}
	}
	if isFleet && target.Type == Land {
		return &IllegalOrderError{order, "fleet cannot move to an inland province"}
	}
	if !isFleet && target.Type == Sea {
		return &IllegalOrderError{order, "army cannot move into a sea province"}
	}

	adjacent := m.Adjacent(order.Location, order.Coast, order.Target, order.TargetCoast, isFleet)

	if order.ViaConvoy {
		// An explicit convoy announcement always requires a convoy route,
		// even when an overland path also happens to exist.
		if isFleet {
			return &IllegalOrderError{order, "fleet cannot be convoyed"}
		}
		if !canBeConvoyed(order.Location, order.Target, bs, m) {
			return &IllegalOrderError{order, fmt.Sprintf("no convoy route from %s to %s", order.Location, order.Target)}
		}
		return nil
	}

	if adjacent {
		if isFleet && m.HasCoasts(order.Target) {
			return validateFleetCoast(order, m)
		}
		return nil
	}

	return &IllegalOrderError{order, fmt.Sprintf("%s is not adjacent to %s and no convoy was announced", order.Location, order.Target)}
}

func validateFleetCoast(order Order, m *Map) error {
	if order.TargetCoast == NoCoast {
		coasts := m.FleetCoastsTo(order.Location, order.Coast, order.Target)
		switch len(coasts) {
		case 0:
			return &IllegalOrderError{order, "fleet cannot reach any coast of " + order.Target}
		case 1:
			return nil
		default:
			return &IllegalOrderError{order, "must specify a coast for " + order.Target}
		}
	}
	for _, c := range m.FleetCoastsTo(order.Location, order.Coast, order.Target) {
		if c == order.TargetCoast {
			return nil
		}
	}
	return &IllegalOrderError{order, fmt.Sprintf("fleet cannot reach %s/%s from %s", order.Target, order.TargetCoast, order.Location)}
}

func validateSupport(order Order, bs *BoardState, m *Map) error {
	supported := bs.UnitAt(order.AuxLoc)
	if supported == nil {
		return &IllegalOrderError{order, "no unit at " + order.AuxLoc + " to support"}
	}
	isFleet := order.UnitType == Fleet

	if order.AuxTarget == "" {
		if order.AuxLoc == order.Location {
			return &IllegalOrderError{order, "a unit cannot support its own hold"}
		}
		if !m.Adjacent(order.Location, order.Coast, order.AuxLoc, NoCoast, isFleet) {
			return &IllegalOrderError{order, fmt.Sprintf("cannot support hold at %s from %s", order.AuxLoc, order.Location)}
		}
		return nil
	}

	if order.AuxTarget == order.Location {
		return &IllegalOrderError{order, "cannot support a move into one's own province"}
	}
	if !m.Adjacent(order.Location, order.Coast, order.AuxTarget, NoCoast, isFleet) {
		return &IllegalOrderError{order, fmt.Sprintf("cannot support a move to %s from %s", order.AuxTarget, order.Location)}
	}

	supportedIsFleet := supported.Type == Fleet
	if m.Adjacent(order.AuxLoc, supported.Coast, order.AuxTarget, NoCoast, supportedIsFleet) {
		return nil
	}
	if supported.Type == Army && canBeConvoyed(order.AuxLoc, order.AuxTarget, bs, m) {
		return nil
	}
	return &IllegalOrderError{order, fmt.Sprintf("supported unit at %s cannot reach %s", order.AuxLoc, order.AuxTarget)}
}

func validateConvoy(order Order, bs *BoardState, m *Map) error {
	if order.UnitType != Fleet {
		return &IllegalOrderError{order, "only a fleet can convoy"}
	}
	prov := m.Provinces[order.Location]
	if prov == nil || prov.Type != Sea {
		return &IllegalOrderError{order, "a convoying fleet must be in a sea province"}
	}
	convoyed := bs.UnitAt(order.AuxLoc)
	if convoyed == nil {
		return &IllegalOrderError{order, "no unit at " + order.AuxLoc + " to convoy"}
	}
	if convoyed.Type != Army {
		return &IllegalOrderError{order, "only an army can be convoyed"}
	}
	return nil
}

// canBeConvoyed reports whether some chain of sea provinces, each occupied
// by a fleet, links src to dst. It does not require those fleets to have
// issued a matching Convoy order — it is used at validation time only to
// decide whether a move *could* be legal; resolve.go checks the announced
// Convoy orders themselves during adjudication.
func canBeConvoyed(src, dst string, bs *BoardState, m *Map) bool {
	srcProv := m.Provinces[src]
	dstProv := m.Provinces[dst]
	if srcProv == nil || dstProv == nil || srcProv.Type == Sea || dstProv.Type == Sea {
		return false
	}

	visited := make(map[string]bool)
	var queue []string
	for _, adj := range m.Adjacencies[src] {
		if !adj.FleetOK {
			continue
		}
		if sea := m.Provinces[adj.To]; sea != nil && sea.Type == Sea {
			if u := bs.UnitAt(adj.To); u != nil && u.Type == Fleet && !visited[adj.To] {
				visited[adj.To] = true
				queue = append(queue, adj.To)
			}
		}
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, adj := range m.Adjacencies[current] {
			if adj.To == dst && adj.FleetOK {
				return true
			}
		}
		for _, adj := range m.Adjacencies[current] {
			if !adj.FleetOK || visited[adj.To] {
				continue
			}
			if sea := m.Provinces[adj.To]; sea != nil && sea.Type == Sea {
				if u := bs.UnitAt(adj.To); u != nil && u.Type == Fleet {
					visited[adj.To] = true
					queue = append(queue, adj.To)
				}
			}
		}
	}
	return false
}

// ValidateAndDefaultOrders checks every submitted order, replaces each
// illegal one with an implicit Hold (recording why in illegal), and fills
// in an implicit Hold for every unit that received no order at all.
func ValidateAndDefaultOrders(orders []Order, bs *BoardState, m *Map) (valid []Order, illegal []IllegalOrderError) {
	ordered := make(map[string]bool, len(bs.Units))

	for _, o := range orders {
		if err := ValidateOrder(o, bs, m); err != nil {
			ioErr, _ := err.(*IllegalOrderError)
			if ioErr == nil {
				ioErr = &IllegalOrderError{o, err.Error()}
			}
			illegal = append(illegal, *ioErr)
			valid = append(valid, Order{UnitType: o.UnitType, Power: o.Power, Location: o.Location, Coast: o.Coast, Type: OrderHold})
			ordered[o.Location] = true
			continue
		}
		valid = append(valid, o)
		ordered[o.Location] = true
	}

	for _, unit := range bs.Units {
		if !ordered[unit.Province] {
			valid = append(valid, Order{UnitType: unit.Type, Power: unit.Power, Location: unit.Province, Coast: unit.Coast, Type: OrderHold})
		}
	}

	return valid, illegal
}
