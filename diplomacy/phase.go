package diplomacy

// MaxYear is the highest year a game can reach before ending as a draw.
const MaxYear = 3000

// NeedsBuildPhase returns true if any power has a unit/SC mismatch requiring adjustments.
func NeedsBuildPhase(bs *BoardState) bool {
	for _, power := range AllPowers() {
		if bs.SupplyCenterCount(power) != bs.UnitCount(power) {
			return true
		}
	}
	return false
}

// IsYearLimitReached returns true if the game has exceeded the maximum year.
func IsYearLimitReached(bs *BoardState) bool {
	return bs.Year > MaxYear
}

// IsGameOver checks if any single power controls 18+ supply centers (solo victory).
func IsGameOver(bs *BoardState) (bool, Power) {
	for _, power := range AllPowers() {
		if bs.SupplyCenterCount(power) >= 18 {
			return true, power
		}
	}
	return false, Neutral
}

// AdvancePhase transitions the board to its next phase in place. Callers
// must have already applied the current phase's resolution (moves,
// retreats, or builds) to bs.Units/bs.SupplyCenters/bs.Dislodged before
// calling this.
//
// Supply-center ownership is recomputed exactly once per year, at the
// last point before the game either enters Winter or rolls over to the
// next Spring: immediately after Fall movement if that movement caused
// no dislodgements, or after Fall retreats are resolved if it did. A
// caller that needs the post-Fall ownership snapshot earlier (e.g. to
// persist state_after for a Retreat phase) can call
// updateSupplyCenterOwnership directly — it is idempotent.
func AdvancePhase(bs *BoardState, m *Map, hasDislodgements bool) {
	switch bs.Season {
	case SeasonSpring:
		if hasDislodgements {
			prev := SeasonSpring
			bs.PreviousSeason = &prev
			bs.Season = SeasonRetreat
			return
		}
		bs.Season = SeasonFall

	case SeasonFall:
		if hasDislodgements {
			prev := SeasonFall
			bs.PreviousSeason = &prev
			bs.Season = SeasonRetreat
			return
		}
		updateSupplyCenterOwnership(bs, m)
		advanceFromFall(bs)

	case SeasonRetreat:
		wasFall := bs.PreviousSeason != nil && *bs.PreviousSeason == SeasonFall
		bs.PreviousSeason = nil
		bs.Dislodged = nil
		if !wasFall {
			bs.Season = SeasonFall
			return
		}
		updateSupplyCenterOwnership(bs, m)
		advanceFromFall(bs)

	case SeasonWinter:
		bs.Year++
		bs.Season = SeasonSpring

	default:
		bs.Season = SeasonSpring
	}
}

func advanceFromFall(bs *BoardState) {
	if NeedsBuildPhase(bs) {
		bs.Season = SeasonWinter
		return
	}
	bs.Year++
	bs.Season = SeasonSpring
}

// updateSupplyCenterOwnership assigns each supply center to the power
// whose unit currently occupies it. A supply center with no occupant
// keeps its existing owner.
func updateSupplyCenterOwnership(bs *BoardState, m *Map) {
	for provID, prov := range m.Provinces {
		if !prov.IsSupplyCenter {
			continue
		}
		if unit := bs.UnitAt(provID); unit != nil {
			if bs.SupplyCenters == nil {
				bs.SupplyCenters = make(map[string]Power)
			}
			bs.SupplyCenters[provID] = unit.Power
		}
	}
}
