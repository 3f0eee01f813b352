package diplomacy

import "sort"

// Resolution state constants for the Kruijswijk algorithm.
type resolutionState int

const (
	rsUnresolved resolutionState = iota
	rsGuessing
	rsResolved
)

// adjResult tracks the resolution of a single order in the dependency graph.
type adjResult struct {
	order        Order
	state        resolutionState
	resolution   bool // true = succeeds, false = fails
	guessUsed    bool // another order relied on this order's guess while it was unresolved
	provIdx      int16
	targetIdx    int16
	auxLocIdx    int16
	auxTargetIdx int16
}

// ResolveOrders adjudicates a set of validated movement orders against the
// board. orders must already have passed ValidateAndDefaultOrders — this
// function assumes well-formedness and focuses purely on interdependent
// strength arithmetic. The returned Diagnostics never populates
// IllegalOrders; callers that start from unvalidated orders should use
// ResolveMovement instead.
func ResolveOrders(orders []Order, bs *BoardState, m *Map) *Diagnostics {
	r := newResolver(orders, bs, m)
	results, dislodged := r.resolve()
	invalid, cut := r.classifySupports()
	contested := r.contestedProvinces()

	for i := range dislodged {
		dislodged[i].ContestedProvinces = contested
	}

	return &Diagnostics{
		Results:         results,
		InvalidSupports: invalid,
		CutSupports:     cut,
		Dislodged:       dislodged,
		Contested:       contested,
		GuessCount:      r.guessCount,
	}
}

// ResolveMovement is the single-call entry point for a movement phase: it
// validates the raw submitted orders, defaulting illegal ones to Hold, then
// resolves the legal set and reports every illegal order alongside the rest
// of the diagnostics.
func ResolveMovement(orders []Order, bs *BoardState, m *Map) *Diagnostics {
	valid, illegal := ValidateAndDefaultOrders(orders, bs, m)
	d := ResolveOrders(valid, bs, m)
	d.IllegalOrders = illegal
	return d
}

type resolver struct {
	lookup     [ProvinceCount]int16 // province index -> adjBuf offset (-1 = no order)
	adjBuf     []adjResult          // dense storage for iteration
	orderList  []Order
	bs         *BoardState
	m          *Map
	guessCount int // number of cyclic dependencies the resolver had to back off and re-guess
}

// orderAt returns the adjResult for the given province index, or nil if no order exists.
func (r *resolver) orderAt(provIdx int16) *adjResult {
	if provIdx < 0 {
		return nil
	}
	idx := r.lookup[provIdx]
	if idx < 0 {
		return nil
	}
	return &r.adjBuf[idx]
}

// orderAtLoc returns the adjResult for the given province string, or nil if no order exists.
func (r *resolver) orderAtLoc(loc string) *adjResult {
	return r.orderAt(int16(r.m.ProvinceIndex(loc)))
}

// initLookup populates the lookup array and adjBuf province indices from the order list.
func (r *resolver) initLookup() {
	for i := range r.lookup {
		r.lookup[i] = -1
	}
	for i, o := range r.orderList {
		pIdx := int16(r.m.ProvinceIndex(o.Location))
		tIdx := int16(-1)
		if o.Target != "" {
			tIdx = int16(r.m.ProvinceIndex(o.Target))
		}
		aLIdx := int16(-1)
		if o.AuxLoc != "" {
			aLIdx = int16(r.m.ProvinceIndex(o.AuxLoc))
		}
		aTIdx := int16(-1)
		if o.AuxTarget != "" {
			aTIdx = int16(r.m.ProvinceIndex(o.AuxTarget))
		}
		r.adjBuf[i] = adjResult{
			order:        o,
			provIdx:      pIdx,
			targetIdx:    tIdx,
			auxLocIdx:    aLIdx,
			auxTargetIdx: aTIdx,
		}
		if pIdx >= 0 {
			r.lookup[pIdx] = int16(i)
		}
	}
}

func newResolver(orders []Order, bs *BoardState, m *Map) *resolver {
	r := &resolver{
		adjBuf:    make([]adjResult, len(orders)),
		orderList: orders,
		bs:        bs,
		m:         m,
	}
	r.initLookup()
	return r
}

func (r *resolver) resolve() ([]ResolvedOrder, []DislodgedUnit) {
	for i := range r.adjBuf {
		r.adjudicate(r.adjBuf[i].provIdx)
	}
	return r.buildResults()
}

// adjudicate resolves the order at the given province index.
// Uses the Kruijswijk approach: when encountering a cycle, guess a
// resolution, check consistency, back off if inconsistent.
func (r *resolver) adjudicate(provIdx int16) bool {
	ar := r.orderAt(provIdx)
	if ar == nil {
		return false
	}

	switch ar.state {
	case rsResolved:
		return ar.resolution
	case rsGuessing:
		ar.guessUsed = true
		return ar.resolution
	}

	// Mark as guessing with initial guess = succeeds.
	ar.state = rsGuessing
	ar.resolution = true

	result := r.resolveOrder(provIdx)

	if ar.guessUsed && result != ar.resolution {
		r.guessCount++
		ar.resolution = result
		result = r.resolveOrder(provIdx)
	}

	ar.state = rsResolved
	ar.resolution = result
	return result
}

func (r *resolver) resolveOrder(provIdx int16) bool {
	ar := r.orderAt(provIdx)
	switch ar.order.Type {
	case OrderHold:
		return true
	case OrderMove:
		return r.resolveMove(provIdx)
	case OrderSupport:
		return r.resolveSupport(provIdx)
	case OrderConvoy:
		return r.resolveConvoy(provIdx)
	default:
		return false
	}
}

// resolveMove determines if a move order succeeds.
func (r *resolver) resolveMove(provIdx int16) bool {
	ar := r.orderAt(provIdx)

	if r.needsConvoy(ar.order) && !r.hasConvoyPath(ar.order) {
		return false
	}

	attackStr := r.attackStrength(provIdx)
	holdStr := r.holdStrength(ar.targetIdx)

	if attackStr <= holdStr {
		return false
	}

	// Head-to-head battle: if the defender is moving to our province,
	// our attack must also exceed the defender's attack strength.
	defender := r.orderAt(ar.targetIdx)
	if defender != nil && defender.order.Type == OrderMove && defender.targetIdx == provIdx &&
		!r.needsConvoy(defender.order) {
		defendAttack := r.attackStrength(ar.targetIdx)
		if attackStr <= defendAttack {
			return false
		}
	}

	// Attack must exceed all other prevent strengths at the target.
	for i := range r.adjBuf {
		other := &r.adjBuf[i]
		if other.provIdx == provIdx {
			continue
		}
		if other.order.Type == OrderMove && other.targetIdx == ar.targetIdx {
			preventStr := r.preventStrength(other.provIdx)
			if attackStr <= preventStr {
				return false
			}
		}
	}

	return true
}

// resolveSupport determines if support is successfully given (not cut).
// This governs strength only; whether the support actually matches a real
// order is decided separately in classifySupports.
func (r *resolver) resolveSupport(provIdx int16) bool {
	ar := r.orderAt(provIdx)

	for i := range r.adjBuf {
		other := &r.adjBuf[i]
		if other.order.Type != OrderMove {
			continue
		}
		if other.targetIdx != provIdx {
			continue
		}

		// Support cannot be cut by the unit being supported against.
		if ar.auxTargetIdx >= 0 && other.provIdx == ar.auxTargetIdx {
			continue
		}

		// Support cannot be cut by a unit of the same power.
		if other.order.Power == ar.order.Power {
			continue
		}

		// For a convoyed attack, the convoy must succeed for the support to be cut.
		if r.needsConvoy(other.order) && !r.adjudicate(other.provIdx) {
			continue
		}

		return false
	}

	return true
}

// resolveConvoy determines if a convoy order succeeds.
func (r *resolver) resolveConvoy(provIdx int16) bool {
	for i := range r.adjBuf {
		other := &r.adjBuf[i]
		if other.order.Type == OrderMove && other.targetIdx == provIdx {
			if r.adjudicate(other.provIdx) {
				return false
			}
		}
	}
	return true
}

// attackStrength computes the attack strength of a move order.
func (r *resolver) attackStrength(provIdx int16) int {
	ar := r.orderAt(provIdx)
	if ar.order.Type != OrderMove {
		return 0
	}

	strength := 1

	// A unit cannot attack a province occupied by a unit of the same power
	// unless the occupying unit is moving away.
	occupier := r.bs.UnitAt(ar.order.Target)
	if occupier != nil && occupier.Power == ar.order.Power {
		occOrder := r.orderAt(ar.targetIdx)
		if occOrder == nil || occOrder.order.Type != OrderMove {
			return 0
		}
		if occOrder.targetIdx == provIdx {
			return 0
		}
	}

	for i := range r.adjBuf {
		other := &r.adjBuf[i]
		if !r.supportApplies(other, provIdx, ar.targetIdx) {
			continue
		}
		if r.adjudicate(other.provIdx) {
			strength++
		}
	}

	return strength
}

// holdStrength computes the hold strength of a province.
func (r *resolver) holdStrength(provIdx int16) int {
	ar := r.orderAt(provIdx)
	if ar == nil {
		return 0
	}

	if ar.order.Type == OrderMove {
		if r.adjudicate(provIdx) {
			return 0
		}
		return 1
	}

	strength := 1
	for i := range r.adjBuf {
		other := &r.adjBuf[i]
		if !r.supportApplies(other, provIdx, -1) {
			continue
		}
		if r.adjudicate(other.provIdx) {
			strength++
		}
	}
	return strength
}

// preventStrength computes the prevent strength of a move order.
func (r *resolver) preventStrength(provIdx int16) int {
	ar := r.orderAt(provIdx)
	if ar.order.Type != OrderMove {
		return 0
	}

	defender := r.orderAt(ar.targetIdx)
	if defender != nil && defender.order.Type == OrderMove && defender.targetIdx == provIdx {
		if !r.adjudicate(provIdx) {
			return 0
		}
	}

	strength := 1
	for i := range r.adjBuf {
		other := &r.adjBuf[i]
		if !r.supportApplies(other, provIdx, ar.targetIdx) {
			continue
		}
		if r.adjudicate(other.provIdx) {
			strength++
		}
	}
	return strength
}

// supportApplies reports whether the order at other is a Support order that
// genuinely backs the order at provIdx -> target (target == -1 for a
// support-hold). This is the one place that encodes "a support order only
// counts toward strength when the unit it names actually gave the order it
// claims to back" for the strength arithmetic; classifySupports applies the
// same rule with its own check to flag a support as invalid rather than cut.
func (r *resolver) supportApplies(other *adjResult, provIdx, target int16) bool {
	if other.order.Type != OrderSupport {
		return false
	}
	if other.auxLocIdx != provIdx {
		return false
	}
	if other.auxTargetIdx != target {
		return false
	}
	if target >= 0 && r.supportSuppressedByFriendlyFire(other) {
		return false
	}
	return true
}

// supportSuppressedByFriendlyFire reports whether a support order backing a
// move into other.order.AuxTarget is suppressed because a unit of the
// supporter's own power occupies that province and isn't successfully
// vacating it this turn. A unit may not support the dislodgement of a unit
// of its own power.
func (r *resolver) supportSuppressedByFriendlyFire(other *adjResult) bool {
	occupier := r.bs.UnitAt(other.order.AuxTarget)
	if occupier == nil || occupier.Power != other.order.Power {
		return false
	}
	occOrder := r.orderAtLoc(other.order.AuxTarget)
	if occOrder == nil || occOrder.order.Type != OrderMove {
		return true
	}
	return !r.adjudicate(occOrder.provIdx)
}

// needsConvoy returns true if the move requires a convoy chain: either the
// order explicitly announced one, or the unit has no overland route.
func (r *resolver) needsConvoy(order Order) bool {
	if order.Type != OrderMove || order.UnitType != Army {
		return false
	}
	if order.ViaConvoy {
		return true
	}
	return !r.m.Adjacent(order.Location, order.Coast, order.Target, NoCoast, false)
}

// hasConvoyPath checks if there's a successful convoy chain for the given move.
func (r *resolver) hasConvoyPath(order Order) bool {
	srcIdx := int16(r.m.ProvinceIndex(order.Location))
	tgtIdx := int16(r.m.ProvinceIndex(order.Target))

	visited := make(map[int16]bool)
	var queue []int16

	for i := range r.adjBuf {
		ar := &r.adjBuf[i]
		if ar.order.Type != OrderConvoy {
			continue
		}
		if ar.auxLocIdx != srcIdx || ar.auxTargetIdx != tgtIdx {
			continue
		}
		prov := r.m.Provinces[ar.order.Location]
		if prov == nil || prov.Type != Sea {
			continue
		}
		if r.m.Adjacent(order.Location, NoCoast, ar.order.Location, NoCoast, true) {
			if r.adjudicate(ar.provIdx) {
				visited[ar.provIdx] = true
				queue = append(queue, ar.provIdx)
			}
		}
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		currentAr := r.orderAt(current)
		if r.m.Adjacent(currentAr.order.Location, NoCoast, order.Target, NoCoast, true) {
			return true
		}

		for i := range r.adjBuf {
			ar := &r.adjBuf[i]
			if visited[ar.provIdx] {
				continue
			}
			if ar.order.Type != OrderConvoy {
				continue
			}
			if ar.auxLocIdx != srcIdx || ar.auxTargetIdx != tgtIdx {
				continue
			}
			prov := r.m.Provinces[ar.order.Location]
			if prov == nil || prov.Type != Sea {
				continue
			}
			if r.m.Adjacent(currentAr.order.Location, NoCoast, ar.order.Location, NoCoast, true) {
				if r.adjudicate(ar.provIdx) {
					visited[ar.provIdx] = true
					queue = append(queue, ar.provIdx)
				}
			}
		}
	}

	return false
}

// buildResults converts internal adjudication state to the external result format.
func (r *resolver) buildResults() ([]ResolvedOrder, []DislodgedUnit) {
	var results []ResolvedOrder
	var dislodged []DislodgedUnit

	successfulMoves := make(map[string]string)
	for i := range r.adjBuf {
		ar := &r.adjBuf[i]
		if ar.order.Type == OrderMove && ar.resolution {
			successfulMoves[ar.order.Target] = ar.order.Location
		}
	}

	for _, o := range r.orderList {
		ar := r.orderAtLoc(o.Location)
		if ar == nil {
			continue
		}

		result := ResultSucceeded

		switch o.Type {
		case OrderMove:
			if !ar.resolution {
				result = ResultBounced
			}
		case OrderSupport:
			if !ar.resolution {
				result = ResultCut
			}
		case OrderConvoy:
			if !ar.resolution {
				result = ResultFailed
			}
		case OrderHold:
		}

		if attacker, ok := successfulMoves[o.Location]; ok {
			if o.Type != OrderMove || !ar.resolution {
				result = ResultDislodged
				dislodged = append(dislodged, DislodgedUnit{
					Unit: Unit{
						Type:     o.UnitType,
						Power:    o.Power,
						Province: o.Location,
						Coast:    o.Coast,
					},
					DislodgedFrom:   o.Location,
					DislodgerOrigin: attacker,
				})
			}
		}

		results = append(results, ResolvedOrder{Order: o, Result: result})
	}

	return results, dislodged
}

// classifySupports separates every support order into invalid (never
// applied because it did not match the supported unit's real order, or
// because it would have helped dislodge a unit of the supporter's own
// power) and
// cut (applied, but severed by an attack on the supporter).
func (r *resolver) classifySupports() (invalid, cut []Order) {
	for i := range r.adjBuf {
		ar := &r.adjBuf[i]
		if ar.order.Type != OrderSupport {
			continue
		}

		supported := r.orderAt(ar.auxLocIdx)
		applies := supported != nil
		if applies {
			if ar.auxTargetIdx < 0 {
				applies = supported.order.Type != OrderMove
			} else {
				applies = supported.order.Type == OrderMove && supported.targetIdx == ar.auxTargetIdx
			}
		}

		if applies && ar.auxTargetIdx >= 0 && r.supportSuppressedByFriendlyFire(ar) {
			applies = false
		}

		switch {
		case !applies:
			invalid = append(invalid, ar.order)
		case !ar.resolution:
			cut = append(cut, ar.order)
		}
	}
	return invalid, cut
}

// contestedProvinces returns, sorted by province ID, every province that
// saw a standoff this phase: two or more move orders targeting it tied for
// the highest attack strength, so none succeeded.
func (r *resolver) contestedProvinces() []string {
	best := make(map[int16]int)
	tied := make(map[int16]int)

	for i := range r.adjBuf {
		ar := &r.adjBuf[i]
		if ar.order.Type != OrderMove {
			continue
		}
		str := r.attackStrength(ar.provIdx)
		switch {
		case str > best[ar.targetIdx]:
			best[ar.targetIdx] = str
			tied[ar.targetIdx] = 1
		case str == best[ar.targetIdx]:
			tied[ar.targetIdx]++
		}
	}

	var contested []string
	for idx, count := range tied {
		if count < 2 {
			continue
		}
		if name := r.m.ProvinceName(int(idx)); name != "" {
			contested = append(contested, name)
		}
	}
	sort.Strings(contested)
	return contested
}

// applyUnitKey identifies a unit by power and province for resolution application.
type applyUnitKey struct {
	power    Power
	province string
}

// applyMoveEntry stores the result of a successful move for batch application.
type applyMoveEntry struct {
	target      string
	targetCoast Coast
	clearCoast  bool
}

// ApplyResolution updates the board state based on resolved orders: moves
// successful units and removes dislodged units from the board, leaving
// them recorded in bs.Dislodged for the retreat phase.
func ApplyResolution(bs *BoardState, m *Map, d *Diagnostics) {
	dislodgedSet := make(map[applyUnitKey]bool)
	for _, dl := range d.Dislodged {
		dislodgedSet[applyUnitKey{dl.Unit.Power, dl.DislodgedFrom}] = true
	}

	moves := make(map[applyUnitKey]applyMoveEntry)
	for _, ro := range d.Results {
		if ro.Order.Type == OrderMove && ro.Result == ResultSucceeded {
			clearCoast := ro.Order.TargetCoast == NoCoast && !m.HasCoasts(ro.Order.Target)
			moves[applyUnitKey{ro.Order.Power, ro.Order.Location}] = applyMoveEntry{
				target:      ro.Order.Target,
				targetCoast: ro.Order.TargetCoast,
				clearCoast:  clearCoast,
			}
		}
	}
	applyMoves(bs, moves, dislodgedSet, d.Dislodged)
}

// applyMoves applies move updates and removes dislodged units from the board state.
func applyMoves(bs *BoardState, moves map[applyUnitKey]applyMoveEntry, dislodgedSet map[applyUnitKey]bool, dislodged []DislodgedUnit) {
	for i := range bs.Units {
		key := applyUnitKey{bs.Units[i].Power, bs.Units[i].Province}
		if mu, ok := moves[key]; ok {
			bs.Units[i].Province = mu.target
			if mu.targetCoast != NoCoast {
				bs.Units[i].Coast = mu.targetCoast
			} else if mu.clearCoast {
				bs.Units[i].Coast = NoCoast
			}
		}
	}

	remaining := bs.Units[:0]
	for _, u := range bs.Units {
		if !dislodgedSet[applyUnitKey{u.Power, u.Province}] {
			remaining = append(remaining, u)
		}
	}
	bs.Units = remaining
	bs.Dislodged = dislodged
}
