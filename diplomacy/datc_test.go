package diplomacy

import "testing"

// DATC test cases (Diplomacy Adjudicator Test Cases).
// Reference: http://web.inter.nl.net/users/L.B.Kruijswijk/

// === 6.A: BASIC CHECKS ===

func TestDATC_6A1_MoveToNonAdjacentFails(t *testing.T) {
	m := StandardMap()
	bs := stateWith(Unit{Fleet, England, "nth", NoCoast})
	orders := []Order{
		{UnitType: Fleet, Power: England, Location: "nth", Type: OrderMove, Target: "pic"},
	}
	_, illegal := ValidateAndDefaultOrders(orders, bs, m)
	if len(illegal) == 0 {
		t.Error("fleet NTH -> Picardy should be illegal (not adjacent for a fleet)")
	}
}

func TestDATC_6A2_ArmyToSea(t *testing.T) {
	m := StandardMap()
	bs := stateWith(Unit{Army, England, "lvp", NoCoast})
	orders := []Order{
		{UnitType: Army, Power: England, Location: "lvp", Type: OrderMove, Target: "iri"},
	}
	_, illegal := ValidateAndDefaultOrders(orders, bs, m)
	if len(illegal) == 0 {
		t.Error("army move to sea should be illegal")
	}
}

func TestDATC_6A3_FleetToLand(t *testing.T) {
	m := StandardMap()
	bs := stateWith(Unit{Fleet, Germany, "kie", NoCoast})
	orders := []Order{
		{UnitType: Fleet, Power: Germany, Location: "kie", Type: OrderMove, Target: "mun"},
	}
	_, illegal := ValidateAndDefaultOrders(orders, bs, m)
	if len(illegal) == 0 {
		t.Error("fleet move to inland province should be illegal")
	}
}

func TestDATC_6A5_SelfSupportHoldIsIllegal(t *testing.T) {
	m := StandardMap()
	bs := stateWith(Unit{Army, Italy, "ven", NoCoast})
	order := Order{UnitType: Army, Power: Italy, Location: "ven", Type: OrderSupport, AuxLoc: "ven"}
	if err := ValidateOrder(order, bs, m); err == nil {
		t.Error("a unit supporting its own hold should be illegal")
	}
}

func TestDATC_6A6_MoveOntoOwnHoldingUnitBounces(t *testing.T) {
	m := StandardMap()
	bs := stateWith(
		Unit{Army, Germany, "ber", NoCoast},
		Unit{Fleet, Germany, "kie", NoCoast},
		Unit{Army, Germany, "mun", NoCoast},
	)
	orders := []Order{
		{UnitType: Army, Power: Germany, Location: "ber", Type: OrderSupport, AuxLoc: "kie", AuxTarget: "mun", AuxUnitType: Fleet},
		{UnitType: Fleet, Power: Germany, Location: "kie", Type: OrderMove, Target: "ber"},
		{UnitType: Army, Power: Germany, Location: "mun", Type: OrderMove, Target: "sil"},
	}
	d := mustResolve(t, orders, bs, m)
	if resultFor(d, "mun") != ResultSucceeded {
		t.Error("Munich -> Silesia should succeed (no opposition)")
	}
	if resultFor(d, "kie") != ResultBounced {
		t.Errorf("Kiel -> Berlin should bounce (Berlin's support of an unreachable move is illegal, so Berlin holds, and Kiel cannot dislodge its own power's unit), got %s", resultFor(d, "kie"))
	}
}

// === 6.B: COASTAL ISSUES ===

func TestDATC_6B1_FleetMoveToSplitCoastOneOption(t *testing.T) {
	m := StandardMap()
	bs := stateWith(Unit{Fleet, France, "gol", NoCoast})
	orders := []Order{
		{UnitType: Fleet, Power: France, Location: "gol", Type: OrderMove, Target: "spa"},
	}
	_, illegal := ValidateAndDefaultOrders(orders, bs, m)
	if len(illegal) > 0 {
		t.Error("fleet GoL -> Spain should be legal (only SC reachable)")
	}
}

func TestDATC_6B3_FleetWrongCoast(t *testing.T) {
	m := StandardMap()
	bs := stateWith(Unit{Fleet, France, "gol", NoCoast})
	orders := []Order{
		{UnitType: Fleet, Power: France, Location: "gol", Type: OrderMove, Target: "spa", TargetCoast: NorthCoast},
	}
	_, illegal := ValidateAndDefaultOrders(orders, bs, m)
	if len(illegal) == 0 {
		t.Error("fleet GoL -> Spain/nc should be illegal (nc not reachable)")
	}
}

// === 6.C: CIRCULAR MOVEMENT ===

func TestDATC_6C1_ThreeArmyCircularMovement(t *testing.T) {
	m := StandardMap()
	bs := stateWith(
		Unit{Army, Germany, "boh", NoCoast},
		Unit{Army, Germany, "mun", NoCoast},
		Unit{Army, Germany, "sil", NoCoast},
	)
	orders := []Order{
		{UnitType: Army, Power: Germany, Location: "boh", Type: OrderMove, Target: "mun"},
		{UnitType: Army, Power: Germany, Location: "mun", Type: OrderMove, Target: "sil"},
		{UnitType: Army, Power: Germany, Location: "sil", Type: OrderMove, Target: "boh"},
	}
	d := mustResolve(t, orders, bs, m)
	for _, loc := range []string{"boh", "mun", "sil"} {
		if resultFor(d, loc) != ResultSucceeded {
			t.Errorf("circular move from %s should succeed", loc)
		}
	}
}

func TestDATC_6C2_CircularMovementWithSupport(t *testing.T) {
	m := StandardMap()
	bs := stateWith(
		Unit{Army, Germany, "boh", NoCoast},
		Unit{Army, Germany, "mun", NoCoast},
		Unit{Army, Germany, "sil", NoCoast},
		Unit{Army, Germany, "tyr", NoCoast},
	)
	orders := []Order{
		{UnitType: Army, Power: Germany, Location: "boh", Type: OrderMove, Target: "mun"},
		{UnitType: Army, Power: Germany, Location: "mun", Type: OrderMove, Target: "sil"},
		{UnitType: Army, Power: Germany, Location: "sil", Type: OrderMove, Target: "boh"},
		{UnitType: Army, Power: Germany, Location: "tyr", Type: OrderSupport, AuxLoc: "boh", AuxTarget: "mun"},
	}
	d := mustResolve(t, orders, bs, m)
	for _, loc := range []string{"boh", "mun", "sil"} {
		if resultFor(d, loc) != ResultSucceeded {
			t.Errorf("supported circular move from %s should succeed", loc)
		}
	}
}

// === 6.D: SUPPORTS AND DISLODGES ===

func TestDATC_6D1_SupportedHold(t *testing.T) {
	m := StandardMap()
	bs := stateWith(
		Unit{Army, Austria, "bud", NoCoast},
		Unit{Army, Austria, "ser", NoCoast},
		Unit{Army, Russia, "rum", NoCoast},
	)
	orders := []Order{
		{UnitType: Army, Power: Austria, Location: "bud", Type: OrderHold},
		{UnitType: Army, Power: Austria, Location: "ser", Type: OrderSupport, AuxLoc: "bud"},
		{UnitType: Army, Power: Russia, Location: "rum", Type: OrderMove, Target: "bud"},
	}
	d := mustResolve(t, orders, bs, m)
	if resultFor(d, "rum") != ResultBounced {
		t.Error("Russian move to Budapest should bounce (1 vs 2)")
	}
	if resultFor(d, "bud") != ResultSucceeded {
		t.Error("Austrian hold in Budapest should succeed")
	}
}

func TestDATC_6D2_MoveCutsSupportOnHold(t *testing.T) {
	m := StandardMap()
	bs := stateWith(
		Unit{Army, Austria, "bud", NoCoast},
		Unit{Army, Austria, "ser", NoCoast},
		Unit{Army, Russia, "rum", NoCoast},
		Unit{Army, Russia, "bul", NoCoast},
	)
	orders := []Order{
		{UnitType: Army, Power: Austria, Location: "bud", Type: OrderHold},
		{UnitType: Army, Power: Austria, Location: "ser", Type: OrderSupport, AuxLoc: "bud"},
		{UnitType: Army, Power: Russia, Location: "rum", Type: OrderMove, Target: "bud"},
		{UnitType: Army, Power: Russia, Location: "bul", Type: OrderMove, Target: "ser"},
	}
	d := mustResolve(t, orders, bs, m)
	if resultFor(d, "ser") != ResultCut {
		t.Error("Serbia's support should be cut by Bulgaria's attack")
	}
	if resultFor(d, "rum") != ResultBounced {
		t.Error("Rum -> Bud should bounce (1 vs 1) once support is cut")
	}
	found := false
	for _, s := range d.CutSupports {
		if s.Location == "ser" {
			found = true
		}
	}
	if !found {
		t.Error("Serbia's support should be reported in CutSupports")
	}
}

func TestDATC_6D3_MoveCutsSupportOnMove(t *testing.T) {
	m := StandardMap()
	bs := stateWith(
		Unit{Army, Austria, "ser", NoCoast},
		Unit{Army, Austria, "bud", NoCoast},
		Unit{Army, Russia, "rum", NoCoast},
		Unit{Army, Turkey, "bul", NoCoast},
	)
	orders := []Order{
		{UnitType: Army, Power: Austria, Location: "ser", Type: OrderSupport, AuxLoc: "bud", AuxTarget: "rum"},
		{UnitType: Army, Power: Austria, Location: "bud", Type: OrderMove, Target: "rum"},
		{UnitType: Army, Power: Russia, Location: "rum", Type: OrderHold},
		{UnitType: Army, Power: Turkey, Location: "bul", Type: OrderMove, Target: "ser"},
	}
	d := mustResolve(t, orders, bs, m)
	if resultFor(d, "ser") != ResultCut {
		t.Errorf("Serbia's support should be cut, got %s", resultFor(d, "ser"))
	}
	if resultFor(d, "bud") != ResultBounced {
		t.Errorf("Bud -> Rum should bounce after support cut, got %s", resultFor(d, "bud"))
	}
}

func TestDATC_6D4_SupportToHoldOnUnitSupportingHold(t *testing.T) {
	m := StandardMap()
	bs := stateWith(
		Unit{Army, Germany, "ber", NoCoast},
		Unit{Fleet, Germany, "kie", NoCoast},
		Unit{Army, Russia, "pru", NoCoast},
	)
	orders := []Order{
		{UnitType: Army, Power: Germany, Location: "ber", Type: OrderSupport, AuxLoc: "kie", AuxUnitType: Fleet},
		{UnitType: Fleet, Power: Germany, Location: "kie", Type: OrderSupport, AuxLoc: "ber"},
		{UnitType: Army, Power: Russia, Location: "pru", Type: OrderMove, Target: "ber"},
	}
	d := mustResolve(t, orders, bs, m)
	if resultFor(d, "pru") != ResultBounced {
		t.Error("Russian attack on Berlin should bounce (1 vs 2)")
	}
}

func TestDATC_6D7_SupportCantBeCutByTarget(t *testing.T) {
	m := StandardMap()
	bs := stateWith(
		Unit{Army, Germany, "mun", NoCoast},
		Unit{Army, Germany, "sil", NoCoast},
		Unit{Army, Russia, "war", NoCoast},
		Unit{Army, Austria, "boh", NoCoast},
	)
	orders := []Order{
		{UnitType: Army, Power: Germany, Location: "mun", Type: OrderSupport, AuxLoc: "sil", AuxTarget: "boh"},
		{UnitType: Army, Power: Germany, Location: "sil", Type: OrderMove, Target: "boh"},
		{UnitType: Army, Power: Russia, Location: "war", Type: OrderMove, Target: "sil"},
		{UnitType: Army, Power: Austria, Location: "boh", Type: OrderMove, Target: "mun"},
	}
	d := mustResolve(t, orders, bs, m)
	if resultFor(d, "sil") != ResultSucceeded {
		t.Errorf("Silesia -> Bohemia should succeed (support can't be cut by the target), got %s", resultFor(d, "sil"))
	}
}

// === 6.E: HEAD-TO-HEAD BATTLES ===

func TestDATC_6E1_NoSwapWithoutConvoy(t *testing.T) {
	m := StandardMap()
	bs := stateWith(
		Unit{Army, Italy, "rom", NoCoast},
		Unit{Army, Italy, "ven", NoCoast},
	)
	orders := []Order{
		{UnitType: Army, Power: Italy, Location: "rom", Type: OrderMove, Target: "ven"},
		{UnitType: Army, Power: Italy, Location: "ven", Type: OrderMove, Target: "rom"},
	}
	d := mustResolve(t, orders, bs, m)
	if resultFor(d, "rom") != ResultBounced || resultFor(d, "ven") != ResultBounced {
		t.Error("head-to-head swap without a convoy should bounce both")
	}
}

func TestDATC_6E2_SupportedHeadToHead(t *testing.T) {
	m := StandardMap()
	bs := stateWith(
		Unit{Army, Austria, "tri", NoCoast},
		Unit{Army, Austria, "tyr", NoCoast},
		Unit{Army, Italy, "ven", NoCoast},
	)
	orders := []Order{
		{UnitType: Army, Power: Austria, Location: "tri", Type: OrderSupport, AuxLoc: "tyr", AuxTarget: "ven"},
		{UnitType: Army, Power: Austria, Location: "tyr", Type: OrderMove, Target: "ven"},
		{UnitType: Army, Power: Italy, Location: "ven", Type: OrderMove, Target: "tyr"},
	}
	d := mustResolve(t, orders, bs, m)
	if resultFor(d, "tyr") != ResultSucceeded {
		t.Errorf("Tyr -> Ven should succeed with support in head-to-head, got %s", resultFor(d, "tyr"))
	}
	if resultFor(d, "ven") != ResultDislodged {
		t.Errorf("Venice should be dislodged, got %s", resultFor(d, "ven"))
	}
}

func TestDATC_6E6_BeleagueredGarrison(t *testing.T) {
	m := StandardMap()
	bs := stateWith(
		Unit{Army, Germany, "mun", NoCoast},
		Unit{Army, France, "bur", NoCoast},
		Unit{Army, Italy, "tyr", NoCoast},
	)
	orders := []Order{
		{UnitType: Army, Power: Germany, Location: "mun", Type: OrderHold},
		{UnitType: Army, Power: France, Location: "bur", Type: OrderMove, Target: "mun"},
		{UnitType: Army, Power: Italy, Location: "tyr", Type: OrderMove, Target: "mun"},
	}
	d := mustResolve(t, orders, bs, m)
	if resultFor(d, "mun") != ResultSucceeded {
		t.Error("Munich hold should survive a beleaguered garrison")
	}
	if resultFor(d, "bur") != ResultBounced || resultFor(d, "tyr") != ResultBounced {
		t.Error("both attackers on Munich should bounce")
	}
}

// === 6.F: CONVOYS ===

func TestDATC_6F1_SimpleConvoy(t *testing.T) {
	m := StandardMap()
	bs := stateWith(
		Unit{Army, England, "lon", NoCoast},
		Unit{Fleet, England, "nth", NoCoast},
	)
	orders := []Order{
		{UnitType: Army, Power: England, Location: "lon", Type: OrderMove, Target: "nwy", ViaConvoy: true},
		{UnitType: Fleet, Power: England, Location: "nth", Type: OrderConvoy, AuxLoc: "lon", AuxTarget: "nwy"},
	}
	d := mustResolve(t, orders, bs, m)
	if resultFor(d, "lon") != ResultSucceeded {
		t.Errorf("convoyed army London -> Norway should succeed, got %s", resultFor(d, "lon"))
	}
}

func TestDATC_6F2_DisruptedConvoy(t *testing.T) {
	m := StandardMap()
	bs := stateWith(
		Unit{Army, England, "lon", NoCoast},
		Unit{Fleet, England, "nth", NoCoast},
		Unit{Fleet, France, "eng", NoCoast},
		Unit{Fleet, France, "bel", NoCoast},
	)
	orders := []Order{
		{UnitType: Army, Power: England, Location: "lon", Type: OrderMove, Target: "nwy", ViaConvoy: true},
		{UnitType: Fleet, Power: England, Location: "nth", Type: OrderConvoy, AuxLoc: "lon", AuxTarget: "nwy"},
		{UnitType: Fleet, Power: France, Location: "eng", Type: OrderMove, Target: "nth"},
		{UnitType: Fleet, Power: France, Location: "bel", Type: OrderSupport, AuxLoc: "eng", AuxTarget: "nth"},
	}
	d := mustResolve(t, orders, bs, m)
	if resultFor(d, "nth") != ResultDislodged {
		t.Errorf("NTH fleet should be dislodged, got %s", resultFor(d, "nth"))
	}
	if resultFor(d, "lon") != ResultBounced {
		t.Errorf("London's convoyed move should fail once its fleet is dislodged, got %s", resultFor(d, "lon"))
	}
}

// TestSupportSuppressedByFriendlyFireAlsoSuppressesStrength guards against
// the strength arithmetic and classifySupports disagreeing about a support
// order that would dislodge a unit of the supporter's own power: Berlin
// cannot lend France's attack on Munich the strength to dislodge Germany's
// own army there.
func TestSupportSuppressedByFriendlyFireAlsoSuppressesStrength(t *testing.T) {
	m := StandardMap()
	bs := stateWith(
		Unit{Army, Germany, "mun", NoCoast},
		Unit{Army, Germany, "ber", NoCoast},
		Unit{Army, France, "ruh", NoCoast},
	)
	orders := []Order{
		{UnitType: Army, Power: Germany, Location: "mun", Type: OrderHold},
		{UnitType: Army, Power: Germany, Location: "ber", Type: OrderSupport, AuxLoc: "ruh", AuxTarget: "mun"},
		{UnitType: Army, Power: France, Location: "ruh", Type: OrderMove, Target: "mun"},
	}
	d := mustResolve(t, orders, bs, m)
	if resultFor(d, "mun") != ResultSucceeded {
		t.Errorf("Germany's hold in Munich should survive, got %s", resultFor(d, "mun"))
	}
	if resultFor(d, "ruh") != ResultBounced {
		t.Errorf("France's move to Munich should bounce once Berlin's support is suppressed, got %s", resultFor(d, "ruh"))
	}
	found := false
	for _, s := range d.InvalidSupports {
		if s.Location == "ber" {
			found = true
		}
	}
	if !found {
		t.Error("Berlin's support should be reported in InvalidSupports")
	}
}

// TestViaConvoyRequiresRouteEvenWhenOverlandExists exercises the frozen
// decision that an explicit convoy announcement is binding: an army with
// both an overland path and a convoy route must actually have the convoy
// order in place, or the move is illegal outright.
func TestViaConvoyRequiresRouteEvenWhenOverlandExists(t *testing.T) {
	m := StandardMap()
	bs := stateWith(Unit{Army, France, "pic", NoCoast})
	order := Order{UnitType: Army, Power: France, Location: "pic", Type: OrderMove, Target: "bre", ViaConvoy: true}
	if err := ValidateOrder(order, bs, m); err == nil {
		t.Error("via-convoy move with no convoying fleet should be illegal even though Pic-Bre is adjacent overland")
	}
}
