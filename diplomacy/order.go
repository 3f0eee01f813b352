package diplomacy

import "fmt"

// OrderType is the tag of a movement-phase order.
type OrderType int

const (
	OrderHold    OrderType = iota // unit holds position
	OrderMove                     // unit moves to an adjacent (or convoyed) province
	OrderSupport                  // unit supports another unit's hold or move
	OrderConvoy                   // fleet convoys an army across sea
)

func (o OrderType) String() string {
	switch o {
	case OrderHold:
		return "hold"
	case OrderMove:
		return "move"
	case OrderSupport:
		return "support"
	case OrderConvoy:
		return "convoy"
	default:
		return "unknown"
	}
}

// Order is a single movement-phase order, addressed by the ordered unit's
// current location, never by a cross-turn ID.
type Order struct {
	// The unit being ordered.
	UnitType UnitType
	Power    Power
	Location string
	Coast    Coast // coast of the ordered unit, fleets on split coasts only

	Type OrderType

	// Target province (Move, SupportMove, Convoy destination).
	Target      string
	TargetCoast Coast

	// ViaConvoy is set on a Move order to explicitly announce a convoy
	// route. When true, the move is legal only through a resolved convoy
	// chain even if an overland adjacency also exists.
	ViaConvoy bool

	// Aux fields for Support and Convoy orders:
	//   Support: AuxLoc is the supported unit's province; AuxTarget is its
	//            move destination (empty for a support-hold).
	//   Convoy:  AuxLoc is the convoyed army's province; AuxTarget is its
	//            destination.
	AuxLoc      string
	AuxTarget   string
	AuxUnitType UnitType
	AuxCoast    Coast
}

// OrderResult classifies the outcome of one adjudicated order, drawn from a
// closed vocabulary meant for direct user-visible diagnostics.
type OrderResult int

const (
	ResultSucceeded OrderResult = iota // order carried out
	ResultBounced                      // move failed for lack of strength
	ResultDislodged                    // unit was forced off the board
	ResultCut                          // support order was cut
	ResultFailed                       // convoy failed (route disrupted)
	ResultVoid                         // order was illegal, treated as Hold
)

func (r OrderResult) String() string {
	switch r {
	case ResultSucceeded:
		return "succeeded"
	case ResultBounced:
		return "bounced"
	case ResultDislodged:
		return "dislodged"
	case ResultCut:
		return "cut"
	case ResultFailed:
		return "failed"
	case ResultVoid:
		return "void"
	default:
		return "unknown"
	}
}

// ResolvedOrder pairs a submitted order with its adjudication result.
type ResolvedOrder struct {
	Order  Order
	Result OrderResult
}

// Outcome renders the order's result using a closed vocabulary of
// human-readable strings:
//
//	"Successfully moved to X", "Bounced from X", "Held position",
//	"Dislodged from X by Y"
//
// dislodgerOrigin is only meaningful when Result == ResultDislodged.
func (ro ResolvedOrder) Outcome(dislodgerOrigin string) string {
	switch ro.Order.Type {
	case OrderMove:
		switch ro.Result {
		case ResultSucceeded:
			return fmt.Sprintf("Successfully moved to %s", ro.Order.Target)
		case ResultDislodged:
			return fmt.Sprintf("Dislodged from %s by %s", ro.Order.Location, dislodgerOrigin)
		default:
			return fmt.Sprintf("Bounced from %s", ro.Order.Target)
		}
	default:
		if ro.Result == ResultDislodged {
			return fmt.Sprintf("Dislodged from %s by %s", ro.Order.Location, dislodgerOrigin)
		}
		return "Held position"
	}
}

// Describe renders the order using standard Diplomacy order notation,
// e.g. "A par - bur", "F bre S A gas - spa", "F eng C A lon - bel".
func (o *Order) Describe() string {
	unitStr := "A"
	if o.UnitType == Fleet {
		unitStr = "F"
	}
	loc := o.Location
	if o.Coast != NoCoast {
		loc += "/" + string(o.Coast)
	}

	switch o.Type {
	case OrderHold:
		return fmt.Sprintf("%s %s H", unitStr, loc)
	case OrderMove:
		target := o.Target
		if o.TargetCoast != NoCoast {
			target += "/" + string(o.TargetCoast)
		}
		via := ""
		if o.ViaConvoy {
			via = " via convoy"
		}
		return fmt.Sprintf("%s %s - %s%s", unitStr, loc, target, via)
	case OrderSupport:
		auxUnit := "A"
		if o.AuxUnitType == Fleet {
			auxUnit = "F"
		}
		if o.AuxTarget == "" {
			return fmt.Sprintf("%s %s S %s %s H", unitStr, loc, auxUnit, o.AuxLoc)
		}
		return fmt.Sprintf("%s %s S %s %s - %s", unitStr, loc, auxUnit, o.AuxLoc, o.AuxTarget)
	case OrderConvoy:
		return fmt.Sprintf("%s %s C A %s - %s", unitStr, loc, o.AuxLoc, o.AuxTarget)
	default:
		return fmt.Sprintf("%s %s ???", unitStr, loc)
	}
}

// RetreatOrderType is the tag of a retreat-phase order.
type RetreatOrderType int

const (
	RetreatMove    RetreatOrderType = iota // retreat to an adjacent vacant province
	RetreatDisband                         // the dislodged unit is disbanded
)

// RetreatOrder is an order given for one dislodged unit.
type RetreatOrder struct {
	UnitType    UnitType
	Power       Power
	Location    string // province the unit was dislodged from
	Coast       Coast
	Type        RetreatOrderType
	Target      string
	TargetCoast Coast // required when Target is a split-coast province; an ambiguous retreat is rejected rather than auto-resolved
}

// RetreatResult describes the outcome of one retreat order.
type RetreatResult struct {
	Order  RetreatOrder
	Result OrderResult
}

// BuildOrderType is the tag of a winter adjustment order.
type BuildOrderType int

const (
	BuildUnit   BuildOrderType = iota // build a new unit
	DisbandUnit                       // disband an existing unit
	WaiveBuild                        // voluntarily skip an available build
)

// BuildOrder is a single winter build/disband/waive order.
type BuildOrder struct {
	Power    Power
	Type     BuildOrderType
	UnitType UnitType
	Location string
	Coast    Coast
}

// BuildResult describes the outcome of one build order.
type BuildResult struct {
	Order  BuildOrder
	Result OrderResult
}
