package orders

import (
	"testing"

	"github.com/freeeve/diplomacy-core/diplomacy"
)

func testBoard() *diplomacy.BoardState {
	return &diplomacy.BoardState{
		Year:   1901,
		Season: diplomacy.SeasonSpring,
		Units: []diplomacy.Unit{
			{Type: diplomacy.Army, Power: diplomacy.France, Province: "par"},
			{Type: diplomacy.Army, Power: diplomacy.Germany, Province: "bur"},
			{Type: diplomacy.Fleet, Power: diplomacy.France, Province: "bre"},
		},
		SupplyCenters: map[string]diplomacy.Power{"par": diplomacy.France, "bre": diplomacy.France},
	}
}

func TestLoadParsesMoveOrder(t *testing.T) {
	l := NewLoader(testBoard(), diplomacy.StandardMap())
	doc := []byte(`
orders:
  - unit: "A Par"
    action: move
    destination: bur
`)
	result, err := l.Load(doc)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(result.Orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(result.Orders))
	}
	o := result.Orders[0]
	if o.Type != diplomacy.OrderMove || o.Location != "par" || o.Target != "bur" {
		t.Errorf("unexpected order: %+v", o)
	}
}

func TestLoadExpandsFullProvinceName(t *testing.T) {
	l := NewLoader(testBoard(), diplomacy.StandardMap())
	doc := []byte(`
orders:
  - unit: "A Paris"
    action: move
    destination: Burgundy
`)
	result, err := l.Load(doc)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(result.Orders) != 1 || result.Orders[0].Location != "par" || result.Orders[0].Target != "bur" {
		t.Fatalf("full-name expansion failed: %+v, corrections=%v", result.Orders, l.Corrections)
	}
	if len(l.Corrections) == 0 {
		t.Error("expanding a full province name should record a correction")
	}
}

func TestLoadExpandsActionAlias(t *testing.T) {
	l := NewLoader(testBoard(), diplomacy.StandardMap())
	doc := []byte(`
orders:
  - unit: "A par"
    action: m
    destination: bur
`)
	result, err := l.Load(doc)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(result.Orders) != 1 || result.Orders[0].Type != diplomacy.OrderMove {
		t.Fatalf("action alias 'm' should expand to move: %+v", result.Orders)
	}
}

func TestLoadWarnsOnUnknownUnit(t *testing.T) {
	l := NewLoader(testBoard(), diplomacy.StandardMap())
	doc := []byte(`
orders:
  - unit: "A mun"
    action: hold
`)
	result, err := l.Load(doc)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(result.Orders) != 0 {
		t.Errorf("expected no orders for a unit not on the board, got %d", len(result.Orders))
	}
	if len(l.Warnings) != 1 {
		t.Errorf("expected 1 warning, got %d: %v", len(l.Warnings), l.Warnings)
	}
}

func TestLoadParsesSupportOrder(t *testing.T) {
	l := NewLoader(testBoard(), diplomacy.StandardMap())
	doc := []byte(`
orders:
  - unit: "F bre"
    action: support
    supports: "A par"
    destination: bur
`)
	result, err := l.Load(doc)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(result.Orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(result.Orders))
	}
	o := result.Orders[0]
	if o.Type != diplomacy.OrderSupport || o.AuxLoc != "par" || o.AuxTarget != "bur" {
		t.Errorf("unexpected support order: %+v", o)
	}
}

func TestLoadParsesRetreatWithCoastNotation(t *testing.T) {
	bs := &diplomacy.BoardState{
		Units: []diplomacy.Unit{{Type: diplomacy.Fleet, Power: diplomacy.Russia, Province: "bot"}},
		Dislodged: []diplomacy.DislodgedUnit{
			{Unit: diplomacy.Unit{Type: diplomacy.Fleet, Power: diplomacy.Russia, Province: "bot"}, DislodgedFrom: "bot", DislodgerOrigin: "swe"},
		},
	}
	l := NewLoader(bs, diplomacy.StandardMap())
	doc := []byte(`
retreats:
  - unit: "F bot"
    destination: "stp/sc"
`)
	result, err := l.Load(doc)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(result.Retreats) != 1 {
		t.Fatalf("expected 1 retreat, got %d", len(result.Retreats))
	}
	r := result.Retreats[0]
	if r.Target != "stp" || r.TargetCoast != diplomacy.SouthCoast {
		t.Errorf("coast notation in destination should set TargetCoast: %+v", r)
	}
}

func TestLoadParsesBuildOrder(t *testing.T) {
	l := NewLoader(testBoard(), diplomacy.StandardMap())
	doc := []byte(`
builds:
  - power: france
    unit_type: fleet
    location: bre
`)
	result, err := l.Load(doc)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(result.Builds) != 1 {
		t.Fatalf("expected 1 build, got %d", len(result.Builds))
	}
	b := result.Builds[0]
	if b.Power != diplomacy.France || b.Type != diplomacy.BuildUnit || b.UnitType != diplomacy.Fleet || b.Location != "bre" {
		t.Errorf("unexpected build order: %+v", b)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	l := NewLoader(testBoard(), diplomacy.StandardMap())
	_, err := l.Load([]byte("orders: [this is not: valid: yaml"))
	if err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
	if _, ok := err.(*diplomacy.MalformedInputError); !ok {
		t.Errorf("expected *diplomacy.MalformedInputError, got %T", err)
	}
}
