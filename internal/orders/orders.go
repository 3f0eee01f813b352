// Package orders adapts a YAML order file into the core's Order,
// RetreatOrder, and BuildOrder types. This is the "Order source" external
// collaborator: it resolves unit references case-insensitively, expands
// full province names and action aliases, and records a warning rather
// than failing outright when a reference cannot be resolved.
package orders

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/freeeve/diplomacy-core/diplomacy"
)

type wireOrder struct {
	Unit        string `yaml:"unit"`
	Action      string `yaml:"action"`
	Destination string `yaml:"destination"`
	Coast       string `yaml:"coast"`
	Supports    string `yaml:"supports"`
	Convoys     string `yaml:"convoys"`
	ViaConvoy   bool   `yaml:"via_convoy"`
}

type wireRetreat struct {
	Unit        string `yaml:"unit"`
	Action      string `yaml:"action"`
	Destination string `yaml:"destination"`
	Coast       string `yaml:"coast"`
}

type wireBuild struct {
	Power    string `yaml:"power"`
	Action   string `yaml:"action"`
	UnitType string `yaml:"unit_type"`
	Location string `yaml:"location"`
	Coast    string `yaml:"coast"`
}

type wireDocument struct {
	Orders   []wireOrder   `yaml:"orders"`
	Retreats []wireRetreat `yaml:"retreats"`
	Builds   []wireBuild   `yaml:"builds"`
}

var actionAliases = map[string]string{
	"m": "move", "h": "hold", "s": "support", "c": "convoy",
	"r": "retreat", "d": "disband", "b": "build", "w": "waive",
}

var coastTokens = map[string]diplomacy.Coast{
	"nc": diplomacy.NorthCoast, "north": diplomacy.NorthCoast,
	"sc": diplomacy.SouthCoast, "south": diplomacy.SouthCoast,
	"ec": diplomacy.EastCoast, "east": diplomacy.EastCoast,
	"wc": diplomacy.WestCoast, "west": diplomacy.WestCoast,
}

// Loader resolves a YAML order document against a board state and map,
// collecting warnings for references it cannot resolve instead of failing
// the whole batch.
type Loader struct {
	bs *diplomacy.BoardState
	m  *diplomacy.Map

	Token       uuid.UUID // opaque handle correlating one load with its log lines; never persisted
	Warnings    []string
	Corrections []string
}

// NewLoader creates a Loader bound to the given board and map.
func NewLoader(bs *diplomacy.BoardState, m *diplomacy.Map) *Loader {
	return &Loader{bs: bs, m: m, Token: uuid.New()}
}

// LoadResult bundles every order kind parsed from one YAML document.
type LoadResult struct {
	Orders   []diplomacy.Order
	Retreats []diplomacy.RetreatOrder
	Builds   []diplomacy.BuildOrder
}

// Load parses data as a YAML order document and resolves it against the
// board this Loader was constructed with.
func (l *Loader) Load(data []byte) (*LoadResult, error) {
	var doc wireDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &diplomacy.MalformedInputError{Reason: fmt.Sprintf("invalid order YAML: %v", err)}
	}

	result := &LoadResult{}
	for _, wo := range doc.Orders {
		order, ok := l.parseOrder(wo)
		if ok {
			result.Orders = append(result.Orders, order)
		}
	}
	for _, wr := range doc.Retreats {
		retreat, ok := l.parseRetreat(wr)
		if ok {
			result.Retreats = append(result.Retreats, retreat)
		}
	}
	for _, wb := range doc.Builds {
		build, ok := l.parseBuild(wb)
		if ok {
			result.Builds = append(result.Builds, build)
		}
	}
	return result, nil
}

func (l *Loader) parseOrder(wo wireOrder) (diplomacy.Order, bool) {
	unit, coast, ok := l.findUnit(wo.Unit)
	if !ok {
		l.warn("unit not found: %q", wo.Unit)
		return diplomacy.Order{}, false
	}

	order := diplomacy.Order{
		UnitType: unit.Type,
		Power:    unit.Power,
		Location: unit.Province,
		Coast:    coast,
	}

	action := l.normalizeAction(wo.Action)
	switch action {
	case "hold":
		order.Type = diplomacy.OrderHold

	case "move":
		dest, destCoast, ok := l.normalizeDestination(wo.Destination, wo.Coast)
		if !ok {
			l.warn("move order for %q: missing or unknown destination %q", wo.Unit, wo.Destination)
			return diplomacy.Order{}, false
		}
		order.Type = diplomacy.OrderMove
		order.Target = dest
		order.TargetCoast = destCoast
		order.ViaConvoy = wo.ViaConvoy

	case "support":
		supported, supportedCoast, ok := l.findUnit(wo.Supports)
		if !ok {
			l.warn("support order for %q: supported unit not found: %q", wo.Unit, wo.Supports)
			return diplomacy.Order{}, false
		}
		order.Type = diplomacy.OrderSupport
		order.AuxLoc = supported.Province
		order.AuxUnitType = supported.Type
		order.AuxCoast = supportedCoast
		if wo.Destination != "" {
			dest, _, ok := l.normalizeDestination(wo.Destination, "")
			if ok {
				order.AuxTarget = dest
			}
		}

	case "convoy":
		convoyed, _, ok := l.findUnit(wo.Convoys)
		if !ok {
			l.warn("convoy order for %q: convoyed unit not found: %q", wo.Unit, wo.Convoys)
			return diplomacy.Order{}, false
		}
		dest, _, ok := l.normalizeDestination(wo.Destination, "")
		if !ok {
			l.warn("convoy order for %q: missing destination", wo.Unit)
			return diplomacy.Order{}, false
		}
		order.Type = diplomacy.OrderConvoy
		order.AuxLoc = convoyed.Province
		order.AuxTarget = dest

	default:
		l.warn("unknown action %q for unit %q", wo.Action, wo.Unit)
		return diplomacy.Order{}, false
	}

	return order, true
}

func (l *Loader) parseRetreat(wr wireRetreat) (diplomacy.RetreatOrder, bool) {
	unit, coast, ok := l.findUnit(wr.Unit)
	if !ok {
		l.warn("retreat order: unit not found: %q", wr.Unit)
		return diplomacy.RetreatOrder{}, false
	}

	retreat := diplomacy.RetreatOrder{
		UnitType: unit.Type,
		Power:    unit.Power,
		Location: unit.Province,
		Coast:    coast,
	}

	if l.normalizeAction(wr.Action) == "disband" {
		retreat.Type = diplomacy.RetreatDisband
		return retreat, true
	}

	dest, destCoast, ok := l.normalizeDestination(wr.Destination, wr.Coast)
	if !ok {
		l.warn("retreat order for %q: missing or unknown destination %q", wr.Unit, wr.Destination)
		return diplomacy.RetreatOrder{}, false
	}
	retreat.Type = diplomacy.RetreatMove
	retreat.Target = dest
	retreat.TargetCoast = destCoast
	return retreat, true
}

func (l *Loader) parseBuild(wb wireBuild) (diplomacy.BuildOrder, bool) {
	power, ok := l.normalizePower(wb.Power)
	if !ok {
		l.warn("build order: unknown power %q", wb.Power)
		return diplomacy.BuildOrder{}, false
	}

	loc, coast, ok := l.normalizeDestination(wb.Location, wb.Coast)
	if !ok {
		l.warn("build order for %q: unknown location %q", wb.Power, wb.Location)
		return diplomacy.BuildOrder{}, false
	}

	build := diplomacy.BuildOrder{Power: power, Location: loc, Coast: coast}
	switch l.normalizeAction(wb.Action) {
	case "disband":
		build.Type = diplomacy.DisbandUnit
	case "waive":
		build.Type = diplomacy.WaiveBuild
	default:
		build.Type = diplomacy.BuildUnit
	}

	if strings.EqualFold(wb.UnitType, "fleet") {
		build.UnitType = diplomacy.Fleet
	} else {
		build.UnitType = diplomacy.Army
	}

	return build, true
}

// findUnit resolves a spec like "A par" or "F spa/sc" to the unit actually
// on the board at that province, matching case-insensitively.
func (l *Loader) findUnit(spec string) (diplomacy.Unit, diplomacy.Coast, bool) {
	fields := strings.Fields(spec)
	if len(fields) < 2 {
		return diplomacy.Unit{}, diplomacy.NoCoast, false
	}

	var wantType diplomacy.UnitType
	switch strings.ToUpper(fields[0]) {
	case "A":
		wantType = diplomacy.Army
	case "F":
		wantType = diplomacy.Fleet
	default:
		return diplomacy.Unit{}, diplomacy.NoCoast, false
	}

	locSpec := strings.Join(fields[1:], " ")
	prov, coast, ok := l.normalizeDestination(locSpec, "")
	if !ok {
		return diplomacy.Unit{}, diplomacy.NoCoast, false
	}

	unit := l.bs.UnitAt(prov)
	if unit == nil || unit.Type != wantType {
		return diplomacy.Unit{}, diplomacy.NoCoast, false
	}
	if coast != diplomacy.NoCoast && unit.Coast != coast {
		return diplomacy.Unit{}, diplomacy.NoCoast, false
	}
	return *unit, unit.Coast, true
}

// normalizeDestination resolves a province reference to its canonical ID
// and coast. The reference may carry its own "prov/coast" notation, which
// takes precedence over an explicit coast field.
func (l *Loader) normalizeDestination(provSpec, coastField string) (string, diplomacy.Coast, bool) {
	provSpec = strings.TrimSpace(provSpec)
	if provSpec == "" {
		return "", diplomacy.NoCoast, false
	}

	coast := l.parseCoast(coastField)
	if idx := strings.IndexByte(provSpec, '/'); idx >= 0 {
		if c, ok := coastTokens[strings.ToLower(strings.TrimSpace(provSpec[idx+1:]))]; ok {
			coast = c
		}
		provSpec = provSpec[:idx]
	}

	prov, ok := l.resolveProvinceName(strings.TrimSpace(provSpec))
	if !ok {
		return "", diplomacy.NoCoast, false
	}
	return prov, coast, true
}

func (l *Loader) resolveProvinceName(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	lower := strings.ToLower(name)
	if len(lower) == 3 {
		if _, ok := l.m.Provinces[lower]; ok {
			if lower != name {
				l.correct("corrected %q to %q", name, lower)
			}
			return lower, true
		}
	}
	for id, p := range l.m.Provinces {
		if strings.ToLower(p.Name) == lower {
			l.correct("expanded %q to %q", name, id)
			return id, true
		}
	}
	return "", false
}

func (l *Loader) normalizeAction(action string) string {
	action = strings.ToLower(strings.TrimSpace(action))
	if full, ok := actionAliases[action]; ok {
		l.correct("expanded action %q to %q", action, full)
		return full
	}
	return action
}

func (l *Loader) normalizePower(power string) (diplomacy.Power, bool) {
	power = strings.ToLower(strings.TrimSpace(power))
	for _, p := range diplomacy.AllPowers() {
		if string(p) == power {
			return p, true
		}
	}
	return "", false
}

func (l *Loader) parseCoast(token string) diplomacy.Coast {
	c, ok := coastTokens[strings.ToLower(strings.TrimSpace(token))]
	if !ok {
		return diplomacy.NoCoast
	}
	return c
}

func (l *Loader) warn(format string, args ...any) {
	l.Warnings = append(l.Warnings, fmt.Sprintf(format, args...))
}

func (l *Loader) correct(format string, args ...any) {
	l.Corrections = append(l.Corrections, fmt.Sprintf(format, args...))
}
