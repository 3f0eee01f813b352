package diplomacy

// Season is the BoardState's phase cursor. Unlike a plain spring/fall
// calendar season, it also encodes which kind of phase is active, matching
// the persisted JSON schema's "season" field.
type Season string

const (
	SeasonSpring  Season = "Spring"
	SeasonFall    Season = "Fall"
	SeasonRetreat Season = "Retreat"
	SeasonWinter  Season = "Winter"
)

// BoardState is a complete, self-contained snapshot of the game.
type BoardState struct {
	Year   int
	Season Season

	// PreviousSeason is set only while Season == SeasonRetreat, naming
	// which movement season (Spring or Fall) the dislodgements came from.
	// Cleared on leaving Retreat.
	PreviousSeason *Season

	Units         []Unit
	SupplyCenters map[string]Power // province ID -> owning power; absent == neutral
	Dislodged     []DislodgedUnit
}

// DislodgedUnit records a unit forced off the board, pending a retreat
// order, together with the phase context needed to validate its retreat:
// where it came from, who dislodged it, and which provinces stood off
// this phase and so are closed to retreat.
type DislodgedUnit struct {
	Unit               Unit
	DislodgedFrom      string
	DislodgerOrigin    string
	ContestedProvinces []string
}

// NewInitialState returns the standard Diplomacy starting position:
// Spring 1901 movement, with each power's three (four for Russia) home
// units on their home supply centers.
func NewInitialState() *BoardState {
	return &BoardState{
		Year:          1901,
		Season:        SeasonSpring,
		Units:         initialUnits(),
		SupplyCenters: initialSupplyCenters(),
	}
}

// UnitAt returns the unit occupying province (ignoring coast), or nil.
func (bs *BoardState) UnitAt(province string) *Unit {
	for i := range bs.Units {
		if bs.Units[i].Province == province {
			return &bs.Units[i]
		}
	}
	return nil
}

// SupplyCenterCount returns how many supply centers power currently owns.
func (bs *BoardState) SupplyCenterCount(power Power) int {
	count := 0
	for _, owner := range bs.SupplyCenters {
		if owner == power {
			count++
		}
	}
	return count
}

// UnitCount returns how many units belong to power.
func (bs *BoardState) UnitCount(power Power) int {
	count := 0
	for _, u := range bs.Units {
		if u.Power == power {
			count++
		}
	}
	return count
}

// UnitsOf returns the units belonging to power, in board order.
func (bs *BoardState) UnitsOf(power Power) []Unit {
	var units []Unit
	for _, u := range bs.Units {
		if u.Power == power {
			units = append(units, u)
		}
	}
	return units
}

// PowerIsAlive reports whether power still holds a unit or a supply center.
func (bs *BoardState) PowerIsAlive(power Power) bool {
	return bs.SupplyCenterCount(power) > 0 || bs.UnitCount(power) > 0
}

// Clone returns a deep copy; mutating the clone never affects bs.
func (bs *BoardState) Clone() *BoardState {
	c := &BoardState{Year: bs.Year, Season: bs.Season}
	if bs.PreviousSeason != nil {
		s := *bs.PreviousSeason
		c.PreviousSeason = &s
	}
	if bs.Units != nil {
		c.Units = make([]Unit, len(bs.Units))
		copy(c.Units, bs.Units)
	}
	if bs.SupplyCenters != nil {
		c.SupplyCenters = make(map[string]Power, len(bs.SupplyCenters))
		for k, v := range bs.SupplyCenters {
			c.SupplyCenters[k] = v
		}
	}
	if bs.Dislodged != nil {
		c.Dislodged = make([]DislodgedUnit, len(bs.Dislodged))
		for i, d := range bs.Dislodged {
			c.Dislodged[i] = d
			if d.ContestedProvinces != nil {
				c.Dislodged[i].ContestedProvinces = append([]string(nil), d.ContestedProvinces...)
			}
		}
	}
	return c
}

func initialUnits() []Unit {
	return []Unit{
		{Army, Austria, "vie", NoCoast},
		{Army, Austria, "bud", NoCoast},
		{Fleet, Austria, "tri", NoCoast},

		{Fleet, England, "lon", NoCoast},
		{Fleet, England, "edi", NoCoast},
		{Army, England, "lvp", NoCoast},

		{Fleet, France, "bre", NoCoast},
		{Army, France, "par", NoCoast},
		{Army, France, "mar", NoCoast},

		{Fleet, Germany, "kie", NoCoast},
		{Army, Germany, "ber", NoCoast},
		{Army, Germany, "mun", NoCoast},

		{Fleet, Italy, "nap", NoCoast},
		{Army, Italy, "rom", NoCoast},
		{Army, Italy, "ven", NoCoast},

		{Fleet, Russia, "stp", SouthCoast},
		{Army, Russia, "mos", NoCoast},
		{Army, Russia, "war", NoCoast},
		{Fleet, Russia, "sev", NoCoast},

		{Fleet, Turkey, "ank", NoCoast},
		{Army, Turkey, "con", NoCoast},
		{Army, Turkey, "smy", NoCoast},
	}
}

// initialSupplyCenters returns the 1901 ownership map. Neutral centers are
// left out of the map entirely: a province absent here is neutral.
func initialSupplyCenters() map[string]Power {
	return map[string]Power{
		"vie": Austria, "bud": Austria, "tri": Austria,
		"lon": England, "edi": England, "lvp": England,
		"bre": France, "par": France, "mar": France,
		"kie": Germany, "ber": Germany, "mun": Germany,
		"nap": Italy, "rom": Italy, "ven": Italy,
		"stp": Russia, "mos": Russia, "war": Russia, "sev": Russia,
		"ank": Turkey, "con": Turkey, "smy": Turkey,
	}
}
