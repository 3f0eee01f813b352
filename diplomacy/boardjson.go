package diplomacy

import "encoding/json"

// wireUnit is the persisted shape of a single unit.
type wireUnit struct {
	Power    Power  `json:"power"`
	UnitType string `json:"unit_type"`
	Location string `json:"location"`
	Coast    *Coast `json:"coast"`
}

// wireDislodgedUnit is the persisted shape of one pending retreat.
type wireDislodgedUnit struct {
	Unit               wireUnit `json:"unit"`
	DislodgedFrom      string   `json:"dislodged_from"`
	DislodgerOrigin    string   `json:"dislodger_origin"`
	ContestedProvinces []string `json:"contested_provinces"`
}

// wireBoardState is the on-the-wire persistence schema for a BoardState.
type wireBoardState struct {
	Year           int                 `json:"year"`
	Season         Season              `json:"season"`
	PreviousSeason *Season             `json:"previous_season"`
	Units          []wireUnit          `json:"units"`
	SupplyCenters  map[string]Power    `json:"supply_centers"`
	DislodgedUnits []wireDislodgedUnit `json:"dislodged_units"`
}

func unitTypeToWire(t UnitType) string {
	if t == Fleet {
		return "Fleet"
	}
	return "Army"
}

func unitTypeFromWire(s string) UnitType {
	if s == "Fleet" {
		return Fleet
	}
	return Army
}

func toWireUnit(u Unit) wireUnit {
	w := wireUnit{Power: u.Power, UnitType: unitTypeToWire(u.Type), Location: u.Province}
	if u.Coast != NoCoast {
		c := u.Coast
		w.Coast = &c
	}
	return w
}

func fromWireUnit(w wireUnit) Unit {
	u := Unit{Type: unitTypeFromWire(w.UnitType), Power: w.Power, Province: w.Location}
	if w.Coast != nil {
		u.Coast = *w.Coast
	}
	return u
}

// MarshalJSON encodes bs into the persisted BoardState schema.
func (bs *BoardState) MarshalJSON() ([]byte, error) {
	w := wireBoardState{
		Year:           bs.Year,
		Season:         bs.Season,
		PreviousSeason: bs.PreviousSeason,
		SupplyCenters:  bs.SupplyCenters,
	}

	w.Units = make([]wireUnit, len(bs.Units))
	for i, u := range bs.Units {
		w.Units[i] = toWireUnit(u)
	}

	w.DislodgedUnits = make([]wireDislodgedUnit, len(bs.Dislodged))
	for i, d := range bs.Dislodged {
		contested := d.ContestedProvinces
		if contested == nil {
			contested = []string{}
		}
		w.DislodgedUnits[i] = wireDislodgedUnit{
			Unit:               toWireUnit(d.Unit),
			DislodgedFrom:      d.DislodgedFrom,
			DislodgerOrigin:    d.DislodgerOrigin,
			ContestedProvinces: contested,
		}
	}

	return json.Marshal(w)
}

// UnmarshalJSON decodes bs from the persisted BoardState schema. Only
// JSON syntax and type errors are returned: unrecognized fields are
// ignored, missing fields take their zero values, and any unit_type other
// than "Fleet" decodes as an Army.
func (bs *BoardState) UnmarshalJSON(data []byte) error {
	var w wireBoardState
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	bs.Year = w.Year
	bs.Season = w.Season
	bs.PreviousSeason = w.PreviousSeason
	bs.SupplyCenters = w.SupplyCenters

	bs.Units = make([]Unit, len(w.Units))
	for i, wu := range w.Units {
		bs.Units[i] = fromWireUnit(wu)
	}

	bs.Dislodged = make([]DislodgedUnit, len(w.DislodgedUnits))
	for i, wd := range w.DislodgedUnits {
		bs.Dislodged[i] = DislodgedUnit{
			Unit:               fromWireUnit(wd.Unit),
			DislodgedFrom:      wd.DislodgedFrom,
			DislodgerOrigin:    wd.DislodgerOrigin,
			ContestedProvinces: wd.ContestedProvinces,
		}
	}

	return nil
}
