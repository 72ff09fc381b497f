package layout

// CenterOwner keys the panel's own center axes in the limits table.
const CenterOwner = "__center__"

// limitClearance is the padding added past a dimension line's base before
// it is recorded as an axis extent.
const limitClearance = 2.0

// Limit is the running envelope of how far dimension lines have pushed
// past an axis owner's center, in absolute millimeters. Values only ever
// grow more extreme: min decreases, max increases.
type Limit struct {
	VMin *float64
	VMax *float64
	HMin *float64
	HMax *float64
}

// AxisLimits accumulates per-owner extents while dimensions are planned.
// Owners are the panel center axes (CenterOwner) and every opening id.
type AxisLimits struct {
	byOwner map[string]*Limit
}

// NewAxisLimits creates a limits table with an entry for the center axes
// and one per opening.
func NewAxisLimits(openings *OpeningTable) *AxisLimits {
	l := &AxisLimits{byOwner: map[string]*Limit{CenterOwner: {}}}
	for _, o := range openings.All() {
		l.byOwner[o.ID] = &Limit{}
	}
	return l
}

// Get returns the limit entry for an owner.
func (l *AxisLimits) Get(owner string) (*Limit, bool) {
	lim, ok := l.byOwner[owner]
	return lim, ok
}

// UpdateVertical records a vertical dimension base for the owner. Bases
// at or above the owner's center grow the max bound, bases below grow the
// min bound; existing bounds never move back toward the center.
func (l *AxisLimits) UpdateVertical(owner string, base, center float64) {
	lim := l.byOwner[owner]
	if lim == nil {
		return
	}
	if base >= center {
		v := base + limitClearance
		if lim.VMax == nil || v > *lim.VMax {
			lim.VMax = &v
		}
	} else {
		v := base - limitClearance
		if lim.VMin == nil || v < *lim.VMin {
			lim.VMin = &v
		}
	}
}

// UpdateHorizontal records a horizontal dimension base for the owner,
// with the same only-grows rule as UpdateVertical.
func (l *AxisLimits) UpdateHorizontal(owner string, base, center float64) {
	lim := l.byOwner[owner]
	if lim == nil {
		return
	}
	if base >= center {
		v := base + limitClearance
		if lim.HMax == nil || v > *lim.HMax {
			lim.HMax = &v
		}
	} else {
		v := base - limitClearance
		if lim.HMin == nil || v < *lim.HMin {
			lim.HMin = &v
		}
	}
}
