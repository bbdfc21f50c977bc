package document

import (
	"github.com/agentstation/utc"
)

// Default reference system identifiers, applied when a document omits them.
const (
	DefaultCRS = "http://www.opengis.net/def/crs/OGC/1.3/CRS84"
	DefaultTRS = "http://www.opengis.net/def/uom/ISO-8601/0/Gregorian"
)

// Extents groups the spatial and optional temporal extent of a resource.
type Extents struct {
	Spatial  SpatialExtent   `json:"spatial" yaml:"spatial"`                       // Bounding box and CRS
	Temporal *TemporalExtent `json:"temporal,omitempty" yaml:"temporal,omitempty"` // Time interval (absent means atemporal)
}

// SpatialExtent is the bounding box of a resource plus its coordinate
// reference system.
type SpatialExtent struct {
	Bbox Bbox   `json:"bbox" yaml:"bbox"`                   // [minx, miny, maxx, maxy]
	CRS  string `json:"crs,omitempty" yaml:"crs,omitempty"` // CRS identifier (default CRS84)
}

// Bbox is a four-number bounding box: min-x, min-y, max-x, max-y.
type Bbox []float64

// MinX returns the western edge. Zero if the box is malformed.
func (b Bbox) MinX() float64 { return b.at(0) }

// MinY returns the southern edge. Zero if the box is malformed.
func (b Bbox) MinY() float64 { return b.at(1) }

// MaxX returns the eastern edge. Zero if the box is malformed.
func (b Bbox) MaxX() float64 { return b.at(2) }

// MaxY returns the northern edge. Zero if the box is malformed.
func (b Bbox) MaxY() float64 { return b.at(3) }

func (b Bbox) at(i int) float64 {
	if len(b) != 4 {
		return 0
	}
	return b[i]
}

// TemporalExtent is the time interval covered by a resource. A nil End
// means the interval is open-ended.
type TemporalExtent struct {
	Begin *utc.Time `json:"begin" yaml:"begin"`                 // Interval start (null means unbounded)
	End   *utc.Time `json:"end" yaml:"end"`                     // Interval end (null means open-ended)
	TRS   string    `json:"trs,omitempty" yaml:"trs,omitempty"` // Temporal reference system (default Gregorian)
}

// Open reports whether the interval has no end.
func (t *TemporalExtent) Open() bool {
	return t != nil && t.End == nil
}

// copy returns a deep copy of the extents.
func (e Extents) copy() Extents {
	out := e
	if e.Spatial.Bbox != nil {
		out.Spatial.Bbox = append(Bbox(nil), e.Spatial.Bbox...)
	}
	if e.Temporal != nil {
		temporal := *e.Temporal
		if e.Temporal.Begin != nil {
			begin := *e.Temporal.Begin
			temporal.Begin = &begin
		}
		if e.Temporal.End != nil {
			end := *e.Temporal.End
			temporal.End = &end
		}
		out.Temporal = &temporal
	}
	return out
}
