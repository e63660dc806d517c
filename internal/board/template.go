// Package board groups document cards into template columns and renders the
// per-template layouts used by the document page and by export.
package board

import (
	"errors"
	"fmt"
)

// ErrUnknownTemplate is reported for template names outside the registry.
var ErrUnknownTemplate = errors.New("unknown template")

// Kind is the closed set of document templates.
type Kind int

const (
	KindSWOT Kind = iota + 1
	KindLean
	KindPESTEL
	KindPorters
)

// Kinds lists every template in display order.
func Kinds() []Kind {
	return []Kind{KindSWOT, KindLean, KindPESTEL, KindPorters}
}

// ParseKind resolves a stored template name. It is the only place where an
// arbitrary string becomes a Kind.
func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds() {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
}

// String is the name persisted in documents.template.
func (k Kind) String() string {
	switch k {
	case KindSWOT:
		return "swot"
	case KindLean:
		return "lean"
	case KindPESTEL:
		return "pestel"
	case KindPorters:
		return "porters"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Title is the human readable template name.
func (k Kind) Title() string {
	switch k {
	case KindSWOT:
		return "SWOT Analysis"
	case KindLean:
		return "Lean Canvas"
	case KindPESTEL:
		return "PESTEL Analysis"
	case KindPorters:
		return "Porter's Five Forces"
	}
	return k.String()
}

// Placement positions a column on the layout grid. Tracks are 1-based.
type Placement struct {
	Col     int
	ColSpan int
	Row     int
	RowSpan int
}

// Column is a named bucket of cards within a template.
type Column struct {
	ID    string
	Title string
	Tone  string
	Place Placement
}

// Layout is the column set of a template and their arrangement.
type Layout struct {
	Kind        Kind
	GridColumns int
	Columns     []Column
}

// ColumnIDs returns the ids of every column in layout order.
func (l Layout) ColumnIDs() []string {
	ids := make([]string, len(l.Columns))
	for i, c := range l.Columns {
		ids[i] = c.ID
	}
	return ids
}

// HasColumn reports whether id is one of the layout's columns.
func (l Layout) HasColumn(id string) bool {
	for _, c := range l.Columns {
		if c.ID == id {
			return true
		}
	}
	return false
}

func cell(col, colSpan, row, rowSpan int) Placement {
	return Placement{Col: col, ColSpan: colSpan, Row: row, RowSpan: rowSpan}
}

// Layout returns the column set and grid placement of k.
func (k Kind) Layout() Layout {
	switch k {
	case KindSWOT:
		return Layout{Kind: k, GridColumns: 2, Columns: []Column{
			{ID: "strengths", Title: "Strengths", Tone: "green", Place: cell(1, 1, 1, 1)},
			{ID: "weaknesses", Title: "Weaknesses", Tone: "red", Place: cell(2, 1, 1, 1)},
			{ID: "opportunities", Title: "Opportunities", Tone: "blue", Place: cell(1, 1, 2, 1)},
			{ID: "threats", Title: "Threats", Tone: "yellow", Place: cell(2, 1, 2, 1)},
		}}
	case KindLean:
		// Classic canvas on ten tracks: five two-track cells on top, with problem,
		// value proposition and segments spanning both upper rows.
		return Layout{Kind: k, GridColumns: 10, Columns: []Column{
			{ID: "problem", Title: "Problem", Tone: "red", Place: cell(1, 2, 1, 2)},
			{ID: "solution", Title: "Solution", Tone: "green", Place: cell(3, 2, 1, 1)},
			{ID: "metrics", Title: "Key Metrics", Tone: "blue", Place: cell(3, 2, 2, 1)},
			{ID: "value_proposition", Title: "Unique Value Proposition", Tone: "purple", Place: cell(5, 2, 1, 2)},
			{ID: "unfair_advantage", Title: "Unfair Advantage", Tone: "yellow", Place: cell(7, 2, 1, 1)},
			{ID: "channels", Title: "Channels", Tone: "indigo", Place: cell(7, 2, 2, 1)},
			{ID: "customer_segments", Title: "Customer Segments", Tone: "pink", Place: cell(9, 2, 1, 2)},
			{ID: "cost_structure", Title: "Cost Structure", Tone: "gray", Place: cell(1, 5, 3, 1)},
			{ID: "revenue_streams", Title: "Revenue Streams", Tone: "emerald", Place: cell(6, 5, 3, 1)},
		}}
	case KindPESTEL:
		return Layout{Kind: k, GridColumns: 3, Columns: []Column{
			{ID: "political", Title: "Political", Tone: "purple", Place: cell(1, 1, 1, 1)},
			{ID: "economic", Title: "Economic", Tone: "blue", Place: cell(2, 1, 1, 1)},
			{ID: "social", Title: "Social", Tone: "green", Place: cell(3, 1, 1, 1)},
			{ID: "technological", Title: "Technological", Tone: "yellow", Place: cell(1, 1, 2, 1)},
			{ID: "environmental", Title: "Environmental", Tone: "emerald", Place: cell(2, 1, 2, 1)},
			{ID: "legal", Title: "Legal", Tone: "red", Place: cell(3, 1, 2, 1)},
		}}
	case KindPorters:
		return Layout{Kind: k, GridColumns: 3, Columns: []Column{
			{ID: "competitiveRivalry", Title: "Competitive Rivalry", Tone: "red", Place: cell(1, 1, 1, 1)},
			{ID: "supplierPower", Title: "Supplier Power", Tone: "blue", Place: cell(2, 1, 1, 1)},
			{ID: "buyerPower", Title: "Buyer Power", Tone: "green", Place: cell(3, 1, 1, 1)},
			{ID: "threatOfSubstitution", Title: "Threat of Substitution", Tone: "yellow", Place: cell(1, 1, 2, 1)},
			{ID: "threatOfNewEntry", Title: "Threat of New Entry", Tone: "purple", Place: cell(2, 2, 2, 1)},
		}}
	}
	return Layout{Kind: k}
}
