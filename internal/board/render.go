package board

import (
	"embed"
	"html/template"
	"io"

	"mindmaker-backend/internal/document/domain"
)

// Mode selects between the editable page and the static copy used for export.
type Mode int

const (
	ModeInteractive Mode = iota
	ModeExport
)

// CardView is a card with its comments, oldest first.
type CardView struct {
	domain.Card
	Comments []domain.Comment
}

// ColumnView is one rendered column of a layout.
type ColumnView struct {
	Column
	Cards       []CardView
	Placeholder string
}

// View is a document laid out by its template. When the template is unknown,
// Err is set and Columns is empty; Document is always populated.
type View struct {
	Document domain.Document
	Layout   Layout
	Columns  []ColumnView
	Mode     Mode
	// Hidden counts cards whose column the layout does not define.
	Hidden int
	Err    error
}

// Interactive reports whether add-card and add-comment controls are shown.
func (v View) Interactive() bool {
	return v.Mode == ModeInteractive
}

// ErrorMessage is the text shown in place of the layout when rendering failed.
func (v View) ErrorMessage() string {
	if v.Err == nil {
		return ""
	}
	return "Unknown template type: " + v.Document.Template
}

// Column returns the rendered column with the given id.
func (v View) Column(id string) (ColumnView, bool) {
	for _, c := range v.Columns {
		if c.ID == id {
			return c, true
		}
	}
	return ColumnView{}, false
}

// Render lays out doc with its cards and comments. It never fails: an unknown
// template produces a View carrying ErrUnknownTemplate.
func Render(doc domain.Document, cards []domain.Card, comments []domain.Comment, mode Mode) View {
	view := View{Document: doc, Mode: mode}

	kind, err := ParseKind(doc.Template)
	if err != nil {
		view.Err = err
		return view
	}
	view.Layout = kind.Layout()

	byColumn := GroupByColumn(cards)
	byCard := GroupComments(comments)

	view.Columns = make([]ColumnView, 0, len(view.Layout.Columns))
	for _, col := range view.Layout.Columns {
		cv := ColumnView{
			Column:      col,
			Placeholder: Placeholder(col.ID, col.Title),
		}
		for _, card := range byColumn[col.ID] {
			cv.Cards = append(cv.Cards, CardView{Card: card, Comments: byCard[card.ID]})
		}
		view.Columns = append(view.Columns, cv)
	}

	for columnID, bucket := range byColumn {
		if !view.Layout.HasColumn(columnID) {
			view.Hidden += len(bucket)
		}
	}

	return view
}

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("pages").ParseFS(templateFS, "templates/*.tmpl"))

// Templates returns the parsed page templates: "document_page", "export_page"
// and the shared "board" fragment.
func Templates() *template.Template {
	return templates
}

// ExportPage is the data of the "export_page" template.
type ExportPage struct {
	View  View
	Width int
}

// WriteExportPage renders v as a standalone page whose #export-view element is
// width pixels wide.
func WriteExportPage(w io.Writer, v View, width int) error {
	return templates.ExecuteTemplate(w, "export_page", ExportPage{View: v, Width: width})
}

// WriteBoard renders only the layout fragment of v.
func WriteBoard(w io.Writer, v View) error {
	return templates.ExecuteTemplate(w, "board", v)
}
