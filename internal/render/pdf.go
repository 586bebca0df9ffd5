// Package render lays out an assembled resume as a paginated PDF.
package render

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"podder.dev/internal/resume"
)

// epoch is stamped into the PDF metadata so equal input gives equal bytes
var epoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Renderer turns resume documents into PDF bytes
type Renderer struct {
	page    PageSetup
	styles  StyleSheet
	creator string
}

// Option configures a Renderer
type Option func(*Renderer)

// WithStyles replaces the style table
func WithStyles(ss StyleSheet) Option {
	return func(r *Renderer) { r.styles = ss }
}

// WithPage replaces the page geometry
func WithPage(p PageSetup) Option {
	return func(r *Renderer) { r.page = p }
}

// WithCreator sets the creator recorded in the PDF metadata
func WithCreator(name string) Option {
	return func(r *Renderer) { r.creator = name }
}

// New creates a Renderer with the default page and style table
func New(opts ...Option) *Renderer {
	accent, _ := ParseHexColor(DefaultAccent)
	r := &Renderer{
		page:    DefaultPage(),
		styles:  DefaultStyles(accent),
		creator: "portfolio",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render writes the document to w. The PDF is built in memory first; on
// failure nothing is written.
func (r *Renderer) Render(w io.Writer, doc resume.Document) error {
	data, err := r.Bytes(doc)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Bytes returns the rendered PDF
func (r *Renderer) Bytes(doc resume.Document) (data []byte, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			data, err = nil, fmt.Errorf("render pdf: %v", rec)
		}
	}()

	pdf := r.newPDF(doc)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, b := range doc.Blocks {
		if b.Kind == resume.Spacer {
			if b.Height > 0 {
				pdf.Ln(b.Height)
			}
			continue
		}
		r.writeBlock(pdf, tr, b, r.styles.Lookup(b.Style))
		if !pdf.Ok() {
			break
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) newPDF(doc resume.Document) *fpdf.Fpdf {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		SizeStr:        r.page.Size,
	})
	pdf.SetMargins(r.page.Left, r.page.Top, r.page.Right)
	pdf.SetAutoPageBreak(true, r.page.Bottom)
	pdf.SetCreationDate(epoch)
	pdf.SetModificationDate(epoch)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(doc.Title, true)
	pdf.SetAuthor(doc.Author, true)
	pdf.SetCreator(r.creator, true)
	pdf.AddPage()
	return pdf
}

func (r *Renderer) writeBlock(pdf *fpdf.Fpdf, tr func(string) string, b resume.Block, st TextStyle) {
	if st.SpaceBefore > 0 && pdf.GetY() > r.page.Top {
		pdf.Ln(st.SpaceBefore)
	}

	pdf.SetTextColor(st.Color.R, st.Color.G, st.Color.B)
	lh := st.Leading()

	if uniform(b) {
		pdf.SetFont(st.Family, fontStyle(st.Bold || (len(b.Runs) > 0 && b.Runs[0].Bold)), st.Size)

		border := ""
		if st.Border {
			pdf.SetDrawColor(st.BorderColor.R, st.BorderColor.G, st.BorderColor.B)
			pdf.SetLineWidth(st.BorderWidth)
			border = "1"
			margin := pdf.GetCellMargin()
			pdf.SetCellMargin(st.Padding)
			defer pdf.SetCellMargin(margin)
		}
		pdf.MultiCell(0, lh, tr(b.Text()), border, st.Align, false)
	} else {
		r.flow(pdf, tr, b, st)
	}

	if st.SpaceAfter > 0 {
		pdf.Ln(st.SpaceAfter)
	}
}

// uniform reports whether a block is a single line-break-free run of one weight
func uniform(b resume.Block) bool {
	for _, run := range b.Runs {
		if run.Break || run.Bold != b.Runs[0].Bold {
			return false
		}
	}
	return true
}
