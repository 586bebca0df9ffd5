package render

import (
	"unicode"

	"github.com/go-pdf/fpdf"

	"podder.dev/internal/resume"
)

// piece is a same-weight fragment of a word
type piece struct {
	text  string
	bold  bool
	width float64
}

// word is a run of non-space text; it may switch weight mid-word
type word struct {
	pieces []piece
	width  float64
}

// placed is a word positioned at x from the left margin
type placed struct {
	word word
	x    float64
}

// splitWords breaks runs into paragraphs at line breaks and each paragraph
// into words. Adjacent runs without whitespace between them join one word.
func splitWords(runs []resume.Run) [][]word {
	var (
		paras [][]word
		cur   []word
		w     *word
	)
	flush := func() {
		if w != nil {
			cur = append(cur, *w)
			w = nil
		}
	}
	add := func(text string, bold bool) {
		if w == nil {
			w = &word{}
		}
		w.pieces = append(w.pieces, piece{text: text, bold: bold})
	}

	for _, run := range runs {
		if run.Break {
			flush()
			paras = append(paras, cur)
			cur = nil
			continue
		}
		start := -1
		for i, r := range run.Text {
			if unicode.IsSpace(r) {
				if start >= 0 {
					add(run.Text[start:i], run.Bold)
					start = -1
				}
				flush()
				continue
			}
			if start < 0 {
				start = i
			}
		}
		if start >= 0 {
			add(run.Text[start:], run.Bold)
		}
	}
	flush()
	return append(paras, cur)
}

// layoutLines fills lines greedily up to avail. Justified lines stretch the
// gaps so the last word ends on the right margin; the final line of a
// paragraph keeps normal spacing.
func layoutLines(words []word, avail, space float64, align string) [][]placed {
	var lines [][]word
	var line []word
	width := 0.0
	for _, w := range words {
		if len(line) > 0 && width+space+w.width > avail {
			lines = append(lines, line)
			line, width = nil, 0
		}
		if len(line) > 0 {
			width += space
		}
		line = append(line, w)
		width += w.width
	}
	if len(line) > 0 {
		lines = append(lines, line)
	}

	out := make([][]placed, 0, len(lines))
	for i, ws := range lines {
		sum := 0.0
		for _, w := range ws {
			sum += w.width
		}
		gap, x := space, 0.0
		switch {
		case align == AlignJustify && i < len(lines)-1 && len(ws) > 1:
			gap = (avail - sum) / float64(len(ws)-1)
		case align == AlignCenter:
			x = (avail - sum - space*float64(len(ws)-1)) / 2
		}
		row := make([]placed, len(ws))
		for j, w := range ws {
			row[j] = placed{word: w, x: x}
			x += w.width + gap
		}
		out = append(out, row)
	}
	return out
}

func fontStyle(bold bool) string {
	if bold {
		return "B"
	}
	return ""
}

// flow sets a block of mixed weights word by word in the style's alignment
func (r *Renderer) flow(pdf *fpdf.Fpdf, tr func(string) string, b resume.Block, st TextStyle) {
	pageW, pageH := pdf.GetPageSize()
	avail := pageW - r.page.Left - r.page.Right
	lh := st.Leading()

	pdf.SetFont(st.Family, fontStyle(st.Bold), st.Size)
	space := pdf.GetStringWidth(" ")

	for _, para := range splitWords(b.Runs) {
		for i := range para {
			para[i].width = 0
			for j := range para[i].pieces {
				pc := &para[i].pieces[j]
				pdf.SetFont(st.Family, fontStyle(st.Bold || pc.bold), st.Size)
				pc.width = pdf.GetStringWidth(tr(pc.text))
				para[i].width += pc.width
			}
		}

		lines := layoutLines(para, avail, space, st.Align)
		if len(lines) == 0 {
			lines = [][]placed{nil}
		}
		for _, line := range lines {
			if pdf.GetY()+lh > pageH-r.page.Bottom {
				pdf.AddPage()
			}
			y := pdf.GetY()
			baseline := y + 0.5*lh + 0.3*st.Size
			for _, p := range line {
				x := r.page.Left + p.x
				for _, pc := range p.word.pieces {
					pdf.SetFont(st.Family, fontStyle(st.Bold || pc.bold), st.Size)
					pdf.Text(x, baseline, tr(pc.text))
					x += pc.width
				}
			}
			pdf.SetXY(r.page.Left, y+lh)
		}
	}
}
