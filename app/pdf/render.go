package pdf

import (
	"bytes"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

// Page geometry in millimetres.
const (
	pageWidth   = 210.0
	margin      = 20.0
	valueOffset = 51.0
	lineHeight  = 7.0
	contentEnd  = 270.0
	footerY     = 280.0
	font        = "Helvetica"
)

// Render lays s out on A4 pages and writes the document to w.
func Render(w io.Writer, s Sheet) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetCatalogSort(true)
	stamp := s.CreatedAt.Time(time.UTC)
	doc.SetCreationDate(stamp)
	doc.SetModificationDate(stamp)
	doc.SetAutoPageBreak(false, 0)
	doc.SetTitle(s.Subtitle, true)
	doc.SetAuthor(ParishName, true)

	p := &page{doc: doc, tr: doc.UnicodeTranslatorFromDescriptor("")}
	doc.SetFooterFunc(p.footer)

	p.header(s)
	for _, f := range s.Fields {
		p.field(f)
	}
	if s.Term != "" {
		p.term(s.Term)
	}
	p.registered(s.Registered)

	return doc.Output(w)
}

// Bytes renders s into memory.
func Bytes(s Sheet) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type page struct {
	doc *fpdf.Fpdf
	tr  func(string) string
	y   float64
}

func (p *page) text(x, y float64, s string) {
	p.doc.Text(x, y, p.tr(s))
}

func (p *page) width(s string) float64 {
	return p.doc.GetStringWidth(p.tr(s))
}

func (p *page) centered(y float64, s string) {
	p.text((pageWidth-p.width(s))/2, y, s)
}

var controls = strings.NewReplacer("\r", "", "\t", " ")

// lines wraps s to width w with the current font. SplitText measures a
// stand-in of the same width and the returned lines are cut from s itself.
func (p *page) lines(s string, w float64) []string {
	orig := []rune(controls.Replace(s))
	stand := p.standIn(string(orig))
	split := p.doc.SplitText(string(stand), w)
	if len(split) == 0 {
		return []string{""}
	}

	out := make([]string, 0, len(split))
	pos := 0
	for _, line := range split {
		l := []rune(line)
		// a separator dropped by SplitText sits between two lines
		if pos < len(stand) && !runesAt(stand, pos, l) {
			pos++
		}
		end := min(pos+len(l), len(orig))
		out = append(out, string(orig[pos:end]))
		pos = end
	}
	return out
}

func runesAt(s []rune, pos int, sub []rune) bool {
	if pos+len(sub) > len(s) {
		return false
	}
	for i, r := range sub {
		if s[pos+i] != r {
			return false
		}
	}
	return true
}

// need starts a new page when h more millimetres would cross the footer.
func (p *page) need(h float64) {
	if p.y+h <= contentEnd {
		return
	}
	p.doc.AddPage()
	p.y = 2 * margin
}

func (p *page) header(s Sheet) {
	p.doc.AddPage()

	p.doc.SetFont(font, "B", 18)
	p.doc.SetTextColor(0, 75, 145)
	p.centered(20, ParishName)

	p.doc.SetFontSize(14)
	p.doc.SetTextColor(0, 0, 0)
	p.centered(27, s.Subtitle)

	p.doc.SetDrawColor(200, 200, 200)
	p.doc.Line(margin, 31, pageWidth-margin, 31)

	p.doc.SetFontSize(12)
	p.text(margin, 40, s.Section)
	p.y = 50
}

func (p *page) field(f Field) {
	p.doc.SetFont(font, "", 10)
	values := p.lines(f.Value, pageWidth-2*margin-valueOffset)

	p.need(lineHeight)
	p.doc.SetFont(font, "B", 10)
	p.text(margin, p.y, f.Label+":")
	p.doc.SetFont(font, "", 10)
	for i, line := range values {
		if i > 0 {
			p.y += lineHeight
			p.need(lineHeight)
		}
		p.text(margin+valueOffset, p.y, line)
	}
	p.y += lineHeight
}

func (p *page) term(body string) {
	p.y += 15
	p.need(10 + lineHeight)
	p.doc.SetFont(font, "B", 12)
	p.text(margin, p.y, TermTitle)
	p.y += 10

	p.doc.SetFont(font, "", 10)
	for _, line := range p.lines(body, pageWidth-2*margin) {
		p.need(lineHeight)
		p.text(margin, p.y, line)
		p.y += lineHeight
	}
}

func (p *page) registered(on string) {
	p.y += 15
	p.need(lineHeight)
	p.doc.SetFont(font, "B", 10)
	p.text(pageWidth-margin-50, p.y, "Data da Inscrição:")
	p.doc.SetFont(font, "", 10)
	p.text(pageWidth-margin-p.width(on), p.y, on)
}

func (p *page) footer() {
	p.doc.SetDrawColor(200, 200, 200)
	p.doc.Line(margin, footerY, pageWidth-margin, footerY)
	p.doc.SetFont(font, "I", 10)
	p.doc.SetTextColor(0, 0, 0)
	p.centered(footerY+5, FooterText)
}

// standIn maps every rune of s to the code page byte the core fonts draw
// for it, one rune per rune. The ellipsis byte reads as a space to
// SplitText, so it borrows another glyph of the same width.
func (p *page) standIn(s string) []rune {
	enc := p.tr(s)
	out := make([]rune, len(enc))
	for i := 0; i < len(enc); i++ {
		if enc[i] == 0x85 {
			out[i] = 'Æ'
			continue
		}
		out[i] = rune(enc[i])
	}
	return out
}
