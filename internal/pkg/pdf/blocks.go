package pdf

import (
	"strings"
)

func lineHeightFor(f Font, lh float64) float64 {
	if lh > 0 {
		return lh
	}
	return f.Size * 1.2
}

func alignedX(m Measurer, text string, f Font, align Align, x, width float64) float64 {
	switch align {
	case AlignCenter:
		return x + (width-m.TextWidth(text, f))/2
	case AlignRight:
		return x + width - m.TextWidth(text, f)
	}
	return x
}

// wrapText splits text into lines no wider than width, breaking on spaces.
// A single word wider than width gets a line of its own.
func wrapText(m Measurer, text string, f Font, width float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		candidate := line + " " + w
		if m.TextWidth(candidate, f) <= width {
			line = candidate
			continue
		}
		lines = append(lines, line)
		line = w
	}
	return append(lines, line)
}

// Text is a paragraph. The cursor is the first line's baseline.
type Text struct {
	Content    string
	Font       Font
	Color      Color
	Align      Align
	LineHeight float64
	Indent     float64
	Wrap       bool
	Underline  bool
}

func (t Text) lines(m Measurer, width float64) []string {
	if !t.Wrap {
		return []string{t.Content}
	}
	return wrapText(m, t.Content, t.Font, width-t.Indent)
}

// Height implements Block
func (t Text) Height(m Measurer, width float64) float64 {
	return float64(len(t.lines(m, width))) * lineHeightFor(t.Font, t.LineHeight)
}

// Emit implements Block
func (t Text) Emit(c *Canvas, x, y, width float64) {
	lh := lineHeightFor(t.Font, t.LineHeight)
	for i, line := range t.lines(c.m, width) {
		c.Push(Op{
			Kind:      OpText,
			X:         alignedX(c.m, line, t.Font, t.Align, x+t.Indent, width-t.Indent),
			Y:         y + float64(i)*lh,
			W:         c.m.TextWidth(line, t.Font),
			Text:      line,
			Font:      t.Font,
			Color:     t.Color,
			Underline: t.Underline,
		})
	}
}

// Spacer advances the cursor
type Spacer float64

// Height implements Block
func (s Spacer) Height(Measurer, float64) float64 { return float64(s) }

// Emit implements Block
func (Spacer) Emit(*Canvas, float64, float64, float64) {}

// Rule is a horizontal line across the content width at the cursor
type Rule struct {
	Color Color
	Width float64
}

// Height implements Block
func (Rule) Height(Measurer, float64) float64 { return 0 }

// Emit implements Block
func (r Rule) Emit(c *Canvas, x, y, width float64) {
	c.Push(Op{Kind: OpLine, X: x, Y: y, W: x + width, H: y, Color: r.Color, LineWidth: r.Width})
}

// Image is a picture whose top edge sits at the cursor. The cursor advances
// by H even when Data is empty, so a missing asset leaves a gap.
type Image struct {
	Name  string
	Data  []byte
	W     float64
	H     float64
	Align Align
}

// Height implements Block
func (i Image) Height(Measurer, float64) float64 { return i.H }

// Emit implements Block
func (i Image) Emit(c *Canvas, x, y, width float64) {
	if len(i.Data) == 0 {
		return
	}
	ix := x
	switch i.Align {
	case AlignCenter:
		ix = x + (width-i.W)/2
	case AlignRight:
		ix = x + width - i.W
	}
	c.Push(Op{Kind: OpImage, X: ix, Y: y, W: i.W, H: i.H, ImageName: i.Name, Image: i.Data})
}

// Field is one labelled value
type Field struct {
	Label string
	Value string
}

// Fields is a column of label/value rows. With ValueAlign set to AlignRight
// the value is right-aligned to the content edge; otherwise it starts at
// ValueOffset.
type Fields struct {
	Rows        []Field
	LabelFont   Font
	ValueFont   Font
	Color       Color
	ValueOffset float64
	ValueAlign  Align
	RowHeight   float64
	OmitEmpty   bool
}

// Visible returns the rows that will be drawn
func (f Fields) Visible() []Field {
	if !f.OmitEmpty {
		return f.Rows
	}
	out := make([]Field, 0, len(f.Rows))
	for _, r := range f.Rows {
		if strings.TrimSpace(r.Value) != "" {
			out = append(out, r)
		}
	}
	return out
}

// Height implements Block
func (f Fields) Height(Measurer, float64) float64 {
	return float64(len(f.Visible())) * lineHeightFor(f.ValueFont, f.RowHeight)
}

// Emit implements Block
func (f Fields) Emit(c *Canvas, x, y, width float64) {
	rh := lineHeightFor(f.ValueFont, f.RowHeight)
	for i, row := range f.Visible() {
		by := y + float64(i)*rh
		c.Push(Op{Kind: OpText, X: x, Y: by, W: c.m.TextWidth(row.Label, f.LabelFont),
			Text: row.Label, Font: f.LabelFont, Color: f.Color})

		vx := x + f.ValueOffset
		if f.ValueAlign == AlignRight {
			vx = x + width - c.m.TextWidth(row.Value, f.ValueFont)
		}
		c.Push(Op{Kind: OpText, X: vx, Y: by, W: c.m.TextWidth(row.Value, f.ValueFont),
			Text: row.Value, Font: f.ValueFont, Color: f.Color})
	}
}

// FramedPhoto sits to the right of a Fields column. The frame is drawn even
// when the photo is missing.
type FramedPhoto struct {
	Fields      Fields
	Name        string
	Photo       []byte
	PhotoWidth  float64
	PhotoHeight float64
	FramePad    float64
	Gap         float64
}

// Height implements Block
func (p FramedPhoto) Height(m Measurer, width float64) float64 {
	h := p.Fields.Height(m, width)
	if ph := p.PhotoHeight + p.Gap; ph > h {
		return ph
	}
	return h
}

// Emit implements Block
func (p FramedPhoto) Emit(c *Canvas, x, y, width float64) {
	p.Fields.Emit(c, x, y, width)

	px := x + width - p.PhotoWidth
	c.Push(Op{Kind: OpRect, Style: RectStroke, LineWidth: 1, Color: Black,
		X: px - p.FramePad, Y: y - p.FramePad, W: p.PhotoWidth + 2*p.FramePad, H: p.PhotoHeight + 2*p.FramePad})
	if len(p.Photo) > 0 {
		c.Push(Op{Kind: OpImage, X: px, Y: y, W: p.PhotoWidth, H: p.PhotoHeight, ImageName: p.Name, Image: p.Photo})
	}
}

// SignatureBoxes places labelled empty boxes side by side
type SignatureBoxes struct {
	Labels    []string
	Font      Font
	Color     Color
	Spacing   float64
	BoxWidth  float64
	BoxHeight float64
	LabelGap  float64
}

// Height implements Block
func (s SignatureBoxes) Height(Measurer, float64) float64 {
	return s.LabelGap + s.BoxHeight + 10
}

// Emit implements Block
func (s SignatureBoxes) Emit(c *Canvas, x, y, _ float64) {
	for i, label := range s.Labels {
		bx := x + float64(i)*s.Spacing
		c.Push(Op{Kind: OpText, X: bx, Y: y, W: c.m.TextWidth(label, s.Font), Text: label, Font: s.Font, Color: s.Color})
		c.Push(Op{Kind: OpRect, Style: RectStroke, LineWidth: 1, Color: s.Color,
			X: bx, Y: y + s.LabelGap, W: s.BoxWidth, H: s.BoxHeight})
	}
}

// Panel is a shaded box holding a bulleted list. The box top sits Padding
// above the cursor, like a list started at the cursor with a background.
// A positive Width is drawn as given, even past the right margin; zero takes
// the content width.
type Panel struct {
	Items      []string
	Font       Font
	TextColor  Color
	Fill       Color
	Stroke     Color
	Width      float64
	ItemHeight float64
	Padding    float64
}

// Height implements Block
func (p Panel) Height(Measurer, float64) float64 {
	return float64(len(p.Items))*p.ItemHeight + 2*p.Padding
}

// Emit implements Block
func (p Panel) Emit(c *Canvas, x, y, width float64) {
	w := p.Width
	if w <= 0 {
		w = width
	}
	c.Push(Op{Kind: OpRect, Style: RectFillStroke, X: x, Y: y - p.Padding, W: w,
		H: float64(len(p.Items))*p.ItemHeight + 2*p.Padding, Fill: p.Fill, Color: p.Stroke, LineWidth: 1})

	for i, item := range p.Items {
		by := y + p.Font.Size + float64(i)*p.ItemHeight
		c.Push(Op{Kind: OpCircle, X: x + p.Padding + 5, Y: by - p.Font.Size/3, W: 2, Style: RectFill, Fill: p.TextColor})
		c.Push(Op{Kind: OpText, X: x + p.Padding + 15, Y: by, W: c.m.TextWidth(item, p.Font),
			Text: item, Font: p.Font, Color: p.TextColor})
	}
}
