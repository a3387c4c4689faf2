package pdf

// OpKind identifies a drawing primitive
type OpKind int

const (
	OpText OpKind = iota
	OpLine
	OpRect
	OpCircle
	OpImage
)

// RectStyle is the paint mode for rectangles and circles
type RectStyle string

const (
	RectStroke     RectStyle = "D"
	RectFill       RectStyle = "F"
	RectFillStroke RectStyle = "FD"
)

// Op is one positioned drawing primitive. Text ops are positioned by their
// baseline; rects and images by their top-left corner. For lines, (X, Y) is
// the start and (W, H) the end point.
type Op struct {
	Page      int
	Kind      OpKind
	X, Y      float64
	W, H      float64
	Text      string
	Font      Font
	Color     Color
	Fill      Color
	LineWidth float64
	Style     RectStyle
	Underline bool
	ImageName string
	Image     []byte
}

// Measurer reports the rendered width of a string in a font
type Measurer interface {
	TextWidth(text string, font Font) float64
}

// Block is a unit of flowing content. Height is how far the cursor advances
// past the block; Emit draws it with the cursor at y.
type Block interface {
	Height(m Measurer, width float64) float64
	Emit(c *Canvas, x, y, width float64)
}

// Canvas collects ops for the page currently being laid out
type Canvas struct {
	m    Measurer
	page int
	ops  []Op
}

// Measurer returns the measurer used for this layout pass
func (c *Canvas) Measurer() Measurer {
	return c.m
}

// Push appends op on the current page
func (c *Canvas) Push(op Op) {
	op.Page = c.page
	c.ops = append(c.ops, op)
}

// Layout places every block of doc top to bottom, starting a new page when
// a block does not fit, then adds the border to each page and the stamps to
// the first. The result depends only on doc and m.
func Layout(doc *Document, m Measurer) []Op {
	c := &Canvas{m: m}
	width := doc.ContentWidth()
	top := doc.MarginTop
	bottom := doc.Height - doc.MarginBot
	y := top

	for _, b := range doc.Blocks {
		h := b.Height(m, width)
		if y+h > bottom && y > top {
			c.page++
			y = top
		}
		b.Emit(c, doc.MarginX, y, width)
		y += h
	}

	pages := c.page + 1
	if doc.Border != nil {
		bd := doc.Border
		for p := 0; p < pages; p++ {
			c.ops = append(c.ops, Op{
				Page: p, Kind: OpRect, Style: RectStroke,
				X: bd.Inset, Y: bd.Inset, W: doc.Width - 2*bd.Inset, H: doc.Height - 2*bd.Inset,
				Color: bd.Color, LineWidth: bd.Width,
			})
		}
	}
	for _, s := range doc.Stamps {
		if len(s.Data) == 0 {
			continue
		}
		c.ops = append(c.ops, Op{
			Page: 0, Kind: OpImage, ImageName: s.Name, Image: s.Data,
			X: s.X, Y: s.Y, W: s.W, H: s.H,
		})
	}

	return c.ops
}

// PageCount returns the number of pages referenced by ops
func PageCount(ops []Op) int {
	n := 0
	for _, op := range ops {
		if op.Page+1 > n {
			n = op.Page + 1
		}
	}
	if n == 0 {
		n = 1
	}
	return n
}

// Texts returns the text of every text op in order
func Texts(ops []Op) []string {
	var out []string
	for _, op := range ops {
		if op.Kind == OpText {
			out = append(out, op.Text)
		}
	}
	return out
}
