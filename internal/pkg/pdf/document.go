// Package pdf builds printable documents as a list of layout blocks, places
// them with a single layout pass and draws the result with an fpdf backend.
package pdf

import (
	"strconv"
	"strings"
)

// A4 dimensions in points
const (
	A4Width  = 595.28
	A4Height = 841.89
)

// Color is an RGB triple, 0-255 per channel
type Color struct {
	R, G, B int
}

var (
	Black = Color{0, 0, 0}
	Red   = Color{255, 0, 0}
)

// Hex parses "#RRGGBB"; malformed input yields black.
func Hex(s string) Color {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return Black
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Black
	}
	return Color{int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)}
}

// FontRole selects a face from the active typeface
type FontRole int

const (
	RoleBody FontRole = iota
	RoleSubHeader
	RoleHeader
)

// Font style flags, combinable as in "BI"
const (
	StyleRegular = ""
	StyleBold    = "B"
	StyleItalic  = "I"
)

// Font describes how a run of text is set
type Font struct {
	Role  FontRole
	Style string
	Size  float64
}

// Align is horizontal alignment within the content box
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Typeface chooses between the built-in PDF fonts and the custom font set
type Typeface int

const (
	TypefaceCore Typeface = iota
	TypefaceCustom
)

// Border is a rectangle drawn inset from the page edge on every page
type Border struct {
	Inset float64
	Color Color
	Width float64
}

// Stamp is an image placed at an absolute position on the first page
type Stamp struct {
	Name string
	Data []byte
	X, Y float64
	W, H float64
}

// Document is an ordered list of flowing blocks plus fixed decorations.
type Document struct {
	Title     string
	Width     float64
	Height    float64
	MarginX   float64
	MarginTop float64
	MarginBot float64
	Typeface  Typeface
	Border    *Border
	Stamps    []Stamp
	Blocks    []Block
}

// NewA4 creates an empty A4 portrait document
func NewA4(title string, marginX, marginTop float64) *Document {
	return &Document{
		Title:     title,
		Width:     A4Width,
		Height:    A4Height,
		MarginX:   marginX,
		MarginTop: marginTop,
		MarginBot: marginTop,
	}
}

// Add appends blocks and returns the document for chaining
func (d *Document) Add(blocks ...Block) *Document {
	d.Blocks = append(d.Blocks, blocks...)
	return d
}

// ContentWidth is the page width inside the horizontal margins
func (d *Document) ContentWidth() float64 {
	return d.Width - 2*d.MarginX
}
