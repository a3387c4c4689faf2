package pdf

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/pioneer/admissions/internal/pkg/logger"
)

// Custom font files looked up in the font directory
const (
	fontFileRegular  = "Montserrat-Regular.ttf"
	fontFileSemiBold = "Montserrat-SemiBold.ttf"
	fontFileBold     = "Montserrat-Bold.ttf"

	familyCustom         = "Montserrat"
	familyCustomSemiBold = "MontserratSemiBold"
	familyCore           = "Helvetica"
)

// FontSet holds the TrueType data for the custom typeface
type FontSet struct {
	Regular  []byte
	SemiBold []byte
	Bold     []byte
}

// LoadFontSet reads the custom typeface from dir
func LoadFontSet(dir string) (*FontSet, error) {
	read := func(name string) ([]byte, error) {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read font %s: %w", name, err)
		}
		return data, nil
	}

	var fs FontSet
	var err error
	if fs.Regular, err = read(fontFileRegular); err != nil {
		return nil, err
	}
	if fs.SemiBold, err = read(fontFileSemiBold); err != nil {
		return nil, err
	}
	if fs.Bold, err = read(fontFileBold); err != nil {
		return nil, err
	}
	return &fs, nil
}

// Renderer draws laid-out documents with fpdf
type Renderer struct {
	fonts *FontSet
	// Created is stamped as the creation and modification date so that
	// rendering the same document twice gives the same bytes.
	Created time.Time
}

// NewRenderer creates a renderer. fonts may be nil, in which case every
// document uses the built-in Helvetica.
func NewRenderer(fonts *FontSet) *Renderer {
	return &Renderer{
		fonts:   fonts,
		Created: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Render lays out doc and returns the finished PDF bytes. Nothing is
// written to disk.
func (r *Renderer) Render(doc *Document) ([]byte, error) {
	custom := doc.Typeface == TypefaceCustom && r.fonts != nil
	b := r.newBackend(doc, custom)
	if custom && b.pdf.Err() {
		logger.Warn().Err(b.pdf.Error()).Msg("Custom fonts could not be loaded, falling back to Helvetica")
		b = r.newBackend(doc, false)
	}

	ops := Layout(doc, b)
	for page := 0; page < PageCount(ops); page++ {
		b.pdf.AddPage()
		for i := range ops {
			if ops[i].Page == page {
				b.draw(&ops[i])
			}
		}
	}

	var buf bytes.Buffer
	if err := b.pdf.Output(&buf); err != nil {
		logger.Error().Err(err).Str("document", doc.Title).Msg("Failed to render PDF")
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

type fpdfBackend struct {
	pdf       *fpdf.Fpdf
	custom    bool
	translate func(string) string
	images    map[string]bool
}

func (r *Renderer) newBackend(doc *Document, custom bool) *fpdfBackend {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: doc.Width, Ht: doc.Height},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetCreationDate(r.Created)
	pdf.SetModificationDate(r.Created)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(doc.Title, true)

	b := &fpdfBackend{pdf: pdf, custom: custom, images: map[string]bool{}}
	if custom {
		pdf.AddUTF8FontFromBytes(familyCustom, "", r.fonts.Regular)
		pdf.AddUTF8FontFromBytes(familyCustom, "B", r.fonts.Bold)
		pdf.AddUTF8FontFromBytes(familyCustomSemiBold, "", r.fonts.SemiBold)
		b.translate = func(s string) string { return s }
	} else {
		b.translate = pdf.UnicodeTranslatorFromDescriptor("")
	}
	return b
}

func (b *fpdfBackend) setFont(f Font) {
	if b.custom {
		switch {
		case f.Role == RoleHeader, strings.Contains(f.Style, StyleBold):
			b.pdf.SetFont(familyCustom, "B", f.Size)
		case f.Role == RoleSubHeader:
			b.pdf.SetFont(familyCustomSemiBold, "", f.Size)
		default:
			b.pdf.SetFont(familyCustom, "", f.Size)
		}
		return
	}

	style := f.Style
	if f.Role != RoleBody && !strings.Contains(style, StyleBold) {
		style += StyleBold
	}
	b.pdf.SetFont(familyCore, style, f.Size)
}

// TextWidth implements Measurer
func (b *fpdfBackend) TextWidth(text string, f Font) float64 {
	b.setFont(f)
	return b.pdf.GetStringWidth(b.translate(text))
}

func (b *fpdfBackend) draw(op *Op) {
	pdf := b.pdf
	switch op.Kind {
	case OpText:
		b.setFont(op.Font)
		pdf.SetTextColor(op.Color.R, op.Color.G, op.Color.B)
		pdf.Text(op.X, op.Y, b.translate(op.Text))
		if op.Underline {
			pdf.SetDrawColor(op.Color.R, op.Color.G, op.Color.B)
			pdf.SetLineWidth(0.75)
			pdf.Line(op.X, op.Y+2, op.X+op.W, op.Y+2)
		}
	case OpLine:
		pdf.SetDrawColor(op.Color.R, op.Color.G, op.Color.B)
		pdf.SetLineWidth(op.LineWidth)
		pdf.Line(op.X, op.Y, op.W, op.H)
	case OpRect:
		pdf.SetDrawColor(op.Color.R, op.Color.G, op.Color.B)
		pdf.SetFillColor(op.Fill.R, op.Fill.G, op.Fill.B)
		pdf.SetLineWidth(op.LineWidth)
		pdf.Rect(op.X, op.Y, op.W, op.H, string(op.Style))
	case OpCircle:
		pdf.SetFillColor(op.Fill.R, op.Fill.G, op.Fill.B)
		pdf.Circle(op.X, op.Y, op.W, string(op.Style))
	case OpImage:
		if name, ok := b.registerImage(op.ImageName, op.Image); ok {
			pdf.ImageOptions(name, op.X, op.Y, op.W, op.H, false, fpdf.ImageOptions{}, 0, "")
		}
	}
}

// registerImage hands image data to fpdf once per name. Data that does not
// fully decode as PNG or JPEG is skipped with a warning instead of failing
// the whole document.
func (b *fpdfBackend) registerImage(name string, data []byte) (string, bool) {
	if done, seen := b.images[name]; seen {
		return name, done
	}

	_, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		logger.Warn().Err(err).Str("image", name).Msg("Skipping unreadable image")
		b.images[name] = false
		return name, false
	}

	imageType := "PNG"
	if format == "jpeg" {
		imageType = "JPG"
	}
	if err := b.safeRegister(name, imageType, data); err != nil {
		logger.Warn().Err(err).Str("image", name).Msg("Skipping image the PDF writer could not parse")
		b.images[name] = false
		return name, false
	}
	if b.pdf.Err() {
		logger.Warn().Err(b.pdf.Error()).Str("image", name).Msg("Skipping image the PDF writer rejected")
		b.pdf.ClearError()
		b.images[name] = false
		return name, false
	}

	b.images[name] = true
	return name, true
}

// safeRegister turns a panic inside fpdf's image parser into an error.
func (b *fpdfBackend) safeRegister(name, imageType string, data []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("image parser panicked: %v", r)
		}
	}()
	b.pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: imageType}, bytes.NewReader(data))
	return nil
}
