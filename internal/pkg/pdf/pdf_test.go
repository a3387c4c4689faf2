package pdf

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedMeasurer treats every rune as half an em wide
type fixedMeasurer struct{}

func (fixedMeasurer) TextWidth(text string, f Font) float64 {
	return float64(utf8.RuneCountInString(text)) * f.Size * 0.5
}

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func sampleAdmitCard() AdmitCardData {
	return AdmitCardData{
		SerialNumber: "5d7c3c1e-0000-4000-8000-000000000001",
		ApplicantID:  "0b0c9a4e-1111-4111-8111-111111111111",
		StudentName:  "Aarav Sharma",
		DateOfBirth:  "01-01-2010",
		FatherName:   "Rakesh Sharma",
		Class:        "1st Class",
		Contact:      "9876543210",
		Address:      JoinAddress("House 12", "", "Kupwara", "Kupwara"),
		Issuer:       "Pioneer Institute of Learning",
		IssuedAt:     time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func sampleSummary() SummaryData {
	return SummaryData{
		SchoolName:       "PIONEER INSTITUTE OF LEARNING",
		Session:          "2025",
		Class:            "1st Class",
		Date:             "01-03-2025",
		StudentName:      "Aarav Sharma",
		DateOfBirth:      "01-01-2010",
		FatherName:       "Rakesh Sharma",
		MotherName:       "Sunita Sharma",
		EmergencyContact: "9876543210",
		District:         "Kupwara",
		Phones:           []string{"+919596298036", "+917006571090"},
		ContactEmail:     "office@example.com",
	}
}

func rowsByLabel(ops []Op) map[string]string {
	out := map[string]string{}
	texts := Texts(ops)
	for i := 0; i+1 < len(texts); i++ {
		if strings.HasSuffix(texts[i], ":") {
			out[texts[i]] = texts[i+1]
		}
	}
	return out
}

func TestHex(t *testing.T) {
	assert.Equal(t, Color{46, 134, 193}, Hex("#2E86C1"))
	assert.Equal(t, Color{51, 51, 51}, Hex("333333"))
	assert.Equal(t, Black, Hex("#zz"))
}

func TestJoinAddress(t *testing.T) {
	assert.Equal(t, "House 12, Kupwara", JoinAddress("House 12", " ", "", "Kupwara"))
	assert.Equal(t, "", JoinAddress("", ""))
}

func TestWrapText(t *testing.T) {
	f := Font{Size: 10}
	lines := wrapText(fixedMeasurer{}, "aaaa bbbb cccc", f, 50)
	assert.Equal(t, []string{"aaaa bbbb", "cccc"}, lines)
	assert.Nil(t, wrapText(fixedMeasurer{}, "   ", f, 50))
}

func TestLayout_PageBreak(t *testing.T) {
	doc := NewA4("t", 40, 50)
	doc.Border = &Border{Inset: 20, Width: 1}
	for i := 0; i < 60; i++ {
		doc.Add(Text{Content: "line", Font: Font{Size: 12}, LineHeight: 18})
	}

	ops := Layout(doc, fixedMeasurer{})
	assert.Equal(t, 2, PageCount(ops))

	var borders int
	for _, op := range ops {
		if op.Kind == OpText {
			assert.LessOrEqual(t, op.Y, doc.Height-doc.MarginBot)
		}
		if op.Kind == OpRect {
			borders++
		}
	}
	assert.Equal(t, 2, borders, "one border per page")
}

func TestAdmitCard_Layout(t *testing.T) {
	doc, err := AdmitCard(sampleAdmitCard(), Assets{})
	require.NoError(t, err)
	ops := Layout(doc, fixedMeasurer{})
	texts := Texts(ops)

	assert.Equal(t, 1, PageCount(ops))
	assert.Contains(t, texts, AdmitCardTitle)
	assert.Contains(t, texts, "Invigilator's Signature:")
	assert.Contains(t, texts, "Candidate's Signature:")
	assert.Contains(t, texts, "General Instructions for the Candidate")
	assert.Contains(t, texts, "1. Please bring this Admit Card and a valid Photo ID proof on the examination day.")
	assert.Contains(t, texts, "8. Keep your Admit Card safe; it may be required for further reference.")
	assert.Equal(t, admitCardClosing, texts[len(texts)-1])

	rows := rowsByLabel(ops)
	assert.Equal(t, "01-01-2010", rows["Date of Birth:"])
	assert.Equal(t, "House 12, Kupwara, Kupwara", rows["Address:"])
	assert.NotContains(t, rows, "PEN No:", "empty rows are omitted")
	assert.NotContains(t, rows, "Blood Group:")

	for _, op := range ops {
		if op.Kind == OpText && op.Text == "Name:" {
			assert.Equal(t, 40.0, op.X)
		}
		if op.Kind == OpText && op.Text == "Aarav Sharma" {
			assert.Equal(t, 190.0, op.X)
		}
	}
}

func TestAdmitCard_PhotoFrameAndQR(t *testing.T) {
	data := sampleAdmitCard()

	doc, err := AdmitCard(data, Assets{})
	require.NoError(t, err)
	ops := Layout(doc, fixedMeasurer{})

	var frames, images []Op
	for _, op := range ops {
		switch {
		case op.Kind == OpRect && op.W == 130 && op.H == 150:
			frames = append(frames, op)
		case op.Kind == OpImage:
			images = append(images, op)
		}
	}
	require.Len(t, frames, 1, "frame drawn without a photo")
	require.Len(t, images, 1, "only the QR code without photo and logo")
	assert.Equal(t, "qr", images[0].ImageName)
	assert.Equal(t, doc.Width-40-qrSize, images[0].X)

	data.Photo = tinyPNG(t)
	doc, err = AdmitCard(data, Assets{Logo: tinyPNG(t)})
	require.NoError(t, err)
	images = images[:0]
	for _, op := range Layout(doc, fixedMeasurer{}) {
		if op.Kind == OpImage {
			images = append(images, op)
		}
	}
	assert.Len(t, images, 3)
}

func TestAdmitCard_Payload(t *testing.T) {
	data := sampleAdmitCard()
	raw, err := json.Marshal(data.Payload())
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, map[string]string{
		"serialNumber": data.SerialNumber,
		"applicantId":  data.ApplicantID,
		"name":         "Aarav Sharma",
		"issuer":       "Pioneer Institute of Learning",
		"issuedAt":     "2025-03-01T10:00:00Z",
	}, decoded)
}

func TestApplicationSummary_Layout(t *testing.T) {
	t.Run("without guardian", func(t *testing.T) {
		ops := Layout(ApplicationSummary(sampleSummary(), Assets{}), fixedMeasurer{})
		texts := Texts(ops)

		assert.Contains(t, texts, "Registration Form - Session: 2025")
		assert.NotContains(t, texts, "Guardian's Name:")
		assert.Contains(t, texts, "Guardian's Signature: ________________________")
		assert.Contains(t, texts, "School Contacts: +919596298036 | +917006571090")
		assert.Contains(t, texts, "E-Mail ID: office@example.com")
		for _, doc := range RequiredDocuments {
			assert.Contains(t, texts, doc)
		}

		rows := rowsByLabel(ops)
		assert.Equal(t, "No", rows["Sibling Studying Here:"])
		assert.Equal(t, "N/A", rows["Sibling Name:"])
		assert.Equal(t, "N/A", rows["Sibling Class:"])
	})

	t.Run("with guardian and sibling", func(t *testing.T) {
		d := sampleSummary()
		d.GuardianName = "Mohan Lal"
		d.GuardianProfession = "Farmer"
		d.SiblingStudying = true
		d.SiblingName = "Anya"
		ops := Layout(ApplicationSummary(d, Assets{}), fixedMeasurer{})

		rows := rowsByLabel(ops)
		assert.Equal(t, "Mohan Lal", rows["Guardian's Name:"])
		assert.Equal(t, "Yes", rows["Sibling Studying Here:"])
		assert.Equal(t, "Anya", rows["Sibling Name:"])
		assert.Equal(t, "N/A", rows["Sibling Class:"])
	})

	t.Run("panel uses the palette", func(t *testing.T) {
		ops := Layout(ApplicationSummary(sampleSummary(), Assets{}), fixedMeasurer{})
		var panel *Op
		for i := range ops {
			if ops[i].Kind == OpRect && ops[i].Style == RectFillStroke {
				panel = &ops[i]
			}
		}
		require.NotNil(t, panel)
		assert.Equal(t, SecondaryColor, panel.Fill)
		assert.Equal(t, PrimaryColor, panel.Color)
		assert.Equal(t, 500.0, panel.W)
	})
}

func TestPanel_Width(t *testing.T) {
	c := &Canvas{m: fixedMeasurer{}}
	Panel{Items: []string{"one"}, Width: 500, ItemHeight: 20, Padding: 10}.Emit(c, 50, 100, 495.28)
	require.NotEmpty(t, c.ops)
	assert.Equal(t, 500.0, c.ops[0].W, "explicit width may overflow the margin")
	assert.Equal(t, 50.0, c.ops[0].X)

	c = &Canvas{m: fixedMeasurer{}}
	Panel{Items: []string{"one"}, ItemHeight: 20, Padding: 10}.Emit(c, 50, 100, 495.28)
	assert.Equal(t, 495.28, c.ops[0].W)
}

func TestLayout_Deterministic(t *testing.T) {
	first, err := AdmitCard(sampleAdmitCard(), Assets{})
	require.NoError(t, err)
	second, err := AdmitCard(sampleAdmitCard(), Assets{})
	require.NoError(t, err)

	assert.Equal(t, Layout(first, fixedMeasurer{}), Layout(second, fixedMeasurer{}))
}

func TestRenderer_Render(t *testing.T) {
	r := NewRenderer(nil)

	data := sampleAdmitCard()
	data.Photo = tinyPNG(t)
	doc, err := AdmitCard(data, Assets{Logo: []byte("not an image")})
	require.NoError(t, err)

	out, err := r.Render(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))

	again, err := r.Render(doc)
	require.NoError(t, err)
	assert.Equal(t, out, again, "same input renders to the same bytes")

	summary, err := r.Render(ApplicationSummary(sampleSummary(), Assets{}))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(summary, []byte("%PDF-")))
}

func TestRenderer_TruncatedPhoto(t *testing.T) {
	full := tinyPNG(t)
	truncated := full[:len(full)-20]
	_, _, err := image.DecodeConfig(bytes.NewReader(truncated))
	require.NoError(t, err, "header still parses")

	data := sampleAdmitCard()
	data.Photo = truncated
	doc, err := AdmitCard(data, Assets{})
	require.NoError(t, err)

	var out []byte
	require.NotPanics(t, func() {
		out, err = NewRenderer(nil).Render(doc)
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestLoadFontSet_Missing(t *testing.T) {
	_, err := LoadFontSet(t.TempDir())
	assert.Error(t, err)
}
