package pdf

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// AdmitCardTitle heads every admit card
const AdmitCardTitle = "Admission Entrance Examination Admit Card"

// AdmitCardInstructions are printed, numbered, under the signature boxes
var AdmitCardInstructions = []string{
	"Please bring this Admit Card and a valid Photo ID proof on the examination day.",
	"Arrive at the examination hall at least 30 minutes before the scheduled start time.",
	"Use only a blue or black ballpoint pen for filling in required details.",
	"Electronic devices (mobile phones, calculators) are strictly prohibited.",
	"Any form of misconduct will lead to immediate disqualification.",
	"Follow all instructions given by the invigilators and maintain proper decorum.",
	"No candidate will be allowed to leave the examination hall before the exam concludes.",
	"Keep your Admit Card safe; it may be required for further reference.",
}

const admitCardClosing = "This Admit Card is for the examination required for admission."

var admitCardBlue = Color{0, 102, 204}

// logo source is 1000x170
const (
	logoAspect     = 170.0 / 1000.0
	admitLogoWidth = 500.0
	qrSize         = 80.0
)

// AdmitCardData is everything printed on an admit card
type AdmitCardData struct {
	SerialNumber string
	ApplicantID  string
	StudentName  string
	DateOfBirth  string
	FatherName   string
	Class        string
	Contact      string
	Address      string
	PenNo        string
	BloodGroup   string
	Photo        []byte
	Issuer       string
	IssuedAt     time.Time
}

// Assets are shared images drawn on generated documents
type Assets struct {
	Logo []byte
}

// VerificationPayload is the JSON encoded in the admit card QR code
type VerificationPayload struct {
	SerialNumber string `json:"serialNumber"`
	ApplicantID  string `json:"applicantId"`
	Name         string `json:"name"`
	Issuer       string `json:"issuer"`
	IssuedAt     string `json:"issuedAt"`
}

// Payload returns the verification payload for d
func (d AdmitCardData) Payload() VerificationPayload {
	return VerificationPayload{
		SerialNumber: d.SerialNumber,
		ApplicantID:  d.ApplicantID,
		Name:         d.StudentName,
		Issuer:       d.Issuer,
		IssuedAt:     d.IssuedAt.UTC().Format(time.RFC3339),
	}
}

// JoinAddress joins the non-empty parts with ", "
func JoinAddress(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

// AdmitCard lays out an admit card for d
func AdmitCard(d AdmitCardData, assets Assets) (*Document, error) {
	payload, err := json.Marshal(d.Payload())
	if err != nil {
		return nil, fmt.Errorf("failed to encode verification payload: %w", err)
	}
	qr, err := QRCode(string(payload), 256)
	if err != nil {
		return nil, err
	}

	doc := NewA4(d.StudentName+" Admit Card", 40, 50)
	doc.Typeface = TypefaceCore
	doc.Border = &Border{Inset: 20, Color: admitCardBlue, Width: 1.5}
	doc.Stamps = []Stamp{{
		Name: "qr", Data: qr,
		X: doc.Width - doc.MarginX - qrSize, Y: doc.Height - doc.MarginX - qrSize,
		W: qrSize, H: qrSize,
	}}

	bold := func(size float64) Font { return Font{Role: RoleBody, Style: StyleBold, Size: size} }
	regular := func(size float64) Font { return Font{Role: RoleBody, Size: size} }
	rule := Rule{Color: admitCardBlue, Width: 2}

	doc.Add(
		Image{Name: "logo", Data: assets.Logo, W: admitLogoWidth, H: admitLogoWidth * logoAspect, Align: AlignCenter},
		Spacer(35),
		Text{Content: AdmitCardTitle, Font: bold(18), Color: admitCardBlue, Align: AlignCenter, LineHeight: 30},
		rule,
		Spacer(30),
		Text{Content: "Candidate Details", Font: bold(14), Color: Black, LineHeight: 20},
		FramedPhoto{
			Fields: Fields{
				Rows: []Field{
					{"Name:", d.StudentName},
					{"Date of Birth:", d.DateOfBirth},
					{"Father's Name:", d.FatherName},
					{"Class:", d.Class},
					{"Contact No.:", d.Contact},
					{"Address:", d.Address},
					{"PEN No:", d.PenNo},
					{"Blood Group:", d.BloodGroup},
				},
				LabelFont:   bold(12),
				ValueFont:   regular(12),
				Color:       Black,
				ValueOffset: 150,
				RowHeight:   18,
				OmitEmpty:   true,
			},
			Name:        "photo",
			Photo:       d.Photo,
			PhotoWidth:  120,
			PhotoHeight: 140,
			FramePad:    5,
			Gap:         20,
		},
		Spacer(20),
		rule,
		Spacer(30),
		SignatureBoxes{
			Labels:    []string{"Invigilator's Signature:", "Candidate's Signature:"},
			Font:      bold(12),
			Color:     Black,
			Spacing:   250,
			BoxWidth:  150,
			BoxHeight: 40,
			LabelGap:  10,
		},
		rule,
		Spacer(30),
		Text{Content: "General Instructions for the Candidate", Font: bold(14), Color: admitCardBlue, LineHeight: 20},
	)

	for i, line := range AdmitCardInstructions {
		doc.Add(Text{
			Content:    fmt.Sprintf("%d. %s", i+1, line),
			Font:       regular(10),
			Color:      Black,
			LineHeight: 14,
			Wrap:       true,
		})
	}

	doc.Add(
		Spacer(10),
		Text{Content: admitCardClosing, Font: Font{Role: RoleBody, Style: StyleItalic, Size: 12}, Color: Red, Align: AlignCenter},
	)

	return doc, nil
}
