package pdf

import (
	"strings"
)

// Application summary palette
var (
	PrimaryColor   = Hex("#2E86C1")
	SecondaryColor = Hex("#A9CCE3")
	TextColor      = Hex("#333333")
)

// RequiredDocuments are listed in the shaded box of the application summary
var RequiredDocuments = []string{
	"D.O.B certificate from competent authority.",
	"Blood Group Report / Weight / Height.",
	"Aadhar Card (Xerox).",
	"Passport Size Photographs (06).",
	"Marks Certificate of Previous Class.",
	"School Leaving Certificate.",
}

const notAvailable = "N/A"

// SummaryData is everything printed on an application summary
type SummaryData struct {
	SchoolName string
	Session    string

	Class string
	Date  string

	StudentName string
	DateOfBirth string
	LastSchool  string

	FatherName         string
	FatherProfession   string
	FatherContact      string
	MotherName         string
	MotherProfession   string
	MotherContact      string
	GuardianName       string
	GuardianProfession string

	EmergencyContact string
	Residence        string
	Village          string
	Tehsil           string
	District         string

	SiblingStudying bool
	SiblingName     string
	SiblingClass    string

	Phones       []string
	ContactEmail string
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return notAvailable
	}
	return s
}

// ApplicationSummary lays out the printable registration form for d
func ApplicationSummary(d SummaryData, assets Assets) *Document {
	doc := NewA4("Application "+d.StudentName, 50, 50)
	doc.Typeface = TypefaceCustom
	if len(assets.Logo) > 0 {
		doc.Stamps = []Stamp{{Name: "logo", Data: assets.Logo, X: 50, Y: 20, W: 100, H: 100 * logoAspect}}
	}

	body := Font{Role: RoleBody, Size: 12}
	heading := func(title string) Block {
		return Text{Content: title, Font: Font{Role: RoleSubHeader, Size: 14}, Color: PrimaryColor, Underline: true, LineHeight: 21}
	}
	section := func(title string, rows ...Field) []Block {
		return []Block{
			heading(title),
			Fields{Rows: rows, LabelFont: body, ValueFont: body, Color: TextColor, ValueAlign: AlignRight, RowHeight: 15},
			Spacer(12),
		}
	}

	doc.Add(
		Spacer(30),
		Text{Content: d.SchoolName, Font: Font{Role: RoleHeader, Size: 20}, Color: PrimaryColor, Align: AlignCenter, LineHeight: 24},
		Text{Content: "Registration Form - Session: " + d.Session, Font: Font{Role: RoleSubHeader, Size: 14}, Color: TextColor, Align: AlignCenter, LineHeight: 22},
		Rule{Color: PrimaryColor, Width: 2},
		Spacer(20),
	)

	doc.Add(section("Application Details",
		Field{"Admission Sought For:", d.Class},
		Field{"Date:", d.Date},
	)...)

	doc.Add(section("Personal Information",
		Field{"Student Name:", d.StudentName},
		Field{"Date of Birth:", d.DateOfBirth},
		Field{"Last School Attended:", d.LastSchool},
	)...)

	parents := []Field{
		{"Father's Name:", d.FatherName},
		{"Father's Profession:", d.FatherProfession},
		{"Father's Contact:", d.FatherContact},
		{"Mother's Name:", d.MotherName},
		{"Mother's Profession:", d.MotherProfession},
		{"Mother's Contact:", d.MotherContact},
	}
	if strings.TrimSpace(d.GuardianName) != "" {
		parents = append(parents,
			Field{"Guardian's Name:", d.GuardianName},
			Field{"Guardian's Profession:", d.GuardianProfession},
		)
	}
	doc.Add(section("Parent/Guardian Details", parents...)...)

	doc.Add(section("Contact Details",
		Field{"Emergency Contact No:", d.EmergencyContact},
		Field{"Residence:", d.Residence},
		Field{"Village/Town:", d.Village},
		Field{"Tehsil:", d.Tehsil},
		Field{"District:", d.District},
	)...)

	studying := "No"
	if d.SiblingStudying {
		studying = "Yes"
	}
	doc.Add(section("Sibling Information",
		Field{"Sibling Studying Here:", studying},
		Field{"Sibling Name:", orNA(d.SiblingName)},
		Field{"Sibling Class:", orNA(d.SiblingClass)},
	)...)

	doc.Add(heading("Signatures"))
	for _, who := range []string{"Father's", "Mother's", "Guardian's"} {
		doc.Add(Text{Content: who + " Signature: ________________________", Font: body, Color: TextColor, LineHeight: 21})
	}
	doc.Add(Spacer(12))

	doc.Add(
		Text{Content: "Documents Required at the Time of Interview/Interaction:", Font: Font{Role: RoleSubHeader, Size: 14},
			Color: PrimaryColor, Underline: true, LineHeight: 21, Wrap: true},
		Spacer(4),
		Panel{
			Items:      RequiredDocuments,
			Font:       body,
			TextColor:  TextColor,
			Fill:       SecondaryColor,
			Stroke:     PrimaryColor,
			Width:      500,
			ItemHeight: 20,
			Padding:    10,
		},
		Spacer(14),
	)

	footer := Font{Role: RoleBody, Size: 10}
	doc.Add(Text{Content: "Note: Students must be accompanied by their parents at the time of Interview.",
		Font: footer, Color: TextColor, Align: AlignCenter, LineHeight: 15, Wrap: true})
	if len(d.Phones) > 0 {
		doc.Add(Text{Content: "School Contacts: " + strings.Join(d.Phones, " | "),
			Font: footer, Color: TextColor, Align: AlignCenter, LineHeight: 13, Wrap: true})
	}
	if d.ContactEmail != "" {
		doc.Add(Text{Content: "E-Mail ID: " + d.ContactEmail, Font: footer, Color: TextColor, Align: AlignCenter, LineHeight: 13})
	}

	return doc
}
