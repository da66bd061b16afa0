package models

// Address is the company address printed on report banners and footers.
type Address struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement,omitempty"`
	Zip        string `json:"zip"`
	City       string `json:"city"`
	State      string `json:"state"`
}

// Contact holds the contact lines printed on reports.
type Contact struct {
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Website string `json:"website,omitempty"`
}

// Logo is an uploaded company logo, kept base64-encoded so the whole
// letterhead record serializes as one JSON document.
type Logo struct {
	ImageData string `json:"image_data"`
	FileName  string `json:"file_name"`
	MimeType  string `json:"mime_type"`
}

// Theme controls report colors and the page watermark.
type Theme struct {
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
	ShowWatermark  bool   `json:"show_watermark"`
}

// LetterheadConfig is the persisted company-identity singleton used to
// brand every generated report.
type LetterheadConfig struct {
	LegalName      string  `json:"legal_name"`
	TaxID          string  `json:"tax_id"`
	Address        Address `json:"address"`
	Contact        Contact `json:"contact"`
	Logo           *Logo   `json:"logo,omitempty"`
	Theme          Theme   `json:"theme"`
	SequenceNumber int     `json:"sequence_number"`
	ReportPrefix   string  `json:"report_prefix"`
}

// LetterheadUpdate is a partial update; nil fields keep their current value.
// The merge is shallow: a supplied Address or Contact replaces the whole
// nested record.
type LetterheadUpdate struct {
	LegalName    *string  `json:"legal_name,omitempty"`
	TaxID        *string  `json:"tax_id,omitempty"`
	Address      *Address `json:"address,omitempty"`
	Contact      *Contact `json:"contact,omitempty"`
	Theme        *Theme   `json:"theme,omitempty"`
	ReportPrefix *string  `json:"report_prefix,omitempty"`
}

// DefaultLetterhead returns the factory letterhead record. Loaded records
// are merged over this, so fields missing from older saves keep working.
func DefaultLetterhead() LetterheadConfig {
	return LetterheadConfig{
		LegalName: "Unique Assessoria Empresarial",
		TaxID:     "00.000.000/0001-00",
		Address: Address{
			Street: "Rua das Empresas",
			Number: "123",
			Zip:    "00000-000",
			City:   "São Paulo",
			State:  "SP",
		},
		Contact: Contact{
			Phone:   "(11) 9999-9999",
			Email:   "contato@uniqueassessoria.com",
			Website: "www.uniqueassessoria.com",
		},
		Theme: Theme{
			PrimaryColor:   "#3b82f6",
			SecondaryColor: "#64748b",
			ShowWatermark:  true,
		},
		SequenceNumber: 1,
		ReportPrefix:   "UC",
	}
}
