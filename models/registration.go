package models

import "encoding/json"

// MatterLevels is the registration API's wire shape for a taught subject: the
// API calls subjects "matters".
type MatterLevels struct {
	MatterID int   `json:"matterId"`
	LevelIDs []int `json:"levelIds"`
}

// RegistrationPayload is the fully assembled record sent to the registration
// collaborator. For the parent flow the identity fields already carry the
// child's name and grade; the parent only survives in the metadata fields.
type RegistrationPayload struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	AccountType string `json:"accountType"` // "student" or "teacher"

	// Student extension.
	Grade       string `json:"grade,omitempty"`
	ParentPhone string `json:"parentPhone,omitempty"`
	SponsorCode string `json:"sponsorCode,omitempty"`

	// Teacher extension.
	TeacherType     string         `json:"teacherType,omitempty"`
	Matters         []MatterLevels `json:"matters,omitempty"`
	Phone           string         `json:"phone,omitempty"`
	IDDocumentURL   string         `json:"idDocumentUrl,omitempty"`
	AddressProofURL string         `json:"addressProofUrl,omitempty"`
	BankToken       string         `json:"bankToken,omitempty"`
	Address         string         `json:"address,omitempty"`
	PostalCode      string         `json:"postalCode,omitempty"`
	City            string         `json:"city,omitempty"`
	BirthDate       string         `json:"birthDate,omitempty"`
}

// APIEnvelope is the {success, data?, error?} envelope every collaborator
// responds with.
type APIEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// CreatedAccount is the registration collaborator's success payload.
type CreatedAccount struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	AccountType string `json:"accountType"`
}

// Subject and Level populate the teacher-subjects step choices.
type Subject struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Level struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
