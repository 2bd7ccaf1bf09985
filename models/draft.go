package models

// Account roles selectable at wizard entry.
const (
	RoleStudent = "student"
	RoleParent  = "parent"
	RoleTeacher = "teacher"
)

// Teacher sub-variants selected at the teacher-type step.
const (
	TeacherTypeStudent      = "student-teacher"
	TeacherTypeProfessional = "professional-teacher"
)

// Semantic tags for documents staged during the teacher flow.
const (
	DocumentTagID           = "id"
	DocumentTagAddressProof = "home-certificate"
)

// Grades lists the supported school levels, youngest first.
var Grades = []string{
	"cp", "ce1", "ce2", "cm1", "cm2",
	"6eme", "5eme", "4eme", "3eme",
	"seconde", "premiere", "terminale",
}

// SubjectSelection pairs a taught subject with the school levels the teacher
// covers for it. An entry may exist with no levels while the user is still
// picking; the step stays invalid until every entry has at least one.
type SubjectSelection struct {
	SubjectID int   `json:"subjectId"`
	LevelIDs  []int `json:"levelIds"`
}

// FileHandle references a document staged on disk, waiting for upload at
// submission. UploadedURL is set once the storage collaborator has accepted
// the file; a handle carrying an URL is reused on resubmit instead of being
// uploaded again.
type FileHandle struct {
	Tag         string `json:"tag"`
	Filename    string `json:"filename"`
	LocalPath   string `json:"localPath"`
	UploadedURL string `json:"uploadedUrl,omitempty"`
}

// RegistrationDraft is the single mutable record threaded through the wizard.
// All fields are optional until validated at their owning step. It lives only
// inside the wizard session and is discarded once submission succeeds.
type RegistrationDraft struct {
	// Identity.
	FirstName    string `json:"firstName,omitempty"`
	LastName     string `json:"lastName,omitempty"`
	Email        string `json:"email,omitempty"`
	ConfirmEmail string `json:"confirmEmail,omitempty"`

	// Credentials. Never persisted outside the session until submission.
	Password        string `json:"password,omitempty"`
	ConfirmPassword string `json:"confirmPassword,omitempty"`

	// Student / parent specifics.
	Grade          string `json:"grade,omitempty"`
	ChildFirstName string `json:"childFirstName,omitempty"`
	ChildLastName  string `json:"childLastName,omitempty"`
	ChildGrade     string `json:"childGrade,omitempty"`

	// Contact.
	Phone       string `json:"phone,omitempty"`
	SponsorCode string `json:"sponsorCode,omitempty"`

	// Teacher specifics.
	Subjects     []SubjectSelection `json:"subjects,omitempty"`
	IDDocument   *FileHandle        `json:"idDocument,omitempty"`
	AddressProof *FileHandle        `json:"addressProof,omitempty"`

	// Teacher banking.
	IBAN       string `json:"iban,omitempty"`
	Address    string `json:"address,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	City       string `json:"city,omitempty"`
	BirthDate  string `json:"birthDate,omitempty"`
}

// DraftPatch carries field-level updates from a step. Only non-nil fields are
// merged into the draft, last write wins; validation is a separate read-only
// query and never happens here.
type DraftPatch struct {
	FirstName       *string             `json:"firstName,omitempty"`
	LastName        *string             `json:"lastName,omitempty"`
	Email           *string             `json:"email,omitempty"`
	ConfirmEmail    *string             `json:"confirmEmail,omitempty"`
	Password        *string             `json:"password,omitempty"`
	ConfirmPassword *string             `json:"confirmPassword,omitempty"`
	TeacherType     *string             `json:"teacherType,omitempty"`
	Grade           *string             `json:"grade,omitempty"`
	ChildFirstName  *string             `json:"childFirstName,omitempty"`
	ChildLastName   *string             `json:"childLastName,omitempty"`
	ChildGrade      *string             `json:"childGrade,omitempty"`
	Phone           *string             `json:"phone,omitempty"`
	SponsorCode     *string             `json:"sponsorCode,omitempty"`
	Subjects        *[]SubjectSelection `json:"subjects,omitempty"`
	IBAN            *string             `json:"iban,omitempty"`
	Address         *string             `json:"address,omitempty"`
	PostalCode      *string             `json:"postalCode,omitempty"`
	City            *string             `json:"city,omitempty"`
	BirthDate       *string             `json:"birthDate,omitempty"`
}
