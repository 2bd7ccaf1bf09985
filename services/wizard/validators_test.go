package wizard

import (
	"testing"

	"tutorhub/models"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("a@b.com"))
	assert.True(t, ValidEmail("prenom.nom@ecole.fr"))
	assert.False(t, ValidEmail("a@b"))
	assert.False(t, ValidEmail("a b@c.fr"))
	assert.False(t, ValidEmail(""))
}

func TestBasicInfoValid(t *testing.T) {
	valid := models.RegistrationDraft{
		FirstName:    "Alice",
		LastName:     "Martin",
		Email:        "a@b.com",
		ConfirmEmail: "a@b.com",
	}

	tests := []struct {
		name   string
		mutate func(d *models.RegistrationDraft)
		want   bool
	}{
		{"all set and matching", func(d *models.RegistrationDraft) {}, true},
		{"blank first name", func(d *models.RegistrationDraft) { d.FirstName = "" }, false},
		{"whitespace last name", func(d *models.RegistrationDraft) { d.LastName = "   " }, false},
		{"email mismatch", func(d *models.RegistrationDraft) { d.ConfirmEmail = "other@b.com" }, false},
		{"bad email format", func(d *models.RegistrationDraft) { d.Email = "nope"; d.ConfirmEmail = "nope" }, false},
		{"blank confirm", func(d *models.RegistrationDraft) { d.ConfirmEmail = "" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)
			assert.Equal(t, tt.want, BasicInfoValid(&d))
		})
	}
}

func TestValidPassword(t *testing.T) {
	tests := []struct {
		pw   string
		want bool
	}{
		{"Abcdef12", true},
		{"abcdefgh", false},     // no uppercase, no digit
		{"Abcdefgh", false},     // no digit or symbol
		{"Abc12", false},        // too short
		{"ABCDEFG!", true},      // symbol counts as digit-or-symbol
		{"abcdefg1", false},     // no uppercase
		{"Abcdefg_", true},      // underscore counts as symbol
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidPassword(tt.pw), "password %q", tt.pw)
	}
}

func TestPasswordStepValid(t *testing.T) {
	d := models.RegistrationDraft{Password: "Abcdef12", ConfirmPassword: "Abcdef12"}
	assert.True(t, PasswordStepValid(&d))

	d.ConfirmPassword = "Abcdef13"
	assert.False(t, PasswordStepValid(&d))

	d = models.RegistrationDraft{Password: "abcdefgh", ConfirmPassword: "abcdefgh"}
	assert.False(t, PasswordStepValid(&d))
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "06 12 34 56 78", NormalizePhone("0612345678"))
	assert.Equal(t, "06 12 34", NormalizePhone("06-12.34"))
	// Inputs longer than 10 digits are truncated before formatting.
	assert.Equal(t, "06 12 34 56 78", NormalizePhone("06123456789999"))
	assert.Equal(t, "", NormalizePhone(""))
	assert.Equal(t, "06 12 34 56 78", NormalizePhone("06 12 34 56 78"))
}

func TestValidPhone(t *testing.T) {
	assert.True(t, ValidPhone("0612345678"))
	assert.True(t, ValidPhone("06 12 34 56 78"))
	assert.False(t, ValidPhone("061234567"))
	assert.False(t, ValidPhone("06123456789"))
	assert.False(t, ValidPhone(""))
}

func TestTeacherSubjectsValid(t *testing.T) {
	d := models.RegistrationDraft{}
	assert.False(t, TeacherSubjectsValid(&d), "empty set is invalid")

	d.Subjects = []models.SubjectSelection{{SubjectID: 1, LevelIDs: []int{}}}
	assert.False(t, TeacherSubjectsValid(&d), "entry without levels is invalid")

	d.Subjects = []models.SubjectSelection{{SubjectID: 1, LevelIDs: []int{2}}}
	assert.True(t, TeacherSubjectsValid(&d))

	d.Subjects = append(d.Subjects, models.SubjectSelection{SubjectID: 2})
	assert.False(t, TeacherSubjectsValid(&d), "one incomplete entry invalidates the step")

	d.Subjects = []models.SubjectSelection{
		{SubjectID: 1, LevelIDs: []int{2}},
		{SubjectID: 1, LevelIDs: []int{3}},
	}
	assert.False(t, TeacherSubjectsValid(&d), "duplicate subject entries are invalid")
}

func TestValidIBAN(t *testing.T) {
	assert.True(t, ValidIBAN("FR7630006000011234567890189"))
	assert.True(t, ValidIBAN("fr76 3000 6000 0112 3456 7890 189"), "spaces and case are normalized")
	assert.False(t, ValidIBAN("GB7630006000011234567890189"), "wrong country prefix")
	assert.False(t, ValidIBAN("FR76300060000112345678901"), "too short")
	assert.False(t, ValidIBAN("FR763000600001123456789018900"), "too long")
	assert.False(t, ValidIBAN(""))
}

func TestValidPostalCode(t *testing.T) {
	assert.True(t, ValidPostalCode("75011"))
	assert.False(t, ValidPostalCode("7501"))
	assert.False(t, ValidPostalCode("750111"))
	assert.False(t, ValidPostalCode("7501a"))
}

func TestTeacherContactValid(t *testing.T) {
	d := models.RegistrationDraft{Phone: "06 12 34 56 78"}
	assert.False(t, TeacherContactValid(&d), "both documents required")

	d.IDDocument = &models.FileHandle{Tag: models.DocumentTagID, LocalPath: "/tmp/id.pdf"}
	assert.False(t, TeacherContactValid(&d), "address proof still missing")

	d.AddressProof = &models.FileHandle{Tag: models.DocumentTagAddressProof, LocalPath: "/tmp/proof.pdf"}
	assert.True(t, TeacherContactValid(&d))

	d.Phone = ""
	assert.False(t, TeacherContactValid(&d))
}

func TestTeacherStripeValid(t *testing.T) {
	valid := models.RegistrationDraft{
		IBAN:       "FR7630006000011234567890189",
		Address:    "1 rue de la Paix",
		PostalCode: "75002",
		City:       "Paris",
		BirthDate:  "1990-04-12",
	}
	assert.True(t, TeacherStripeValid(&valid))

	d := valid
	d.IBAN = "GB7630006000011234567890189"
	assert.False(t, TeacherStripeValid(&d))

	d = valid
	d.PostalCode = "750"
	assert.False(t, TeacherStripeValid(&d))

	d = valid
	d.City = ""
	assert.False(t, TeacherStripeValid(&d))
}

func TestAdditionalInfoValid(t *testing.T) {
	d := models.RegistrationDraft{}
	assert.False(t, AdditionalInfoValid(models.RoleStudent, &d))

	d.Grade = "terminale"
	assert.True(t, AdditionalInfoValid(models.RoleStudent, &d))

	// The parent variant ignores the parent's own grade and needs the child fields.
	assert.False(t, AdditionalInfoValid(models.RoleParent, &d))
	d.ChildFirstName = "Tom"
	d.ChildLastName = "Durand"
	d.ChildGrade = "5eme"
	assert.True(t, AdditionalInfoValid(models.RoleParent, &d))
}

func TestStepValidUnknownStep(t *testing.T) {
	sess := &models.WizardSession{Role: models.RoleStudent}
	assert.False(t, StepValid(sess, models.WizardStep("bogus")))
}
