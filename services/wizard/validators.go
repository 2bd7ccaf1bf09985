package wizard

import (
	"regexp"
	"strings"

	"tutorhub/models"
)

// Step validators are pure predicates over the accumulated draft. They gate
// the Next/Submit controls and are re-evaluated by the controller before any
// transition is committed; UI-side disablement is never trusted alone.

var (
	emailPattern      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	upperPattern      = regexp.MustCompile(`[A-Z]`)
	digitOrSymPattern = regexp.MustCompile(`[0-9\W_]`)
	nonDigitPattern   = regexp.MustCompile(`\D`)
	ibanPattern       = regexp.MustCompile(`^FR\d{2}[0-9A-Z]{23}$`)
	postalCodePattern = regexp.MustCompile(`^\d{5}$`)
)

// ValidEmail reports whether the address matches the simple RFC pattern.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidPassword checks the password rule alone: at least 8 characters, one
// uppercase letter, and one digit or symbol.
func ValidPassword(pw string) bool {
	return len(pw) >= 8 && upperPattern.MatchString(pw) && digitOrSymPattern.MatchString(pw)
}

// PhoneDigits strips formatting and truncates to the 10-digit national length.
func PhoneDigits(raw string) string {
	digits := nonDigitPattern.ReplaceAllString(raw, "")
	if len(digits) > 10 {
		digits = digits[:10]
	}
	return digits
}

// NormalizePhone formats a raw input as "06 12 34 56 78". Inputs carrying
// formatting are stripped to digits first; anything past 10 digits is dropped.
func NormalizePhone(raw string) string {
	digits := PhoneDigits(raw)
	var b strings.Builder
	for i := 0; i < len(digits); i += 2 {
		if i > 0 {
			b.WriteByte(' ')
		}
		end := i + 2
		if end > len(digits) {
			end = len(digits)
		}
		b.WriteString(digits[i:end])
	}
	return b.String()
}

// ValidPhone reports whether the input reduces to exactly 10 digits.
func ValidPhone(raw string) bool {
	return len(nonDigitPattern.ReplaceAllString(raw, "")) == 10
}

// ValidIBAN checks the national IBAN shape: FR, two check digits, then 23
// alphanumerics (27 characters total). Spaces and case are normalized first.
func ValidIBAN(iban string) bool {
	normalized := strings.ToUpper(strings.ReplaceAll(iban, " ", ""))
	return ibanPattern.MatchString(normalized)
}

// ValidPostalCode checks the 5-digit national postal code format.
func ValidPostalCode(code string) bool {
	return postalCodePattern.MatchString(code)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// BasicInfoValid gates the basic-info step for every flow.
func BasicInfoValid(d *models.RegistrationDraft) bool {
	if blank(d.FirstName) || blank(d.LastName) || blank(d.Email) || blank(d.ConfirmEmail) {
		return false
	}
	return d.Email == d.ConfirmEmail && ValidEmail(d.Email)
}

// AdditionalInfoValid gates the additional-info step. Students pick their own
// grade; parents fill in the child's identity and grade instead.
func AdditionalInfoValid(role string, d *models.RegistrationDraft) bool {
	if role == models.RoleParent {
		return !blank(d.ChildFirstName) && !blank(d.ChildLastName) && !blank(d.ChildGrade)
	}
	return !blank(d.Grade)
}

// PasswordStepValid gates the password step: complexity plus confirmation.
func PasswordStepValid(d *models.RegistrationDraft) bool {
	return ValidPassword(d.Password) && d.Password == d.ConfirmPassword
}

// TeacherSubjectsValid requires at least one subject, no duplicates, each with
// a non-empty level set. An entry without levels may exist transiently while
// the user is still picking; it keeps the step invalid until resolved.
func TeacherSubjectsValid(d *models.RegistrationDraft) bool {
	if len(d.Subjects) == 0 {
		return false
	}
	seen := make(map[int]bool, len(d.Subjects))
	for _, sel := range d.Subjects {
		if len(sel.LevelIDs) == 0 || seen[sel.SubjectID] {
			return false
		}
		seen[sel.SubjectID] = true
	}
	return true
}

// TeacherContactValid requires a valid phone and both staged documents.
func TeacherContactValid(d *models.RegistrationDraft) bool {
	return ValidPhone(d.Phone) && d.IDDocument != nil && d.AddressProof != nil
}

// TeacherStripeValid gates the banking step.
func TeacherStripeValid(d *models.RegistrationDraft) bool {
	if blank(d.IBAN) || blank(d.Address) || blank(d.PostalCode) || blank(d.City) || blank(d.BirthDate) {
		return false
	}
	return ValidIBAN(d.IBAN) && ValidPostalCode(d.PostalCode)
}

// StepValid dispatches to the predicate owning the session's given step.
// Unknown steps are never passable.
func StepValid(sess *models.WizardSession, step models.WizardStep) bool {
	d := &sess.Draft
	switch step {
	case models.StepWelcome:
		return sess.Role != ""
	case models.StepBasicInfo, models.StepTeacherBasicInfo:
		return BasicInfoValid(d)
	case models.StepAdditionalInfo:
		return AdditionalInfoValid(sess.Role, d)
	case models.StepPassword, models.StepTeacherPassword:
		return PasswordStepValid(d)
	case models.StepTeacherType:
		return sess.TeacherType == models.TeacherTypeStudent || sess.TeacherType == models.TeacherTypeProfessional
	case models.StepTeacherSubjects:
		return TeacherSubjectsValid(d)
	case models.StepTeacherContact:
		return TeacherContactValid(d)
	case models.StepTeacherStripe:
		return TeacherStripeValid(d)
	default:
		return false
	}
}
