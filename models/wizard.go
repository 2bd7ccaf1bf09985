package models

import "time"

// WizardStep identifies the screen currently shown to the user. Owned
// exclusively by the wizard controller; steps request transitions, they never
// set it themselves.
type WizardStep string

const (
	StepWelcome        WizardStep = "welcome"
	StepBasicInfo      WizardStep = "basic-info"
	StepAdditionalInfo WizardStep = "additional-info"
	StepPassword       WizardStep = "password"
	StepOnboarding     WizardStep = "onboarding"

	StepTeacherType      WizardStep = "teacher-type"
	StepTeacherBasicInfo WizardStep = "teacher-basic-info"
	StepTeacherSubjects  WizardStep = "teacher-subjects"
	StepTeacherContact   WizardStep = "teacher-contact"
	StepTeacherStripe    WizardStep = "teacher-stripe"
	StepTeacherPassword  WizardStep = "teacher-password"
	StepTeacherDashboard WizardStep = "dashboard"
)

// WizardSession holds all transient data during the multi-step registration
// flow. It is serialized to Redis with a TTL and discarded on successful
// submission.
type WizardSession struct {
	SessionID     string            `json:"sessionId"`
	Role          string            `json:"role"`
	TeacherType   string            `json:"teacherType,omitempty"`
	CurrentStep   WizardStep        `json:"currentStep"`
	Draft         RegistrationDraft `json:"draft"`
	CreatedAt     time.Time         `json:"createdAt"`
	LastUpdatedAt time.Time         `json:"lastUpdatedAt"`
}

// StartSessionRequest opens a wizard session seeded with the role chosen at
// the entry point (/register or /register/teacher).
type StartSessionRequest struct {
	Role        string `json:"role" binding:"required"`
	TeacherType string `json:"teacherType,omitempty"`
}

// SessionView is the read model returned to the client after every wizard
// operation. Credentials are redacted before it leaves the service.
type SessionView struct {
	SessionID   string            `json:"sessionId"`
	Role        string            `json:"role"`
	TeacherType string            `json:"teacherType,omitempty"`
	CurrentStep WizardStep        `json:"currentStep"`
	CanProceed  bool              `json:"canProceed"`
	Draft       RegistrationDraft `json:"draft"`
}

// StartSessionResponse carries the new session plus the token that must
// accompany every subsequent call on it.
type StartSessionResponse struct {
	Session SessionView `json:"session"`
	Token   string      `json:"token"`
}

// SubmitResponse reports the outcome of the terminal submission.
type SubmitResponse struct {
	AccountID string     `json:"accountId"`
	NextStep  WizardStep `json:"nextStep"`
}
