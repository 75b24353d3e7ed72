package dto

// SubjectChoice is one subject picked during onboarding.
type SubjectChoice struct {
	SubjectID string `json:"subject_id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Group     int    `json:"group" validate:"required,min=1,max=6"`
	Level     string `json:"level" validate:"required,oneof=HL SL"`
}

// CompleteOnboardingRequest finishes the onboarding wizard: the student's
// programme plus their subject selections.
type CompleteOnboardingRequest struct {
	Programme string          `json:"programme" validate:"required,programme"`
	Subjects  []SubjectChoice `json:"subjects" validate:"dive"`
}

// OnboardingResponse echoes the stored profile state.
type OnboardingResponse struct {
	Programme          string          `json:"programme"`
	Subjects           []SubjectChoice `json:"subjects"`
	OnboardingComplete bool            `json:"onboarding_complete"`
}
