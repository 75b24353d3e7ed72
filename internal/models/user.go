package models

import "time"

// Programme identifies the IB programme a student is enrolled in.
type Programme string

const (
	ProgrammeDP  Programme = "DP"
	ProgrammeCP  Programme = "CP"
	ProgrammeMYP Programme = "MYP"
)

// Valid reports whether p names a known programme.
func (p Programme) Valid() bool {
	switch p {
	case ProgrammeDP, ProgrammeCP, ProgrammeMYP:
		return true
	}
	return false
}

// SubjectLevel is the level a Diploma subject is taken at.
type SubjectLevel string

const (
	LevelHL SubjectLevel = "HL"
	LevelSL SubjectLevel = "SL"
)

// SubjectGroup is the IB subject group a course belongs to.
type SubjectGroup int

const (
	GroupLanguageLiterature   SubjectGroup = 1
	GroupLanguageAcquisition  SubjectGroup = 2
	GroupIndividualsSocieties SubjectGroup = 3
	GroupSciences             SubjectGroup = 4
	GroupMathematics          SubjectGroup = 5
	GroupArts                 SubjectGroup = 6
)

// SubjectSelection is one chosen course with its level.
type SubjectSelection struct {
	SubjectID string       `db:"subject_id" json:"subject_id"`
	Name      string       `db:"name" json:"name"`
	Group     SubjectGroup `db:"subject_group" json:"group"`
	Level     SubjectLevel `db:"level" json:"level"`
}

// User represents a student account.
type User struct {
	ID                 string     `db:"id" json:"id"`
	Email              string     `db:"email" json:"email"`
	PasswordHash       string     `db:"password_hash" json:"-"`
	FirstName          string     `db:"first_name" json:"first_name"`
	LastName           string     `db:"last_name" json:"last_name"`
	Programme          Programme  `db:"programme" json:"programme"`
	OnboardingComplete bool       `db:"onboarding_complete" json:"onboarding_complete"`
	Active             bool       `db:"active" json:"active"`
	LastLogin          *time.Time `db:"last_login" json:"last_login,omitempty"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updated_at"`

	Subjects []SubjectSelection `db:"-" json:"subjects,omitempty"`
}
