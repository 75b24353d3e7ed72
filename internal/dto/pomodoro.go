package dto

// PomodoroStateResponse is the rendered state of a student's focus timer.
type PomodoroStateResponse struct {
	State            string `json:"state"`
	Phase            string `json:"phase"`
	Clock            string `json:"clock"`
	RemainingSeconds int    `json:"remaining_seconds"`
}
