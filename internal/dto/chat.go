package dto

// ChatMessage is one turn of a study-buddy conversation.
type ChatMessage struct {
	Role string `json:"role" validate:"required,oneof=user model system"`
	Text string `json:"text" validate:"required"`
}

// ChatRequest submits the transcript so far. The last message must come
// from the user.
type ChatRequest struct {
	Topic    string        `json:"topic"`
	Messages []ChatMessage `json:"messages" validate:"required,min=1,dive"`
}

// ChatResponse returns the transcript extended with the model's reply.
type ChatResponse struct {
	Topic    string        `json:"topic"`
	Messages []ChatMessage `json:"messages"`
}
