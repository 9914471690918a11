package entity

// Phase is the named state of a quiz session.
type Phase string

const (
	PhaseSetup   Phase = "setup"
	PhaseLoading Phase = "loading"
	PhaseActive  Phase = "active"
	PhaseResults Phase = "results"
)

type StartQuizRequest struct {
	Topic      string     `json:"topic" validate:"required"`
	Subject    Subject    `json:"subject"`
	Difficulty Difficulty `json:"difficulty"`
	Count      int        `json:"count" validate:"omitempty,min=3,max=10"`
	VoiceID    string     `json:"voiceId"`
}

type SubmitQuizAnswerRequest struct {
	Answer string `json:"answer" validate:"required"`
}

// ActiveQuestion is the current question as shown to the student: the
// correct label and explanation are withheld until the answer is graded.
type ActiveQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// QuizSessionView is a snapshot of a session's state.
type QuizSessionView struct {
	SessionID      string          `json:"session_id"`
	Phase          Phase           `json:"phase"`
	Topic          string          `json:"topic,omitempty"`
	Subject        Subject         `json:"subject,omitempty"`
	Difficulty     Difficulty      `json:"difficulty,omitempty"`
	TotalQuestions int             `json:"total_questions"`
	CurrentIndex   int             `json:"current_index"`
	Score          int             `json:"score"`
	Answers        []string        `json:"answers"`
	Question       *ActiveQuestion `json:"question,omitempty"`
	Feedback       string          `json:"feedback,omitempty"`
	PromptAudio    string          `json:"prompt_audio,omitempty"`
}

type SubmitQuizAnswerResponse struct {
	IsCorrect bool   `json:"is_correct"`
	Message   string `json:"message"`
	Score     int    `json:"score"`
}
