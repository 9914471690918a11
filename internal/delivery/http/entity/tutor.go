package entity

type Subject string

const (
	SubjectGeneral     Subject = "general"
	SubjectScience     Subject = "science"
	SubjectMathematics Subject = "mathematics"
	SubjectEnglish     Subject = "english"
	SubjectHistory     Subject = "history"
	SubjectGeography   Subject = "geography"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ConversationTurn is one message in a tutoring conversation.
type ConversationTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type TranscribeRequest struct {
	Audio string `json:"audio" validate:"required"`
}

type TranscribeResponse struct {
	Transcript string `json:"transcript"`
}

type ChatRequest struct {
	Message             string             `json:"message" validate:"required"`
	Subject             Subject            `json:"subject"`
	ConversationHistory []ConversationTurn `json:"conversationHistory"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

type GenerateQuestionsRequest struct {
	Topic   string  `json:"topic" validate:"required"`
	Subject Subject `json:"subject"`
	Count   int     `json:"count"`
}

// GenerateQuestionsResponse carries an informal numbered-list text, not
// structured questions.
type GenerateQuestionsResponse struct {
	Questions string `json:"questions"`
}

type GenerateQuizRequest struct {
	Topic      string     `json:"topic" validate:"required"`
	Subject    Subject    `json:"subject"`
	Difficulty Difficulty `json:"difficulty"`
	Count      int        `json:"count" validate:"omitempty,min=3,max=10"`
}

// Question is one multiple-choice quiz item. Options keep their "A) ..."
// prefixes; Correct holds the bare label.
type Question struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Correct     string   `json:"correct"`
	Explanation string   `json:"explanation"`
}

type GenerateQuizResponse struct {
	Quiz []Question `json:"quiz"`
}

type CheckAnswerRequest struct {
	Question      string `json:"question"`
	UserAnswer    string `json:"userAnswer" validate:"required"`
	CorrectAnswer string `json:"correctAnswer" validate:"required"`
	Explanation   string `json:"explanation"`
}

type CheckAnswerResponse struct {
	IsCorrect bool   `json:"isCorrect"`
	Message   string `json:"message"`
}

type SynthesizeRequest struct {
	Text    string `json:"text" validate:"required"`
	VoiceID string `json:"voiceId"`
}

type SynthesizeResponse struct {
	AudioData string `json:"audioData"`
}

type AskRequest struct {
	Audio     string  `json:"audio" validate:"required"`
	Subject   Subject `json:"subject"`
	VoiceID   string  `json:"voiceId"`
	SessionID string  `json:"sessionId"`
}

type AskResponse struct {
	SessionID  string `json:"sessionId"`
	Transcript string `json:"transcript"`
	Response   string `json:"response"`
	AudioData  string `json:"audioData"`
}

// Statistics is process-local usage accounting, reset on restart.
type Statistics struct {
	QuestionsAsked int `json:"questionsAsked"`
	TopicsLearned  int `json:"topicsLearned"`
}

type HealthResponse struct {
	Status    string   `json:"status"`
	Timestamp string   `json:"timestamp"`
	Features  []string `json:"features"`
}
