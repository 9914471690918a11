package usecase

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/eduvoice/eduvoice-be/internal/delivery/http/entity"
	"github.com/eduvoice/eduvoice-be/internal/pkg/apperr"
	"github.com/eduvoice/eduvoice-be/internal/pkg/stt"
	"github.com/eduvoice/eduvoice-be/internal/pkg/tts"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	// historyCap bounds stored conversation history to the most recent
	// 6 exchanges.
	historyCap = 12
	// chatHistoryWindow is how many stored turns are sent to the provider.
	chatHistoryWindow = 8

	defaultQuestionCount = 5
)

// TextGenerator is the LLM surface the engine needs. *llm.GroqClient
// implements it; tests substitute canned responses.
type TextGenerator interface {
	GenerateText(ctx context.Context, systemPrompt string, userPrompt string, maxTokens int, temperature float32) (string, error)
	GenerateChatResponse(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error)
}

// VoiceLister exposes the TTS provider's voice catalog.
type VoiceLister interface {
	ListVoices(ctx context.Context) (json.RawMessage, error)
}

type TutorUsecase interface {
	Transcribe(ctx context.Context, audioBase64 string) (string, error)
	Chat(ctx context.Context, message string, subject entity.Subject, history []entity.ConversationTurn) (string, error)
	GenerateQuestions(ctx context.Context, topic string, subject entity.Subject, count int) (string, error)
	GenerateQuiz(ctx context.Context, topic string, subject entity.Subject, difficulty entity.Difficulty, count int) ([]entity.Question, error)
	CheckAnswer(req entity.CheckAnswerRequest) entity.CheckAnswerResponse
	Synthesize(ctx context.Context, text string, voiceID string) (string, error)
	Voices(ctx context.Context) (json.RawMessage, error)
	Ask(ctx context.Context, req entity.AskRequest) (*entity.AskResponse, error)
	Stats() entity.Statistics
	ClearHistory(sessionID string)
}

type TutorConfig struct {
	STT    stt.Transcriber
	LLM    TextGenerator
	TTS    tts.Synthesizer
	Voices VoiceLister
	Config *viper.Viper
	Log    *logrus.Logger
}

type tutorUsecase struct {
	cfg TutorConfig

	mu        sync.Mutex
	histories map[string][]entity.ConversationTurn
	asked     int
	topics    map[entity.Subject]struct{}
}

func NewTutorUsecase(cfg TutorConfig) TutorUsecase {
	return &tutorUsecase{
		cfg:       cfg,
		histories: make(map[string][]entity.ConversationTurn),
		topics:    make(map[entity.Subject]struct{}),
	}
}

// Subject-specific system instructions for the tutoring chat.
var subjectPrompts = map[entity.Subject]string{
	entity.SubjectScience:     "You are an expert Science tutor. Explain scientific concepts clearly using simple language, examples, and analogies suitable for students. Break down complex topics into easy-to-understand parts.",
	entity.SubjectMathematics: "You are a patient Mathematics tutor. Solve problems step-by-step, explain the logic behind each step, and provide clear explanations. Use simple language and verify calculations.",
	entity.SubjectEnglish:     "You are an English language tutor. Help with grammar, vocabulary, writing, and literature. Provide clear explanations, examples, and corrections in a friendly manner.",
	entity.SubjectHistory:     "You are a History tutor who makes the past come alive. Explain historical events, their context, causes, and effects in an engaging and easy-to-understand way.",
	entity.SubjectGeography:   "You are a Geography tutor. Explain geographical concepts, locations, climates, and cultures clearly. Use examples and help students visualize concepts.",
	entity.SubjectGeneral:     "You are EduVoice AI, a helpful educational tutor for students. Explain topics clearly, answer questions patiently, help with homework, generate practice questions, and make learning engaging. Keep responses concise (2-4 sentences) for voice output.",
}

const spokenOutputSuffix = " Always respond in a way that is easy to understand when spoken aloud. Keep answers under 150 words unless explaining complex topics."

func systemPromptFor(subject entity.Subject) string {
	prompt, ok := subjectPrompts[subject]
	if !ok {
		prompt = subjectPrompts[entity.SubjectGeneral]
	}
	return prompt + spokenOutputSuffix
}

func (u *tutorUsecase) Transcribe(ctx context.Context, audioBase64 string) (string, error) {
	audio, err := base64.StdEncoding.DecodeString(audioBase64)
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "audio is not valid base64")
	}

	return u.cfg.STT.Transcribe(ctx, audio)
}

func (u *tutorUsecase) Chat(ctx context.Context, message string, subject entity.Subject, history []entity.ConversationTurn) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPromptFor(subject),
		},
	}

	// Only the most recent turns are forwarded to the provider.
	if len(history) > chatHistoryWindow {
		history = history[len(history)-chatHistoryWindow:]
	}
	for _, turn := range history {
		role := openai.ChatMessageRoleUser
		if turn.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: turn.Content,
		})
	}

	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})

	return u.cfg.LLM.GenerateChatResponse(ctx, messages)
}

func (u *tutorUsecase) GenerateQuestions(ctx context.Context, topic string, subject entity.Subject, count int) (string, error) {
	if count <= 0 {
		count = defaultQuestionCount
	}
	if subject == "" {
		subject = entity.SubjectGeneral
	}

	prompt := fmt.Sprintf(`Generate exactly %d practice questions about "%s" for students studying %s.
Make them clear, educational, and appropriate for exam practice.
Format: Just list the questions numbered 1-%d, nothing else.`, count, topic, subject, count)

	return u.cfg.LLM.GenerateText(ctx,
		"You are an expert educational content creator who generates high-quality practice questions for students.",
		prompt, 400, 0.8)
}

var difficultyLevels = map[entity.Difficulty]string{
	entity.DifficultyEasy:   "easy questions suitable for beginners",
	entity.DifficultyMedium: "intermediate level questions",
	entity.DifficultyHard:   "challenging questions for advanced students",
}

func (u *tutorUsecase) GenerateQuiz(ctx context.Context, topic string, subject entity.Subject, difficulty entity.Difficulty, count int) ([]entity.Question, error) {
	if count <= 0 {
		count = defaultQuestionCount
	}
	if subject == "" {
		subject = entity.SubjectGeneral
	}
	level, ok := difficultyLevels[difficulty]
	if !ok {
		level = difficultyLevels[entity.DifficultyMedium]
	}

	prompt := fmt.Sprintf(`Create a quiz about "%s" in the subject of %s.
Generate exactly %d multiple choice questions with %s.

Format STRICTLY as JSON array:
[
  {
    "question": "Question text here?",
    "options": ["A) First option", "B) Second option", "C) Third option", "D) Fourth option"],
    "correct": "A",
    "explanation": "Brief explanation why this is correct"
  }
]

Make questions educational, clear, and engaging. Only return the JSON array, nothing else.`, topic, subject, count, level)

	text, err := u.cfg.LLM.GenerateText(ctx,
		"You are an expert quiz creator. Always respond with valid JSON only.",
		prompt, 800, 0.8)
	if err != nil {
		return nil, err
	}

	return parseQuiz(text)
}

// parseQuiz strips incidental markdown fences from the model output and
// parses the remaining JSON array. Items whose correct label is not among
// their own option labels are dropped.
func parseQuiz(text string) ([]entity.Question, error) {
	clean := strings.TrimSpace(text)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(clean)

	var questions []entity.Question
	if err := json.Unmarshal([]byte(clean), &questions); err != nil {
		return nil, apperr.NewMalformedResponseError("groq", "Failed to generate valid quiz format", clean, err)
	}

	valid := make([]entity.Question, 0, len(questions))
	for _, q := range questions {
		if q.Question == "" || len(q.Options) == 0 {
			continue
		}
		if !labelAmongOptions(q.Correct, q.Options) {
			continue
		}
		valid = append(valid, q)
	}

	if len(valid) == 0 {
		return nil, apperr.NewMalformedResponseError("groq", "Failed to generate valid quiz format", clean, nil)
	}

	return valid, nil
}

func labelAmongOptions(label string, options []string) bool {
	for _, opt := range options {
		if strings.EqualFold(optionLabel(opt), strings.TrimSpace(label)) {
			return true
		}
	}
	return false
}

// optionLabel extracts the single-letter label from an option formatted
// like "A) First option".
func optionLabel(option string) string {
	option = strings.TrimSpace(option)
	if option == "" {
		return ""
	}
	return string(option[0])
}

// Check compares a submitted option label against the correct one.
// Comparison trims surrounding whitespace and ignores case. It is a pure
// function shared by the quiz session and the check-answer endpoint.
func Check(correctLabel string, submittedLabel string, explanation string) (bool, string) {
	correct := strings.TrimSpace(strings.ToUpper(correctLabel))
	submitted := strings.TrimSpace(strings.ToUpper(submittedLabel))
	isCorrect := submitted == correct

	if isCorrect {
		return true, "Correct! " + explanation
	}
	return false, fmt.Sprintf("Incorrect. The correct answer is %s. %s", strings.TrimSpace(correctLabel), explanation)
}

func (u *tutorUsecase) CheckAnswer(req entity.CheckAnswerRequest) entity.CheckAnswerResponse {
	isCorrect, message := Check(req.CorrectAnswer, req.UserAnswer, req.Explanation)
	return entity.CheckAnswerResponse{
		IsCorrect: isCorrect,
		Message:   message,
	}
}

func (u *tutorUsecase) Synthesize(ctx context.Context, text string, voiceID string) (string, error) {
	return u.cfg.TTS.Synthesize(ctx, text, voiceID)
}

func (u *tutorUsecase) Voices(ctx context.Context) (json.RawMessage, error) {
	return u.cfg.Voices.ListVoices(ctx)
}

// Ask runs the full voice pipeline: transcribe, chat with capped history,
// synthesize. History is appended only after chat succeeds; a synthesis
// failure still leaves the turn recorded.
func (u *tutorUsecase) Ask(ctx context.Context, req entity.AskRequest) (*entity.AskResponse, error) {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	if req.VoiceID == "" && u.cfg.Config != nil {
		req.VoiceID = u.cfg.Config.GetString("providers.murf.voice")
	}

	transcript, err := u.Transcribe(ctx, req.Audio)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(transcript) == "" {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "Could not understand. Please speak clearly and try again.")
	}

	history := u.historySnapshot(sessionID)

	answer, err := u.Chat(ctx, transcript, req.Subject, history)
	if err != nil {
		return nil, err
	}

	u.recordExchange(sessionID, req.Subject, transcript, answer)

	res := &entity.AskResponse{
		SessionID:  sessionID,
		Transcript: transcript,
		Response:   answer,
	}

	audio, err := u.cfg.TTS.Synthesize(ctx, answer, req.VoiceID)
	if err != nil {
		return nil, err
	}
	res.AudioData = audio

	return res, nil
}

func (u *tutorUsecase) historySnapshot(sessionID string) []entity.ConversationTurn {
	u.mu.Lock()
	defer u.mu.Unlock()

	history := u.histories[sessionID]
	out := make([]entity.ConversationTurn, len(history))
	copy(out, history)
	return out
}

func (u *tutorUsecase) recordExchange(sessionID string, subject entity.Subject, question string, answer string) {
	u.mu.Lock()
	defer u.mu.Unlock()

	history := append(u.histories[sessionID],
		entity.ConversationTurn{Role: "user", Content: question},
		entity.ConversationTurn{Role: "assistant", Content: answer},
	)
	if len(history) > historyCap {
		history = history[len(history)-historyCap:]
	}
	u.histories[sessionID] = history

	if subject == "" {
		subject = entity.SubjectGeneral
	}
	u.asked++
	u.topics[subject] = struct{}{}
}

func (u *tutorUsecase) Stats() entity.Statistics {
	u.mu.Lock()
	defer u.mu.Unlock()

	return entity.Statistics{
		QuestionsAsked: u.asked,
		TopicsLearned:  len(u.topics),
	}
}

func (u *tutorUsecase) ClearHistory(sessionID string) {
	u.mu.Lock()
	defer u.mu.Unlock()

	delete(u.histories, sessionID)
}
