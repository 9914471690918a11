package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/eduvoice/eduvoice-be/internal/delivery/http/entity"
	"github.com/eduvoice/eduvoice-be/internal/pkg/audio"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const DefaultAdvanceDelay = 3 * time.Second

// QuizGateway is the slice of the provider gateway the quiz session needs.
// TutorUsecase satisfies it.
type QuizGateway interface {
	GenerateQuiz(ctx context.Context, topic string, subject entity.Subject, difficulty entity.Difficulty, count int) ([]entity.Question, error)
	Synthesize(ctx context.Context, text string, voiceID string) (string, error)
}

type QuizSessionUsecase interface {
	Start(ctx context.Context, req entity.StartQuizRequest) (*entity.QuizSessionView, error)
	Get(sessionID string) (*entity.QuizSessionView, error)
	SubmitAnswer(ctx context.Context, sessionID string, answer string) (*entity.SubmitQuizAnswerResponse, error)
	Restart(sessionID string) (*entity.QuizSessionView, error)
	Close(sessionID string) error
}

type QuizSessionConfig struct {
	Gateway      QuizGateway
	Sink         audio.Sink
	Log          *logrus.Logger
	AdvanceDelay time.Duration
	DefaultVoice string
}

type quizSessionUsecase struct {
	cfg QuizSessionConfig

	mu       sync.Mutex
	sessions map[string]*quizSession
}

// quizSession owns one quiz lifecycle. All mutation happens under mu; the
// advance timer is an explicit handle so teardown can stop it before it
// fires into a closed session.
type quizSession struct {
	mu sync.Mutex

	id         string
	topic      string
	subject    entity.Subject
	difficulty entity.Difficulty
	voiceID    string

	phase        entity.Phase
	questions    []entity.Question
	currentIndex int
	answers      []string
	score        int
	feedback     string
	promptAudio  string

	advanceTimer *time.Timer
	closed       bool
}

func NewQuizSessionUsecase(cfg QuizSessionConfig) QuizSessionUsecase {
	if cfg.AdvanceDelay <= 0 {
		cfg.AdvanceDelay = DefaultAdvanceDelay
	}
	if cfg.Sink == nil {
		cfg.Sink = audio.NewWriterSink(nil)
	}
	return &quizSessionUsecase{
		cfg:      cfg,
		sessions: make(map[string]*quizSession),
	}
}

func (u *quizSessionUsecase) Start(ctx context.Context, req entity.StartQuizRequest) (*entity.QuizSessionView, error) {
	if req.Topic == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "topic is required")
	}
	count := req.Count
	if count == 0 {
		count = defaultQuestionCount
	}
	if count < 3 || count > 10 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "count must be between 3 and 10")
	}
	if req.Difficulty == "" {
		req.Difficulty = entity.DifficultyMedium
	}
	if req.Subject == "" {
		req.Subject = entity.SubjectGeneral
	}
	voiceID := req.VoiceID
	if voiceID == "" {
		voiceID = u.cfg.DefaultVoice
	}

	s := &quizSession{
		id:         uuid.NewString(),
		topic:      req.Topic,
		subject:    req.Subject,
		difficulty: req.Difficulty,
		voiceID:    voiceID,
		phase:      entity.PhaseLoading,
		answers:    []string{},
	}

	questions, err := u.cfg.Gateway.GenerateQuiz(ctx, req.Topic, req.Subject, req.Difficulty, count)
	if err != nil {
		// Nothing is retained for a failed start; the caller lands
		// back on setup with the error surfaced.
		return nil, err
	}

	// The session runs on exactly what the provider returned, even when
	// that differs from the requested count.
	s.phase = entity.PhaseActive
	s.questions = questions
	s.currentIndex = 0
	s.score = 0

	u.mu.Lock()
	u.sessions[s.id] = s
	u.mu.Unlock()

	u.speak(s, questions[0].Question)

	s.mu.Lock()
	defer s.mu.Unlock()
	return u.snapshotLocked(s), nil
}

func (u *quizSessionUsecase) find(sessionID string) (*quizSession, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	s, ok := u.sessions[sessionID]
	if !ok {
		return nil, fiber.NewError(fiber.StatusNotFound, "quiz session not found")
	}
	return s, nil
}

func (u *quizSessionUsecase) Get(sessionID string) (*entity.QuizSessionView, error) {
	s, err := u.find(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return u.snapshotLocked(s), nil
}

func (u *quizSessionUsecase) SubmitAnswer(ctx context.Context, sessionID string, answer string) (*entity.SubmitQuizAnswerResponse, error) {
	s, err := u.find(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()

	if s.phase != entity.PhaseActive {
		s.mu.Unlock()
		return nil, fiber.NewError(fiber.StatusConflict, "quiz session is not active")
	}
	// At most one pending submission per question: while feedback is
	// displayed the next submit is a no-op.
	if s.advanceTimer != nil {
		s.mu.Unlock()
		return nil, fiber.NewError(fiber.StatusConflict, "answer already submitted for this question")
	}

	q := s.questions[s.currentIndex]
	isCorrect, message := Check(q.Correct, answer, q.Explanation)

	s.answers = append(s.answers, answer)
	if isCorrect {
		s.score++
	}
	s.feedback = message
	score := s.score

	s.advanceTimer = time.AfterFunc(u.cfg.AdvanceDelay, func() {
		u.advance(s)
	})

	s.mu.Unlock()

	u.speak(s, message)

	return &entity.SubmitQuizAnswerResponse{
		IsCorrect: isCorrect,
		Message:   message,
		Score:     score,
	}, nil
}

// advance moves to the next question or to results once the feedback delay
// elapses. A session closed or restarted in the meantime is left alone.
func (u *quizSessionUsecase) advance(s *quizSession) {
	s.mu.Lock()

	if s.closed || s.phase != entity.PhaseActive || s.advanceTimer == nil {
		s.mu.Unlock()
		return
	}
	s.advanceTimer = nil
	s.feedback = ""

	var speech string
	if s.currentIndex+1 < len(s.questions) {
		s.currentIndex++
		speech = s.questions[s.currentIndex].Question
	} else {
		s.phase = entity.PhaseResults
		speech = fmt.Sprintf("Quiz complete! You scored %d out of %d.", s.score, len(s.questions))
	}

	s.mu.Unlock()

	u.speak(s, speech)
}

func (u *quizSessionUsecase) Restart(sessionID string) (*entity.QuizSessionView, error) {
	s, err := u.find(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.advanceTimer != nil {
		s.advanceTimer.Stop()
		s.advanceTimer = nil
	}

	s.phase = entity.PhaseSetup
	s.topic = ""
	s.questions = nil
	s.currentIndex = 0
	s.answers = []string{}
	s.score = 0
	s.feedback = ""
	s.promptAudio = ""

	return u.snapshotLocked(s), nil
}

func (u *quizSessionUsecase) Close(sessionID string) error {
	u.mu.Lock()
	s, ok := u.sessions[sessionID]
	if !ok {
		u.mu.Unlock()
		return fiber.NewError(fiber.StatusNotFound, "quiz session not found")
	}
	delete(u.sessions, sessionID)
	u.mu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.advanceTimer != nil {
		s.advanceTimer.Stop()
		s.advanceTimer = nil
	}

	return nil
}

// speak synthesizes text and hands it to the playback sink. Speech is
// best-effort: a provider or playback failure never stalls the quiz.
func (u *quizSessionUsecase) speak(s *quizSession, text string) {
	audioData, err := u.cfg.Gateway.Synthesize(context.Background(), text, s.voiceID)
	if err != nil {
		if u.cfg.Log != nil {
			u.cfg.Log.Warnf("quiz speech synthesis failed: %v", err)
		}
		return
	}

	s.mu.Lock()
	s.promptAudio = audioData
	s.mu.Unlock()

	if _, err := u.cfg.Sink.Play(context.Background(), audioData); err != nil {
		if u.cfg.Log != nil {
			u.cfg.Log.Warnf("quiz speech playback failed: %v", err)
		}
	}
}

func (u *quizSessionUsecase) snapshotLocked(s *quizSession) *entity.QuizSessionView {
	view := &entity.QuizSessionView{
		SessionID:      s.id,
		Phase:          s.phase,
		Topic:          s.topic,
		Subject:        s.subject,
		Difficulty:     s.difficulty,
		TotalQuestions: len(s.questions),
		CurrentIndex:   s.currentIndex,
		Score:          s.score,
		Answers:        append([]string{}, s.answers...),
		Feedback:       s.feedback,
		PromptAudio:    s.promptAudio,
	}

	if s.phase == entity.PhaseActive && s.currentIndex < len(s.questions) {
		q := s.questions[s.currentIndex]
		view.Question = &entity.ActiveQuestion{
			Question: q.Question,
			Options:  append([]string{}, q.Options...),
		}
	}

	return view
}
