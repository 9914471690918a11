package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/eduvoice/eduvoice-be/internal/delivery/http/entity"
	"github.com/eduvoice/eduvoice-be/internal/pkg/audio"
)

type stubGateway struct {
	mu        sync.Mutex
	questions []entity.Question
	quizErr   error
	synthErr  error
	spoken    []string
}

func (s *stubGateway) GenerateQuiz(_ context.Context, _ string, _ entity.Subject, _ entity.Difficulty, _ int) ([]entity.Question, error) {
	return s.questions, s.quizErr
}

func (s *stubGateway) Synthesize(_ context.Context, text string, _ string) (string, error) {
	if s.synthErr != nil {
		return "", s.synthErr
	}
	s.mu.Lock()
	s.spoken = append(s.spoken, text)
	s.mu.Unlock()
	return b64("audio:" + text), nil
}

func (s *stubGateway) spokenTexts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.spoken...)
}

func makeQuestions(n int) []entity.Question {
	questions := make([]entity.Question, 0, n)
	for i := 0; i < n; i++ {
		questions = append(questions, entity.Question{
			Question:    fmt.Sprintf("Question %d?", i+1),
			Options:     []string{"A) first", "B) second", "C) third", "D) fourth"},
			Correct:     "A",
			Explanation: fmt.Sprintf("Explanation %d.", i+1),
		})
	}
	return questions
}

func newQuizUsecase(gw *stubGateway, delay time.Duration) QuizSessionUsecase {
	return NewQuizSessionUsecase(QuizSessionConfig{
		Gateway:      gw,
		Sink:         audio.NewWriterSink(nil),
		AdvanceDelay: delay,
	})
}

func startSession(t *testing.T, u QuizSessionUsecase, count int) *entity.QuizSessionView {
	t.Helper()
	view, err := u.Start(context.Background(), entity.StartQuizRequest{
		Topic:      "Photosynthesis",
		Subject:    entity.SubjectScience,
		Difficulty: entity.DifficultyMedium,
		Count:      count,
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	return view
}

// waitForAdvance polls until the session leaves the feedback sub-state.
func waitForAdvance(t *testing.T, u QuizSessionUsecase, sessionID string) *entity.QuizSessionView {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		view, err := u.Get(sessionID)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if view.Feedback == "" {
			return view
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("session never advanced")
	return nil
}

func TestQuizStart(t *testing.T) {
	gw := &stubGateway{questions: makeQuestions(5)}
	u := newQuizUsecase(gw, 10*time.Millisecond)

	view := startSession(t, u, 5)

	if view.Phase != entity.PhaseActive {
		t.Errorf("phase = %q, want active", view.Phase)
	}
	if view.CurrentIndex != 0 || view.Score != 0 || len(view.Answers) != 0 {
		t.Errorf("fresh session not zeroed: %+v", view)
	}
	if view.TotalQuestions != 5 {
		t.Errorf("TotalQuestions = %d, want 5", view.TotalQuestions)
	}
	if view.Question == nil || view.Question.Question != "Question 1?" {
		t.Errorf("current question = %+v", view.Question)
	}
	if spoken := gw.spokenTexts(); len(spoken) != 1 || spoken[0] != "Question 1?" {
		t.Errorf("spoken = %v, want first prompt", spoken)
	}
}

func TestQuizStartValidation(t *testing.T) {
	u := newQuizUsecase(&stubGateway{questions: makeQuestions(5)}, time.Millisecond)

	tests := []struct {
		name string
		req  entity.StartQuizRequest
	}{
		{name: "empty topic", req: entity.StartQuizRequest{Count: 5}},
		{name: "count too small", req: entity.StartQuizRequest{Topic: "Algebra", Count: 2}},
		{name: "count too large", req: entity.StartQuizRequest{Topic: "Algebra", Count: 11}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := u.Start(context.Background(), tt.req); err == nil {
				t.Error("Start should fail before any provider call")
			}
		})
	}
}

func TestQuizStartGatewayFailure(t *testing.T) {
	gw := &stubGateway{quizErr: errors.New("quiz generation failed")}
	u := newQuizUsecase(gw, time.Millisecond)

	_, err := u.Start(context.Background(), entity.StartQuizRequest{Topic: "Photosynthesis", Count: 5})
	if err == nil {
		t.Fatal("Start should surface the gateway failure")
	}

	// No partial session is retained.
	impl := u.(*quizSessionUsecase)
	impl.mu.Lock()
	defer impl.mu.Unlock()
	if len(impl.sessions) != 0 {
		t.Errorf("retained %d sessions after failed start", len(impl.sessions))
	}
}

func TestQuizUsesExactlyWhatProviderReturned(t *testing.T) {
	// Provider returned 3 questions although 5 were requested.
	gw := &stubGateway{questions: makeQuestions(3)}
	u := newQuizUsecase(gw, time.Millisecond)

	view := startSession(t, u, 5)
	if view.TotalQuestions != 3 {
		t.Errorf("TotalQuestions = %d, want the returned 3", view.TotalQuestions)
	}
}

func TestQuizSubmitAndAdvance(t *testing.T) {
	gw := &stubGateway{questions: makeQuestions(5)}
	u := newQuizUsecase(gw, 15*time.Millisecond)

	view := startSession(t, u, 5)

	result, err := u.SubmitAnswer(context.Background(), view.SessionID, " a ")
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if !result.IsCorrect || result.Score != 1 {
		t.Errorf("result = %+v, want correct with score 1", result)
	}

	mid, err := u.Get(view.SessionID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(mid.Answers) != mid.CurrentIndex+1 {
		t.Errorf("answers=%d index=%d, want answers == index+1 while feedback pending", len(mid.Answers), mid.CurrentIndex)
	}
	if mid.Feedback == "" {
		t.Error("feedback should be pending after submission")
	}

	// A second submission for the same question is rejected.
	if _, err := u.SubmitAnswer(context.Background(), view.SessionID, "B"); err == nil {
		t.Error("duplicate submission should be rejected while feedback is pending")
	}

	after := waitForAdvance(t, u, view.SessionID)
	if after.CurrentIndex != 1 {
		t.Errorf("CurrentIndex = %d, want 1 after advance", after.CurrentIndex)
	}
	if after.Phase != entity.PhaseActive {
		t.Errorf("phase = %q, want active", after.Phase)
	}
	if len(after.Answers) != after.CurrentIndex {
		t.Errorf("answers=%d index=%d, want answers == index before answering", len(after.Answers), after.CurrentIndex)
	}
}

func TestQuizRunsToResults(t *testing.T) {
	gw := &stubGateway{questions: makeQuestions(3)}
	u := newQuizUsecase(gw, 10*time.Millisecond)

	view := startSession(t, u, 3)

	answers := []string{"A", "B", "A"}
	for i, answer := range answers {
		if _, err := u.SubmitAnswer(context.Background(), view.SessionID, answer); err != nil {
			t.Fatalf("SubmitAnswer %d: %v", i, err)
		}
		waitForAdvance(t, u, view.SessionID)
	}

	final, err := u.Get(view.SessionID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if final.Phase != entity.PhaseResults {
		t.Fatalf("phase = %q, want results", final.Phase)
	}
	if final.Score != 2 {
		t.Errorf("score = %d, want 2", final.Score)
	}
	if len(final.Answers) != 3 {
		t.Errorf("answers = %v", final.Answers)
	}

	want := "Quiz complete! You scored 2 out of 3."
	deadline := time.Now().Add(time.Second)
	for {
		spoken := gw.spokenTexts()
		if len(spoken) > 0 && spoken[len(spoken)-1] == want {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("final summary never spoken, spoken = %v", spoken)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestQuizRestartIdempotent(t *testing.T) {
	gw := &stubGateway{questions: makeQuestions(3)}
	u := newQuizUsecase(gw, 5*time.Millisecond)

	view := startSession(t, u, 3)
	for i := 0; i < 3; i++ {
		if _, err := u.SubmitAnswer(context.Background(), view.SessionID, "A"); err != nil {
			t.Fatalf("SubmitAnswer: %v", err)
		}
		waitForAdvance(t, u, view.SessionID)
	}

	first, err := u.Restart(view.SessionID)
	if err != nil {
		t.Fatalf("Restart: %v", err)
	}
	second, err := u.Restart(view.SessionID)
	if err != nil {
		t.Fatalf("second Restart: %v", err)
	}

	for _, v := range []*entity.QuizSessionView{first, second} {
		if v.Phase != entity.PhaseSetup {
			t.Errorf("phase = %q, want setup", v.Phase)
		}
		if v.Topic != "" || v.TotalQuestions != 0 || v.CurrentIndex != 0 || v.Score != 0 || len(v.Answers) != 0 || v.Feedback != "" {
			t.Errorf("residual session data after restart: %+v", v)
		}
	}
}

func TestQuizCloseCancelsPendingAdvance(t *testing.T) {
	gw := &stubGateway{questions: makeQuestions(3)}
	u := newQuizUsecase(gw, 30*time.Millisecond)

	view := startSession(t, u, 3)
	if _, err := u.SubmitAnswer(context.Background(), view.SessionID, "A"); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}

	if err := u.Close(view.SessionID); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Let the original delay elapse; the stopped timer must not fire into
	// the closed session.
	time.Sleep(60 * time.Millisecond)

	if _, err := u.Get(view.SessionID); err == nil {
		t.Error("closed session still retrievable")
	}
}

func TestQuizSpeechFailureDoesNotStallSession(t *testing.T) {
	gw := &stubGateway{questions: makeQuestions(3), synthErr: errors.New("tts down")}
	u := newQuizUsecase(gw, 5*time.Millisecond)

	view := startSession(t, u, 3)
	if _, err := u.SubmitAnswer(context.Background(), view.SessionID, "A"); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}

	after := waitForAdvance(t, u, view.SessionID)
	if after.CurrentIndex != 1 {
		t.Errorf("CurrentIndex = %d, want 1 despite speech failure", after.CurrentIndex)
	}
}
