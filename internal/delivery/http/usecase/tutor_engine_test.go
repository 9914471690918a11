package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/eduvoice/eduvoice-be/internal/delivery/http/entity"
	"github.com/eduvoice/eduvoice-be/internal/pkg/apperr"
	openai "github.com/sashabaranov/go-openai"
)

type stubLLM struct {
	textFn func(systemPrompt, userPrompt string) (string, error)
	chatFn func(messages []openai.ChatCompletionMessage) (string, error)
}

func (s *stubLLM) GenerateText(_ context.Context, systemPrompt, userPrompt string, _ int, _ float32) (string, error) {
	return s.textFn(systemPrompt, userPrompt)
}

func (s *stubLLM) GenerateChatResponse(_ context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	return s.chatFn(messages)
}

type stubSTT struct {
	transcript string
	err        error
	calls      int
}

func (s *stubSTT) Transcribe(_ context.Context, _ []byte) (string, error) {
	s.calls++
	return s.transcript, s.err
}

type stubTTS struct {
	audio string
	err   error
}

func (s *stubTTS) Synthesize(_ context.Context, _ string, _ string) (string, error) {
	return s.audio, s.err
}

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name        string
		correct     string
		submitted   string
		wantCorrect bool
	}{
		{name: "exact match", correct: "A", submitted: "A", wantCorrect: true},
		{name: "case and whitespace insensitive", correct: "A", submitted: " a ", wantCorrect: true},
		{name: "wrong label", correct: "A", submitted: "B", wantCorrect: false},
		{name: "lowercase correct label", correct: "c", submitted: "C", wantCorrect: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isCorrect, message := Check(tt.correct, tt.submitted, "Because reasons.")
			if isCorrect != tt.wantCorrect {
				t.Errorf("Check(%q, %q) = %v, want %v", tt.correct, tt.submitted, isCorrect, tt.wantCorrect)
			}
			if isCorrect && !strings.HasPrefix(message, "Correct!") {
				t.Errorf("correct message = %q", message)
			}
			if !isCorrect && !strings.Contains(message, "The correct answer is "+strings.TrimSpace(tt.correct)) {
				t.Errorf("incorrect message = %q", message)
			}
			if !strings.Contains(message, "Because reasons.") {
				t.Errorf("message %q is missing the explanation", message)
			}
		})
	}
}

func TestParseQuiz(t *testing.T) {
	valid := `[{"question":"What gas do plants absorb?","options":["A) Oxygen","B) Carbon dioxide","C) Nitrogen","D) Helium"],"correct":"B","explanation":"Plants take in CO2."}]`

	t.Run("plain json", func(t *testing.T) {
		questions, err := parseQuiz(valid)
		if err != nil {
			t.Fatalf("parseQuiz: %v", err)
		}
		if len(questions) != 1 || questions[0].Correct != "B" {
			t.Errorf("unexpected questions: %+v", questions)
		}
	})

	t.Run("fenced json", func(t *testing.T) {
		questions, err := parseQuiz("```json\n" + valid + "\n```")
		if err != nil {
			t.Fatalf("parseQuiz: %v", err)
		}
		if len(questions) != 1 {
			t.Errorf("got %d questions, want 1", len(questions))
		}
	})

	t.Run("malformed text", func(t *testing.T) {
		_, err := parseQuiz("Sure! Here is your quiz:\n1. What is...")
		var malformed *apperr.MalformedResponseError
		if !errors.As(err, &malformed) {
			t.Fatalf("err = %v, want MalformedResponseError", err)
		}
	})

	t.Run("correct label must be among options", func(t *testing.T) {
		bad := `[{"question":"Q?","options":["A) x","B) y"],"correct":"E","explanation":""}]`
		_, err := parseQuiz(bad)
		var malformed *apperr.MalformedResponseError
		if !errors.As(err, &malformed) {
			t.Fatalf("err = %v, want MalformedResponseError", err)
		}
	})

	t.Run("invalid items are dropped", func(t *testing.T) {
		mixed := `[{"question":"Q?","options":["A) x","B) y"],"correct":"E","explanation":""},` + valid[1:]
		questions, err := parseQuiz(mixed)
		if err != nil {
			t.Fatalf("parseQuiz: %v", err)
		}
		if len(questions) != 1 {
			t.Errorf("got %d questions, want 1", len(questions))
		}
	})
}

func TestGenerateQuizLabelInvariant(t *testing.T) {
	payload := `[
		{"question":"Q1?","options":["A) a","B) b","C) c","D) d"],"correct":"A","explanation":"e1"},
		{"question":"Q2?","options":["A) a","B) b","C) c","D) d"],"correct":"d","explanation":"e2"}
	]`
	u := NewTutorUsecase(TutorConfig{
		LLM: &stubLLM{textFn: func(_, _ string) (string, error) { return payload, nil }},
	})

	questions, err := u.GenerateQuiz(context.Background(), "Photosynthesis", entity.SubjectScience, entity.DifficultyMedium, 5)
	if err != nil {
		t.Fatalf("GenerateQuiz: %v", err)
	}
	for _, q := range questions {
		if !labelAmongOptions(q.Correct, q.Options) {
			t.Errorf("question %q: correct label %q not among options %v", q.Question, q.Correct, q.Options)
		}
	}
}

func TestChatHistoryWindow(t *testing.T) {
	var got []openai.ChatCompletionMessage
	u := NewTutorUsecase(TutorConfig{
		LLM: &stubLLM{chatFn: func(messages []openai.ChatCompletionMessage) (string, error) {
			got = messages
			return "answer", nil
		}},
	})

	history := make([]entity.ConversationTurn, 0, 12)
	for i := 0; i < 6; i++ {
		history = append(history,
			entity.ConversationTurn{Role: "user", Content: "q"},
			entity.ConversationTurn{Role: "assistant", Content: "a"},
		)
	}

	if _, err := u.Chat(context.Background(), "latest question", entity.SubjectGeneral, history); err != nil {
		t.Fatalf("Chat: %v", err)
	}

	// system prompt + trailing 8 history turns + current message
	if len(got) != 10 {
		t.Fatalf("forwarded %d messages, want 10", len(got))
	}
	if got[0].Role != openai.ChatMessageRoleSystem {
		t.Errorf("first message role = %q, want system", got[0].Role)
	}
	if got[len(got)-1].Content != "latest question" {
		t.Errorf("last message = %q", got[len(got)-1].Content)
	}
}

func TestChatUnknownSubjectFallsBack(t *testing.T) {
	var system string
	u := NewTutorUsecase(TutorConfig{
		LLM: &stubLLM{chatFn: func(messages []openai.ChatCompletionMessage) (string, error) {
			system = messages[0].Content
			return "ok", nil
		}},
	})

	if _, err := u.Chat(context.Background(), "hi", entity.Subject("astrology"), nil); err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if !strings.Contains(system, "EduVoice AI") {
		t.Errorf("system prompt did not fall back to general: %q", system)
	}
}

func TestAskEmptyTranscriptAbortsBeforeChat(t *testing.T) {
	sttStub := &stubSTT{transcript: "   "}
	chatCalled := false
	u := NewTutorUsecase(TutorConfig{
		STT: sttStub,
		LLM: &stubLLM{chatFn: func(_ []openai.ChatCompletionMessage) (string, error) {
			chatCalled = true
			return "", nil
		}},
		TTS: &stubTTS{audio: b64("mp3")},
	})

	_, err := u.Ask(context.Background(), entity.AskRequest{Audio: b64("webm"), SessionID: "s1"})
	if err == nil {
		t.Fatal("Ask with empty transcript should fail")
	}
	if !strings.Contains(err.Error(), "try again") {
		t.Errorf("err = %v, want a please-retry condition", err)
	}
	if chatCalled {
		t.Error("chat was called despite empty transcript")
	}
	if stats := u.Stats(); stats.QuestionsAsked != 0 {
		t.Errorf("stats recorded for failed attempt: %+v", stats)
	}
	if history := u.(*tutorUsecase).historySnapshot("s1"); len(history) != 0 {
		t.Errorf("history mutated on failed attempt: %v", history)
	}
}

func TestAskRecordsHistoryDespiteSynthesisFailure(t *testing.T) {
	u := NewTutorUsecase(TutorConfig{
		STT: &stubSTT{transcript: "what is photosynthesis"},
		LLM: &stubLLM{chatFn: func(_ []openai.ChatCompletionMessage) (string, error) {
			return "Plants make food from light.", nil
		}},
		TTS: &stubTTS{err: errors.New("tts down")},
	})

	_, err := u.Ask(context.Background(), entity.AskRequest{Audio: b64("webm"), SessionID: "s1", Subject: entity.SubjectScience})
	if err == nil {
		t.Fatal("Ask should surface the synthesis failure")
	}

	// The turn is still recorded: history appends after chat succeeds.
	history := u.(*tutorUsecase).historySnapshot("s1")
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2", len(history))
	}
	if history[0].Role != "user" || history[1].Role != "assistant" {
		t.Errorf("unexpected turn roles: %+v", history)
	}
	if stats := u.Stats(); stats.QuestionsAsked != 1 || stats.TopicsLearned != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestAskHistoryCap(t *testing.T) {
	turn := 0
	u := NewTutorUsecase(TutorConfig{
		STT: &stubSTT{transcript: "question"},
		LLM: &stubLLM{chatFn: func(_ []openai.ChatCompletionMessage) (string, error) {
			turn++
			return "answer", nil
		}},
		TTS: &stubTTS{audio: b64("mp3")},
	})

	for i := 0; i < 9; i++ {
		if _, err := u.Ask(context.Background(), entity.AskRequest{Audio: b64("webm"), SessionID: "s1"}); err != nil {
			t.Fatalf("Ask %d: %v", i, err)
		}
	}

	history := u.(*tutorUsecase).historySnapshot("s1")
	if len(history) != 12 {
		t.Fatalf("history length = %d, want cap of 12", len(history))
	}
	// Oldest-first order among survivors: the window must end with the
	// latest assistant turn.
	if history[len(history)-1].Role != "assistant" {
		t.Errorf("last turn role = %q", history[len(history)-1].Role)
	}
	if history[0].Role != "user" {
		t.Errorf("first turn role = %q", history[0].Role)
	}
}

func TestTranscribeRejectsInvalidBase64(t *testing.T) {
	sttStub := &stubSTT{transcript: "hello"}
	u := NewTutorUsecase(TutorConfig{STT: sttStub})

	if _, err := u.Transcribe(context.Background(), "not-base64!!"); err == nil {
		t.Fatal("Transcribe should reject invalid base64")
	}
	if sttStub.calls != 0 {
		t.Error("provider called with undecodable audio")
	}
}

func TestStatsCountsDistinctSubjects(t *testing.T) {
	u := NewTutorUsecase(TutorConfig{
		STT: &stubSTT{transcript: "q"},
		LLM: &stubLLM{chatFn: func(_ []openai.ChatCompletionMessage) (string, error) { return "a", nil }},
		TTS: &stubTTS{audio: b64("mp3")},
	})

	subjects := []entity.Subject{entity.SubjectScience, entity.SubjectScience, entity.SubjectHistory}
	for _, s := range subjects {
		if _, err := u.Ask(context.Background(), entity.AskRequest{Audio: b64("webm"), Subject: s}); err != nil {
			t.Fatalf("Ask: %v", err)
		}
	}

	stats := u.Stats()
	if stats.QuestionsAsked != 3 {
		t.Errorf("QuestionsAsked = %d, want 3", stats.QuestionsAsked)
	}
	if stats.TopicsLearned != 2 {
		t.Errorf("TopicsLearned = %d, want 2", stats.TopicsLearned)
	}
}
