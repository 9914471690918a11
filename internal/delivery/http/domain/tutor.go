package domain

var (
	TUTOR_TRANSCRIBE_SUCCESS         = "Transcription completed"
	TUTOR_TRANSCRIBE_FAILED          = "Transcription failed"
	TUTOR_CHAT_SUCCESS               = "Tutoring response generated"
	TUTOR_CHAT_FAILED                = "Tutoring response failed"
	TUTOR_GENERATE_QUESTIONS_SUCCESS = "Practice questions generated"
	TUTOR_GENERATE_QUESTIONS_FAILED  = "Question generation failed"
	TUTOR_GENERATE_QUIZ_SUCCESS      = "Quiz generated"
	TUTOR_GENERATE_QUIZ_FAILED       = "Quiz generation failed"
	TUTOR_CHECK_ANSWER_SUCCESS       = "Answer checked"
	TUTOR_CHECK_ANSWER_FAILED        = "Failed to check answer"
	TUTOR_SYNTHESIZE_SUCCESS         = "Speech generated"
	TUTOR_SYNTHESIZE_FAILED          = "Text-to-speech failed"
	TUTOR_VOICES_SUCCESS             = "Voices fetched"
	TUTOR_VOICES_FAILED              = "Failed to fetch voices"
	TUTOR_ASK_SUCCESS                = "Tutor answered"
	TUTOR_ASK_FAILED                 = "Tutoring pipeline failed"
	TUTOR_STATS_SUCCESS              = "Statistics fetched"
	TUTOR_HISTORY_CLEAR_SUCCESS      = "Conversation history cleared"

	QUIZ_SESSION_START_SUCCESS   = "Quiz session started"
	QUIZ_SESSION_START_FAILED    = "Failed to start quiz session"
	QUIZ_SESSION_GET_SUCCESS     = "Quiz session fetched"
	QUIZ_SESSION_GET_FAILED      = "Quiz session not found"
	QUIZ_SESSION_ANSWER_SUCCESS  = "Answer submitted"
	QUIZ_SESSION_ANSWER_FAILED   = "Failed to submit answer"
	QUIZ_SESSION_RESTART_SUCCESS = "Quiz session restarted"
	QUIZ_SESSION_RESTART_FAILED  = "Failed to restart quiz session"
	QUIZ_SESSION_CLOSE_SUCCESS   = "Quiz session closed"
	QUIZ_SESSION_CLOSE_FAILED    = "Failed to close quiz session"

	COMPARISON_SUCCESS = "Comparison data fetched"
)
