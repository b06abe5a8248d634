package domain

import "encoding/base64"

type EventType string

const (
	TextEventType  EventType = "text"
	AudioEventType EventType = "audio"
	ErrorEventType EventType = "error"
	DoneEventType  EventType = "done"
)

// RelayEvent is one line of the outbound stream. Audio content is base64.
type RelayEvent struct {
	Type    EventType `json:"type"`
	Content string    `json:"content,omitempty"`
}

func NewTextEvent(fragment string) RelayEvent {
	return RelayEvent{Type: TextEventType, Content: fragment}
}

func NewAudioEvent(chunk []byte) RelayEvent {
	return RelayEvent{Type: AudioEventType, Content: base64.StdEncoding.EncodeToString(chunk)}
}

func NewErrorEvent(message string) RelayEvent {
	return RelayEvent{Type: ErrorEventType, Content: message}
}

func NewDoneEvent() RelayEvent {
	return RelayEvent{Type: DoneEventType}
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

const (
	MultipleChoiceQuestion = "mcq"
	FreeResponseQuestion   = "free_response"
)

type QuizQuestion struct {
	Type          string   `json:"type"`
	Question      string   `json:"question"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer *int     `json:"correct_answer,omitempty"`
	Explanation   string   `json:"explanation,omitempty"`
	SampleAnswer  string   `json:"sample_answer,omitempty"`
}

type AnswerEvaluation struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

type StudySetKind string

const (
	FlashcardStudySet StudySetKind = "flashcards"
	QuizStudySet      StudySetKind = "quiz"
)

// StudySet is a generated flashcard or quiz set, cached for later retrieval.
type StudySet struct {
	ID        string
	Title     string
	Kind      StudySetKind
	ItemCount int
	Payload   string
}

type NoteInfo struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	Title    string `json:"title"`
	Class    string `json:"class"`
}

type RenderProgress struct {
	AnimationIndex int `json:"animationIndex"`
	Percentage     int `json:"percentage"`
}
