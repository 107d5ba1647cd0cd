package domain

type ChatSession struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Messages    []Message `json:"messages"`
	LastUpdated int64     `json:"lastUpdated"`
}

type Message struct {
	ID        string              `json:"id"`
	Role      string              `json:"role"`
	Content   string              `json:"content"`
	Image     string              `json:"image,omitempty"`
	Analysis  *SkinAnalysisResult `json:"analysis,omitempty"`
	Timestamp int64               `json:"timestamp"`
}

const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
)

const (
	// DefaultSessionTitle is the label of a session before its first message.
	DefaultSessionTitle = "New Consultation"

	// ImageOnlySessionTitle is used when the first message carries an image
	// without any text.
	ImageOnlySessionTitle = "Image Analysis"

	// SessionTitleMaxLen caps how many characters of the first message become
	// the title.
	SessionTitleMaxLen = 30
)

// DeriveSessionTitle builds a session title from the leading text of the
// session's first user message. Truncation counts runes, never splitting a
// multi-byte character.
func DeriveSessionTitle(text string) string {
	if text == "" {
		return ImageOnlySessionTitle
	}
	runes := []rune(text)
	if len(runes) > SessionTitleMaxLen {
		return string(runes[:SessionTitleMaxLen])
	}
	return text
}
