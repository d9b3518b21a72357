package model

// Response is a generic struct for API responses
type Response struct {
	Data    interface{} `json:"data,omitempty"`
	Error   *string     `json:"error,omitempty"`
	Message string      `json:"message"`
}

// ChatDocument is a file attachment delivered to the user.
type ChatDocument struct {
	Filename string `json:"filename"`
	Caption  string `json:"caption"`
	Data     []byte `json:"data"`
}

// ChatMessage is one outbound message produced while handling a single
// inbound text: plain or rich text, an optional reply keyboard and an
// optional attachment.
type ChatMessage struct {
	Text     string        `json:"text,omitempty"`
	Keyboard [][]string    `json:"keyboard,omitempty"`
	Document *ChatDocument `json:"document,omitempty"`
}
