// Package gateway defines the messaging capability the conversation
// engine writes its replies to. Delivery is best effort; the engine only
// requires that a send is attempted.
package gateway

import "github.com/fakhrymubarak/weather-chatbot/internal/model"

type Gateway interface {
	// SendText delivers a plain or rich-text message.
	SendText(userID int64, text string) error
	// SendMenu delivers a text together with a reply keyboard of button rows.
	SendMenu(userID int64, text string, rows [][]string) error
	// SendDocument delivers a file attachment.
	SendDocument(userID int64, doc model.ChatDocument) error
}

// Recorder is a Gateway that collects every outbound message in order.
// The HTTP transport uses it to answer a request with the replies it
// produced; tests use it to assert on conversation output.
type Recorder struct {
	UserID   int64
	Messages []model.ChatMessage
}

func (r *Recorder) SendText(userID int64, text string) error {
	r.UserID = userID
	r.Messages = append(r.Messages, model.ChatMessage{Text: text})
	return nil
}

func (r *Recorder) SendMenu(userID int64, text string, rows [][]string) error {
	r.UserID = userID
	r.Messages = append(r.Messages, model.ChatMessage{Text: text, Keyboard: rows})
	return nil
}

func (r *Recorder) SendDocument(userID int64, doc model.ChatDocument) error {
	r.UserID = userID
	r.Messages = append(r.Messages, model.ChatMessage{Document: &doc})
	return nil
}
