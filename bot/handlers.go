package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	tele "gopkg.in/telebot.v3"

	"github.com/healthsystem/health-bot-sheets/spreadsheet"
)

const (
	Greeting = "Health Bot activated."
	Prompt   = "Button test:"
	Recorded = "Recorded."
	Failed   = "Write error."

	Yes = "Yes"
	No  = "No"
)

// Sheet is the log entry sink, implemented by *spreadsheet.Client.
type Sheet interface {
	Append(ctx context.Context, text string) error
}

// Message is the subset of tele.Context used by the handlers.
type Message interface {
	Text() string
	Message() *tele.Message
	Send(what interface{}, opts ...interface{}) error
}

type Handler struct {
	sheet Sheet
	log   *logrus.Logger
}

func NewHandler(sheet Sheet, log *logrus.Logger) *Handler {
	return &Handler{
		sheet: sheet,
		log:   log,
	}
}

func (h *Handler) Start(m Message) error {
	return m.Send(Greeting)
}

func (h *Handler) Buttons(m Message) error {
	return m.Send(Prompt, Keyboard())
}

// Text handles free text. Yes/No button presses are acknowledged, anything else
// is appended to the worksheet exactly once.
func (h *Handler) Text(ctx context.Context, m Message) error {
	text := strings.TrimSpace(m.Text())

	if isCommand(m.Message()) {
		h.log.WithField("command", text).Debug("ignoring unrecognised command")
		return nil
	}

	if text == Yes || text == No {
		return m.Send(fmt.Sprintf("You pressed %s", text))
	}

	if err := h.sheet.Append(ctx, text); err != nil {
		h.log.WithFields(logrus.Fields{
			"kind": spreadsheet.KindOf(err),
			"text": text,
		}).WithError(err).Error("worksheet append failed")

		return m.Send(Failed)
	}

	h.log.WithField("text", text).Debug("recorded")

	return m.Send(Recorded)
}

// isCommand is true for a message that starts with a bot_command entity. Text that
// merely starts with '/' is free text.
func isCommand(msg *tele.Message) bool {
	if msg == nil || len(msg.Entities) == 0 {
		return false
	}

	entity := msg.Entities[0]

	return entity.Type == tele.EntityCommand && entity.Offset == 0
}

// Keyboard returns a single row Yes/No reply keyboard that hides after one use.
func Keyboard() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{
		ResizeKeyboard:  true,
		OneTimeKeyboard: true,
	}

	markup.Reply(markup.Row(markup.Text(Yes), markup.Text(No)))

	return markup
}
