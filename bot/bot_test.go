package bot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

type telegram struct {
	sync.Mutex
	sent []map[string]string
}

func (tg *telegram) ServeHTTP(w http.ResponseWriter, rq *http.Request) {
	tg.Lock()
	defer tg.Unlock()

	w.Header().Set("Content-Type", "application/json")

	switch {
	case strings.HasSuffix(rq.URL.Path, "/sendMessage"):
		var body map[string]any
		if err := json.NewDecoder(rq.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		sent := map[string]string{}
		for k, v := range body {
			if s, ok := v.(string); ok {
				sent[k] = s
			}
		}

		tg.sent = append(tg.sent, sent)

		w.Write([]byte(`{"ok":true,"result":{"message_id":1,"date":1700000000,"chat":{"id":405060708,"type":"private"}}}`))

	case strings.HasSuffix(rq.URL.Path, "/getUpdates"):
		w.Write([]byte(`{"ok":true,"result":[]}`))

	default:
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"ok":false,"error_code":404,"description":"Not Found"}`))
	}
}

func (tg *telegram) replies() []string {
	tg.Lock()
	defer tg.Unlock()

	replies := []string{}
	for _, m := range tg.sent {
		replies = append(replies, m["text"])
	}

	return replies
}

func newTestBot(t *testing.T, s Sheet) (*Bot, *telegram) {
	t.Helper()

	tg := &telegram{}
	srv := httptest.NewServer(tg)
	t.Cleanup(srv.Close)

	b, err := New(Settings{
		Token:       "123456:qwerty",
		URL:         srv.URL,
		Timeout:     10 * time.Millisecond,
		Offline:     true,
		Synchronous: true,
	}, NewHandler(s, logger()), logger())
	require.NoError(t, err)

	return b, tg
}

func update(text string) tele.Update {
	return tele.Update{
		ID: 1,
		Message: &tele.Message{
			ID:     1,
			Text:   text,
			Chat:   &tele.Chat{ID: 405060708, Type: tele.ChatPrivate},
			Sender: &tele.User{ID: 405060708},
		},
	}
}

func command(text string) tele.Update {
	u := update(text)
	u.Message.Entities = tele.Entities{{Type: tele.EntityCommand, Offset: 0, Length: len(text)}}

	return u
}

func TestNewWithoutToken(t *testing.T) {
	_, err := New(Settings{}, NewHandler(&sheet{}, logger()), logger())

	assert.Error(t, err)
}

func TestRouting(t *testing.T) {
	s := sheet{}
	b, tg := newTestBot(t, &s)
	b.register(context.Background())

	b.bot.ProcessUpdate(command("/start"))
	b.bot.ProcessUpdate(command("/buttons"))
	b.bot.ProcessUpdate(update("No"))
	b.bot.ProcessUpdate(command("/unknown"))
	b.bot.ProcessUpdate(update("/ slept 7 hours"))
	b.bot.ProcessUpdate(update("slept 7 hours"))

	expected := []string{
		"Health Bot activated.",
		"Button test:",
		"You pressed No",
		"Recorded.",
		"Recorded.",
	}

	assert.Equal(t, expected, tg.replies())
	assert.Equal(t, []string{"/ slept 7 hours", "slept 7 hours"}, s.appended)
}

func TestButtonsKeyboard(t *testing.T) {
	b, tg := newTestBot(t, &sheet{})
	b.register(context.Background())

	b.bot.ProcessUpdate(command("/buttons"))

	require.Len(t, tg.sent, 1)

	var markup tele.ReplyMarkup
	require.NoError(t, json.Unmarshal([]byte(tg.sent[0]["reply_markup"]), &markup))

	assert.True(t, markup.ResizeKeyboard)
	assert.True(t, markup.OneTimeKeyboard)
	require.Len(t, markup.ReplyKeyboard, 1)
	assert.Equal(t, "Yes", markup.ReplyKeyboard[0][0].Text)
	assert.Equal(t, "No", markup.ReplyKeyboard[0][1].Text)
}

func TestRunStopsOnCancel(t *testing.T) {
	b, _ := newTestBot(t, &sheet{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- b.Run(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not return after context was cancelled")
	}
}
