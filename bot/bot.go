package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/middleware"
)

type Settings struct {
	Token   string
	URL     string
	Timeout time.Duration

	// Offline creates the bot without contacting the Telegram API. Synchronous
	// handles each update before accepting the next.
	Offline     bool
	Synchronous bool
}

type Bot struct {
	bot     *tele.Bot
	handler *Handler
	log     *logrus.Logger
}

func New(settings Settings, handler *Handler, log *logrus.Logger) (*Bot, error) {
	if settings.Token == "" && !settings.Offline {
		return nil, fmt.Errorf("missing Telegram bot token")
	}

	timeout := settings.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	b, err := tele.NewBot(tele.Settings{
		Token:       settings.Token,
		URL:         settings.URL,
		Poller:      &tele.LongPoller{Timeout: timeout},
		Offline:     settings.Offline,
		Synchronous: settings.Synchronous,
		OnError: func(err error, c tele.Context) {
			entry := log.WithError(err)
			if c != nil {
				entry = entry.WithField("update", c.Update().ID)
			}

			entry.Error("telegram handler error")
		},
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create Telegram bot (%w)", err)
	}

	return &Bot{
		bot:     b,
		handler: handler,
		log:     log,
	}, nil
}

// Run registers the handlers and long polls for updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	b.register(ctx)

	done := make(chan struct{})
	go func() {
		defer close(done)
		b.bot.Start()
	}()

	b.log.WithField("bot", b.bot.Me.Username).Info("bot polling started")

	select {
	case <-ctx.Done():
		b.bot.Stop()
		<-done

	case <-done:
	}

	b.log.Info("bot polling stopped")

	return nil
}

func (b *Bot) register(ctx context.Context) {
	b.bot.Use(middleware.Recover(), b.logger)

	b.bot.Handle("/start", func(c tele.Context) error {
		return b.handler.Start(c)
	})

	b.bot.Handle("/buttons", func(c tele.Context) error {
		return b.handler.Buttons(c)
	})

	b.bot.Handle(tele.OnText, func(c tele.Context) error {
		return b.handler.Text(ctx, c)
	})
}

func (b *Bot) logger(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		fields := logrus.Fields{"update": c.Update().ID}
		if sender := c.Sender(); sender != nil {
			fields["user"] = sender.ID
		}

		b.log.WithFields(fields).Debug("update")

		return next(c)
	}
}
