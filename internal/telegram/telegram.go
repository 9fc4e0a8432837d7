package telegram

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	tele "gopkg.in/telebot.v3"
)

type Notifier struct {
	log *logrus.Entry
	bot *tele.Bot

	mu    sync.Mutex
	chats map[string]int64
}

func NewBot(token string) (*tele.Bot, error) {
	config := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(config)
	if err != nil {
		return nil, fmt.Errorf("new bot failed: %w", err)
	}
	return b, nil
}

func NewNotifier(log *logrus.Logger, bot *tele.Bot) *Notifier {
	n := Notifier{
		log:   log.WithField("component", "telegram"),
		bot:   bot,
		chats: make(map[string]int64),
	}
	n.initHandlers()
	return &n
}

func (n *Notifier) initHandlers() {
	// /start <email> binds the chat to that user's notifications.
	n.bot.Handle("/start", func(ctx tele.Context) error {
		email := strings.TrimSpace(ctx.Message().Payload)
		if email == "" {
			return ctx.Send("Send /start <email> to receive meeting notifications.")
		}
		n.bind(email, ctx.Chat().ID)
		return ctx.Send(fmt.Sprintf("Notifications for %s will arrive here.", email))
	})
}

func (n *Notifier) bind(email string, chatID int64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.chats[email] = chatID
	n.log.Infof("bound chat %d to %s", chatID, email)
}

func (n *Notifier) Notify(_ context.Context, message, user string) error {
	n.mu.Lock()
	chatID, ok := n.chats[user]
	n.mu.Unlock()
	if !ok {
		n.log.Infof("no chat bound for %s: %s", user, message)
		return nil
	}
	if _, err := n.bot.Send(&tele.Chat{ID: chatID}, message); err != nil {
		return fmt.Errorf("tg send message failed: %w", err)
	}
	return nil
}

func (n *Notifier) Run(ctx context.Context) {
	go func() {
		<-ctx.Done()
		n.bot.Stop()
	}()
	n.log.Infof("starting telegram bot as %v", n.bot.Me.Username)
	n.bot.Start()
}
