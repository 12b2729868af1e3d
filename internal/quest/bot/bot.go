// Package bot is the Telegram front end of the registration dialogue. It maps
// commands, text replies and button presses onto service.DialogueService and
// renders the outcome in the user's language.
package bot

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aussiebroadwan/cardquest/internal/quest/service"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/text/language"
)

// API is the subset of *tgbotapi.BotAPI the bot uses.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type Bot struct {
	API       API
	Dialogues *service.DialogueService
	Logger    *slog.Logger

	// Language is used when a user's Telegram language is unsupported.
	Language language.Tag

	// PollTimeout is the long-poll timeout in seconds.
	PollTimeout int

	queues *chatQueues
}

func New(api API, dialogues *service.DialogueService, logger *slog.Logger) *Bot {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bot{
		API:         api,
		Dialogues:   dialogues,
		Logger:      logger,
		Language:    language.English,
		PollTimeout: 30,
	}
}

// Connect builds a bot against the Telegram Bot API. An empty endpoint uses
// the public one.
func Connect(token, endpoint string) (*tgbotapi.BotAPI, error) {
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	return tgbotapi.NewBotAPIWithAPIEndpoint(token, endpoint)
}

// Run long-polls for updates until ctx is done. Updates from one chat are
// handled in order; different chats are handled concurrently. Run returns
// once every in-flight update has been handled.
func (b *Bot) Run(ctx context.Context) error {
	b.queues = newChatQueues(func(upd tgbotapi.Update) {
		b.HandleUpdate(context.WithoutCancel(ctx), upd)
	})
	defer b.queues.wait()

	if err := b.registerCommands(); err != nil {
		b.Logger.Warn("failed to publish bot commands", slog.Any("error", err))
	}

	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = b.PollTimeout
	updates := b.API.GetUpdatesChan(cfg)

	b.Logger.Info("telegram bot started")
	for {
		select {
		case <-ctx.Done():
			b.API.StopReceivingUpdates()
			b.Logger.Info("telegram bot stopped")
			return nil
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			chat := upd.FromChat()
			if chat == nil {
				continue
			}
			b.queues.push(chat.ID, upd)
		}
	}
}

func (b *Bot) registerCommands() error {
	for _, tag := range supported {
		p := printerFor(tag.String(), b.Language)
		cfg := tgbotapi.NewSetMyCommands(b.commands(p)...)
		if tag != b.Language {
			cfg.LanguageCode = tag.String()
		}
		if _, err := b.API.Request(cfg); err != nil {
			return err
		}
	}
	return nil
}

// chatQueues runs one drain goroutine per chat with pending updates.
type chatQueues struct {
	mu      sync.Mutex
	pending map[int64][]tgbotapi.Update
	wg      sync.WaitGroup
	handle  func(tgbotapi.Update)
}

func newChatQueues(handle func(tgbotapi.Update)) *chatQueues {
	return &chatQueues{
		pending: map[int64][]tgbotapi.Update{},
		handle:  handle,
	}
}

func (q *chatQueues) push(chatID int64, upd tgbotapi.Update) {
	q.mu.Lock()
	queue, busy := q.pending[chatID]
	q.pending[chatID] = append(queue, upd)
	q.mu.Unlock()

	if busy {
		return
	}
	q.wg.Add(1)
	go q.drain(chatID)
}

func (q *chatQueues) drain(chatID int64) {
	defer q.wg.Done()
	for {
		q.mu.Lock()
		queue := q.pending[chatID]
		if len(queue) == 0 {
			delete(q.pending, chatID)
			q.mu.Unlock()
			return
		}
		upd := queue[0]
		q.pending[chatID] = queue[1:]
		q.mu.Unlock()

		q.handle(upd)
	}
}

func (q *chatQueues) wait() { q.wg.Wait() }
