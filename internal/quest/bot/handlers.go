package bot

import (
	"context"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/cardquest/internal/quest/domain"
	"github.com/aussiebroadwan/cardquest/internal/quest/service"
	"github.com/aussiebroadwan/cardquest/pkg/slogx"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/text/message"
)

// HandleUpdate processes a single update. It is exported so the dispatcher
// can be driven without long polling.
func (b *Bot) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	chat := upd.FromChat()
	if chat == nil {
		return
	}
	ctx = slogx.WithConversation(ctx, b.Logger, chat.ID, upd.UpdateID)

	var lang string
	if from := upd.SentFrom(); from != nil {
		lang = from.LanguageCode
	}
	p := printerFor(lang, b.Language)

	switch {
	case upd.CallbackQuery != nil:
		b.handleCallback(ctx, p, chat.ID, upd.CallbackQuery)
	case upd.Message != nil && upd.Message.IsCommand():
		b.handleCommand(ctx, p, upd.Message)
	case upd.Message != nil:
		b.handleText(ctx, p, upd.Message)
	}
}

func (b *Bot) handleCommand(ctx context.Context, p *message.Printer, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "help":
		b.send(ctx, chatID, b.helpText(p), nil)
	case "start":
		b.send(ctx, chatID, p.Sprintf(msgStart), nil)
	case "register":
		reply := b.Dialogues.Register(ctx, chatID, strings.TrimSpace(msg.CommandArguments()))
		if reply.Outcome != service.OutcomeAwaitingUsername {
			b.reply(ctx, p, chatID, reply)
			return
		}
		b.send(ctx, chatID, p.Sprintf(msgStarted), nil)
		b.send(ctx, chatID, p.Sprintf(msgUsernamePrompt), usernameKeyboard(p, msg.From))
	case "cancel":
		b.reply(ctx, p, chatID, b.Dialogues.Cancel(ctx, chatID))
	default:
		b.send(ctx, chatID, p.Sprintf(msgUnknownCommand), nil)
	}
}

func (b *Bot) handleText(ctx context.Context, p *message.Printer, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if b.Dialogues.State(chatID).Step != domain.DialogueAwaitingUsername {
		b.send(ctx, chatID, p.Sprintf(msgNoRegistration), nil)
		return
	}
	if strings.TrimSpace(msg.Text) == "" {
		b.send(ctx, chatID, p.Sprintf(msgUsernameMissing), nil)
		return
	}

	b.reply(ctx, p, chatID, b.Dialogues.SubmitUsername(ctx, chatID, msg.Text))
}

func (b *Bot) handleCallback(ctx context.Context, p *message.Printer, chatID int64, cq *tgbotapi.CallbackQuery) {
	if _, err := b.API.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		slogx.FromContext(ctx).Warn("failed to acknowledge callback", slog.Any("error", err))
	}
	if cq.Data == "" {
		return
	}
	b.reply(ctx, p, chatID, b.Dialogues.SubmitUsername(ctx, chatID, cq.Data))
}

// reply renders a dialogue outcome.
func (b *Bot) reply(ctx context.Context, p *message.Printer, chatID int64, r service.Reply) {
	switch r.Outcome {
	case service.OutcomeRegistered:
		b.send(ctx, chatID, p.Sprintf(msgUsernameChosen, r.Username), nil)
		b.send(ctx, chatID, p.Sprintf(msgRegistered), nil)
	case service.OutcomeTokenMalformed:
		b.send(ctx, chatID, p.Sprintf(msgTokenMalformed), nil)
	case service.OutcomeTokenInvalid:
		b.send(ctx, chatID, p.Sprintf(msgTokenInvalid), nil)
	case service.OutcomeAlreadyInProgress:
		b.send(ctx, chatID, p.Sprintf(msgInProgress), nil)
	case service.OutcomeUsernameTaken:
		b.send(ctx, chatID, p.Sprintf(msgUsernameTaken, r.Username), nil)
	case service.OutcomeUsernameInvalid:
		b.send(ctx, chatID, p.Sprintf(msgUsernameInvalid), nil)
	case service.OutcomeRegistrationFailed:
		b.send(ctx, chatID, p.Sprintf(msgFailed), nil)
	case service.OutcomeCancelled:
		b.send(ctx, chatID, p.Sprintf(msgCancelled), nil)
	case service.OutcomeNoRegistration:
		b.send(ctx, chatID, p.Sprintf(msgNoRegistration), nil)
	default:
		slogx.FromContext(ctx).Warn("unhandled dialogue outcome", slog.String("outcome", r.Outcome.String()))
	}
}

func (b *Bot) send(ctx context.Context, chatID int64, text string, markup any) {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	if _, err := b.API.Send(msg); err != nil {
		slogx.FromContext(ctx).Error("failed to send message", slog.Any("error", err))
	}
}

func (b *Bot) commands(p *message.Printer) []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{Command: "help", Description: p.Sprintf(msgCmdHelp)},
		{Command: "start", Description: p.Sprintf(msgCmdStart)},
		{Command: "register", Description: p.Sprintf(msgCmdRegister)},
		{Command: "cancel", Description: p.Sprintf(msgCmdCancel)},
	}
}

func (b *Bot) helpText(p *message.Printer) string {
	var sb strings.Builder
	sb.WriteString(p.Sprintf(msgHelpHeader))
	for _, c := range b.commands(p) {
		sb.WriteString("\n/" + c.Command + " - " + c.Description)
	}
	return sb.String()
}

// usernameKeyboard offers the sender's Telegram username as a one-tap
// choice. Users without a username get no keyboard.
func usernameKeyboard(p *message.Printer, from *tgbotapi.User) any {
	if from == nil || from.UserName == "" {
		return nil
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(p.Sprintf(msgUsernameButton, from.UserName), from.UserName),
		),
	)
}
