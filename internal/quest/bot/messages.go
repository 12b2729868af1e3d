package bot

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys. English is the fallback when a user's Telegram language is
// not supported.
const (
	msgHelpHeader     = "bot.help.header"
	msgCmdHelp        = "bot.cmd.help"
	msgCmdStart       = "bot.cmd.start"
	msgCmdRegister    = "bot.cmd.register"
	msgCmdCancel      = "bot.cmd.cancel"
	msgStart          = "bot.start"
	msgUnknownCommand = "bot.unknown_command"

	msgTokenMalformed = "bot.register.malformed"
	msgTokenInvalid   = "bot.register.invalid"
	msgStarted        = "bot.register.started"
	msgInProgress     = "bot.register.in_progress"

	msgUsernamePrompt  = "bot.username.prompt"
	msgUsernameButton  = "bot.username.button"
	msgUsernameChosen  = "bot.username.chosen"
	msgUsernameTaken   = "bot.username.taken"
	msgUsernameInvalid = "bot.username.invalid"
	msgUsernameMissing = "bot.username.missing"

	msgRegistered     = "bot.registered"
	msgFailed         = "bot.failed"
	msgCancelled      = "bot.cancelled"
	msgNoRegistration = "bot.no_registration"
)

var supported = []language.Tag{language.English, language.Russian}

var matcher = language.NewMatcher(supported)

func init() {
	for key, msg := range map[string]string{
		msgHelpHeader:      "Bot commands:",
		msgCmdHelp:         "Show this message",
		msgCmdStart:        "Show what this bot does",
		msgCmdRegister:     "Start registration, takes your registration token",
		msgCmdCancel:       "Cancel registration",
		msgStart:           "This bot registers you for the quest.\nStart with /register <token>, using the registration token you were given.",
		msgUnknownCommand:  "Unknown command. Send /help for the list of commands.",
		msgTokenMalformed:  "Invalid registration token! It must be 8 characters.",
		msgTokenInvalid:    "Unknown or already used registration token!",
		msgStarted:         "You are starting registration for the quest.",
		msgInProgress:      "Registration is already in progress. Send your username or /cancel.",
		msgUsernamePrompt:  "Enter your preferred username.",
		msgUsernameButton:  "Use %s",
		msgUsernameChosen:  "You chose the username: %s",
		msgUsernameTaken:   "User %s already exists!\nPlease choose another username.",
		msgUsernameInvalid: "A username must be 1 to 32 characters without control characters.",
		msgUsernameMissing: "Type your username.",
		msgRegistered:      "Registration completed successfully!",
		msgFailed:          "Registration could not be completed! Please try again.",
		msgCancelled:       "Registration cancelled. Your token is still valid.",
		msgNoRegistration:  "There is no registration in progress. Start with /register <token>.",
	} {
		_ = message.SetString(language.English, key, msg)
	}

	for key, msg := range map[string]string{
		msgHelpHeader:      "Список команд бота:",
		msgCmdHelp:         "Показывает это сообщение",
		msgCmdStart:        "Показывает основную информацию про этого бота",
		msgCmdRegister:     "Начинает процесс регистрации. Берет токен регистрации как аргумент",
		msgCmdCancel:       "Отменяет процесс регистрации",
		msgStart:           "Этот бот позволяет вам регистрироваться на квест.\nНачните процесс регистрации командой /register <токен>, заменив <токен> на ваш токен регистрации.",
		msgUnknownCommand:  "Неизвестная команда. Отправьте /help для списка команд.",
		msgTokenMalformed:  "Неверный токен регистрации!",
		msgTokenInvalid:    "Неверный токен для регистрации!",
		msgStarted:         "Вы начинаете регистрацию на квест.",
		msgInProgress:      "Регистрация уже идет. Отправьте ник или /cancel.",
		msgUsernamePrompt:  "Введите предпочитаемый ник.",
		msgUsernameButton:  "Использовать %s",
		msgUsernameChosen:  "Вы выбрали ник: %s",
		msgUsernameTaken:   "Пользователь с ником %s уже существует!\nПожалуйста, выберите другой ник.",
		msgUsernameInvalid: "Ник должен содержать от 1 до 32 символов без управляющих символов.",
		msgUsernameMissing: "Напишите ваш ник.",
		msgRegistered:      "Регистрация проведена успешно!",
		msgFailed:          "Не удалось провести регистрацию! Попробуйте еще раз.",
		msgCancelled:       "Регистрация отменена. Токен по-прежнему действителен.",
		msgNoRegistration:  "Регистрация не начата. Начните командой /register <токен>.",
	} {
		_ = message.SetString(language.Russian, key, msg)
	}
}

// printerFor picks the catalog for a Telegram language code such as "ru" or
// "en-US", falling back to fallback when nothing matches.
func printerFor(code string, fallback language.Tag) *message.Printer {
	if code == "" {
		return message.NewPrinter(fallback)
	}
	tag, err := language.Parse(code)
	if err != nil {
		return message.NewPrinter(fallback)
	}
	_, i, conf := matcher.Match(tag)
	if conf == language.No {
		return message.NewPrinter(fallback)
	}
	return message.NewPrinter(supported[i])
}
