// Package i18n holds the small set of localized messages the editor core
// needs for dialogs, default titles and publish results.
package i18n

import "strings"

// Language is a supported UI language code.
type Language string

const (
	German  Language = "de"
	English Language = "en"
	Spanish Language = "es"
	Russian Language = "ru"
)

// Default is used whenever no usable language is stored or requested.
const Default = German

// Languages lists every supported language in display order.
var Languages = []Language{German, English, Spanish, Russian}

// Normalize maps arbitrary input ("en-US", " RU ", "") to a supported
// language by prefix, falling back to Default.
func Normalize(input string) Language {
	raw := strings.ToLower(strings.TrimSpace(input))
	for _, l := range Languages {
		if strings.HasPrefix(raw, string(l)) {
			return l
		}
	}
	return Default
}

// Key identifies one message.
type Key string

const (
	SessionNewTopic Key = "session.newTopic"

	ResetMessage Key = "protocol.reset.message"
	ResetTitle   Key = "protocol.reset.title"

	ImportConfirmMessage Key = "import.confirm.message"
	ImportConfirmTitle   Key = "import.confirm.title"
	PasteConfirmMessage  Key = "paste.confirm.message"
	PasteConfirmTitle    Key = "paste.confirm.title"
	ClipboardEmpty       Key = "clipboard.empty"
	ClipboardDenied      Key = "clipboard.denied"

	ExportFilenamePrefix   Key = "export.filenamePrefix"
	ExportFilenameFallback Key = "export.filenameFallback"

	ErrorTitle    Key = "error.title"
	SuccessTitle  Key = "success.title"
	YAMLReadError Key = "yaml.readError"

	DiscordConfirmMessage   Key = "discord.confirm.message"
	DiscordConfirmTitle     Key = "discord.confirm.title"
	DiscordPasswordMessage  Key = "discord.password.message"
	DiscordPasswordTitle    Key = "discord.password.title"
	DiscordWebhookMissing   Key = "discord.webhookMissing"
	DiscordPasswordRequired Key = "discord.passwordRequired"
	DiscordPasswordWrong    Key = "discord.passwordWrong"
	DiscordSendFailed       Key = "discord.sendFailed"
	DiscordNetworkError     Key = "discord.networkError"
	DiscordSent             Key = "discord.sent"
)

// T returns the message for key in lang. Unknown languages use Default and
// unknown keys return the key itself.
func T(lang Language, key Key) string {
	table, ok := messages[lang]
	if !ok {
		table = messages[Default]
	}
	if msg, ok := table[key]; ok {
		return msg
	}
	return string(key)
}
