package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fsr-protokoll/editor/internal/i18n"
)

// TestNormalize checks prefix matching and the German fallback.
func TestNormalize(t *testing.T) {
	cases := map[string]i18n.Language{
		"":        i18n.German,
		"de":      i18n.German,
		"en-US":   i18n.English,
		" ES ":    i18n.Spanish,
		"ru_RU":   i18n.Russian,
		"fr":      i18n.German,
		"klingon": i18n.German,
	}
	for in, want := range cases {
		assert.Equal(t, want, i18n.Normalize(in), "input %q", in)
	}
}

// TestT_EveryLanguageHasEveryKey guards against a table missing a message.
func TestT_EveryLanguageHasEveryKey(t *testing.T) {
	keys := []i18n.Key{
		i18n.SessionNewTopic, i18n.ResetMessage, i18n.ResetTitle,
		i18n.ImportConfirmMessage, i18n.PasteConfirmMessage, i18n.ClipboardEmpty,
		i18n.ClipboardDenied, i18n.ExportFilenamePrefix, i18n.ExportFilenameFallback,
		i18n.ErrorTitle, i18n.SuccessTitle, i18n.YAMLReadError,
		i18n.DiscordConfirmMessage, i18n.DiscordPasswordMessage, i18n.DiscordWebhookMissing,
		i18n.DiscordPasswordRequired, i18n.DiscordPasswordWrong, i18n.DiscordSendFailed,
		i18n.DiscordNetworkError, i18n.DiscordSent,
	}
	for _, lang := range i18n.Languages {
		for _, k := range keys {
			assert.NotEqual(t, string(k), i18n.T(lang, k), "%s missing %s", lang, k)
		}
	}
}

func TestT_UnknownLanguageFallsBack(t *testing.T) {
	assert.Equal(t, "Protokoll", i18n.T("xx", i18n.ExportFilenamePrefix))
	assert.Equal(t, "Acta", i18n.T(i18n.Spanish, i18n.ExportFilenamePrefix))
}
