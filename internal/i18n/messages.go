package i18n

var messages = map[Language]map[Key]string{
	German: {
		SessionNewTopic:         "Neues Thema",
		ResetMessage:            "Möchtest du das Protokoll wirklich zurücksetzen? Alle ungespeicherten Daten gehen verloren.",
		ResetTitle:              "Protokoll zurücksetzen",
		ImportConfirmMessage:    "Das Importieren eines Protokolls überschreibt alle aktuellen Daten. Fortfahren?",
		ImportConfirmTitle:      "Importieren",
		PasteConfirmMessage:     "Das Einfügen aus der Zwischenablage überschreibt alle aktuellen Daten. Fortfahren?",
		PasteConfirmTitle:       "Einfügen",
		ClipboardEmpty:          "Zwischenablage ist leer!",
		ClipboardDenied:         "Clipboard Zugriff verweigert!",
		ExportFilenamePrefix:    "Protokoll",
		ExportFilenameFallback:  "Export",
		ErrorTitle:              "Fehler",
		SuccessTitle:            "Erfolg",
		YAMLReadError:           "Fehler beim Lesen des YAMLs. Bitte Format prüfen.",
		DiscordConfirmMessage:   "Möchtest du das Protokoll wirklich an Discord senden?",
		DiscordConfirmTitle:     "An Discord senden",
		DiscordPasswordMessage:  "Bitte Passwort eingeben:",
		DiscordPasswordTitle:    "Passwort benötigt",
		DiscordWebhookMissing:   "Discord Webhook URL nicht konfiguriert.",
		DiscordPasswordRequired: "Bitte Passwort eingeben.",
		DiscordPasswordWrong:    "Falsches Passwort.",
		DiscordSendFailed:       "Fehler beim Senden",
		DiscordNetworkError:     "Netzwerkfehler beim Senden an Discord.",
		DiscordSent:             "Protokoll erfolgreich an Discord gesendet!",
	},
	English: {
		SessionNewTopic:         "New topic",
		ResetMessage:            "Do you really want to reset the protocol? All unsaved data will be lost.",
		ResetTitle:              "Reset protocol",
		ImportConfirmMessage:    "Importing a protocol will overwrite all current data. Continue?",
		ImportConfirmTitle:      "Import",
		PasteConfirmMessage:     "Pasting from clipboard will overwrite all current data. Continue?",
		PasteConfirmTitle:       "Paste",
		ClipboardEmpty:          "Clipboard is empty!",
		ClipboardDenied:         "Clipboard access denied!",
		ExportFilenamePrefix:    "Protocol",
		ExportFilenameFallback:  "Export",
		ErrorTitle:              "Error",
		SuccessTitle:            "Success",
		YAMLReadError:           "Failed to read YAML. Please check the format.",
		DiscordConfirmMessage:   "Do you really want to send the protocol to Discord?",
		DiscordConfirmTitle:     "Send to Discord",
		DiscordPasswordMessage:  "Please enter password:",
		DiscordPasswordTitle:    "Password required",
		DiscordWebhookMissing:   "Discord webhook URL is not configured.",
		DiscordPasswordRequired: "Please enter password.",
		DiscordPasswordWrong:    "Wrong password.",
		DiscordSendFailed:       "Failed to send",
		DiscordNetworkError:     "Network error while sending to Discord.",
		DiscordSent:             "Protocol successfully sent to Discord!",
	},
	Spanish: {
		SessionNewTopic:         "Nuevo tema",
		ResetMessage:            "¿Realmente deseas restablecer el acta? Se perderán todos los datos no guardados.",
		ResetTitle:              "Restablecer acta",
		ImportConfirmMessage:    "Importar un acta sobrescribirá todos los datos actuales. ¿Continuar?",
		ImportConfirmTitle:      "Importar",
		PasteConfirmMessage:     "Pegar desde el portapapeles sobrescribirá todos los datos actuales. ¿Continuar?",
		PasteConfirmTitle:       "Pegar",
		ClipboardEmpty:          "¡El portapapeles está vacío!",
		ClipboardDenied:         "¡Acceso al portapapeles denegado!",
		ExportFilenamePrefix:    "Acta",
		ExportFilenameFallback:  "Exportar",
		ErrorTitle:              "Error",
		SuccessTitle:            "Éxito",
		YAMLReadError:           "Error al leer el YAML. Por favor, comprueba el formato.",
		DiscordConfirmMessage:   "¿Realmente deseas enviar el acta a Discord?",
		DiscordConfirmTitle:     "Enviar a Discord",
		DiscordPasswordMessage:  "Por favor, introduce la contraseña:",
		DiscordPasswordTitle:    "Contraseña requerida",
		DiscordWebhookMissing:   "URL del webhook de Discord no configurada.",
		DiscordPasswordRequired: "Por favor, introduce la contraseña.",
		DiscordPasswordWrong:    "Contraseña incorrecta.",
		DiscordSendFailed:       "Error al enviar",
		DiscordNetworkError:     "Error de red al enviar a Discord.",
		DiscordSent:             "¡Acta enviada con éxito a Discord!",
	},
	Russian: {
		SessionNewTopic:         "Новая тема",
		ResetMessage:            "Вы действительно хотите сбросить протокол? Все несохраненные данные будут утеряны.",
		ResetTitle:              "Сбросить протокол",
		ImportConfirmMessage:    "Импорт протокола перезапишет все текущие данные. Продолжить?",
		ImportConfirmTitle:      "Импорт",
		PasteConfirmMessage:     "Вставка из буфера обмена перезапишет все текущие данные. Продолжить?",
		PasteConfirmTitle:       "Вставить",
		ClipboardEmpty:          "Буфер обмена пуст!",
		ClipboardDenied:         "Доступ к буферу обмена запрещен!",
		ExportFilenamePrefix:    "Протокол",
		ExportFilenameFallback:  "Экспорт",
		ErrorTitle:              "Ошибка",
		SuccessTitle:            "Успех",
		YAMLReadError:           "Ошибка чтения YAML. Пожалуйста, проверьте формат.",
		DiscordConfirmMessage:   "Вы действительно хотите отправить протокол в Discord?",
		DiscordConfirmTitle:     "Отправить в Discord",
		DiscordPasswordMessage:  "Введите пароль:",
		DiscordPasswordTitle:    "Требуется пароль",
		DiscordWebhookMissing:   "URL вебхука Discord не настроен.",
		DiscordPasswordRequired: "Пожалуйста, введите пароль.",
		DiscordPasswordWrong:    "Неверный пароль.",
		DiscordSendFailed:       "Ошибка при отправке",
		DiscordNetworkError:     "Сетевая ошибка при отправке в Discord.",
		DiscordSent:             "Протокол успешно отправлен в Discord!",
	},
}
