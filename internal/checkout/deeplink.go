package checkout

import (
	"fmt"
	"net/url"
)

// Config holds the chat destinations orders are handed off to.
type Config struct {
	// TelegramUsername is the t.me account name, without the @.
	TelegramUsername string
	// WhatsAppPhone is the wa.me number in international format, digits only.
	WhatsAppPhone string
}

// DeepLink builds the https URL that opens the chat application with the
// order message pre-filled. There is no structured payload and no delivery
// confirmation; the message is the whole contract.
func DeepLink(cfg Config, channel Channel, msg string) (string, error) {
	switch channel {
	case ChannelTelegram:
		if cfg.TelegramUsername == "" {
			return "", fmt.Errorf("telegram username is not configured")
		}
		return fmt.Sprintf("https://t.me/%s?text=%s", cfg.TelegramUsername, url.QueryEscape(msg)), nil
	case ChannelWhatsApp:
		if cfg.WhatsAppPhone == "" {
			return "", fmt.Errorf("whatsapp phone is not configured")
		}
		return fmt.Sprintf("https://wa.me/%s?text=%s", cfg.WhatsAppPhone, url.QueryEscape(msg)), nil
	default:
		return "", fmt.Errorf("unknown checkout channel %q", channel)
	}
}
