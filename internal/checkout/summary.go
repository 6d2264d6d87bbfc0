// Package checkout turns a cart into the text order summary handed off to a
// chat application via a pre-filled deep link.
package checkout

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"molove/internal/models"
)

// Channel selects which chat application receives the order.
type Channel string

const (
	// ChannelTelegram opens t.me with the message pre-filled.
	ChannelTelegram Channel = "telegram"
	// ChannelWhatsApp opens wa.me with the message pre-filled.
	ChannelWhatsApp Channel = "whatsapp"
)

// Valid reports whether the channel is one of the supported destinations.
func (c Channel) Valid() bool {
	return c == ChannelTelegram || c == ChannelWhatsApp
}

const (
	articleFallback = "Н/Д"
	sizeFallback    = "не выбран"
	divider         = "━━━━━━━━━━━━━━━━"
)

var rub = message.NewPrinter(language.Russian)

// FormatPrice renders an amount with Russian thousands separators and the
// ruble sign, e.g. 12500 -> "12 500 ₽".
func FormatPrice(amount int) string {
	return rub.Sprintf("%d ₽", amount)
}

// Summary builds the deterministic, human-readable order message for a
// channel. Channel choice changes only the heading, never the items or total.
func Summary(channel Channel, orderID string, items []models.OrderItem, total int) string {
	lines := make([]string, 0, len(items))
	for i, item := range items {
		article := item.Article
		if article == "" {
			article = articleFallback
		}
		size := item.Size
		if size == "" {
			size = sizeFallback
		}
		lineTotal := item.Price * item.Quantity
		lines = append(lines, fmt.Sprintf(
			"%d. %s\n   Артикул: %s\n   Размер: %s\n   Количество: %d шт.\n   Цена: %s\n   Сумма: %s",
			i+1, item.Name, article, size, item.Quantity,
			FormatPrice(item.Price), FormatPrice(lineTotal),
		))
	}

	return fmt.Sprintf(
		"%s\n\n%s\n\n%s\n💰 ИТОГО: %s\n\n📱 Пожалуйста, свяжитесь со мной для подтверждения заказа",
		heading(channel, orderID),
		strings.Join(lines, "\n\n"),
		divider,
		FormatPrice(total),
	)
}

func heading(channel Channel, orderID string) string {
	if channel == ChannelWhatsApp {
		return "🛍️ НОВЫЙ ЗАКАЗ MOLOVE"
	}
	return fmt.Sprintf("🛍️ НОВЫЙ ЗАКАЗ #%s", shortID(orderID))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
