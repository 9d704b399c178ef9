package discord

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/corestudios/rolebridge/app/models"
)

// ColorGreen is the "Green" preset of Discord's palette.
const ColorGreen = 0x57F287

// PaymentEmbed renders the audit message for a granted payment.
func PaymentEmbed(entry models.PaymentLog) *discordgo.MessageEmbed {
	email := entry.PayerEmail
	if email == "" {
		// Discord rejects empty field values
		email = "-"
	}
	paidAt := entry.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now()
	}

	return &discordgo.MessageEmbed{
		Title:       "💸 Pagamento Recebido",
		Description: fmt.Sprintf("O usuário <@%s> comprou o plano **%s**.", entry.UserID, entry.Plan),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Email do pagador", Value: email, Inline: true},
			{Name: "ID do usuário", Value: entry.UserID, Inline: true},
		},
		Color:     ColorGreen,
		Timestamp: paidAt.UTC().Format(time.RFC3339),
	}
}
