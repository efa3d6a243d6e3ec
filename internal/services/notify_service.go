package services

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"indicamais/internal/models"
)

// NotifyService publica eventos de repasse no canal do financeiro.
// Sem token configurado o serviço é nil e todos os métodos viram no-op.
type NotifyService struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewNotifyService(botToken string, chatID int64) (*NotifyService, error) {
	if botToken == "" || chatID == 0 {
		return nil, nil
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &NotifyService{bot: bot, chatID: chatID}, nil
}

func (n *NotifyService) SettlementPaid(lead *models.Lead, paidBy string) error {
	if n == nil || n.bot == nil {
		return nil
	}
	text := fmt.Sprintf("💸 Indicação paga\nLead: %s\nPago por: %s", lead.FullName, paidBy)
	msg := tgbotapi.NewMessage(n.chatID, text)
	_, err := n.bot.Send(msg)
	return err
}
