package denbot

import (
	"fmt"

	userModel "github.com/den-games/denbot/internal/database/user/model"
	"github.com/den-games/denbot/internal/denbot/resource"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

func (m *manager) isAdmin(u userModel.User, chatID int64) (bool, error) {
	if !u.Admin {
		if _, err := m.tg.Send(tgbotapi.NewMessage(chatID, resource.TextNotAnAdmin)); err != nil {
			return false, fmt.Errorf("send msg: %w", err)
		}

		return false, nil
	}

	return true, nil
}

func (m *manager) isActive(u userModel.User, chatID int64) (bool, error) {
	if !u.Admin && u.Status == userModel.StatusBanned {
		if _, err := m.tg.Send(tgbotapi.NewMessage(chatID, resource.TextBannedMsg)); err != nil {
			return false, fmt.Errorf("send msg: %w", err)
		}

		return false, nil
	}

	return true, nil
}
