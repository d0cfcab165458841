package handler

import (
	"strings"

	"letterlinks/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	playerID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	state := h.GetState(playerID)

	switch state.State {
	case domain.StateWaitingWildcard:
		letter, err := parseLetter(text)
		if err != nil {
			return h.replyError(c, err)
		}
		return h.resolveWildcard(c, state.Cell, letter)
	default:
		return c.Send("Use /board to see today's puzzle or /help for the commands.")
	}
}
