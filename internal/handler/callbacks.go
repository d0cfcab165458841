package handler

import (
	"strings"
	"unicode"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// callbackAction returns the button a callback belongs to.
// Buttons with a Unique arrive as "\f<unique>|<data>"; telebot fills Unique for them.
func callbackAction(unique, data string) string {
	if unique != "" {
		return unique
	}
	data = cleanCallbackData(data)
	if i := strings.IndexByte(data, '|'); i >= 0 {
		data = data[:i]
	}
	return data
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, playerID int64) error {
	if err == nil {
		return nil
	}

	// If message is not modified, the board did not change
	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message not modified, acknowledging",
			zap.Int64("player_id", playerID),
			zap.String("callback_id", c.Callback().ID),
		)
		c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("player_id", playerID),
		zap.String("callback_id", c.Callback().ID),
	)
	// Always acknowledge callback before sending new message
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// handleCallback handles callbacks that did not match a registered button
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	action := callbackAction(callback.Unique, callback.Data)
	h.logger.Debug("handleCallback: Processing callback",
		zap.String("action", action),
		zap.String("data_raw", callback.Data),
		zap.String("id", callback.ID),
		zap.Int64("player_id", c.Sender().ID),
	)

	switch action {
	case btnBoard.Unique:
		return h.handleBoard(c)
	case btnShuffle.Unique:
		return h.handleShuffle(c)
	case btnClear.Unique:
		return h.handleClear(c)
	case btnSubmit.Unique:
		return h.handleSubmit(c)
	case btnStats.Unique:
		return h.handleStats(c)
	case btnCancel.Unique:
		return h.handleCancel(c)
	}

	h.logger.Warn("Unhandled callback in handleCallback",
		zap.String("action", action),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}
