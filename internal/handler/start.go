package handler

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const helpText = `🔤 <b>Letter Links</b>

Everyone gets the same board and the same tiles each day. Build connected words through the ★ center square, then submit.

<b>Cells</b> are a column letter and a row number, a1 to e5.

/board - show today's board
/place 3 c3 - put rack tile 3 on c3
/move c3 d3 - move a placed tile
/take c3 - return a tile to the rack
/wild c3 E - choose the letter of a wildcard
/shuffle - shuffle the rack
/clear - return every tile to the rack
/submit - finish today's board
/stats - your stats and achievements

<b>Squares</b>: DL/TL double or triple a letter, DW/TW double or triple a word. The ⚡ tile doubles every word it is part of. Wildcards score 0.`

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	playerID := c.Sender().ID

	h.logger.Info("Player started bot",
		zap.Int64("player_id", playerID),
		zap.String("username", c.Sender().Username),
	)

	h.ResetState(playerID)
	if err := c.Send(helpText, tele.ModeHTML); err != nil {
		return err
	}
	return h.handleBoard(c)
}

// handleHelp handles /help command
func (h *Handler) handleHelp(c tele.Context) error {
	return c.Send(helpText, tele.ModeHTML)
}
