package handler

import (
	"errors"
	"fmt"

	"letterlinks/internal/board"
	"letterlinks/internal/domain"
	"letterlinks/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// reply edits the message when answering a button, sends a new one otherwise
func (h *Handler) reply(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	opts := []interface{}{tele.ModeHTML}
	if markup != nil {
		opts = append(opts, markup)
	}
	if c.Callback() != nil {
		if err := c.Edit(text, opts...); err != nil {
			if handleErr := h.handleEditError(err, c, c.Sender().ID); handleErr == nil {
				return nil
			}
			return c.Send(text, opts...)
		}
		return c.Respond()
	}
	return c.Send(text, opts...)
}

// replyError tells the player what went wrong
func (h *Handler) replyError(c tele.Context, err error) error {
	playerID := c.Sender().ID
	msg := userMessage(err)
	if msg == userMessage(nil) {
		h.logger.Error("Game action failed", zap.Int64("player_id", playerID), zap.Error(err))
	} else {
		h.logger.Debug("Game action rejected", zap.Int64("player_id", playerID), zap.Error(err))
	}
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: msg, ShowAlert: true})
	}
	return c.Send(msg)
}

// showBoard renders a view with its keyboard
func (h *Handler) showBoard(c tele.Context, v *service.View) error {
	return h.reply(c, renderBoard(v), boardMarkup(v.Completed))
}

// handleBoard handles /board and the board button
func (h *Handler) handleBoard(c tele.Context) error {
	v, err := h.gameService.Start(c.Sender().ID)
	if err != nil {
		return h.replyError(c, err)
	}
	return h.showBoard(c, v)
}

// handlePlace handles /place <rack#> <cell>
func (h *Handler) handlePlace(c tele.Context) error {
	playerID := c.Sender().ID
	args := c.Args()
	if len(args) != 2 {
		return c.Send("Usage: /place <rack number> <cell>, for example /place 3 c3")
	}

	current, err := h.gameService.Start(playerID)
	if err != nil {
		return h.replyError(c, err)
	}
	idx, err := parseRackIndex(args[0], len(current.Rack))
	if err != nil {
		return h.replyError(c, err)
	}
	pos, err := parseCell(args[1])
	if err != nil {
		return h.replyError(c, err)
	}

	tile := current.Rack[idx]
	v, err := h.gameService.Place(playerID, tile.ID, pos)
	if err != nil {
		return h.replyError(c, err)
	}

	if err := h.showBoard(c, v); err != nil {
		return err
	}
	if tile.IsWildcard() {
		return h.askWildcard(c, pos)
	}
	return nil
}

// handleMove handles /move <cell> <cell>
func (h *Handler) handleMove(c tele.Context) error {
	args := c.Args()
	if len(args) != 2 {
		return c.Send("Usage: /move <from> <to>, for example /move c3 d3")
	}
	from, err := parseCell(args[0])
	if err != nil {
		return h.replyError(c, err)
	}
	to, err := parseCell(args[1])
	if err != nil {
		return h.replyError(c, err)
	}

	v, err := h.gameService.Move(c.Sender().ID, from, to)
	if err != nil {
		return h.replyError(c, err)
	}
	return h.showBoard(c, v)
}

// handleTake handles /take <cell>
func (h *Handler) handleTake(c tele.Context) error {
	args := c.Args()
	if len(args) != 1 {
		return c.Send("Usage: /take <cell>, for example /take c3")
	}
	pos, err := parseCell(args[0])
	if err != nil {
		return h.replyError(c, err)
	}

	v, err := h.gameService.Remove(c.Sender().ID, pos)
	if err != nil {
		return h.replyError(c, err)
	}
	return h.showBoard(c, v)
}

// handleWild handles /wild <cell> <letter>
func (h *Handler) handleWild(c tele.Context) error {
	args := c.Args()
	if len(args) != 2 {
		return c.Send("Usage: /wild <cell> <letter>, for example /wild c3 E")
	}
	pos, err := parseCell(args[0])
	if err != nil {
		return h.replyError(c, err)
	}
	letter, err := parseLetter(args[1])
	if err != nil {
		return h.replyError(c, err)
	}
	return h.resolveWildcard(c, pos, letter)
}

func (h *Handler) resolveWildcard(c tele.Context, pos domain.Position, letter rune) error {
	playerID := c.Sender().ID
	v, err := h.gameService.ResolveWildcard(playerID, pos, letter)
	if err != nil {
		// keep waiting only when the letter itself was wrong
		if !errors.Is(err, board.ErrInvalidLetter) {
			h.ResetState(playerID)
		}
		return h.replyError(c, err)
	}
	h.ResetState(playerID)
	return h.showBoard(c, v)
}

// askWildcard waits for the letter of the wildcard just placed at pos
func (h *Handler) askWildcard(c tele.Context, pos domain.Position) error {
	h.SetState(c.Sender().ID, &domain.StateData{
		State: domain.StateWaitingWildcard,
		Cell:  pos,
	})
	return c.Send(fmt.Sprintf("🃏 Which letter should the wildcard on %s be? Send one letter.", pos), cancelMarkup())
}

// handleShuffle handles /shuffle and the shuffle button
func (h *Handler) handleShuffle(c tele.Context) error {
	v, err := h.gameService.Shuffle(c.Sender().ID)
	if err != nil {
		return h.replyError(c, err)
	}
	return h.showBoard(c, v)
}

// handleClear handles /clear and the clear button
func (h *Handler) handleClear(c tele.Context) error {
	playerID := c.Sender().ID
	v, err := h.gameService.Clear(playerID)
	if err != nil {
		return h.replyError(c, err)
	}
	h.ResetState(playerID)
	return h.showBoard(c, v)
}

// handleSubmit handles /submit and the submit button
func (h *Handler) handleSubmit(c tele.Context) error {
	playerID := c.Sender().ID
	v, err := h.gameService.Submit(playerID)
	switch {
	case errors.Is(err, service.ErrNotSubmittable):
		// the board shows what is missing
		if c.Callback() != nil {
			_ = c.Respond(&tele.CallbackResponse{Text: userMessage(err)})
		}
		return c.Send(renderBoard(v), tele.ModeHTML, boardMarkup(false))
	case err != nil:
		return h.replyError(c, err)
	}

	h.ResetState(playerID)
	h.logger.Info("Player submitted board", zap.Int64("player_id", playerID), zap.Int("score", v.Score))
	return h.showBoard(c, v)
}

// handleStats handles /stats and the stats button
func (h *Handler) handleStats(c tele.Context) error {
	p, err := h.gameService.Progress(c.Sender().ID)
	if err != nil {
		return h.replyError(c, err)
	}
	return h.reply(c, renderStats(p), statsMarkup())
}

// handleCancel cancels waiting for input
func (h *Handler) handleCancel(c tele.Context) error {
	playerID := c.Sender().ID
	h.ResetState(playerID)
	if err := c.Edit("Cancelled. Use /wild to choose the letter later."); err != nil {
		if handleErr := h.handleEditError(err, c, playerID); handleErr == nil {
			return nil
		}
		return c.Send("Cancelled. Use /wild to choose the letter later.")
	}
	return c.Respond()
}
