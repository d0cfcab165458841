package middleware

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// PlayerRegistry makes sure a player record exists
type PlayerRegistry interface {
	EnsurePlayerExists(playerID int64) error
}

// PlayerMiddleware registers the sender before any handler runs
func PlayerMiddleware(players PlayerRegistry, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil {
				return next(c)
			}

			if err := players.EnsurePlayerExists(sender.ID); err != nil {
				logger.Error("Failed to ensure player exists in middleware",
					zap.Int64("player_id", sender.ID),
					zap.Error(err),
				)
				return c.Send("Something went wrong. Please try again later.")
			}

			return next(c)
		}
	}
}
