package handler

import (
	"sync"

	"letterlinks/internal/domain"
	"letterlinks/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all bot interactions
type Handler struct {
	bot         *tele.Bot
	gameService *service.GameService
	logger      *zap.Logger

	// Player states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	gameService *service.GameService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:         bot,
		gameService: gameService,
		logger:      logger,
		states:      make(map[int64]*domain.StateData),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/help", h.handleHelp)
	h.bot.Handle("/board", h.handleBoard)
	h.bot.Handle("/place", h.handlePlace)
	h.bot.Handle("/move", h.handleMove)
	h.bot.Handle("/take", h.handleTake)
	h.bot.Handle("/wild", h.handleWild)
	h.bot.Handle("/shuffle", h.handleShuffle)
	h.bot.Handle("/clear", h.handleClear)
	h.bot.Handle("/submit", h.handleSubmit)
	h.bot.Handle("/stats", h.handleStats)

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)

	// Callback queries (inline buttons)
	h.bot.Handle(&btnBoard, h.handleBoard)
	h.bot.Handle(&btnShuffle, h.handleShuffle)
	h.bot.Handle(&btnClear, h.handleClear)
	h.bot.Handle(&btnSubmit, h.handleSubmit)
	h.bot.Handle(&btnStats, h.handleStats)
	h.bot.Handle(&btnCancel, h.handleCancel)

	// Generic callback handler for dynamic data
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// GetState returns player's current state
func (h *Handler) GetState(playerID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[playerID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	return state
}

// SetState sets player's state
func (h *Handler) SetState(playerID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[playerID] = state
}

// ResetState resets player to idle state
func (h *Handler) ResetState(playerID int64) {
	h.SetState(playerID, &domain.StateData{State: domain.StateIdle})
}

// Inline keyboard buttons
var (
	btnBoard = tele.Btn{
		Unique: "board",
		Text:   "🔄 Board",
	}
	btnShuffle = tele.Btn{
		Unique: "shuffle",
		Text:   "🔀 Shuffle",
	}
	btnClear = tele.Btn{
		Unique: "clear",
		Text:   "🧹 Clear",
	}
	btnSubmit = tele.Btn{
		Unique: "submit",
		Text:   "✅ Submit",
	}
	btnStats = tele.Btn{
		Unique: "stats",
		Text:   "📊 Stats",
	}
	btnCancel = tele.Btn{
		Unique: "cancel",
		Text:   "❌ Cancel",
	}
)

// boardMarkup returns the keyboard shown under a board
func boardMarkup(completed bool) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	if completed {
		menu.Inline(menu.Row(btnStats))
		return menu
	}
	menu.Inline(
		menu.Row(btnShuffle, btnClear),
		menu.Row(btnSubmit, btnStats),
	)
	return menu
}

// statsMarkup returns the keyboard shown under the stats
func statsMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(btnBoard))
	return menu
}

// cancelMarkup returns the keyboard shown while waiting for input
func cancelMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(btnCancel))
	return menu
}
