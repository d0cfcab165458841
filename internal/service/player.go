package service

import (
	"letterlinks/internal/repository"
)

// PlayerService handles player registration
type PlayerService struct {
	playerRepo repository.PlayerRepository
}

// NewPlayerService creates a new player service
func NewPlayerService(playerRepo repository.PlayerRepository) *PlayerService {
	return &PlayerService{playerRepo: playerRepo}
}

// EnsurePlayerExists creates player record if doesn't exist
func (s *PlayerService) EnsurePlayerExists(playerID int64) error {
	return s.playerRepo.EnsurePlayerExists(playerID)
}
