package app

import "rummy/internal/domain"

// MinPlayersToStartGame defines the minimum number of occupied seats required to start a game.
const MinPlayersToStartGame = 2

// MaxPlayersToStartGame is bounded by the hand locations a tile can hold.
const MaxPlayersToStartGame = domain.MaxSeats
