package history

import "github.com/KirkDiggler/dutch/internal/models"

type ArchiveGameInput struct {
	Game *models.ArchivedGame
}

type ListGamesInput struct {
	// Limit caps the number of games returned, all games when zero
	Limit int
}

type ListGamesOutput struct {
	Games []*models.ArchivedGame
}

type ClearHistoryInput struct {
}
