package game

import "github.com/KirkDiggler/dutch/internal/models"

// RepositoryError is the error type of the game repository
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

const (
	// ErrPersistence wraps a storage failure while saving or clearing
	ErrPersistence RepositoryError = "persistence failure"

	// ErrCorruptData is reported when a stored payload cannot be decoded or fails validation
	ErrCorruptData RepositoryError = "corrupt saved game"
)

// LoadStatus is the outcome of reading the saved game
type LoadStatus string

const (
	// LoadStatusOK means Game holds a valid saved game
	LoadStatusOK LoadStatus = "ok"

	// LoadStatusAbsent means no saved game exists or it could not be read
	LoadStatusAbsent LoadStatus = "absent"

	// LoadStatusMalformed means a saved game exists but fails validation
	LoadStatusMalformed LoadStatus = "malformed"
)

type SaveGameInput struct {
	Game *models.Game

	// Sequence orders saves; a save older than the last written one is skipped.
	// Zero disables the check.
	Sequence uint64
}

type SaveGameOutput struct {
	// Skipped is true when a newer save was already written
	Skipped bool
}

type LoadGameInput struct {
}

type LoadGameOutput struct {
	Status LoadStatus
	Game   *models.Game

	// Sequence is the sequence stored with the game
	Sequence uint64

	// Migrated is true when the game came from a legacy key
	Migrated bool
}

type ClearGameInput struct {
}
