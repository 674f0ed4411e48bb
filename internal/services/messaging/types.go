package messaging

import "math/rand"

// MessageTone represents the tone of a message
type MessageTone string

const (
	// ToneNeutral is a neutral tone
	ToneNeutral MessageTone = "neutral"

	// ToneFunny is a humorous tone
	ToneFunny MessageTone = "funny"

	// ToneEncouraging is an encouraging tone
	ToneEncouraging MessageTone = "encouraging"

	// ToneCelebration is a celebratory tone
	ToneCelebration MessageTone = "celebration"

	// ToneWarning is used for problems the player should notice
	ToneWarning MessageTone = "warning"
)

// ErrorType names the failure a message is generated for
type ErrorType string

const (
	ErrorTypeSaveFailed   ErrorType = "save_failed"
	ErrorTypeValidation   ErrorType = "validation"
	ErrorTypeEmptyHistory ErrorType = "empty_history"
	ErrorTypeNoActiveGame ErrorType = "no_active_game"
)

// GetGameStartedMessageInput contains the input for GetGameStartedMessage
type GetGameStartedMessageInput struct {
	PlayerCount int
	ScoreLimit  int
}

// GetGameStartedMessageOutput contains the output for GetGameStartedMessage
type GetGameStartedMessageOutput struct {
	Message string
	Tone    MessageTone
}

// GetRoundResultMessageInput contains the input for GetRoundResultMessage
type GetRoundResultMessageInput struct {
	// RoundNumber is one-based
	RoundNumber int

	// WinnerName is empty when the lowest score was tied
	WinnerName  string
	WinnerScore int

	// DutchCallerName is the player who called Dutch, optional
	DutchCallerName string

	// DutchCallerWon is true when the caller also had the lowest score
	DutchCallerWon bool
}

// GetRoundResultMessageOutput contains the output for GetRoundResultMessage
type GetRoundResultMessageOutput struct {
	Title   string
	Message string
	Tone    MessageTone
}

// GetGameOverMessageInput contains the input for GetGameOverMessage
type GetGameOverMessageInput struct {
	WinnerName   string
	WinnerTotal  int
	LoserName    string
	LoserTotal   int
	RoundsPlayed int
}

// GetGameOverMessageOutput contains the output for GetGameOverMessage
type GetGameOverMessageOutput struct {
	Title   string
	Message string
	Tone    MessageTone
}

// GetUndoMessageInput contains the input for GetUndoMessage
type GetUndoMessageInput struct {
	// RoundNumber is the one-based number of the removed round
	RoundNumber int
}

// GetUndoMessageOutput contains the output for GetUndoMessage
type GetUndoMessageOutput struct {
	Message string
}

// GetErrorMessageInput contains parameters for getting an error message
type GetErrorMessageInput struct {
	// ErrorType is the type of error
	ErrorType ErrorType

	// PreferredTone is the preferred tone for the message (optional)
	PreferredTone MessageTone
}

// GetErrorMessageOutput contains the result of getting an error message
type GetErrorMessageOutput struct {
	Message string
	Tone    MessageTone
}

// ServiceConfig contains configuration for the messaging service
type ServiceConfig struct {
	// Rand picks among message variants, seeded from the clock when nil
	Rand *rand.Rand
}
