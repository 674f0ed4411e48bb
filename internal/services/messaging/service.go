package messaging

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// service implements the Service interface
type service struct {
	// Random number generator for selecting random messages
	rand *rand.Rand
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (Service, error) {
	var r *rand.Rand
	if config != nil {
		r = config.Rand
	}
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &service{
		rand: r,
	}, nil
}

func (s *service) pick(messages []string) string {
	return messages[s.rand.Intn(len(messages))]
}

// GetGameStartedMessage returns a message for a freshly created game
func (s *service) GetGameStartedMessage(ctx context.Context, input *GetGameStartedMessageInput) (*GetGameStartedMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	messages := []string{
		fmt.Sprintf("Cards dealt for %d players. First to %d loses!", input.PlayerCount, input.ScoreLimit),
		fmt.Sprintf("New game! Keep your total under %d and you might just survive.", input.ScoreLimit),
		fmt.Sprintf("%d players, one score sheet. Low scores win, %d ends it.", input.PlayerCount, input.ScoreLimit),
		"Shuffle up! Remember, nobody likes a Dutch called too early.",
	}

	return &GetGameStartedMessageOutput{
		Message: s.pick(messages),
		Tone:    ToneFunny,
	}, nil
}

// GetRoundResultMessage returns a message describing the round just recorded
func (s *service) GetRoundResultMessage(ctx context.Context, input *GetRoundResultMessageInput) (*GetRoundResultMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	title := fmt.Sprintf("Round %d", input.RoundNumber)

	switch {
	case input.DutchCallerName != "" && input.DutchCallerWon:
		messages := []string{
			fmt.Sprintf("%s called Dutch and made it stick with %d!", input.DutchCallerName, input.WinnerScore),
			fmt.Sprintf("Bold call, %s! Dutch paid off with only %d points.", input.DutchCallerName, input.WinnerScore),
			fmt.Sprintf("%s said Dutch and meant it. %d points, lowest at the table.", input.DutchCallerName, input.WinnerScore),
		}
		return &GetRoundResultMessageOutput{Title: title, Message: s.pick(messages), Tone: ToneCelebration}, nil

	case input.DutchCallerName != "":
		messages := []string{
			fmt.Sprintf("%s called Dutch... and someone still went lower. Ouch.", input.DutchCallerName),
			fmt.Sprintf("Dutch from %s, but the cards had other plans.", input.DutchCallerName),
			fmt.Sprintf("%s, maybe count your cards before calling Dutch next time?", input.DutchCallerName),
		}
		return &GetRoundResultMessageOutput{Title: title, Message: s.pick(messages), Tone: ToneFunny}, nil

	case input.WinnerName != "":
		messages := []string{
			fmt.Sprintf("%s takes the round with %d.", input.WinnerName, input.WinnerScore),
			fmt.Sprintf("Lowest hand goes to %s: %d points.", input.WinnerName, input.WinnerScore),
			fmt.Sprintf("%s kept it tight with %d. Well played!", input.WinnerName, input.WinnerScore),
		}
		return &GetRoundResultMessageOutput{Title: title, Message: s.pick(messages), Tone: ToneEncouraging}, nil
	}

	messages := []string{
		"A tie for the lowest score. Nobody takes this one.",
		"Dead heat at the bottom! No round winner.",
	}
	return &GetRoundResultMessageOutput{Title: title, Message: s.pick(messages), Tone: ToneNeutral}, nil
}

// GetGameOverMessage returns a message announcing the winner
func (s *service) GetGameOverMessage(ctx context.Context, input *GetGameOverMessageInput) (*GetGameOverMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	titles := []string{
		"Game Over!",
		fmt.Sprintf("%s Wins!", input.WinnerName),
		"That's the Game!",
	}

	messages := []string{
		fmt.Sprintf("%s wins with %d points after %d rounds!", input.WinnerName, input.WinnerTotal, input.RoundsPlayed),
		fmt.Sprintf("%s crossed the line at %d. %s takes it with %d.", input.LoserName, input.LoserTotal, input.WinnerName, input.WinnerTotal),
		fmt.Sprintf("After %d rounds, %s stands alone at the bottom of the sheet with %d. Congratulations!", input.RoundsPlayed, input.WinnerName, input.WinnerTotal),
	}

	return &GetGameOverMessageOutput{
		Title:   s.pick(titles),
		Message: s.pick(messages),
		Tone:    ToneCelebration,
	}, nil
}

// GetUndoMessage returns a message for a taken back round
func (s *service) GetUndoMessage(ctx context.Context, input *GetUndoMessageInput) (*GetUndoMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	messages := []string{
		fmt.Sprintf("Round %d removed. We'll pretend that never happened.", input.RoundNumber),
		fmt.Sprintf("Round %d taken back. Double check those scores!", input.RoundNumber),
	}

	return &GetUndoMessageOutput{Message: s.pick(messages)}, nil
}

// GetErrorMessage returns a user-friendly error message
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	tone := input.PreferredTone
	if tone == "" {
		tone = ToneWarning
	}

	var messages []string
	switch input.ErrorType {
	case ErrorTypeSaveFailed:
		messages = []string{
			"Cannot save progress. Your game continues, but it may be lost if you leave.",
			"Saving failed. Keep playing, just don't close the app yet.",
		}
	case ErrorTypeValidation:
		messages = []string{
			"Those scores don't add up. Every player needs a score of zero or more.",
			"Something is off with that entry. Check the scores and try again.",
		}
	case ErrorTypeEmptyHistory:
		messages = []string{
			"There are no rounds to undo yet.",
			"Nothing to take back. Play a round first!",
		}
	case ErrorTypeNoActiveGame:
		messages = []string{
			"No game in progress. Start one to begin scoring.",
			"The score sheet is empty. Set up a new game first.",
		}
	default:
		messages = []string{
			"Something went wrong. Please try again.",
		}
	}

	return &GetErrorMessageOutput{
		Message: s.pick(messages),
		Tone:    tone,
	}, nil
}
