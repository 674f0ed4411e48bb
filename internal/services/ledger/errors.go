package ledger

// LedgerError is a custom error type for ledger errors
type LedgerError string

// Error implements the error interface
func (e LedgerError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrValidation       LedgerError = "validation error"
	ErrEmptyHistory     LedgerError = "no rounds to undo"
	ErrNoActiveGame     LedgerError = "no active game"
	ErrNilConfig        LedgerError = "config cannot be nil"
	ErrNilGameRepo      LedgerError = "game repository cannot be nil"
	ErrNilClock         LedgerError = "clock cannot be nil"
	ErrNilUUIDGenerator LedgerError = "UUID generator cannot be nil"
)
