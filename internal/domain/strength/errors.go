package strength

import "errors"

var (
	// ErrEmptyPassword is returned when analysis is requested for an empty string.
	ErrEmptyPassword = errors.New("password must not be empty")

	// ErrInvalidRequest indicates generation constraints outside their allowed range.
	ErrInvalidRequest = errors.New("invalid generation request")

	// ErrConstraintsUnmet indicates the generator could not satisfy min_score /
	// time_threshold_days within its attempt budget.
	ErrConstraintsUnmet = errors.New("generation constraints could not be met")
)
