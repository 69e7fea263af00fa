package usecase

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/footy-tracker/internal/domain/match"
	"github.com/riskibarqy/footy-tracker/internal/domain/season"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// classifyDomainError tags rejections from the domain packages as invalid
// input so transports can map them without knowing every sentinel.
func classifyDomainError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, match.ErrMissingID),
		errors.Is(err, match.ErrMalformedID),
		errors.Is(err, match.ErrInvalidMatch),
		errors.Is(err, season.ErrInvalidSeason):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	default:
		return err
	}
}
