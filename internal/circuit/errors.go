package circuit

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAdjacency means two positions expected to be neighbours are not.
	ErrInvalidAdjacency = errors.New("circuit: positions are not adjacent")

	// ErrInvalidPathGeometry means a path step pair could not be classified.
	ErrInvalidPathGeometry = errors.New("circuit: invalid path geometry")

	// ErrGenerationExhausted is matched by *ExhaustedError.
	ErrGenerationExhausted = errors.New("circuit: generation exhausted")

	// ErrInvalidParams is returned for parameters no attempt could satisfy.
	ErrInvalidParams = errors.New("circuit: invalid generation parameters")
)

// ExhaustedError reports that no level could be produced. Reason is set
// when the parameters ruled out every attempt before any ran.
type ExhaustedError struct {
	Attempts   int
	Difficulty Tier
	Reason     error
}

func (e *ExhaustedError) Error() string {
	if e.Reason != nil {
		return fmt.Sprintf("circuit: no %s level generated: %v", e.Difficulty, e.Reason)
	}
	return fmt.Sprintf("circuit: no valid %s level after %d attempts; relax the profile or raise max attempts",
		e.Difficulty, e.Attempts)
}

// Is lets errors.Is match ErrGenerationExhausted.
func (e *ExhaustedError) Is(target error) bool {
	return target == ErrGenerationExhausted
}

func (e *ExhaustedError) Unwrap() error {
	return e.Reason
}

// VerifyError describes a broken level invariant.
type VerifyError struct {
	Code    string
	Message string
}

func (e VerifyError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}
