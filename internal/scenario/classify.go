package scenario

import (
	"context"
	"errors"

	"github.com/adyen/ecommerce-e2e/internal/action"
	"github.com/adyen/ecommerce-e2e/internal/models"
	"github.com/adyen/ecommerce-e2e/internal/wait"
)

// Classify maps a journey error onto the recorded failure kinds
func Classify(err error) models.FailureKind {
	var (
		assertion *AssertionFailure
		fault     *action.DriverFault
	)
	switch {
	case err == nil:
		return models.FailureNone
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return models.FailureCancelled
	case errors.As(err, &assertion):
		return models.FailureAssertion
	case errors.Is(err, wait.ErrTimeout):
		return models.FailureAssertiveTimeout
	case errors.As(err, &fault):
		return models.FailureDriverFault
	default:
		return models.FailureUnknown
	}
}
