package application

import (
	"errors"
	"strconv"

	apperrors "github.com/bookstore-platform/fulfillment-service/pkg/errors"

	"github.com/bookstore-platform/fulfillment-service/internal/domain"
)

// mapError translates domain errors into transport-ready AppErrors.
// Wrapping preserves the domain error for errors.Is/As callers.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if apperrors.IsAppError(err) {
		return err
	}

	var insufficient *domain.InsufficientStockError
	if errors.As(err, &insufficient) {
		return apperrors.ErrInsufficientStock(insufficient.Error()).
			WithDetails(map[string]string{
				"bookId":     insufficient.BookID,
				"locationId": insufficient.LocationID,
				"requested":  strconv.Itoa(insufficient.Requested),
				"available":  strconv.Itoa(insufficient.Available),
				"shortfall":  strconv.Itoa(insufficient.Shortfall()),
			}).Wrap(err)
	}

	var transition *domain.InvalidTransitionError
	if errors.As(err, &transition) {
		return apperrors.ErrInvalidTransition(transition.Error()).
			WithDetails(map[string]string{
				"current":   string(transition.Current),
				"attempted": string(transition.Attempted),
			}).Wrap(err)
	}

	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		return apperrors.ErrEmptyCart(err.Error()).Wrap(err)
	case errors.Is(err, domain.ErrBookNotFound):
		return apperrors.ErrNotFound("book").Wrap(err)
	case errors.Is(err, domain.ErrLocationNotFound):
		return apperrors.ErrNotFound("location").Wrap(err)
	case errors.Is(err, domain.ErrRequestNotFound):
		return apperrors.ErrNotFound("purchase request").Wrap(err)
	case errors.Is(err, domain.ErrOrderNotFound):
		return apperrors.ErrNotFound("order").Wrap(err)
	case errors.Is(err, domain.ErrCartItemNotFound):
		return apperrors.ErrNotFound("cart item").Wrap(err)
	case errors.Is(err, domain.ErrStockLevelNotFound):
		return apperrors.ErrNotFound("stock level").Wrap(err)
	case errors.Is(err, domain.ErrDuplicateISBN),
		errors.Is(err, domain.ErrDuplicateCode):
		return apperrors.ErrConflict(err.Error()).Wrap(err)
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidThreshold),
		errors.Is(err, domain.ErrSameLocation),
		errors.Is(err, domain.ErrLocationInactive),
		errors.Is(err, domain.ErrMissingTitle),
		errors.Is(err, domain.ErrMissingAuthor),
		errors.Is(err, domain.ErrMissingISBN),
		errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrMissingLocationCode),
		errors.Is(err, domain.ErrMissingLocationName),
		errors.Is(err, domain.ErrInvalidLocationType),
		errors.Is(err, domain.ErrInvalidReviewAction),
		errors.Is(err, domain.ErrInvalidRequestStatus),
		errors.Is(err, domain.ErrNoOrderItems):
		return apperrors.ErrValidation(err.Error()).Wrap(err)
	default:
		return err
	}
}
