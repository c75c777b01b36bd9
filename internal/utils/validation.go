package utils

import (
	"errors"
	"fmt"
	"slices"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/lottoops/unclaimed-tracker/backend/internal/authz"
	"github.com/lottoops/unclaimed-tracker/backend/internal/domain"
)

var unclaimedStatuses = []domain.UnclaimedStatus{
	domain.StatusUnclaimed,
	domain.StatusUncollected,
	domain.StatusCollected,
	domain.StatusCancelled,
}

var userStatuses = []domain.UserStatus{
	domain.UserStatusActive,
	domain.UserStatusInactive,
	domain.UserStatusSuspended,
}

func IsUnclaimedStatus(s string) bool {
	return slices.Contains(unclaimedStatuses, domain.UnclaimedStatus(s))
}

type customRule struct {
	tag     string
	message string
	fn      validator.Func
}

var customRules = []customRule{
	{
		tag:     "role",
		message: "{0} must be a known role",
		fn: func(fl validator.FieldLevel) bool {
			return authz.IsKnownRole(domain.Role(fl.Field().String()))
		},
	},
	{
		tag:     "unclaimed_status",
		message: "{0} must be one of Unclaimed, Uncollected, Collected or Cancelled",
		fn: func(fl validator.FieldLevel) bool {
			return IsUnclaimedStatus(fl.Field().String())
		},
	},
	{
		tag:     "user_status",
		message: "{0} must be active, inactive or suspended",
		fn: func(fl validator.FieldLevel) bool {
			return slices.Contains(userStatuses, domain.UserStatus(fl.Field().String()))
		},
	},
}

// RegisterValidations adds the back-office tags (role, unclaimed_status, user_status) to validate,
// with messages in trans.
func RegisterValidations(validate *validator.Validate, trans ut.Translator) error {
	for _, rule := range customRules {
		if err := validate.RegisterValidation(rule.tag, rule.fn); err != nil {
			return err
		}

		tag, message := rule.tag, rule.message
		err := validate.RegisterTranslation(tag, trans,
			func(ut ut.Translator) error {
				return ut.Add(tag, message, true)
			},
			func(ut ut.Translator, fe validator.FieldError) string {
				t, _ := ut.T(tag, fe.Field())
				return t
			},
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// ValidateUnclaimedAmounts checks the money fields of a record before it is saved.
func ValidateUnclaimedAmounts(rec *domain.UnclaimedRecord) error {
	if rec.BetAmount < 0 || rec.WinAmount < 0 || rec.ChargeAmount < 0 {
		return errors.New("amounts cannot be negative")
	}
	if rec.ChargeAmount > rec.WinAmount {
		return errors.New("charge cannot exceed the win amount")
	}
	return nil
}

// ValidateDrawDate rejects draws more than a day in the future; clocks on teller terminals drift.
func ValidateDrawDate(draw time.Time, now time.Time) error {
	if draw.IsZero() {
		return errors.New("draw date is required")
	}
	if draw.After(now.Add(24 * time.Hour)) {
		return fmt.Errorf("draw date %s is in the future", draw.Format("2006-01-02"))
	}
	return nil
}

func ValidatePeriod(start, end time.Time) error {
	if !end.After(start) {
		return errors.New("period end must be after period start")
	}
	if end.Sub(start) > 366*24*time.Hour {
		return errors.New("period cannot exceed one year")
	}
	return nil
}

// ValidateStatusChange reports whether a record may move from one status to another.
// Cancelled and Collected are final except that Uncollected may still be cancelled.
func ValidateStatusChange(from, to domain.UnclaimedStatus) error {
	if from == to {
		return nil
	}
	allowed := map[domain.UnclaimedStatus][]domain.UnclaimedStatus{
		domain.StatusUnclaimed:   {domain.StatusUncollected, domain.StatusCollected, domain.StatusCancelled},
		domain.StatusUncollected: {domain.StatusCollected, domain.StatusCancelled},
	}
	if !slices.Contains(allowed[from], to) {
		return fmt.Errorf("cannot change status from %s to %s", from, to)
	}
	return nil
}
