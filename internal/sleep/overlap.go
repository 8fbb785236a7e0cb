package sleep

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/balkashynov/sleeplog/internal/models"
)

// MaxManualDuration caps a single manually entered session
const MaxManualDuration = 24 * time.Hour

const conflictLayout = "01-02 15:04"

var (
	ErrEndBeforeStart = errors.New("end must be after start")
	ErrTooLong        = errors.New("sleep cannot be longer than 24 hours")
)

var validate = validator.New()

// Candidate is a proposed manual session
type Candidate struct {
	Type   models.SleepType `validate:"required,oneof=main nap"`
	Start  time.Time
	End    time.Time
	Rating int    `validate:"gte=1,lte=5"`
	Note   string
}

// ValidationError reports a single bad field on a candidate
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

// OverlapError names the record a candidate collides with
type OverlapError struct {
	Active    bool
	SessionID string
	Start     time.Time
	End       time.Time // zero for the active sleep
}

func (e *OverlapError) Error() string {
	if e.Active {
		return fmt.Sprintf("overlaps the sleep in progress: %s - now", e.Start.Format(conflictLayout))
	}
	return fmt.Sprintf("overlaps an existing session: %s - %s",
		e.Start.Format(conflictLayout), e.End.Format(conflictLayout))
}

// IsValidation reports whether err is a user-correctable rejection of a candidate
func IsValidation(err error) bool {
	var verr *ValidationError
	var oerr *OverlapError
	return errors.Is(err, ErrEndBeforeStart) ||
		errors.Is(err, ErrTooLong) ||
		errors.As(err, &verr) ||
		errors.As(err, &oerr)
}

// Overlaps is the half-open interval test; it is symmetric in its two ranges
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// ValidateManual checks a candidate against the range rules, the active sleep
// (treated as running until now) and every stored session of the profile.
func ValidateManual(c Candidate, active *models.ActiveSleep, existing []models.Session, now time.Time) error {
	if !c.End.After(c.Start) {
		return ErrEndBeforeStart
	}
	if c.End.Sub(c.Start) > MaxManualDuration {
		return ErrTooLong
	}

	if err := validate.Struct(c); err != nil {
		return toValidationError(err)
	}

	if active != nil && Overlaps(c.Start, c.End, active.Start, now) {
		return &OverlapError{Active: true, Start: active.Start}
	}

	for _, s := range existing {
		if Overlaps(c.Start, c.End, s.Start, s.End) {
			return &OverlapError{SessionID: s.ID, Start: s.Start, End: s.End}
		}
	}

	return nil
}

// toValidationError reduces validator output to the first failing field
func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	switch fe.Field() {
	case "Rating":
		return &ValidationError{Field: "rating", Msg: "must be between 1 and 5"}
	case "Type":
		return &ValidationError{Field: "type", Msg: "must be main or nap"}
	default:
		return &ValidationError{Field: fe.Field(), Msg: fe.Tag()}
	}
}
