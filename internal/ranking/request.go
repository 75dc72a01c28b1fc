package ranking

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"

	"github.com/wonny/bandarscan/internal/indices"
)

// RankRequest selects the universe and the accumulation window of a run
type RankRequest struct {
	Mode     string `json:"mode" default:"watchlist" validate:"required"`
	GroupID  string `json:"groupId" validate:"required_if=Mode watchlist"`
	FromDate string `json:"fromDate" validate:"required,datetime=2006-01-02"`
	ToDate   string `json:"toDate" validate:"required,datetime=2006-01-02"`

	// NoCache skips the cached result lookup; the fresh result is still stored.
	NoCache bool `json:"-"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate normalizes the request in place and checks it against registry.
// Every error wraps ErrValidation.
func (r *RankRequest) Validate(registry *indices.Registry) error {
	r.Mode = strings.ToLower(strings.TrimSpace(r.Mode))
	r.GroupID = strings.TrimSpace(r.GroupID)
	r.FromDate = strings.TrimSpace(r.FromDate)
	r.ToDate = strings.TrimSpace(r.ToDate)

	if err := defaults.Set(r); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, describe(err))
	}

	// YYYY-MM-DD compares lexically
	if r.FromDate > r.ToDate {
		return fmt.Errorf("%w: fromDate must not be after toDate", ErrValidation)
	}

	if r.Mode != indices.ReservedName {
		if _, ok := registry.Lookup(r.Mode); !ok {
			modes := append([]string{indices.ReservedName}, registry.Names()...)
			return fmt.Errorf("%w: unknown mode %q, use one of: %s",
				ErrValidation, r.Mode, strings.Join(modes, ", "))
		}
	}

	return nil
}

// IsWatchlist reports whether the universe comes from a watchlist group
func (r *RankRequest) IsWatchlist() bool {
	return r.Mode == indices.ReservedName
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "required_if":
			msgs = append(msgs, fmt.Sprintf("%s is required for %s mode", fe.Field(), indices.ReservedName))
		case "datetime":
			msgs = append(msgs, fmt.Sprintf("%s must be a YYYY-MM-DD date", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return strings.Join(msgs, "; ")
}
