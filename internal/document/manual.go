package document

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const isoDate = "2006-01-02"

// ManualInput is the raw, user-typed form of the manual override fields.
type ManualInput struct {
	Counterpart string `json:"counterpart" validate:"required,max=120"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	DueDate     string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Total       string `json:"total" validate:"required,numeric"`
	Tax         string `json:"tax" validate:"omitempty,numeric"`
	AutoTax     bool   `json:"auto_tax"`
}

// Manual holds validated override values. When AutoTax is false Tax is used
// verbatim instead of being derived from the region rate.
type Manual struct {
	Counterpart string
	Date        time.Time
	DueDate     *time.Time
	Total       decimal.Decimal
	Tax         decimal.Decimal
	AutoTax     bool
}

// Input renders m back into its form representation.
func (m Manual) Input() ManualInput {
	in := ManualInput{
		Counterpart: m.Counterpart,
		Date:        m.Date.Format(isoDate),
		Total:       m.Total.StringFixed(2),
		Tax:         m.Tax.StringFixed(2),
		AutoTax:     m.AutoTax,
	}

	if m.DueDate != nil {
		in.DueDate = m.DueDate.Format(isoDate)
	}

	return in
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// Validator returns the shared struct validator so request types elsewhere
// report field names the same way.
func Validator() *validator.Validate {
	return validate
}

// ValidateStruct runs the tag validator over s and converts the first
// failure into a *ValidationError.
func ValidateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validating input: %w", err)
	}

	fe := verrs[0]

	return &ValidationError{
		Field:   fe.Field(),
		Value:   fmt.Sprint(fe.Value()),
		Message: describeTag(fe),
	}
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "numeric":
		return "must be a number"
	case "datetime":
		return "must be a date in YYYY-MM-DD form"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	}

	return "failed " + fe.Tag()
}

// ParseManual validates raw manual input at the boundary. Totals and taxes
// must be non-negative numbers and an explicit tax cannot exceed the total.
func ParseManual(in ManualInput) (Manual, error) {
	in.Counterpart = strings.TrimSpace(in.Counterpart)
	in.Total = strings.TrimSpace(in.Total)
	in.Tax = strings.TrimSpace(in.Tax)

	if err := ValidateStruct(in); err != nil {
		return Manual{}, err
	}

	m := Manual{Counterpart: in.Counterpart, AutoTax: in.AutoTax}

	// Both dates passed the datetime tag so parsing cannot fail here.
	m.Date, _ = time.Parse(isoDate, in.Date)

	if in.DueDate != "" {
		due, _ := time.Parse(isoDate, in.DueDate)
		m.DueDate = &due
	}

	total, err := decimal.NewFromString(in.Total)
	if err != nil {
		return Manual{}, &ValidationError{Field: "total", Value: in.Total, Message: "must be a number"}
	}

	if total.IsNegative() {
		return Manual{}, &ValidationError{Field: "total", Value: in.Total, Message: "must not be negative"}
	}

	m.Total = total.Round(2)

	if in.AutoTax {
		return m, nil
	}

	if in.Tax == "" {
		return Manual{}, &ValidationError{Field: "tax", Message: "is required when automatic tax is off"}
	}

	tax, err := decimal.NewFromString(in.Tax)
	if err != nil {
		return Manual{}, &ValidationError{Field: "tax", Value: in.Tax, Message: "must be a number"}
	}

	tax = tax.Round(2)

	switch {
	case tax.IsNegative():
		return Manual{}, &ValidationError{Field: "tax", Value: in.Tax, Message: "must not be negative"}
	case tax.GreaterThan(m.Total):
		return Manual{}, &ValidationError{Field: "tax", Value: in.Tax, Message: "must not exceed the total"}
	}

	m.Tax = tax

	return m, nil
}
