package input

import (
	"errors"
	"strings"

	perrors "github.com/abgdnv/inventory/internal/errors"
	"github.com/go-playground/validator/v10"
)

// Draft is the raw text of the product form.
type Draft struct {
	Name         string
	PriceText    string
	QuantityText string
}

// Submission is a draft that passed validation.
type Submission struct {
	Name     string
	Price    float64
	Quantity int64
}

// submitForm carries both the masked text and the parsed values so that an empty
// field, an overflowing one and a non-positive value are reported as different rules.
// Fields are checked in declaration order and only the first problem per field is kept.
type submitForm struct {
	Name            string  `validate:"required"`
	PriceText       string  `validate:"required"`
	PriceInRange    bool    `validate:"eq=true"`
	Price           float64 `validate:"gt=0"`
	QuantityText    string  `validate:"required"`
	QuantityInRange bool    `validate:"eq=true"`
	Quantity        int64   `validate:"gt=0"`
}

type rule struct {
	field   string
	message string
}

// rules maps struct field + validator tag to the user-facing message.
var rules = map[string]rule{
	"Name.required":         {field: "name", message: "name is required"},
	"PriceText.required":    {field: "price", message: "price is required"},
	"PriceInRange.eq":       {field: "price", message: "price is too large"},
	"Price.gt":              {field: "price", message: "price must be greater than zero"},
	"QuantityText.required": {field: "quantity", message: "quantity is required"},
	"QuantityInRange.eq":    {field: "quantity", message: "quantity is too large"},
	"Quantity.gt":           {field: "quantity", message: "quantity must be greater than zero"},
}

var validate = validator.New()

// Validate applies the submit-time rules to d: name non-empty after trimming, price
// present and > 0, quantity present and > 0. Violations are returned as a
// *perrors.ValidationError with at most one problem per field.
func Validate(d Draft) (Submission, error) {
	price := NormalizePrice(d.PriceText)
	quantityText := NormalizeQuantity(d.QuantityText)
	form := submitForm{
		Name:            strings.TrimSpace(d.Name),
		PriceText:       price.Display,
		PriceInRange:    !price.OutOfRange,
		Price:           price.Raw,
		QuantityText:    quantityText,
		QuantityInRange: !QuantityOutOfRange(quantityText),
		Quantity:        ParseQuantity(quantityText),
	}

	if err := validate.Struct(form); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return Submission{}, err
		}
		return Submission{}, toValidationError(validationErrors)
	}

	return Submission{Name: form.Name, Price: form.Price, Quantity: form.Quantity}, nil
}

func toValidationError(validationErrors validator.ValidationErrors) *perrors.ValidationError {
	seen := make(map[string]bool)
	ve := &perrors.ValidationError{}
	for _, fieldErr := range validationErrors {
		r, ok := rules[fieldErr.StructField()+"."+fieldErr.Tag()]
		if !ok {
			r = rule{field: strings.ToLower(fieldErr.Field()), message: "failed on rule: " + fieldErr.Tag()}
		}
		if seen[r.field] {
			continue
		}
		seen[r.field] = true
		ve.Problems = append(ve.Problems, perrors.FieldProblem{Field: r.field, Rule: fieldErr.Tag(), Message: r.message})
	}
	return ve
}
