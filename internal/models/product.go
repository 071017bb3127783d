package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Category classifies a product. The set of categories is closed; names
// outside it are rejected during deserialization and filtering.
type Category string

const (
	CategoryUnknown    Category = "UNKNOWN"
	CategoryCloths     Category = "CLOTHS"
	CategoryFood       Category = "FOOD"
	CategoryHousewares Category = "HOUSEWARES"
	CategoryAutomotive Category = "AUTOMOTIVE"
	CategoryTool       Category = "TOOL"
)

// categoryNames maps uppercase names to category values, so an unknown name
// yields an explicit miss instead of a silent default.
var categoryNames = map[string]Category{
	string(CategoryUnknown):    CategoryUnknown,
	string(CategoryCloths):     CategoryCloths,
	string(CategoryFood):       CategoryFood,
	string(CategoryHousewares): CategoryHousewares,
	string(CategoryAutomotive): CategoryAutomotive,
	string(CategoryTool):       CategoryTool,
}

// ParseCategory resolves a category by name, case-insensitively.
func ParseCategory(name string) (Category, bool) {
	category, ok := categoryNames[strings.ToUpper(name)]
	return category, ok
}

// Product represents a sellable item in the catalog. The ID is assigned by
// the store on creation and is immutable thereafter.
type Product struct {
	ID          uint     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string   `json:"name" gorm:"index" validate:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Available   bool     `json:"available"`
	Category    Category `json:"category" validate:"omitempty,category"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	if err := validate.RegisterValidation("category", validCategory); err != nil {
		panic(err)
	}
}

func validCategory(fl validator.FieldLevel) bool {
	_, ok := ParseCategory(fl.Field().String())
	return ok
}

// Validate checks the product against its field constraints and reports the
// first failure as a typed data error.
func (p *Product) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		fieldError := fieldErrors[0]
		field := strings.ToLower(fieldError.Field())
		if fieldError.Tag() == "required" {
			return &MissingFieldError{Field: field}
		}
		return &InvalidValueError{Field: field, Value: fmt.Sprintf("%v", fieldError.Value())}
	}
	return err
}
