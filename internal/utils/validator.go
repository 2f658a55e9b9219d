package utils

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var schoolYearPattern = regexp.MustCompile(`^\d{4}-\d{4}$`)

// Validator wraps go-playground/validator with our custom rules registered.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	validate := validator.New()
	registerCustomValidators(validate)
	return &Validator{validate: validate}
}

// ValidateStruct validates struct tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("user_role", validateUserRole)
	validate.RegisterValidation("grade_level", validateGradeLevel)
	validate.RegisterValidation("school_year", validateSchoolYear)

	// Report errors against json field names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "ADMIN" || value == "FACULTY"
}

func validateGradeLevel(fl validator.FieldLevel) bool {
	level := fl.Field().Int()
	return level >= 0 && level <= 12
}

func validateSchoolYear(fl validator.FieldLevel) bool {
	return schoolYearPattern.MatchString(fl.Field().String())
}
