package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/unipem/lms/internal/app/models"
)

// Validation rule patterns
var (
	// Username is an NPM/NIP number or a short staff handle such as "admin"
	UsernamePattern = `^[A-Za-z0-9._-]{3,32}$`

	// Course codes look like INF202
	CourseCodePattern = `^[A-Z0-9-]{2,16}$`

	// Grade bounds
	GradeMin = 0
	GradeMax = 100

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Username   *regexp.Regexp
	CourseCode *regexp.Regexp
}{
	Username:   regexp.MustCompile(UsernamePattern),
	CourseCode: regexp.MustCompile(CourseCodePattern),
}

// ValidUsername reports whether s is an acceptable username
func ValidUsername(s string) bool {
	return CompiledPatterns.Username.MatchString(s)
}

// ValidCourseCode reports whether s is an acceptable course code
func ValidCourseCode(s string) bool {
	return CompiledPatterns.CourseCode.MatchString(s)
}

// ValidGrade reports whether grade is inside the accepted range
func ValidGrade(grade int) bool {
	return grade >= GradeMin && grade <= GradeMax
}

// NormalizeCourseCode upper-cases and trims a course code
func NormalizeCourseCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Register adds the custom tags (role, activitytype, username, coursecode) to v.
// Field errors report the json name of the field.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	rules := map[string]validator.Func{
		"role": func(fl validator.FieldLevel) bool {
			return models.Role(fl.Field().String()).Valid()
		},
		"activitytype": func(fl validator.FieldLevel) bool {
			return models.ActivityType(fl.Field().String()).Valid()
		},
		"username": func(fl validator.FieldLevel) bool {
			return ValidUsername(fl.Field().String())
		},
		"coursecode": func(fl validator.FieldLevel) bool {
			return ValidCourseCode(NormalizeCourseCode(fl.Field().String()))
		},
	}

	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %s validator: %w", tag, err)
		}
	}
	return nil
}

// RegisterGinValidators installs the custom tags on gin's default binding validator
func RegisterGinValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected gin validator engine %T", binding.Validator.Engine())
	}
	return Register(v)
}
