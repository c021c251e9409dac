package configschema

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var javaPackagePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// NewValidator returns a validator with the genex-specific rules registered.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(sf reflect.StructField) string {
		name, _, _ := strings.Cut(sf.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("java_package", func(fl validator.FieldLevel) bool {
		return javaPackagePattern.MatchString(fl.Field().String())
	})
	return v
}

// validateConfig records one diagnostic per failed rule, keyed by the yaml path.
func validateConfig(config *Config, diags *Diagnostics) {
	err := NewValidator().Struct(config)
	if err == nil {
		return
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		diags.AddError(fmt.Sprintf("validation failed: %v", err), "", "")
		return
	}
	for _, fe := range verrs {
		diags.AddError(describe(fe), yamlPath(fe.Namespace()), suggestion(fe))
	}
}

func yamlPath(namespace string) string {
	// Namespace is "Config.versions.lombok"; drop the root type.
	_, path, _ := strings.Cut(namespace, ".")
	return path
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value())
	case "java_package":
		return fmt.Sprintf("%s is not a valid Java package name: %q", fe.Field(), fe.Value())
	case "excludesall":
		return fmt.Sprintf("%s must be a single directory name, got %q", fe.Field(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

func suggestion(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return "Use one of: " + fe.Param()
	case "java_package":
		return "Use a dotted name such as com.example"
	default:
		return ""
	}
}
