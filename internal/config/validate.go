package config

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"github.com/trebuchet-org/solbuild/internal/domain"
)

// EVMVersions lists the hardfork names solc accepts for --evm-version
var EVMVersions = []string{
	"homestead",
	"tangerineWhistle",
	"spuriousDragon",
	"byzantium",
	"constantinople",
	"petersburg",
	"istanbul",
	"berlin",
	"london",
	"paris",
	"shanghai",
	"cancun",
	"prague",
	"osaka",
}

// newValidator builds a validator that reports document key names
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("key")
		if name == "-" {
			return ""
		}
		return name
	})

	// Hosts are bare addresses; the scheme is always http
	_ = v.RegisterValidation("noscheme", func(fl validator.FieldLevel) bool {
		return !strings.Contains(fl.Field().String(), "://")
	})
	_ = v.RegisterValidation("evmversion", func(fl validator.FieldLevel) bool {
		return slices.Contains(EVMVersions, fl.Field().String())
	})

	return v
}

// validateDocument checks every network (in name order) and the compiler
// settings, returning the first violation as a *domain.FieldError
func validateDocument(v *validator.Validate, doc *document) error {
	for _, name := range sortedKeys(doc.Networks) {
		spec := doc.Networks[name]
		if err := v.Struct(spec); err != nil {
			return toFieldError(err, "networks."+name)
		}
	}

	if err := v.Struct(doc.Solc); err != nil {
		return toFieldError(err, "compilers.solc")
	}

	return nil
}

// toFieldError converts the first validator error into a FieldError rooted at prefix
func toFieldError(err error, prefix string) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidField, prefix, err)
	}

	fe := verrs[0]
	return &domain.FieldError{
		Path:   prefix + "." + fe.Field(),
		Value:  fe.Value(),
		Reason: describeTag(fe),
	}
}

const networkIDReason = `must be a positive integer or "*"`

// describeTag turns a failed validator tag into a readable reason
func describeTag(fe validator.FieldError) string {
	if fe.Field() == "network_id" && fe.Tag() != "required_unless" {
		return networkIDReason
	}

	switch fe.Tag() {
	case "required", "required_unless":
		return "is required"
	case "lowercase":
		return "must not contain uppercase characters"
	case "noscheme":
		return "must be a bare host without a URI scheme (e.g. 127.0.0.1, not http://127.0.0.1)"
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max", "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "semver":
		return "must be a semantic version such as 0.8.19"
	case "evmversion":
		return fmt.Sprintf("must be one of: %s", strings.Join(EVMVersions, ", "))
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	slices.Sort(keys)
	return keys
}
