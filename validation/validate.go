package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/v2/bson"

	"moviereviews/models"
)

// FieldError is one rejected field in a write payload.
type FieldError struct {
	Field         string      `json:"field"`
	Message       string      `json:"message"`
	RejectedValue interface{} `json:"rejectedValue"`
}

var validate = New()

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	imageRe    = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|webp|gif)$`)
)

func New() *validator.Validate {
	v := validator.New()

	// Report fields under their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("genre", func(fl validator.FieldLevel) bool {
		return models.IsValidGenre(fl.Field().String())
	})
	v.RegisterValidation("watchstatus", func(fl validator.FieldLevel) bool {
		return models.IsValidWatchlistStatus(fl.Field().String())
	})
	v.RegisterValidation("watchpriority", func(fl validator.FieldLevel) bool {
		return models.IsValidPriority(fl.Field().String())
	})
	v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRe.MatchString(fl.Field().String())
	})
	v.RegisterValidation("imageurl", func(fl validator.FieldLevel) bool {
		return imageRe.MatchString(fl.Field().String())
	})
	v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		return IsObjectID(fl.Field().String())
	})
	v.RegisterValidation("releaseyear", func(fl validator.FieldLevel) bool {
		year := fl.Field().Int()
		return year >= 1888 && year <= int64(time.Now().Year()+2)
	})

	return v
}

// Validate checks a payload against its validate tags and returns one
// entry per rejected field, or nil when the payload is acceptable.
func Validate(payload interface{}) []FieldError {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "", Message: err.Error()}}
	}

	fieldErrors := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fieldErrors = append(fieldErrors, FieldError{
			Field:         fieldName(fe),
			Message:       message(fe),
			RejectedValue: fe.Value(),
		})
	}
	return fieldErrors
}

// IsObjectID reports whether s has the shape of a Mongo object ID.
func IsObjectID(s string) bool {
	_, err := bson.ObjectIDFromHex(s)
	return err == nil
}

// fieldName strips the struct prefix from the validator namespace so
// errors name the JSON-level field, e.g. "items[0].movieId".
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	field := fieldName(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return "please provide a valid email"
	case "min":
		if fe.Kind().String() == "string" || fe.Kind().String() == "slice" {
			return fmt.Sprintf("%s must have at least %s characters or items", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind().String() == "string" || fe.Kind().String() == "slice" {
			return fmt.Sprintf("%s cannot exceed %s characters or items", field, fe.Param())
		}
		return fmt.Sprintf("%s cannot exceed %s", field, fe.Param())
	case "eqfield":
		return "passwords do not match"
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "imageurl":
		return fmt.Sprintf("%s must point to an image file", field)
	case "genre":
		return "invalid genre"
	case "watchstatus":
		return "invalid status"
	case "watchpriority":
		return "invalid priority"
	case "username":
		return "username can only contain letters, numbers, underscores, and hyphens"
	case "objectid":
		return fmt.Sprintf("invalid %s", field)
	case "releaseyear":
		return "invalid release year"
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
