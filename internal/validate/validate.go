// Package validate turns validator/v10 failures into localized, field
// addressed issues in the shape the page renderers consume.
package validate

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vendoro/vendoro/internal/i18n"
)

// Issue is one field-level validation failure. Path mixes field names and
// slice indices, e.g. ["availableData", 0, "priceTypes", 1, "priceTypeId"].
type Issue struct {
	Path    []any  `json:"path"`
	Message string `json:"message"`
}

var instance = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields under their JSON names so issue paths line up with the
	// payloads clients actually send.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Schema binds a payload shape to its message catalog namespace.
type Schema struct {
	// Namespace prefixes every message key, e.g. "schemas.priceType".
	Namespace string
	// Messages maps "<field>.<tag>" or "<field>" to a key inside Namespace.
	Messages map[string]string
}

// Check validates payload and returns localized issues, nil when valid.
func (s Schema) Check(payload any, t i18n.Translator) []Issue {
	err := instance.Struct(payload)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []Issue{{Path: []any{}, Message: t.T("api.invalidRequest")}}
	}

	issues := make([]Issue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, Issue{
			Path:    splitPath(fe.Namespace()),
			Message: t.T(s.messageKey(fe)),
		})
	}
	return issues
}

func (s Schema) messageKey(fe validator.FieldError) string {
	key, ok := s.Messages[fe.Field()+"."+fe.Tag()]
	if !ok {
		key, ok = s.Messages[fe.Field()]
	}
	if !ok {
		return "api.invalidRequest"
	}
	return s.Namespace + "." + key
}

// splitPath converts a validator namespace such as
// "req.availableData[0].priceTypes[1].priceTypeId" into a zod-style path,
// dropping the leading struct name.
func splitPath(namespace string) []any {
	segments := strings.Split(namespace, ".")
	if len(segments) > 1 {
		segments = segments[1:]
	}

	path := make([]any, 0, len(segments))
	for _, segment := range segments {
		for {
			open := strings.IndexByte(segment, '[')
			if open < 0 {
				if segment != "" {
					path = append(path, segment)
				}
				break
			}
			if open > 0 {
				path = append(path, segment[:open])
			}
			closing := strings.IndexByte(segment, ']')
			if closing < 0 {
				break
			}
			if idx, err := strconv.Atoi(segment[open+1 : closing]); err == nil {
				path = append(path, idx)
			}
			segment = segment[closing+1:]
		}
	}
	return path
}
