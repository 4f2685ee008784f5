package validator

import (
	"errors"
	"reflect"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required": "{field} is required",
	"gt":       "{field} must be greater than {param}",
	"gte":      "{field} must be greater than or equal to {param}",
	"lte":      "{field} must be less than or equal to {param}",
	"min":      "{field} must be greater than or equal to {param}",
	"max":      "{field} must be less than or equal to {param}",
	"oneof":    "{field} must be one of {param}",
	"email":    "{field} must be a valid email address",
	"isodate":  "{field} must be a date formatted as YYYY-MM-DD",
	"timeslot": "{field} must be a time slot such as 10:00 AM",
}

// message lists every violated rule, named after the JSON field, in struct order.
func message(err error) string {
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) {
		return err.Error()
	}

	lines := make([]string, 0, len(valErrors))

	for _, valErr := range valErrors {
		template, ok := messages[valErr.Tag()]
		if !ok {
			lines = append(lines, valErr.Error())

			continue
		}

		line := strings.ReplaceAll(template, "{field}", valErr.Field())
		line = strings.ReplaceAll(line, "{param}", valErr.Param())
		lines = append(lines, line)
	}

	return strings.Join(lines, "; ")
}

// jsonName makes violations use the names callers actually send.
func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")

	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	default:
		return name
	}
}
