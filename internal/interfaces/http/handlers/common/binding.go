// Package common holds request binding helpers shared by the HTTP handlers.
package common

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/garagehq/repairshop/internal/shared/errors"
)

// BindJSON decodes the request body into req. Rule violations become a
// validation error naming each field; a body that is not valid JSON for req
// is a bad request.
func BindJSON(c *gin.Context, req any) error {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return nil
	}

	return bindError(err)
}

// BindPatchJSON binds a partial update. Every top-level key in the body must
// be one of allowed; anything else, such as id or role, is rejected with a
// validation error instead of being silently dropped. An empty object is
// rejected too.
func BindPatchJSON(c *gin.Context, req any, allowed ...string) error {
	raw, err := c.GetRawData()
	if err != nil {
		return errors.NewBadRequestError("failed to read request body", err.Error())
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return errors.NewBadRequestError("malformed request body", err.Error())
	}
	if len(fields) == 0 {
		return errors.NewValidationError("no fields to update", "allowed fields: "+strings.Join(allowed, ", "))
	}

	var rejected []string
	for key := range fields {
		if !slices.Contains(allowed, key) {
			rejected = append(rejected, key+" cannot be updated")
		}
	}
	if len(rejected) > 0 {
		slices.Sort(rejected)
		return errors.NewValidationError("invalid request", rejected...)
	}

	if err := binding.JSON.BindBody(raw, req); err != nil {
		return bindError(err)
	}
	return nil
}

func bindError(err error) error {
	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) {
		return errors.NewValidationError("invalid request", fieldErrors(verrs)...)
	}
	return errors.NewBadRequestError("malformed request body", err.Error())
}

func fieldErrors(verrs validator.ValidationErrors) []string {
	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := toSnake(fe.Field())
		switch fe.Tag() {
		case "required":
			details = append(details, field+" is required")
		case "oneof":
			details = append(details, fmt.Sprintf("%s must be one of [%s]", field, fe.Param()))
		case "vin":
			details = append(details, field+" must be 1-17 letters or digits")
		default:
			details = append(details, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return details
}

// toSnake turns the Go field name into the JSON key the client sent.
func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && !(s[i-1] >= 'A' && s[i-1] <= 'Z') {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
