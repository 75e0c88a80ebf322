package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"adops/internal/pkg/apperr"
)

type sample struct {
	Name   string `validate:"required"`
	Period string `validate:"oneof=weekly monthly quarterly"`
}

func TestValidate(t *testing.T) {
	assert.Nil(t, Validate(sample{Name: "x", Period: "weekly"}))

	errs := Validate(sample{Period: "daily"})
	assert.Equal(t, map[string]string{"Name": "required", "Period": "oneof"}, errs)
}

func TestCheck(t *testing.T) {
	assert.NoError(t, Check(sample{Name: "x", Period: "monthly"}))

	err := Check(sample{Name: "x", Period: "yearly"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Contains(t, err.Error(), "Period")
}
