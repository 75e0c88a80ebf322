package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaxonomyMatchesSentinels(t *testing.T) {
	v := Validation("period", "must be one of weekly, monthly, quarterly")
	assert.ErrorIs(t, v, ErrValidation)
	assert.NotErrorIs(t, v, ErrNotFound)
	assert.Equal(t, "period: must be one of weekly, monthly, quarterly", v.Error())

	nf := NotFound("advertiser", "Acme")
	assert.ErrorIs(t, nf, ErrNotFound)
	assert.Equal(t, `advertiser "Acme" not found`, nf.Error())

	cause := errors.New("connection reset")
	se := Store("select ads", cause)
	assert.ErrorIs(t, se, ErrStore)
	assert.ErrorIs(t, se, cause)
}

func TestStoreKeepsTaxonomyErrors(t *testing.T) {
	nf := NotFound("invoice", "7")
	assert.Same(t, nf, Store("get invoice", nf))
	assert.Nil(t, Store("noop", nil))

	wrapped := fmt.Errorf("generate: %w", Validation("", "no items"))
	assert.ErrorIs(t, Store("create", wrapped), ErrValidation)
}
