package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platefulapp/plateful-server/internal/errors"
)

type testRequest struct {
	Title      string `json:"title" validate:"required,max=200"`
	Visibility int    `json:"visibility_id" validate:"gte=1,lte=3"`
	Image      string `json:"image,omitempty" validate:"omitempty,url"`
}

func TestValidate_OK(t *testing.T) {
	v := New()
	err := v.Validate(testRequest{Title: "Coq au Vin", Visibility: 1})
	assert.NoError(t, err)
}

func TestValidate_FieldErrors(t *testing.T) {
	v := New()
	err := v.Validate(testRequest{Visibility: 9, Image: "not-a-url"})
	require.Error(t, err)

	var domainErr *errors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, errors.CodeBadRequest, domainErr.Code)

	// Field names come from JSON tags, with options stripped.
	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok, "details should be a field error map")
	assert.Contains(t, details, "title")
	assert.Contains(t, details, "visibility_id")
	assert.Contains(t, details, "image")
	assert.Equal(t, "is required", details["title"])
}
