package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cartRequest struct {
	UserID  string `form:"user_id" validate:"required,numeric"`
	FlyerIs string `form:"flyer_is" validate:"required,numeric"`
}

type socialRequest struct {
	UserID string `json:"user_id" validate:"required,social_id"`
}

func TestStruct_RequiredUsesFormNames(t *testing.T) {
	err := Struct(&cartRequest{})
	require.Error(t, err)

	var errs Errors
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs, 2)
	assert.Equal(t, "user_id", errs[0].Field)
	assert.Equal(t, "user_id is required", errs[0].Message)
	assert.Equal(t, "flyer_is", errs[1].Field)
}

func TestStruct_Numeric(t *testing.T) {
	err := Struct(&cartRequest{UserID: "abc", FlyerIs: "7"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user_id must be numeric")

	assert.NoError(t, Struct(&cartRequest{UserID: "42", FlyerIs: "7"}))
}

func TestStruct_SocialID(t *testing.T) {
	assert.NoError(t, Struct(&socialRequest{UserID: "google_123"}))
	assert.NoError(t, Struct(&socialRequest{UserID: "cognito_abc"}))

	err := Struct(&socialRequest{UserID: "github_1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "google_")
}
