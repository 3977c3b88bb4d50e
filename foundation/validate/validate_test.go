package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bipwallet/deeplink/foundation/validate"
)

type request struct {
	URL     string `json:"url" validate:"required,url"`
	Coin    string `json:"coin" validate:"omitempty,coin"`
	Address string `json:"address" validate:"omitempty,mxaddress"`
}

func TestCheck(t *testing.T) {
	err := validate.Check(request{URL: "minter://bip.to/tx/abc", Coin: "BIP", Address: "Mx9858effd232b4033e47d90003d41ec34ecaeda94"})
	require.NoError(t, err)

	err = validate.Check(request{Coin: "B!", Address: "nope"})
	require.Error(t, err)
	require.True(t, validate.IsFieldErrors(err))

	fields := validate.GetFieldErrors(err)
	require.Len(t, fields, 3)

	byField := make(map[string]string)
	for _, f := range fields {
		byField[f.Field] = f.Error
	}

	assert.Equal(t, "url is a required field", byField["url"])
	assert.Equal(t, "coin must be 3 to 100 letters, digits or hyphens", byField["coin"])
	assert.Equal(t, "address must be a Mx prefixed address", byField["address"])
}
