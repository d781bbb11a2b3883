package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_EncodeDecode(t *testing.T) {
	t.Parallel()

	auth := NewAuth("test-key")
	now := time.Now()

	token, err := auth.Encode(now, jwt.MapClaims{"sub": "caller-1"})
	require.NoError(t, err)

	// 相同输入得到相同令牌
	again, err := auth.Encode(now, jwt.MapClaims{"sub": "caller-1"})
	require.NoError(t, err)
	assert.Equal(t, token, again)

	claims, err := auth.Decode("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "caller-1", claims["sub"])
	assert.Equal(t, issuer, claims["iss"])
	assert.Equal(t, float64(now.Add(defaultTTL).Unix()), claims["exp"])
}

func TestAuth_Decode(t *testing.T) {
	t.Parallel()

	auth := NewAuth("test-key")
	expired, err := auth.Encode(time.Now().Add(-time.Hour), nil)
	require.NoError(t, err)
	otherKey, err := NewAuth("other-key").Encode(time.Now(), nil)
	require.NoError(t, err)
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "x"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	testCases := []struct {
		name  string
		token string
	}{
		{name: "已过期", token: expired},
		{name: "密钥不一致", token: otherKey},
		{name: "不支持的算法", token: none},
		{name: "格式错误", token: "not-a-token"},
		{name: "空令牌", token: ""},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := auth.Decode(tc.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
