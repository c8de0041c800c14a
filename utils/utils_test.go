package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateOTPFormat(t *testing.T) {
	for i := 0; i < 50; i++ {
		otp := GenerateOTP()
		require.Len(t, otp, 6)
		for _, r := range otp {
			require.True(t, r >= '0' && r <= '9')
		}
	}
}

func TestHashOTPDeterministic(t *testing.T) {
	require.Equal(t, HashOTP("123456"), HashOTP("123456"))
	require.NotEqual(t, HashOTP("123456"), HashOTP("123457"))
	require.Len(t, HashOTP("123456"), 64)
}
