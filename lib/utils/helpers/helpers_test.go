package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Run(`CNIC`, func(t *testing.T) {
		require.Equal(t, "3520212345671", NormalizeCNIC(" 35202-1234567-1 "))
		require.True(t, IsValidCNIC(NormalizeCNIC("35202 1234567 1")))
		require.False(t, IsValidCNIC("35202-1234567"))
	})
	t.Run(`паспорт`, func(t *testing.T) {
		require.Equal(t, "AB1234567", NormalizePassport("ab 1234567"))
		require.True(t, IsValidPassport("AB1234567"))
		require.False(t, IsValidPassport("A12345678"))
	})
}

func TestUniqueIDs(t *testing.T) {
	require.Equal(t, []string{"a", "b", "c"}, UniqueIDs([]string{"a", " b", "", "a", "c", "b"}))
	require.Empty(t, UniqueIDs([]string{"", " "}))
}

func TestFullName(t *testing.T) {
	require.Equal(t, "Ali Raza Khan", FullName("Ali", "", "Raza ", " Khan"))
}
