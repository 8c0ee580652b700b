package mnemonic_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vulpemventures/tide/pkg/wallet/mnemonic"
)

func TestNewMnemonic(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		words, err := mnemonic.NewMnemonic(mnemonic.NewMnemonicArgs{})
		require.NoError(t, err)
		require.Len(t, words, 24)

		words, err = mnemonic.NewMnemonic(mnemonic.NewMnemonicArgs{
			EntropySize: 128,
		})
		require.NoError(t, err)
		require.Len(t, words, 12)
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			args mnemonic.NewMnemonicArgs
			err  error
		}{
			{
				args: mnemonic.NewMnemonicArgs{EntropySize: 64},
				err:  mnemonic.ErrInvalidEntropySize,
			},
			{
				args: mnemonic.NewMnemonicArgs{EntropySize: 192},
				err:  mnemonic.ErrInvalidEntropySize,
			},
		}

		for _, tt := range tests {
			words, err := mnemonic.NewMnemonic(tt.args)
			require.EqualError(t, err, tt.err.Error())
			require.Empty(t, words)
		}
	})
}

func TestNewMnemonicUniqueness(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		words, err := mnemonic.NewMnemonic(mnemonic.NewMnemonicArgs{})
		require.NoError(t, err)

		joined := mnemonic.ToString(words)
		_, found := seen[joined]
		require.False(t, found)
		seen[joined] = struct{}{}
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	words, err := mnemonic.NewMnemonic(mnemonic.NewMnemonicArgs{})
	require.NoError(t, err)
	require.NoError(t, mnemonic.Validate(words))

	// All-abandon breaks the embedded checksum, the valid form ends with
	// "about".
	badChecksum := make([]string, 12)
	for i := range badChecksum {
		badChecksum[i] = "abandon"
	}
	require.EqualError(
		t, mnemonic.Validate(badChecksum), mnemonic.ErrInvalidMnemonic.Error(),
	)

	require.EqualError(
		t, mnemonic.Validate(nil), mnemonic.ErrInvalidMnemonic.Error(),
	)
	require.EqualError(
		t,
		mnemonic.Validate([]string{"not", "a", "wordlist", "entry"}),
		mnemonic.ErrInvalidMnemonic.Error(),
	)
}

func TestToFromString(t *testing.T) {
	t.Parallel()

	words, err := mnemonic.NewMnemonic(mnemonic.NewMnemonicArgs{})
	require.NoError(t, err)

	require.Equal(t, words, mnemonic.FromString(mnemonic.ToString(words)))
	require.Nil(t, mnemonic.FromString(""))
}
