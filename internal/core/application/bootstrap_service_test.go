package application_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vulpemventures/tide/internal/core/application"
	"github.com/vulpemventures/tide/internal/core/domain"
	"github.com/vulpemventures/tide/internal/core/ports"
	"github.com/vulpemventures/tide/pkg/wallet/hdkeys"
	"github.com/vulpemventures/tide/pkg/wallet/mnemonic"
)

var (
	ctx     = context.Background()
	mainnet = &chaincfg.MainNetParams
)

func randomXpub(t *testing.T) string {
	t.Helper()

	words, err := mnemonic.NewMnemonic(mnemonic.NewMnemonicArgs{})
	require.NoError(t, err)
	masterKey, err := hdkeys.MasterKeyFromMnemonic(hdkeys.SeedArgs{
		Mnemonic: words,
	}, mainnet)
	require.NoError(t, err)
	pubKey, err := hdkeys.Neuter(masterKey)
	require.NoError(t, err)
	return pubKey.String()
}

func serverRecord(t *testing.T, keyIndex uint32) *domain.WalletRecord {
	t.Helper()

	return &domain.WalletRecord{
		Identifier: "wallet-1",
		KeyIndex:   keyIndex,
		CosignerPubKeys: map[uint32]string{
			keyIndex: randomXpub(t),
		},
	}
}

func TestGenerateMnemonic(t *testing.T) {
	t.Parallel()

	svc := application.NewBootstrapService(&mockCosigner{}, mainnet)

	words, err := svc.GenerateMnemonic(ctx)
	require.NoError(t, err)
	require.Len(t, words, 24)
	require.NoError(t, mnemonic.Validate(words))
}

func TestCreateNewWallet(t *testing.T) {
	t.Parallel()

	t.Run("generated primary material", func(t *testing.T) {
		t.Parallel()

		var captured ports.CreateWalletParams
		client := &mockCosigner{}
		client.On("CreateWallet", ctx, mock.Anything).Return(
			serverRecord(t, 0), nil,
		).Run(func(args mock.Arguments) {
			captured = args.Get(1).(ports.CreateWalletParams)
		}).Once()

		svc := application.NewBootstrapService(client, mainnet)
		result, err := svc.CreateNewWallet(ctx, application.BootstrapOptions{
			Identifier: "wallet-1",
			Passphrase: "passphrase",
		})
		require.NoError(t, err)
		client.AssertExpectations(t)

		// Both mnemonics were generated and must be surfaced to the caller.
		require.Len(t, result.PrimaryMnemonic, 24)
		require.Len(t, result.BackupMnemonic, 24)
		require.True(t, result.Wallet.IsUnlocked())
		require.Equal(t, uint32(0), result.Wallet.KeyIndex())
		require.NotEmpty(t, result.Wallet.CosignerPubKey())
		require.Equal(
			t, result.Wallet.CosignerPubKey(), result.KeySet.ActiveCosignerPubKey(),
		)

		// The registered material matches what the caller's secrets derive to.
		require.Equal(t, "wallet-1", captured.Identifier)
		require.Equal(t, "M/0'", captured.PrimaryKey.Path)
		require.Equal(t, "M", captured.BackupKey.Path)
		require.Equal(t, result.KeySet.BackupPubKey.String(), captured.BackupKey.Xpub)
		require.Equal(t, result.KeySet.Checksum, captured.Checksum)

		masterKey, err := hdkeys.MasterKeyFromMnemonic(hdkeys.SeedArgs{
			Mnemonic:   result.PrimaryMnemonic,
			Passphrase: "passphrase",
		}, mainnet)
		require.NoError(t, err)
		checksum, err := hdkeys.ChecksumAddress(masterKey, mainnet)
		require.NoError(t, err)
		require.Equal(t, checksum, captured.Checksum)

		// A generated primary mnemonic is escrowed with the service by default.
		require.Equal(
			t, mnemonic.ToString(result.PrimaryMnemonic), captured.PrimaryMnemonic,
		)
	})

	t.Run("supplied primary mnemonic", func(t *testing.T) {
		t.Parallel()

		words, err := mnemonic.NewMnemonic(mnemonic.NewMnemonicArgs{})
		require.NoError(t, err)

		var captured ports.CreateWalletParams
		client := &mockCosigner{}
		client.On("CreateWallet", ctx, mock.Anything).Return(
			serverRecord(t, 0), nil,
		).Run(func(args mock.Arguments) {
			captured = args.Get(1).(ports.CreateWalletParams)
		}).Once()

		svc := application.NewBootstrapService(client, mainnet)
		result, err := svc.CreateNewWallet(ctx, application.BootstrapOptions{
			Identifier:      "wallet-1",
			Passphrase:      "passphrase",
			PrimaryMnemonic: words,
		})
		require.NoError(t, err)
		require.Equal(t, words, result.PrimaryMnemonic)
		// Caller-supplied mnemonics are never escrowed unless asked for.
		require.Empty(t, captured.PrimaryMnemonic)
	})

	t.Run("custom key index", func(t *testing.T) {
		t.Parallel()

		keyIndex := uint32(3)
		var captured ports.CreateWalletParams
		client := &mockCosigner{}
		client.On("CreateWallet", ctx, mock.Anything).Return(
			serverRecord(t, keyIndex), nil,
		).Run(func(args mock.Arguments) {
			captured = args.Get(1).(ports.CreateWalletParams)
		}).Once()

		svc := application.NewBootstrapService(client, mainnet)
		result, err := svc.CreateNewWallet(ctx, application.BootstrapOptions{
			Identifier: "wallet-1",
			Passphrase: "passphrase",
			KeyIndex:   &keyIndex,
		})
		require.NoError(t, err)
		require.Equal(t, keyIndex, captured.KeyIndex)
		require.Equal(t, fmt.Sprintf("M/%d'", keyIndex), captured.PrimaryKey.Path)
		require.Equal(t, keyIndex, result.Wallet.KeyIndex())
	})

	t.Run("legacy password alias", func(t *testing.T) {
		t.Parallel()

		client := &mockCosigner{}
		client.On("CreateWallet", ctx, mock.Anything).Return(
			serverRecord(t, 0), nil,
		).Once()

		svc := application.NewBootstrapService(client, mainnet)
		result, err := svc.CreateNewWallet(ctx, application.BootstrapOptions{
			Identifier: "wallet-1",
			Password:   "passphrase",
		})
		require.NoError(t, err)
		require.True(t, result.Wallet.IsUnlocked())
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			opts application.BootstrapOptions
			err  error
		}{
			{
				name: "missing identifier",
				opts: application.BootstrapOptions{Passphrase: "passphrase"},
				err:  domain.ErrIdentifierRequired,
			},
			{
				name: "missing passphrase",
				opts: application.BootstrapOptions{Identifier: "wallet-1"},
				err:  domain.ErrMissingPassphrase,
			},
			{
				name: "private backup key",
				opts: application.BootstrapOptions{
					Identifier: "wallet-1",
					Passphrase: "passphrase",
					BackupSerializedKey: func() string {
						words, _ := mnemonic.NewMnemonic(mnemonic.NewMnemonicArgs{})
						key, _ := hdkeys.MasterKeyFromMnemonic(hdkeys.SeedArgs{
							Mnemonic: words,
						}, mainnet)
						return key.String()
					}(),
				},
				err: domain.ErrMalformedKey,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				client := &mockCosigner{}
				svc := application.NewBootstrapService(client, mainnet)

				result, err := svc.CreateNewWallet(ctx, tt.opts)
				require.EqualError(t, err, tt.err.Error())
				require.Nil(t, result)
				// Local validation fails before any network I/O.
				client.AssertNotCalled(t, "CreateWallet")
			})
		}
	})
}

func TestInitWallet(t *testing.T) {
	t.Parallel()

	// A wallet created through the bootstrap protocol must be re-openable from
	// the record the service hands back, so the fixtures here go through
	// CreateNewWallet first and replay its registered material at init time.
	words, err := mnemonic.NewMnemonic(mnemonic.NewMnemonicArgs{})
	require.NoError(t, err)
	passphrase := "passphrase"

	var captured ports.CreateWalletParams
	createClient := &mockCosigner{}
	createClient.On("CreateWallet", ctx, mock.Anything).Return(
		serverRecord(t, 0), nil,
	).Run(func(args mock.Arguments) {
		captured = args.Get(1).(ports.CreateWalletParams)
	}).Once()

	created, err := application.NewBootstrapService(createClient, mainnet).
		CreateNewWallet(ctx, application.BootstrapOptions{
			Identifier:      "wallet-1",
			Passphrase:      passphrase,
			PrimaryMnemonic: words,
		})
	require.NoError(t, err)

	record := func() *domain.WalletRecord {
		return &domain.WalletRecord{
			Identifier: "wallet-1",
			KeyIndex:   captured.KeyIndex,
			PrimaryPubKeys: map[uint32]string{
				captured.KeyIndex: captured.PrimaryKey.Xpub,
			},
			BackupPubKey: captured.BackupKey.Xpub,
			CosignerPubKeys: map[uint32]string{
				captured.KeyIndex: created.Wallet.CosignerPubKey(),
			},
			Checksum: captured.Checksum,
		}
	}

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		client := &mockCosigner{}
		client.On("GetWallet", ctx, "wallet-1").Return(record(), nil).Once()

		svc := application.NewBootstrapService(client, mainnet)
		wallet, err := svc.InitWallet(ctx, application.BootstrapOptions{
			Identifier:      "wallet-1",
			Passphrase:      passphrase,
			PrimaryMnemonic: words,
		})
		require.NoError(t, err)
		client.AssertExpectations(t)

		require.True(t, wallet.IsUnlocked())
		require.Equal(t, created.Wallet.Checksum(), wallet.Checksum())
		require.Equal(t, created.Wallet.KeyIndex(), wallet.KeyIndex())
		require.Equal(t, created.Wallet.CosignerPubKey(), wallet.CosignerPubKey())
	})

	t.Run("read only", func(t *testing.T) {
		t.Parallel()

		client := &mockCosigner{}
		client.On("GetWallet", ctx, "wallet-1").Return(record(), nil).Once()

		svc := application.NewBootstrapService(client, mainnet)
		wallet, err := svc.InitWallet(ctx, application.BootstrapOptions{
			Identifier: "wallet-1",
			ReadOnly:   true,
		})
		require.NoError(t, err)
		require.False(t, wallet.IsUnlocked())
		require.True(t, wallet.IsReadOnly())
	})

	t.Run("stored mnemonic", func(t *testing.T) {
		t.Parallel()

		escrowed := record()
		escrowed.PrimaryMnemonic = mnemonic.ToString(words)
		client := &mockCosigner{}
		client.On("GetWallet", ctx, "wallet-1").Return(escrowed, nil).Once()

		svc := application.NewBootstrapService(client, mainnet)
		wallet, err := svc.InitWallet(ctx, application.BootstrapOptions{
			Identifier: "wallet-1",
			Passphrase: passphrase,
		})
		require.NoError(t, err)
		require.True(t, wallet.IsUnlocked())
	})

	t.Run("wrong passphrase", func(t *testing.T) {
		t.Parallel()

		client := &mockCosigner{}
		client.On("GetWallet", ctx, "wallet-1").Return(record(), nil).Once()

		svc := application.NewBootstrapService(client, mainnet)
		wallet, err := svc.InitWallet(ctx, application.BootstrapOptions{
			Identifier:      "wallet-1",
			Passphrase:      "wrong",
			PrimaryMnemonic: words,
		})
		require.EqualError(t, err, domain.ErrInvalidChecksum.Error())
		require.Nil(t, wallet)
	})

	t.Run("missing identifier", func(t *testing.T) {
		t.Parallel()

		client := &mockCosigner{}
		svc := application.NewBootstrapService(client, mainnet)

		wallet, err := svc.InitWallet(ctx, application.BootstrapOptions{})
		require.EqualError(t, err, domain.ErrIdentifierRequired.Error())
		require.Nil(t, wallet)
		client.AssertNotCalled(t, "GetWallet")
	})
}

func TestUpgradeWallet(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		client := &mockCosigner{}
		client.On("UpgradeWallet", ctx, "wallet-1", uint32(1)).Return(
			serverRecord(t, 1), nil,
		).Once()

		svc := application.NewBootstrapService(client, mainnet)
		record, err := svc.UpgradeWallet(ctx, "wallet-1", 1)
		require.NoError(t, err)
		require.Equal(t, uint32(1), record.KeyIndex)
		client.AssertExpectations(t)
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()

		client := &mockCosigner{}
		svc := application.NewBootstrapService(client, mainnet)

		record, err := svc.UpgradeWallet(ctx, "", 1)
		require.EqualError(t, err, domain.ErrIdentifierRequired.Error())
		require.Nil(t, record)
		client.AssertNotCalled(t, "UpgradeWallet")
	})
}
