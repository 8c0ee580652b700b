package application

import (
	"context"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
	log "github.com/sirupsen/logrus"
	"github.com/vulpemventures/tide/internal/core/domain"
	"github.com/vulpemventures/tide/internal/core/ports"
	"github.com/vulpemventures/tide/pkg/wallet/hdkeys"
	"github.com/vulpemventures/tide/pkg/wallet/mnemonic"
)

// BootstrapService orchestrates the wallet bootstrap protocol against the
// co-signing service:
//   - CreateNewWallet resolves or generates the primary and backup key
//     material, computes the ownership checksum, registers the public keys
//     with the service and returns an unlocked wallet handle.
//   - InitWallet reconstructs a wallet handle from the server-side record and
//     unlocks it with the caller's secrets, unless a read-only handle was
//     requested.
//
// Every call either runs to completion or fails atomically: all local
// validation happens before any network I/O, and no partial wallet handle is
// ever returned.
type BootstrapService struct {
	client  ports.Cosigner
	network *chaincfg.Params
}

func NewBootstrapService(
	client ports.Cosigner, network *chaincfg.Params,
) *BootstrapService {
	return &BootstrapService{
		client:  client,
		network: network,
	}
}

// GenerateMnemonic returns a fresh mnemonic at the default entropy size.
func (s *BootstrapService) GenerateMnemonic(
	_ context.Context,
) ([]string, error) {
	return mnemonic.NewMnemonic(mnemonic.NewMnemonicArgs{})
}

// CreateNewWallet registers a brand new wallet with the co-signing service.
// When no primary key material is given, a passphrase is mandatory and a new
// primary mnemonic is generated; a missing backup key always falls back to a
// generated backup mnemonic.
func (s *BootstrapService) CreateNewWallet(
	ctx context.Context, opts BootstrapOptions,
) (*CreateWalletResult, error) {
	if len(opts.Identifier) <= 0 {
		return nil, domain.ErrIdentifierRequired
	}
	keyIndex := opts.keyIndex()
	passphrase := opts.passphrase()

	primaryMnemonic := opts.PrimaryMnemonic
	generatedPrimary := false
	if !opts.hasPrimaryMaterial() {
		if len(passphrase) <= 0 {
			return nil, domain.ErrMissingPassphrase
		}
		words, err := mnemonic.NewMnemonic(mnemonic.NewMnemonicArgs{})
		if err != nil {
			return nil, err
		}
		primaryMnemonic = words
		generatedPrimary = true
	}

	primary, backup, err := s.resolveKeyPair(
		domain.ResolveKeyArgs{
			Mnemonic:      primaryMnemonic,
			Passphrase:    passphrase,
			SerializedKey: opts.PrimarySerializedKey,
			Key:           opts.PrimaryKey,
			Network:       s.network,
		},
		domain.ResolveKeyArgs{
			Mnemonic:      opts.BackupMnemonic,
			SerializedKey: opts.BackupSerializedKey,
			Key:           opts.BackupKey,
			Network:       s.network,
		},
	)
	if err != nil {
		return nil, err
	}

	checksum, err := hdkeys.ChecksumAddress(primary.Key, s.network)
	if err != nil {
		return nil, err
	}

	accountKey, err := hdkeys.DeriveHardened(primary.Key, keyIndex)
	if err != nil {
		return nil, err
	}
	accountPubKey, err := hdkeys.Neuter(accountKey)
	if err != nil {
		return nil, err
	}

	storedMnemonic := ""
	if storePrimary(opts, generatedPrimary) && len(primary.Mnemonic) > 0 {
		storedMnemonic = mnemonic.ToString(primary.Mnemonic)
	}

	record, err := s.client.CreateWallet(ctx, ports.CreateWalletParams{
		Identifier: opts.Identifier,
		PrimaryKey: ports.PublicKeyEntry{
			Xpub: accountPubKey.String(),
			Path: fmt.Sprintf("M/%d'", keyIndex),
		},
		BackupKey: ports.PublicKeyEntry{
			Xpub: backup.Key.String(),
			Path: "M",
		},
		PrimaryMnemonic: storedMnemonic,
		Checksum:        checksum,
		KeyIndex:        keyIndex,
	})
	if err != nil {
		return nil, err
	}

	keySet, err := domain.NewWalletKeySet(domain.NewWalletKeySetArgs{
		PrimaryPubKey:   accountPubKey,
		PrimaryMnemonic: primary.Mnemonic,
		BackupPubKey:    backup.Key,
		BackupMnemonic:  backup.Mnemonic,
		CosignerPubKeys: record.CosignerPubKeys,
		KeyIndex:        record.KeyIndex,
		Checksum:        checksum,
	})
	if err != nil {
		return nil, err
	}

	wallet, err := domain.NewWallet(domain.NewWalletArgs{
		Client:          s.client,
		Identifier:      opts.Identifier,
		PrimaryMnemonic: primary.Mnemonic,
		PrimaryPubKeys: map[uint32]string{
			record.KeyIndex: accountPubKey.String(),
		},
		BackupPubKey:       backup.Key.String(),
		CosignerPubKeys:    record.CosignerPubKeys,
		KeyIndex:           record.KeyIndex,
		Testnet:            record.Testnet,
		Checksum:           checksum,
		UpgradeKeyIndex:    record.UpgradeKeyIndex,
		BypassAddressCheck: opts.BypassAddressCheck,
	})
	if err != nil {
		return nil, err
	}

	// Reuse the already-derived primary key instead of stretching the seed a
	// second time.
	if err := wallet.UnlockWithKey(primary.Key); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"wallet":    opts.Identifier,
		"key_index": record.KeyIndex,
	}).Debug("bootstrap: wallet created")

	return &CreateWalletResult{
		Wallet:          wallet,
		KeySet:          keySet,
		PrimaryMnemonic: primary.Mnemonic,
		BackupMnemonic:  backup.Mnemonic,
		CosignerPubKeys: record.CosignerPubKeys,
	}, nil
}

// InitWallet fetches the server-side record of an existing wallet and builds
// a wallet handle from it. The handle is unlocked with the caller-supplied
// secrets unless a read-only handle was requested.
func (s *BootstrapService) InitWallet(
	ctx context.Context, opts BootstrapOptions,
) (*domain.Wallet, error) {
	if len(opts.Identifier) <= 0 {
		return nil, domain.ErrIdentifierRequired
	}

	record, err := s.client.GetWallet(ctx, opts.Identifier)
	if err != nil {
		return nil, err
	}

	keyIndex := record.KeyIndex
	if opts.KeyIndex != nil {
		keyIndex = *opts.KeyIndex
	}

	var storedMnemonic []string
	if len(record.PrimaryMnemonic) > 0 {
		storedMnemonic = mnemonic.FromString(record.PrimaryMnemonic)
	}

	wallet, err := domain.NewWallet(domain.NewWalletArgs{
		Client:             s.client,
		Identifier:         record.Identifier,
		PrimaryMnemonic:    storedMnemonic,
		PrimaryPubKeys:     record.PrimaryPubKeys,
		BackupPubKey:       record.BackupPubKey,
		CosignerPubKeys:    record.CosignerPubKeys,
		KeyIndex:           keyIndex,
		Testnet:            record.Testnet,
		Checksum:           record.Checksum,
		UpgradeKeyIndex:    record.UpgradeKeyIndex,
		BypassAddressCheck: opts.BypassAddressCheck,
		ReadOnly:           opts.ReadOnly,
	})
	if err != nil {
		return nil, err
	}

	if opts.ReadOnly {
		return wallet, nil
	}

	if err := wallet.Unlock(domain.UnlockArgs{
		Mnemonic:      opts.PrimaryMnemonic,
		Passphrase:    opts.passphrase(),
		SerializedKey: opts.PrimarySerializedKey,
		Key:           opts.PrimaryKey,
	}); err != nil {
		return nil, err
	}

	return wallet, nil
}

// UpgradeWallet asks the service to rotate the given wallet to a new
// cosigner key index.
func (s *BootstrapService) UpgradeWallet(
	ctx context.Context, identifier string, keyIndex uint32,
) (*domain.WalletRecord, error) {
	if len(identifier) <= 0 {
		return nil, domain.ErrIdentifierRequired
	}
	return s.client.UpgradeWallet(ctx, identifier, keyIndex)
}

// resolveKeyPair resolves the primary and backup key material concurrently.
// The two resolutions are data-independent, the barrier here guarantees both
// have completed, successfully or not, before any network call is issued.
func (s *BootstrapService) resolveKeyPair(
	primaryArgs, backupArgs domain.ResolveKeyArgs,
) (*domain.ResolvedKey, *domain.ResolvedKey, error) {
	type resolution struct {
		key *domain.ResolvedKey
		err error
	}

	primaryCh := make(chan resolution, 1)
	backupCh := make(chan resolution, 1)
	go func() {
		key, err := domain.ResolvePrimaryKey(primaryArgs)
		primaryCh <- resolution{key, err}
	}()
	go func() {
		key, err := domain.ResolveBackupKey(backupArgs)
		backupCh <- resolution{key, err}
	}()

	primary, backup := <-primaryCh, <-backupCh
	if primary.err != nil {
		return nil, nil, primary.err
	}
	if backup.err != nil {
		return nil, nil, backup.err
	}
	return primary.key, backup.key, nil
}

func storePrimary(opts BootstrapOptions, generated bool) bool {
	if opts.StorePrimaryMnemonic != nil {
		return *opts.StorePrimaryMnemonic
	}
	return generated
}
