package domain

import (
	"context"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	log "github.com/sirupsen/logrus"
	"github.com/vulpemventures/tide/pkg/wallet/hdkeys"
)

// Wallet is the in-memory handle of a multisig wallet negotiated with the
// co-signing service. It is built from public material only and stays locked
// until Unlock resolves the primary private key and verifies it against the
// stored checksum. A handle is never persisted and supports no concurrent
// mutation, a locked or unlocked handle may be shared freely for reads.
type Wallet struct {
	client             Cosigner
	identifier         string
	primaryMnemonic    []string
	primaryPubKeys     map[uint32]string
	backupPubKey       string
	cosignerPubKeys    map[uint32]string
	keyIndex           uint32
	testnet            bool
	checksum           string
	upgradeKeyIndex    *uint32
	bypassAddressCheck bool
	readOnly           bool

	signingKey *hdkeychain.ExtendedKey
}

type NewWalletArgs struct {
	Client             Cosigner
	Identifier         string
	PrimaryMnemonic    []string
	PrimaryPubKeys     map[uint32]string
	BackupPubKey       string
	CosignerPubKeys    map[uint32]string
	KeyIndex           uint32
	Testnet            bool
	Checksum           string
	UpgradeKeyIndex    *uint32
	BypassAddressCheck bool
	ReadOnly           bool
}

func (a NewWalletArgs) validate() error {
	if len(a.Identifier) <= 0 {
		return ErrIdentifierRequired
	}
	if len(a.BackupPubKey) <= 0 {
		return ErrMissingBackupKey
	}
	if len(a.CosignerPubKeys) <= 0 {
		return ErrMissingCosignerKeys
	}
	if _, ok := a.CosignerPubKeys[a.KeyIndex]; !ok {
		return ErrCosignerKeyNotFound
	}
	if len(a.Checksum) <= 0 {
		return ErrMissingChecksum
	}
	return nil
}

// NewWallet builds a locked wallet handle from the given public material.
func NewWallet(args NewWalletArgs) (*Wallet, error) {
	if err := args.validate(); err != nil {
		return nil, err
	}

	cosignerKeys := make(map[uint32]string, len(args.CosignerPubKeys))
	for index, xpub := range args.CosignerPubKeys {
		cosignerKeys[index] = xpub
	}
	primaryKeys := make(map[uint32]string, len(args.PrimaryPubKeys))
	for index, xpub := range args.PrimaryPubKeys {
		primaryKeys[index] = xpub
	}

	return &Wallet{
		client:             args.Client,
		identifier:         args.Identifier,
		primaryMnemonic:    args.PrimaryMnemonic,
		primaryPubKeys:     primaryKeys,
		backupPubKey:       args.BackupPubKey,
		cosignerPubKeys:    cosignerKeys,
		keyIndex:           args.KeyIndex,
		testnet:            args.Testnet,
		checksum:           args.Checksum,
		upgradeKeyIndex:    args.UpgradeKeyIndex,
		bypassAddressCheck: args.BypassAddressCheck,
		readOnly:           args.ReadOnly,
	}, nil
}

func (w *Wallet) Identifier() string {
	return w.identifier
}

func (w *Wallet) KeyIndex() uint32 {
	return w.keyIndex
}

func (w *Wallet) Checksum() string {
	return w.checksum
}

func (w *Wallet) IsTestnet() bool {
	return w.testnet
}

func (w *Wallet) IsReadOnly() bool {
	return w.readOnly
}

func (w *Wallet) IsUnlocked() bool {
	return w.signingKey != nil
}

// UpgradeKeyIndex returns the key index the service advises rotating to, or
// nil when no rotation is pending. Purely advisory, never enforced here.
func (w *Wallet) UpgradeKeyIndex() *uint32 {
	if w.upgradeKeyIndex == nil {
		return nil
	}
	index := *w.upgradeKeyIndex
	return &index
}

// CosignerPubKey returns the cosigner public key for the active key index.
func (w *Wallet) CosignerPubKey() string {
	return w.cosignerPubKeys[w.keyIndex]
}

// BackupPubKey returns the backup public key known to the service.
func (w *Wallet) BackupPubKey() string {
	return w.backupPubKey
}

// Network returns the chain params matching the wallet's testnet flag.
func (w *Wallet) Network() *chaincfg.Params {
	if w.testnet {
		return &chaincfg.TestNet3Params
	}
	return &chaincfg.MainNetParams
}

type UnlockArgs struct {
	Mnemonic      []string
	Passphrase    string
	SerializedKey string
	Key           *hdkeychain.ExtendedKey
}

// Unlock resolves the primary private key from the given material and
// verifies it reproduces the stored checksum. When no mnemonic nor key is
// supplied and the service returned a stored mnemonic at init time, that one
// is used together with the given passphrase. Unlocking an already unlocked
// wallet is a no-op.
func (w *Wallet) Unlock(args UnlockArgs) error {
	if w.readOnly {
		return ErrWalletReadOnly
	}
	if w.IsUnlocked() {
		return nil
	}

	words := args.Mnemonic
	if len(words) <= 0 && len(args.SerializedKey) <= 0 && args.Key == nil {
		words = w.primaryMnemonic
	}

	resolved, err := ResolvePrimaryKey(ResolveKeyArgs{
		Mnemonic:      words,
		Passphrase:    args.Passphrase,
		SerializedKey: args.SerializedKey,
		Key:           args.Key,
		Network:       w.Network(),
	})
	if err != nil {
		return err
	}

	return w.UnlockWithKey(resolved.Key)
}

// UnlockWithKey verifies the given primary extended private key against the
// stored checksum and, on success, retains it as the wallet signing key. The
// bootstrap protocol calls this directly after creating a wallet to avoid
// recomputing the seed stretch.
func (w *Wallet) UnlockWithKey(key *hdkeychain.ExtendedKey) error {
	if w.readOnly {
		return ErrWalletReadOnly
	}
	if key == nil || !key.IsPrivate() {
		return ErrMalformedKey
	}

	checksum, err := hdkeys.ChecksumAddress(key, w.Network())
	if err != nil {
		return err
	}
	if checksum != w.checksum {
		if !w.bypassAddressCheck {
			return ErrInvalidChecksum
		}
		log.WithFields(log.Fields{
			"wallet": w.identifier,
		}).Warn("wallet: skipping checksum verification")
	}

	w.signingKey = key
	return nil
}

// SigningKey returns the primary extended private key of an unlocked wallet.
func (w *Wallet) SigningKey() (*hdkeychain.ExtendedKey, error) {
	if !w.IsUnlocked() {
		return nil, ErrWalletLocked
	}
	return w.signingKey, nil
}

// AccountPrivKey derives the account-level EC private key for the active key
// index, the one matching the public key registered with the service.
func (w *Wallet) AccountPrivKey() (*btcec.PrivateKey, error) {
	if !w.IsUnlocked() {
		return nil, ErrWalletLocked
	}

	accountKey, err := hdkeys.DeriveHardened(w.signingKey, w.keyIndex)
	if err != nil {
		return nil, err
	}
	return accountKey.ECPrivKey()
}

// Upgrade asks the service to rotate the wallet to the given cosigner key
// index and refreshes the local cosigner key map with the returned record.
func (w *Wallet) Upgrade(ctx context.Context, keyIndex uint32) error {
	record, err := w.client.UpgradeWallet(ctx, w.identifier, keyIndex)
	if err != nil {
		return err
	}

	for index, xpub := range record.CosignerPubKeys {
		w.cosignerPubKeys[index] = xpub
	}
	w.keyIndex = record.KeyIndex
	w.upgradeKeyIndex = record.UpgradeKeyIndex
	return nil
}
