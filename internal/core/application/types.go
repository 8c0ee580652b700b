package application

import (
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/vulpemventures/tide/internal/core/domain"
)

// BootstrapOptions is the options bag accepted by both bootstrap entry
// points. Password is a legacy alias of Passphrase kept for callers migrating
// from the old calling convention, Passphrase wins when both are set.
type BootstrapOptions struct {
	Identifier string
	Passphrase string
	Password   string

	PrimaryMnemonic      []string
	PrimarySerializedKey string
	PrimaryKey           *hdkeychain.ExtendedKey

	BackupMnemonic      []string
	BackupSerializedKey string
	BackupKey           *hdkeychain.ExtendedKey

	KeyIndex             *uint32
	StorePrimaryMnemonic *bool
	ReadOnly             bool
	BypassAddressCheck   bool
}

func (o BootstrapOptions) passphrase() string {
	if len(o.Passphrase) > 0 {
		return o.Passphrase
	}
	return o.Password
}

func (o BootstrapOptions) hasPrimaryMaterial() bool {
	return len(o.PrimaryMnemonic) > 0 ||
		len(o.PrimarySerializedKey) > 0 ||
		o.PrimaryKey != nil
}

func (o BootstrapOptions) keyIndex() uint32 {
	if o.KeyIndex != nil {
		return *o.KeyIndex
	}
	return 0
}

// CreateWalletResult is everything a caller gets back from CreateNewWallet:
// the unlocked wallet handle, the mnemonics to show the user exactly once,
// and the cosigner public keys returned by the service.
type CreateWalletResult struct {
	Wallet          *domain.Wallet
	KeySet          *domain.WalletKeySet
	PrimaryMnemonic []string
	BackupMnemonic  []string
	CosignerPubKeys map[uint32]string
}
