package domain

import (
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

// KeyRole identifies who controls a key of the multisig scheme.
type KeyRole int

const (
	// KeyRolePrimary is the key controlled entirely by the wallet owner,
	// either mnemonic-derived or supplied directly.
	KeyRolePrimary KeyRole = iota
	// KeyRoleBackup is the recovery key. Its public component is always known
	// to the co-signing service, its private component never leaves the owner.
	KeyRoleBackup
	// KeyRoleCosigner is the service-held key, one per key index. Only the
	// service knows the matching private keys.
	KeyRoleCosigner
)

func (r KeyRole) String() string {
	switch r {
	case KeyRolePrimary:
		return "primary"
	case KeyRoleBackup:
		return "backup"
	case KeyRoleCosigner:
		return "cosigner"
	default:
		return "unknown"
	}
}

// WalletKeySet is the full public key material of a wallet at a given key
// index, along with the mnemonics resolved or generated while assembling it.
// A key set is immutable after construction and safe to share for reads.
type WalletKeySet struct {
	PrimaryPubKey   *hdkeychain.ExtendedKey
	PrimaryMnemonic []string
	BackupPubKey    *hdkeychain.ExtendedKey
	BackupMnemonic  []string
	CosignerPubKeys map[uint32]string
	KeyIndex        uint32
	Checksum        string
}

type NewWalletKeySetArgs struct {
	PrimaryPubKey   *hdkeychain.ExtendedKey
	PrimaryMnemonic []string
	BackupPubKey    *hdkeychain.ExtendedKey
	BackupMnemonic  []string
	CosignerPubKeys map[uint32]string
	KeyIndex        uint32
	Checksum        string
}

func (a NewWalletKeySetArgs) validate() error {
	if a.BackupPubKey == nil {
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

// NewWalletKeySet assembles an immutable key set, requiring the backup key,
// the cosigner key matching the active key index and the ownership checksum.
func NewWalletKeySet(args NewWalletKeySetArgs) (*WalletKeySet, error) {
	if err := args.validate(); err != nil {
		return nil, err
	}

	cosignerKeys := make(map[uint32]string, len(args.CosignerPubKeys))
	for index, xpub := range args.CosignerPubKeys {
		cosignerKeys[index] = xpub
	}

	return &WalletKeySet{
		PrimaryPubKey:   args.PrimaryPubKey,
		PrimaryMnemonic: args.PrimaryMnemonic,
		BackupPubKey:    args.BackupPubKey,
		BackupMnemonic:  args.BackupMnemonic,
		CosignerPubKeys: cosignerKeys,
		KeyIndex:        args.KeyIndex,
		Checksum:        args.Checksum,
	}, nil
}

// ActiveCosignerPubKey returns the cosigner public key selected by the key
// set's active key index.
func (s *WalletKeySet) ActiveCosignerPubKey() string {
	return s.CosignerPubKeys[s.KeyIndex]
}
