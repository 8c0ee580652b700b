package domain

import (
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/vulpemventures/tide/pkg/wallet/hdkeys"
	"github.com/vulpemventures/tide/pkg/wallet/mnemonic"
)

// ResolveKeyArgs is the heterogeneous options bag accepted for a key role:
// a mnemonic plus passphrase, a serialized extended key, or an already parsed
// one. At most one kind of material may be provided per role.
type ResolveKeyArgs struct {
	Mnemonic      []string
	Passphrase    string
	SerializedKey string
	Key           *hdkeychain.ExtendedKey
	Network       *chaincfg.Params
}

func (a ResolveKeyArgs) hasMnemonic() bool {
	return len(a.Mnemonic) > 0
}

func (a ResolveKeyArgs) hasKey() bool {
	return len(a.SerializedKey) > 0 || a.Key != nil
}

func (a ResolveKeyArgs) validate() error {
	if a.Network == nil {
		return ErrMissingNetwork
	}
	if a.hasMnemonic() && a.hasKey() {
		return ErrConflictingKeyMaterial
	}
	return nil
}

func (a ResolveKeyArgs) parseKey() (*hdkeychain.ExtendedKey, error) {
	if a.Key != nil {
		if !a.Key.IsForNet(a.Network) {
			return nil, ErrMalformedKey
		}
		return a.Key, nil
	}
	key, err := hdkeys.ParseKey(a.SerializedKey, a.Network)
	if err != nil {
		return nil, ErrMalformedKey
	}
	return key, nil
}

// ResolvedKey pairs an extended key with the mnemonic it was derived from,
// when there is one, so that callers can retain the words for display or
// backup purposes.
type ResolvedKey struct {
	Mnemonic []string
	Key      *hdkeychain.ExtendedKey
}

// ResolvePrimaryKey turns the given options into the primary extended
// private key. Exactly one of mnemonic or key material must be provided, and
// a mnemonic always requires a passphrase.
func ResolvePrimaryKey(args ResolveKeyArgs) (*ResolvedKey, error) {
	if err := args.validate(); err != nil {
		return nil, err
	}

	if args.hasKey() {
		key, err := args.parseKey()
		if err != nil {
			return nil, err
		}
		if !key.IsPrivate() {
			return nil, ErrMalformedKey
		}
		return &ResolvedKey{Key: key}, nil
	}

	if !args.hasMnemonic() {
		return nil, ErrMissingKeyMaterial
	}
	if len(args.Passphrase) <= 0 {
		return nil, ErrMissingPassphrase
	}

	masterKey, err := hdkeys.MasterKeyFromMnemonic(hdkeys.SeedArgs{
		Mnemonic:   args.Mnemonic,
		Passphrase: args.Passphrase,
	}, args.Network)
	if err != nil {
		return nil, err
	}

	return &ResolvedKey{Mnemonic: args.Mnemonic, Key: masterKey}, nil
}

// ResolveBackupKey turns the given options into the backup extended public
// key. Missing material is not an error here: a brand new mnemonic is
// generated instead, since the backup role always has a safe auto-generated
// fallback. The private component is dropped before returning, an empty
// passphrase is valid for this role.
func ResolveBackupKey(args ResolveKeyArgs) (*ResolvedKey, error) {
	if err := args.validate(); err != nil {
		return nil, err
	}

	if args.hasKey() {
		key, err := args.parseKey()
		if err != nil {
			return nil, err
		}
		if key.IsPrivate() {
			return nil, ErrMalformedKey
		}
		return &ResolvedKey{Key: key}, nil
	}

	words := args.Mnemonic
	if len(words) <= 0 {
		var err error
		words, err = mnemonic.NewMnemonic(mnemonic.NewMnemonicArgs{})
		if err != nil {
			return nil, err
		}
	}

	masterKey, err := hdkeys.MasterKeyFromMnemonic(hdkeys.SeedArgs{
		Mnemonic:   words,
		Passphrase: args.Passphrase,
	}, args.Network)
	if err != nil {
		return nil, err
	}
	pubKey, err := hdkeys.Neuter(masterKey)
	if err != nil {
		return nil, err
	}

	return &ResolvedKey{Mnemonic: words, Key: pubKey}, nil
}
