package hdkeys

import (
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/tyler-smith/go-bip39"
	"github.com/vulpemventures/tide/pkg/wallet/mnemonic"
)

type SeedArgs struct {
	Mnemonic   []string
	Passphrase string
}

func (a SeedArgs) validate() error {
	if len(a.Mnemonic) <= 0 {
		return ErrMissingMnemonic
	}
	if err := mnemonic.Validate(a.Mnemonic); err != nil {
		return ErrInvalidMnemonic
	}
	return nil
}

// SeedFromMnemonic stretches the given mnemonic and optional passphrase into
// a 512-bit seed. The computation is a pure function of its inputs, two calls
// with identical args return byte-identical seeds.
func SeedFromMnemonic(args SeedArgs) ([]byte, error) {
	if err := args.validate(); err != nil {
		return nil, err
	}

	return bip39.NewSeed(strings.Join(args.Mnemonic, " "), args.Passphrase), nil
}

// MasterKeyFromSeed returns the BIP32 master extended private key of the
// given seed for the given network.
func MasterKeyFromSeed(
	seed []byte, net *chaincfg.Params,
) (*hdkeychain.ExtendedKey, error) {
	if len(seed) <= 0 {
		return nil, ErrMissingSeed
	}
	if net == nil {
		return nil, ErrMissingNetwork
	}

	masterKey, err := hdkeychain.NewMaster(seed, net)
	if err != nil {
		return nil, err
	}
	return masterKey, nil
}

// MasterKeyFromMnemonic combines the seed stretch and the master key
// generation in a single call.
func MasterKeyFromMnemonic(
	args SeedArgs, net *chaincfg.Params,
) (*hdkeychain.ExtendedKey, error) {
	seed, err := SeedFromMnemonic(args)
	if err != nil {
		return nil, err
	}
	return MasterKeyFromSeed(seed, net)
}

// ParseKey decodes a base58 serialized extended key and checks that it
// belongs to the given network.
func ParseKey(
	serialized string, net *chaincfg.Params,
) (*hdkeychain.ExtendedKey, error) {
	if len(serialized) <= 0 {
		return nil, ErrMissingKey
	}
	if net == nil {
		return nil, ErrMissingNetwork
	}

	key, err := hdkeychain.NewKeyFromString(serialized)
	if err != nil {
		return nil, ErrMalformedKey
	}
	if !key.IsForNet(net) {
		return nil, ErrKeyNetworkMismatch
	}
	return key, nil
}

// DeriveHardened derives the hardened child of the given extended private key
// at the given account index.
func DeriveHardened(
	key *hdkeychain.ExtendedKey, index uint32,
) (*hdkeychain.ExtendedKey, error) {
	if key == nil {
		return nil, ErrMissingKey
	}
	if index >= hdkeychain.HardenedKeyStart {
		return nil, ErrIndexOutOfRange
	}

	return key.Derive(hdkeychain.HardenedKeyStart + index)
}

// Neuter strips the private component of the given extended key. Neutering an
// already public key is a no-op.
func Neuter(key *hdkeychain.ExtendedKey) (*hdkeychain.ExtendedKey, error) {
	if key == nil {
		return nil, ErrMissingKey
	}
	return key.Neuter()
}

// ChecksumAddress returns the P2PKH address of the key's compressed public
// key for the given network. The bootstrap protocol uses it as the wallet
// ownership checksum: it is recomputed on every unlock and compared against
// the value stored at creation time.
func ChecksumAddress(
	key *hdkeychain.ExtendedKey, net *chaincfg.Params,
) (string, error) {
	if key == nil {
		return "", ErrMissingKey
	}
	if net == nil {
		return "", ErrMissingNetwork
	}

	pubKey, err := key.ECPubKey()
	if err != nil {
		return "", err
	}
	addr, err := btcutil.NewAddressPubKeyHash(
		btcutil.Hash160(pubKey.SerializeCompressed()), net,
	)
	if err != nil {
		return "", err
	}
	return addr.EncodeAddress(), nil
}
