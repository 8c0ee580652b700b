package mnemonic

import (
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

var (
	ErrInvalidEntropySize = fmt.Errorf("entropy size must be 128 or 256")
	ErrInvalidMnemonic    = fmt.Errorf("invalid mnemonic")
)

type NewMnemonicArgs struct {
	EntropySize uint32
}

func (a NewMnemonicArgs) validate() error {
	if a.EntropySize > 0 {
		if a.EntropySize != 128 && a.EntropySize != 256 {
			return ErrInvalidEntropySize
		}
	}
	return nil
}

// NewMnemonic returns a new mnemonic as a list of words:
//   - EntropySize: 256 -> 24-words mnemonic.
//   - EntropySize: 128 -> 12-words mnemonic.
//
// If unset, the entropy size defaults to 256 so that generated mnemonics
// always carry the maximum entropy the wordlist encoding supports.
func NewMnemonic(args NewMnemonicArgs) ([]string, error) {
	if err := args.validate(); err != nil {
		return nil, err
	}
	if args.EntropySize == 0 {
		args.EntropySize = 256
	}

	entropy, err := bip39.NewEntropy(int(args.EntropySize))
	if err != nil {
		return nil, err
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, err
	}
	return strings.Split(mnemonic, " "), nil
}

// ToString joins a mnemonic word list into its space-separated form.
func ToString(mnemonic []string) string {
	return strings.Join(mnemonic, " ")
}

// FromString splits a space-separated mnemonic into its word list form.
func FromString(mnemonic string) []string {
	if len(mnemonic) <= 0 {
		return nil
	}
	return strings.Fields(mnemonic)
}

// Validate checks that the given word list belongs to the wordlist and that
// its embedded checksum is correct.
func Validate(mnemonic []string) error {
	if len(mnemonic) <= 0 {
		return ErrInvalidMnemonic
	}
	if !bip39.IsMnemonicValid(strings.Join(mnemonic, " ")) {
		return ErrInvalidMnemonic
	}
	return nil
}
