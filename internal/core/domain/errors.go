package domain

import "fmt"

var (
	ErrIdentifierRequired = fmt.Errorf("wallet identifier is required")
	ErrMissingNetwork     = fmt.Errorf("missing network params")

	ErrConflictingKeyMaterial = fmt.Errorf(
		"conflicting key material, provide either a mnemonic or a key, not both",
	)
	ErrMissingKeyMaterial = fmt.Errorf("missing key material")
	ErrMissingPassphrase  = fmt.Errorf("missing passphrase")
	ErrMalformedKey       = fmt.Errorf("malformed key")

	ErrInvalidChecksum = fmt.Errorf(
		"checksum mismatch, wrong passphrase or corrupted key",
	)
	ErrWalletLocked   = fmt.Errorf("wallet is locked")
	ErrWalletReadOnly = fmt.Errorf("wallet is read-only")

	ErrMissingChecksum     = fmt.Errorf("missing checksum")
	ErrMissingBackupKey    = fmt.Errorf("missing backup public key")
	ErrMissingCosignerKeys = fmt.Errorf("missing cosigner public key(s)")
	ErrCosignerKeyNotFound = fmt.Errorf("no cosigner public key for the given key index")
)
