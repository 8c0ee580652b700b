package hdkeys

import "fmt"

var (
	ErrMissingMnemonic = fmt.Errorf("missing mnemonic")
	ErrMissingSeed     = fmt.Errorf("missing seed")
	ErrMissingNetwork  = fmt.Errorf("missing network params")
	ErrMissingKey      = fmt.Errorf("missing extended key")

	ErrInvalidMnemonic    = fmt.Errorf("mnemonic is invalid")
	ErrMalformedKey       = fmt.Errorf("malformed extended key")
	ErrKeyNetworkMismatch = fmt.Errorf("extended key does not belong to the given network")
	ErrIndexOutOfRange    = fmt.Errorf("key index must be lower than the hardened key start")

	ErrDerivationInterrupted = fmt.Errorf("seed derivation interrupted")
)
