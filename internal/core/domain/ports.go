package domain

import "context"

// Cosigner is the slice of the remote co-signing service surface a wallet
// handle needs for its own operations. The full client contract lives in the
// ports package.
type Cosigner interface {
	UpgradeWallet(
		ctx context.Context, identifier string, keyIndex uint32,
	) (*WalletRecord, error)
}
