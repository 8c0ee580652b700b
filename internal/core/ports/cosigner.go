package ports

import (
	"context"

	"github.com/vulpemventures/tide/internal/core/domain"
)

// PublicKeyEntry couples an extended public key with the derivation path the
// service should expect it at.
type PublicKeyEntry struct {
	Xpub string
	Path string
}

// CreateWalletParams is the material exchanged with the service when
// registering a brand new wallet. PrimaryMnemonic is empty when the caller
// chose not to store the words server-side.
type CreateWalletParams struct {
	Identifier      string
	PrimaryKey      PublicKeyEntry
	BackupKey       PublicKeyEntry
	PrimaryMnemonic string
	Checksum        string
	KeyIndex        uint32
}

// Cosigner is the remote co-signing service. Implementations perform a
// single in-flight call per invocation and never retry, retry policy belongs
// to the transport.
type Cosigner interface {
	GetWallet(
		ctx context.Context, identifier string,
	) (*domain.WalletRecord, error)
	CreateWallet(
		ctx context.Context, params CreateWalletParams,
	) (*domain.WalletRecord, error)
	UpgradeWallet(
		ctx context.Context, identifier string, keyIndex uint32,
	) (*domain.WalletRecord, error)
}
