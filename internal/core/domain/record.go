package domain

// WalletRecord is the server-side view of a wallet as returned by the
// co-signing service: public key material only, plus the stored checksum and
// the advisory upgrade key index.
type WalletRecord struct {
	Identifier      string
	KeyIndex        uint32
	UpgradeKeyIndex *uint32
	BackupPubKey    string
	CosignerPubKeys map[uint32]string
	PrimaryPubKeys  map[uint32]string
	PrimaryMnemonic string
	Checksum        string
	Testnet         bool
}
