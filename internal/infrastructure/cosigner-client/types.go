package cosigner_client

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/vulpemventures/tide/internal/core/domain"
)

type publicKeyEntry struct {
	Key  string `json:"key"`
	Path string `json:"path"`
}

// optionalMnemonic serializes to the JSON literal false when empty, the wire
// convention for "the caller chose not to store the words server-side".
type optionalMnemonic string

func (m optionalMnemonic) MarshalJSON() ([]byte, error) {
	if len(m) <= 0 {
		return []byte("false"), nil
	}
	return json.Marshal(string(m))
}

func (m *optionalMnemonic) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("false")) || bytes.Equal(data, []byte("null")) {
		*m = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*m = optionalMnemonic(s)
	return nil
}

type createWalletRequest struct {
	Identifier       string           `json:"identifier"`
	PrimaryPublicKey publicKeyEntry   `json:"primary_public_key"`
	BackupPublicKey  publicKeyEntry   `json:"backup_public_key"`
	PrimaryMnemonic  optionalMnemonic `json:"primary_mnemonic"`
	Checksum         string           `json:"checksum"`
	KeyIndex         uint32           `json:"key_index"`
}

type upgradeWalletRequest struct {
	KeyIndex uint32 `json:"key_index"`
}

type walletResponse struct {
	Identifier         string            `json:"identifier"`
	KeyIndex           uint32            `json:"key_index"`
	UpgradeKeyIndex    *uint32           `json:"upgrade_key_index,omitempty"`
	BackupPublicKey    string            `json:"backup_public_key"`
	CosignerPublicKeys map[string]string `json:"cosigner_public_keys"`
	PrimaryPublicKeys  map[string]string `json:"primary_public_keys,omitempty"`
	PrimaryMnemonic    optionalMnemonic  `json:"primary_mnemonic,omitempty"`
	Checksum           string            `json:"checksum"`
	Testnet            bool              `json:"testnet"`
}

func (r walletResponse) toRecord() (*domain.WalletRecord, error) {
	cosignerKeys, err := keysByIndex(r.CosignerPublicKeys)
	if err != nil {
		return nil, err
	}
	primaryKeys, err := keysByIndex(r.PrimaryPublicKeys)
	if err != nil {
		return nil, err
	}

	return &domain.WalletRecord{
		Identifier:      r.Identifier,
		KeyIndex:        r.KeyIndex,
		UpgradeKeyIndex: r.UpgradeKeyIndex,
		BackupPubKey:    r.BackupPublicKey,
		CosignerPubKeys: cosignerKeys,
		PrimaryPubKeys:  primaryKeys,
		PrimaryMnemonic: string(r.PrimaryMnemonic),
		Checksum:        r.Checksum,
		Testnet:         r.Testnet,
	}, nil
}

// keysByIndex converts a JSON object keyed by stringified key indexes into
// the map form used across the domain.
func keysByIndex(keys map[string]string) (map[uint32]string, error) {
	if keys == nil {
		return nil, nil
	}
	out := make(map[uint32]string, len(keys))
	for index, xpub := range keys {
		parsed, err := strconv.ParseUint(index, 10, 32)
		if err != nil {
			return nil, &ServerError{
				Message: "malformed key index in response: " + index,
			}
		}
		out[uint32(parsed)] = xpub
	}
	return out, nil
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// BlockInfo is the thin view of a block returned by the lookup endpoint.
type BlockInfo struct {
	Hash         string `json:"hash"`
	PreviousHash string `json:"previous_hash"`
	Height       uint32 `json:"height"`
	Timestamp    int64  `json:"timestamp"`
}

// Webhook is a notification subscription registered with the service.
type Webhook struct {
	ID   string `json:"id"`
	URL  string `json:"url"`
	Type string `json:"type"`
}

type addWebhookRequest struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

type listWebhooksResponse struct {
	Webhooks []Webhook `json:"webhooks"`
}
