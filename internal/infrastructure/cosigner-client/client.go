package cosigner_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/vulpemventures/tide/internal/core/domain"
	"github.com/vulpemventures/tide/internal/core/ports"
)

// AuthMode selects how a request authenticates with the service.
type AuthMode int

const (
	// AuthSigned authenticates with an HMAC signature over the canonical
	// request form, see Sign.
	AuthSigned AuthMode = iota
	// AuthUnsigned sends the API key as a query parameter only, used for
	// read-only non-sensitive endpoints.
	AuthUnsigned
)

const defaultTimeout = 30 * time.Second

var builtinHeaders = http.Header{
	"Content-Type": []string{"application/json"},
	"Accept":       []string{"application/json"},
}

// Client is the authenticated REST client of the co-signing service. It
// implements ports.Cosigner. Default parameters and headers are snapshotted
// at construction time and never mutated afterwards: every request merges
// built-in defaults, client defaults and per-call values into a fresh copy.
type Client struct {
	baseURL        *url.URL
	apiKey         string
	apiSecret      string
	httpClient     *http.Client
	defaultParams  url.Values
	defaultHeaders http.Header
	now            func() time.Time
}

type ClientArgs struct {
	BaseURL        string
	APIKey         string
	APISecret      string
	Timeout        time.Duration
	DefaultParams  url.Values
	DefaultHeaders http.Header
}

func (a ClientArgs) validate() error {
	if len(a.BaseURL) <= 0 {
		return ErrMissingBaseURL
	}
	u, err := url.Parse(a.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ErrInvalidBaseURL
	}
	if len(a.APIKey) <= 0 {
		return ErrMissingAPIKey
	}
	if len(a.APISecret) <= 0 {
		return ErrMissingAPISecret
	}
	return nil
}

func NewClient(args ClientArgs) (*Client, error) {
	if err := args.validate(); err != nil {
		return nil, err
	}

	baseURL, _ := url.Parse(args.BaseURL)
	timeout := args.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL:        baseURL,
		apiKey:         args.APIKey,
		apiSecret:      args.APISecret,
		httpClient:     &http.Client{Timeout: timeout},
		defaultParams:  copyValues(args.DefaultParams),
		defaultHeaders: copyHeaders(args.DefaultHeaders),
		now:            time.Now,
	}, nil
}

// DefaultParams returns a copy of the client-level default parameters.
func (c *Client) DefaultParams() url.Values {
	return copyValues(c.defaultParams)
}

// Request sends a single authenticated call to the service and decodes the
// response into out when non-nil. It is the raw surface backing the typed
// methods, exposed for endpoints this package has no wrapper for.
func (c *Client) Request(
	ctx context.Context, method, apiPath string, params url.Values,
	body, out interface{}, mode AuthMode,
) error {
	return c.do(ctx, method, apiPath, params, body, out, mode)
}

func (c *Client) GetWallet(
	ctx context.Context, identifier string,
) (*domain.WalletRecord, error) {
	if len(identifier) <= 0 {
		return nil, domain.ErrIdentifierRequired
	}

	resp := walletResponse{}
	if err := c.do(
		ctx, http.MethodGet, "/wallet/"+url.PathEscape(identifier),
		nil, nil, &resp, AuthSigned,
	); err != nil {
		return nil, err
	}
	return resp.toRecord()
}

func (c *Client) CreateWallet(
	ctx context.Context, params ports.CreateWalletParams,
) (*domain.WalletRecord, error) {
	if len(params.Identifier) <= 0 {
		return nil, domain.ErrIdentifierRequired
	}

	body := createWalletRequest{
		Identifier: params.Identifier,
		PrimaryPublicKey: publicKeyEntry{
			Key:  params.PrimaryKey.Xpub,
			Path: params.PrimaryKey.Path,
		},
		BackupPublicKey: publicKeyEntry{
			Key:  params.BackupKey.Xpub,
			Path: params.BackupKey.Path,
		},
		PrimaryMnemonic: optionalMnemonic(params.PrimaryMnemonic),
		Checksum:        params.Checksum,
		KeyIndex:        params.KeyIndex,
	}

	resp := walletResponse{}
	if err := c.do(
		ctx, http.MethodPost, "/wallet", nil, body, &resp, AuthSigned,
	); err != nil {
		return nil, err
	}
	return resp.toRecord()
}

func (c *Client) UpgradeWallet(
	ctx context.Context, identifier string, keyIndex uint32,
) (*domain.WalletRecord, error) {
	if len(identifier) <= 0 {
		return nil, domain.ErrIdentifierRequired
	}

	resp := walletResponse{}
	if err := c.do(
		ctx, http.MethodPost,
		"/wallet/"+url.PathEscape(identifier)+"/upgrade",
		nil, upgradeWalletRequest{KeyIndex: keyIndex}, &resp, AuthSigned,
	); err != nil {
		return nil, err
	}
	return resp.toRecord()
}

// GetBlock looks up a block by hash. Read-only and non-sensitive, so it goes
// through the unsigned auth mode.
func (c *Client) GetBlock(
	ctx context.Context, hash string,
) (*BlockInfo, error) {
	resp := BlockInfo{}
	if err := c.do(
		ctx, http.MethodGet, "/block/"+url.PathEscape(hash),
		nil, nil, &resp, AuthUnsigned,
	); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListWebhooks(ctx context.Context) ([]Webhook, error) {
	resp := listWebhooksResponse{}
	if err := c.do(
		ctx, http.MethodGet, "/webhooks", nil, nil, &resp, AuthSigned,
	); err != nil {
		return nil, err
	}
	return resp.Webhooks, nil
}

func (c *Client) AddWebhook(
	ctx context.Context, webhookURL, webhookType string,
) (*Webhook, error) {
	resp := Webhook{}
	if err := c.do(
		ctx, http.MethodPost, "/webhooks", nil,
		addWebhookRequest{URL: webhookURL, Type: webhookType},
		&resp, AuthSigned,
	); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) RemoveWebhook(ctx context.Context, id string) error {
	return c.do(
		ctx, http.MethodDelete, "/webhooks/"+url.PathEscape(id),
		nil, nil, nil, AuthSigned,
	)
}

// do builds, authenticates and sends a single request, then decodes the
// response into out when non-nil. Per-call params override client defaults
// which override built-in defaults, all merging into fresh copies.
func (c *Client) do(
	ctx context.Context, method, apiPath string, params url.Values,
	body, out interface{}, mode AuthMode,
) error {
	merged := mergeValues(c.defaultParams, params)
	if mode == AuthUnsigned {
		merged.Set("apiKey", c.apiKey)
	}

	reqURL := *c.baseURL
	reqURL.Path = strings.TrimSuffix(c.baseURL.Path, "/") + apiPath
	reqURL.RawQuery = merged.Encode()

	var payload []byte
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = buf
	}

	req, err := http.NewRequestWithContext(
		ctx, method, reqURL.String(), bytes.NewReader(payload),
	)
	if err != nil {
		return err
	}
	req.Header = mergeHeaders(builtinHeaders, c.defaultHeaders)

	if mode == AuthSigned {
		timestamp := strconv.FormatInt(c.now().Unix(), 10)
		req.Header.Set(headerAPIKey, c.apiKey)
		req.Header.Set(headerTimestamp, timestamp)
		req.Header.Set(headerSignature, Sign(
			c.apiSecret, timestamp, method, req.URL.RequestURI(), payload,
		))
	}

	log.WithFields(log.Fields{
		"method": method,
		"path":   apiPath,
		"signed": mode == AuthSigned,
	}).Debug("cosigner: sending request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNetworkFailure, err)
	}

	if resp.StatusCode == http.StatusUnauthorized ||
		resp.StatusCode == http.StatusForbidden {
		serverErr := errorResponse{}
		json.Unmarshal(data, &serverErr)
		return fmt.Errorf("%w: %s", ErrAuthenticationFailed, serverErr.Error)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serverErr := errorResponse{}
		json.Unmarshal(data, &serverErr)
		return &ServerError{
			Status:  resp.StatusCode,
			Code:    serverErr.Code,
			Message: serverErr.Error,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: malformed response: %s", ErrNetworkFailure, err)
	}
	return nil
}

func copyValues(values url.Values) url.Values {
	out := url.Values{}
	for key, vals := range values {
		for _, val := range vals {
			out.Add(key, val)
		}
	}
	return out
}

func mergeValues(values ...url.Values) url.Values {
	out := url.Values{}
	for _, overrides := range values {
		for key, vals := range overrides {
			out.Del(key)
			for _, val := range vals {
				out.Add(key, val)
			}
		}
	}
	return out
}

func copyHeaders(headers http.Header) http.Header {
	out := http.Header{}
	for key, vals := range headers {
		for _, val := range vals {
			out.Add(key, val)
		}
	}
	return out
}

func mergeHeaders(headers ...http.Header) http.Header {
	out := http.Header{}
	for _, overrides := range headers {
		for key, vals := range overrides {
			out.Del(key)
			for _, val := range vals {
				out.Add(key, val)
			}
		}
	}
	return out
}
