package application_test

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vulpemventures/tide/internal/core/domain"
	"github.com/vulpemventures/tide/internal/core/ports"
)

// ports.Cosigner
type mockCosigner struct {
	mock.Mock
}

func (m *mockCosigner) GetWallet(
	ctx context.Context, identifier string,
) (*domain.WalletRecord, error) {
	args := m.Called(ctx, identifier)

	var res *domain.WalletRecord
	if a := args.Get(0); a != nil {
		res = a.(*domain.WalletRecord)
	}
	return res, args.Error(1)
}

func (m *mockCosigner) CreateWallet(
	ctx context.Context, params ports.CreateWalletParams,
) (*domain.WalletRecord, error) {
	args := m.Called(ctx, params)

	var res *domain.WalletRecord
	if a := args.Get(0); a != nil {
		res = a.(*domain.WalletRecord)
	}
	return res, args.Error(1)
}

func (m *mockCosigner) UpgradeWallet(
	ctx context.Context, identifier string, keyIndex uint32,
) (*domain.WalletRecord, error) {
	args := m.Called(ctx, identifier, keyIndex)

	var res *domain.WalletRecord
	if a := args.Get(0); a != nil {
		res = a.(*domain.WalletRecord)
	}
	return res, args.Error(1)
}
