package eth

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

// A wrapper around ethclient.Client so callers can be mocked in tests.
type EthClient interface {
	ChainID(ctx context.Context) (*big.Int, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SendTransaction(ctx context.Context, tx *ethtypes.Transaction) error
	BalanceAt(ctx context.Context, account common.Address, block *big.Int) (*big.Int, error)
}

type defaultEthClient struct {
	*ethclient.Client
}

func NewEthClient(rpcEndpoint string) (EthClient, error) {
	client, err := ethclient.Dial(rpcEndpoint)
	if err != nil {
		return nil, err
	}

	return &defaultEthClient{Client: client}, nil
}
