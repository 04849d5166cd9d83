package eth

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/questdrop/backend/config"
)

// Gas limit for contract calls dispatched by the settlement path. Token
// transfers and badge mints stay well under this bound.
const contractCallGasLimit = uint64(200_000)

type Signer struct {
	client EthClient
	cfg    config.EthConfigs
}

func NewSigner(client EthClient, cfg config.EthConfigs) *Signer {
	return &Signer{client: client, cfg: cfg}
}

// CreateTransaction builds and signs a contract call to the given address
// with the configured settlement key.
func (s *Signer) CreateTransaction(ctx context.Context, to common.Address, data []byte) (*ethtypes.Transaction, error) {
	privateKey, err := crypto.HexToECDSA(s.cfg.PrivateKey)
	if err != nil {
		return nil, err
	}

	from := crypto.PubkeyToAddress(privateKey.PublicKey)
	nonce, err := s.client.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, err
	}

	gasPrice, err := s.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, err
	}

	chainID, err := s.client.ChainID(ctx)
	if err != nil {
		return nil, err
	}

	tx := ethtypes.NewTransaction(nonce, to, big.NewInt(0), contractCallGasLimit, gasPrice, data)
	return ethtypes.SignTx(tx, ethtypes.NewLondonSigner(chainID), privateKey)
}
