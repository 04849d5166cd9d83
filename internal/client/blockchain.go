package client

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/questdrop/backend/config"
	"github.com/questdrop/backend/pkg/blockchain/eth"
	"github.com/questdrop/backend/pkg/xcontext"
)

const erc20ABI = `[
	{"constant":false,"inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"}],"name":"transfer","outputs":[{"name":"","type":"bool"}],"type":"function"}
]`

const badgeABI = `[
	{"inputs":[{"name":"to","type":"address"},{"name":"tokenId","type":"uint256"},{"name":"questId","type":"uint256"},{"name":"proofUrl","type":"string"}],"name":"mintBadge","outputs":[],"type":"function"}
]`

// BlockchainCaller settles rewards and badges on chain. Implementations must
// be safe for concurrent use.
type BlockchainCaller interface {
	// TransferToken sends amount of the reward token to recipient and
	// returns the transaction hash.
	TransferToken(ctx context.Context, recipient string, amount int64) (string, error)

	// MintBadge mints a completion badge for recipient and returns the
	// transaction hash.
	MintBadge(ctx context.Context, recipient string, tokenID, questID int64, proofURL string) (string, error)
}

type blockchainCaller struct {
	cfg      config.EthConfigs
	client   eth.EthClient
	signer   *eth.Signer
	erc20ABI abi.ABI
	badgeABI abi.ABI
}

func NewBlockchainCaller(client eth.EthClient, cfg config.EthConfigs) (BlockchainCaller, error) {
	parsedERC20, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		return nil, fmt.Errorf("parse erc20 abi: %w", err)
	}

	parsedBadge, err := abi.JSON(strings.NewReader(badgeABI))
	if err != nil {
		return nil, fmt.Errorf("parse badge abi: %w", err)
	}

	return &blockchainCaller{
		cfg:      cfg,
		client:   client,
		signer:   eth.NewSigner(client, cfg),
		erc20ABI: parsedERC20,
		badgeABI: parsedBadge,
	}, nil
}

func (c *blockchainCaller) TransferToken(ctx context.Context, recipient string, amount int64) (string, error) {
	if !common.IsHexAddress(recipient) {
		return "", fmt.Errorf("invalid recipient address %s", recipient)
	}

	data, err := c.erc20ABI.Pack("transfer", common.HexToAddress(recipient), big.NewInt(amount))
	if err != nil {
		return "", fmt.Errorf("pack transfer: %w", err)
	}

	tx, err := c.signer.CreateTransaction(ctx, common.HexToAddress(c.cfg.TokenAddress), data)
	if err != nil {
		return "", err
	}

	if err := c.client.SendTransaction(ctx, tx); err != nil {
		return "", err
	}

	xcontext.Logger(ctx).Infof("Sent reward transfer %s to %s", tx.Hash().Hex(), recipient)
	return tx.Hash().Hex(), nil
}

func (c *blockchainCaller) MintBadge(
	ctx context.Context, recipient string, tokenID, questID int64, proofURL string,
) (string, error) {
	if !common.IsHexAddress(recipient) {
		return "", fmt.Errorf("invalid recipient address %s", recipient)
	}

	data, err := c.badgeABI.Pack("mintBadge",
		common.HexToAddress(recipient), big.NewInt(tokenID), big.NewInt(questID), proofURL)
	if err != nil {
		return "", fmt.Errorf("pack mintBadge: %w", err)
	}

	tx, err := c.signer.CreateTransaction(ctx, common.HexToAddress(c.cfg.BadgeAddress), data)
	if err != nil {
		return "", err
	}

	if err := c.client.SendTransaction(ctx, tx); err != nil {
		return "", err
	}

	xcontext.Logger(ctx).Infof("Sent badge mint %s to %s", tx.Hash().Hex(), recipient)
	return tx.Hash().Hex(), nil
}
