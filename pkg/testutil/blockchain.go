package testutil

import "context"

type MockBlockchainCaller struct {
	TransferTokenFunc func(ctx context.Context, recipient string, amount int64) (string, error)
	MintBadgeFunc     func(ctx context.Context, recipient string, tokenID, questID int64, proofURL string) (string, error)
}

func (c *MockBlockchainCaller) TransferToken(
	ctx context.Context, recipient string, amount int64,
) (string, error) {
	if c.TransferTokenFunc != nil {
		return c.TransferTokenFunc(ctx, recipient, amount)
	}

	return "0xtransfer", nil
}

func (c *MockBlockchainCaller) MintBadge(
	ctx context.Context, recipient string, tokenID, questID int64, proofURL string,
) (string, error) {
	if c.MintBadgeFunc != nil {
		return c.MintBadgeFunc(ctx, recipient, tokenID, questID, proofURL)
	}

	return "0xmint", nil
}
