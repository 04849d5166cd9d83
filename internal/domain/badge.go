package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/questdrop/backend/internal/client"
	"github.com/questdrop/backend/internal/entity"
	"github.com/questdrop/backend/internal/model"
	"github.com/questdrop/backend/internal/repository"
	"github.com/questdrop/backend/pkg/errorx"
	"github.com/questdrop/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type BadgeDomain interface {
	Get(ctx context.Context, req *model.GetBadgeRequest) (*model.GetBadgeResponse, error)
	GetMy(ctx context.Context, req *model.GetMyBadgesRequest) (*model.GetMyBadgesResponse, error)
}

type badgeDomain struct {
	badgeRepo        repository.BadgeRepository
	userRepo         repository.UserRepository
	blockchainCaller client.BlockchainCaller
}

func NewBadgeDomain(
	badgeRepo repository.BadgeRepository,
	userRepo repository.UserRepository,
	blockchainCaller client.BlockchainCaller,
) *badgeDomain {
	return &badgeDomain{
		badgeRepo:        badgeRepo,
		userRepo:         userRepo,
		blockchainCaller: blockchainCaller,
	}
}

func (d *badgeDomain) Get(ctx context.Context, req *model.GetBadgeRequest) (*model.GetBadgeResponse, error) {
	badge, err := d.badgeRepo.GetByTokenID(ctx, req.TokenID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found badge")
		}

		xcontext.Logger(ctx).Errorf("Cannot get badge: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetBadgeResponse{Badge: convertBadge(badge)}, nil
}

func (d *badgeDomain) GetMy(ctx context.Context, req *model.GetMyBadgesRequest) (*model.GetMyBadgesResponse, error) {
	badges, err := d.badgeRepo.GetListByUserID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get badges: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Badge{}
	for i := range badges {
		result = append(result, convertBadge(&badges[i]))
	}

	return &model.GetMyBadgesResponse{Badges: result}, nil
}

// MintQuestBadge implements BadgeMinter. The badge record snapshots the quest
// title and reward so later quest edits never rewrite history.
func (d *badgeDomain) MintQuestBadge(
	ctx context.Context, submission *entity.QuestSubmission, quest *entity.Quest,
) (int64, string, error) {
	user, err := d.userRepo.GetByID(ctx, submission.UserID)
	if err != nil {
		return 0, "", fmt.Errorf("get badge recipient: %w", err)
	}

	if !user.WalletAddress.Valid {
		return 0, "", fmt.Errorf("user %s has no wallet address", user.ID)
	}

	tokenID := xcontext.SnowFlake(ctx).Generate().Int64()
	txHash, err := d.blockchainCaller.MintBadge(
		ctx, user.WalletAddress.String, tokenID, quest.ID, submission.ProofURL)
	if err != nil {
		return 0, "", fmt.Errorf("mint badge: %w", err)
	}

	err = d.badgeRepo.Create(ctx, &entity.QuestBadge{
		TokenID:      tokenID,
		QuestID:      quest.ID,
		UserID:       submission.UserID,
		ProofURL:     submission.ProofURL,
		QuestTitle:   quest.Title,
		RewardAmount: quest.RewardAmount,
		IsValid:      true,
		MintedAt:     time.Now(),
		TxHash:       txHash,
	})
	if err != nil {
		return 0, "", fmt.Errorf("record badge: %w", err)
	}

	return tokenID, txHash, nil
}
