package domain

import (
	"github.com/questdrop/backend/internal/entity"
	"github.com/questdrop/backend/internal/model"
	"github.com/questdrop/backend/pkg/enum"
)

func convertUser(user *entity.User) model.User {
	return model.User{
		ID:            user.ID,
		WalletAddress: user.WalletAddress.String,
		Name:          user.Name,
		Role:          enum.ToString(user.Role),
	}
}

func convertQuest(quest *entity.Quest) model.Quest {
	return model.Quest{
		ID:                 quest.ID,
		Title:              quest.Title,
		Description:        quest.Description,
		Requirements:       quest.Requirements,
		RewardAmount:       quest.RewardAmount,
		IsActive:           quest.IsActive,
		StartTime:          quest.StartTime,
		EndTime:            quest.EndTime,
		MaxCompletions:     quest.MaxCompletions,
		CurrentCompletions: quest.CurrentCompletions,
		CreatedBy:          quest.CreatedBy,
	}
}

func convertSubmission(submission *entity.QuestSubmission) model.Submission {
	result := model.Submission{
		ID:              submission.ID,
		QuestID:         submission.QuestID,
		UserID:          submission.UserID,
		ProofURL:        submission.ProofURL,
		Status:          enum.ToString(submission.Status),
		SubmittedAt:     submission.CreatedAt,
		NftTokenID:      submission.NftTokenID,
		RejectionReason: submission.RejectionReason,
	}

	if submission.VerifiedAt.Valid {
		verifiedAt := submission.VerifiedAt.Time
		result.VerifiedAt = &verifiedAt
	}

	if submission.VerifierID.Valid {
		result.VerifierID = submission.VerifierID.String
	}

	return result
}

func convertStake(stake *entity.Stake) model.Stake {
	return model.Stake{
		ID:       stake.ID,
		Amount:   stake.Amount,
		StakedAt: stake.StakedAt,
		IsActive: stake.IsActive,
	}
}

func convertBadge(badge *entity.QuestBadge) model.Badge {
	return model.Badge{
		TokenID:      badge.TokenID,
		QuestID:      badge.QuestID,
		UserID:       badge.UserID,
		ProofURL:     badge.ProofURL,
		QuestTitle:   badge.QuestTitle,
		RewardAmount: badge.RewardAmount,
		IsValid:      badge.IsValid,
		MintedAt:     badge.MintedAt,
		TxHash:       badge.TxHash,
	}
}
