package domain

import (
	"context"
	"errors"
	"time"

	"github.com/questdrop/backend/internal/common"
	"github.com/questdrop/backend/internal/entity"
	"github.com/questdrop/backend/internal/model"
	"github.com/questdrop/backend/internal/repository"
	"github.com/questdrop/backend/pkg/errorx"
	"github.com/questdrop/backend/pkg/pubsub"
	"github.com/questdrop/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type QuestDomain interface {
	Create(ctx context.Context, req *model.CreateQuestRequest) (*model.CreateQuestResponse, error)
	UpdateStatus(ctx context.Context, req *model.UpdateQuestStatusRequest) (*model.UpdateQuestStatusResponse, error)
	Get(ctx context.Context, req *model.GetQuestRequest) (*model.GetQuestResponse, error)
	GetList(ctx context.Context, req *model.GetListQuestRequest) (*model.GetListQuestResponse, error)
}

type questDomain struct {
	questRepo    repository.QuestRepository
	roleVerifier *common.GlobalRoleVerifier
	publisher    pubsub.Publisher
}

func NewQuestDomain(
	questRepo repository.QuestRepository,
	userRepo repository.UserRepository,
	publisher pubsub.Publisher,
) *questDomain {
	return &questDomain{
		questRepo:    questRepo,
		roleVerifier: common.NewGlobalRoleVerifier(userRepo),
		publisher:    publisher,
	}
}

func (d *questDomain) Create(
	ctx context.Context, req *model.CreateQuestRequest,
) (*model.CreateQuestResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied when creating quest: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty title")
	}

	if req.Requirements == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty requirements")
	}

	if req.RewardAmount <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Reward amount must be positive")
	}

	if req.MaxCompletions <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Max completions must be positive")
	}

	startTime := req.StartTime
	if startTime.IsZero() {
		startTime = time.Now()
	}

	if !req.EndTime.After(startTime) {
		return nil, errorx.New(errorx.BadRequest, "End time must be after start time")
	}

	quest := &entity.Quest{
		Title:          req.Title,
		Description:    req.Description,
		Requirements:   req.Requirements,
		RewardAmount:   req.RewardAmount,
		IsActive:       true,
		StartTime:      startTime,
		EndTime:        req.EndTime,
		MaxCompletions: req.MaxCompletions,
		CreatedBy:      xcontext.RequestUserID(ctx),
	}

	if err := d.questRepo.Create(ctx, quest); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create quest: %v", err)
		return nil, errorx.Unknown
	}

	common.EmitQuestEvent(ctx, d.publisher, common.QuestCreatedEvent, quest.ID,
		common.QuestCreatedData{
			Title:        quest.Title,
			RewardAmount: quest.RewardAmount,
			CreatedBy:    quest.CreatedBy,
		})

	return &model.CreateQuestResponse{ID: quest.ID}, nil
}

func (d *questDomain) UpdateStatus(
	ctx context.Context, req *model.UpdateQuestStatusRequest,
) (*model.UpdateQuestStatusResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied when updating quest status: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if _, err := d.questRepo.GetByID(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found quest")
		}

		xcontext.Logger(ctx).Errorf("Cannot get quest: %v", err)
		return nil, errorx.Unknown
	}

	// Deactivation only blocks new submissions. Pending submissions of a
	// deactivated quest can still be verified.
	if err := d.questRepo.SetActive(ctx, req.ID, req.IsActive); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update quest status: %v", err)
		return nil, errorx.Unknown
	}

	common.EmitQuestEvent(ctx, d.publisher, common.QuestStatusUpdatedEvent, req.ID,
		common.QuestStatusUpdatedData{IsActive: req.IsActive})

	return &model.UpdateQuestStatusResponse{}, nil
}

func (d *questDomain) Get(ctx context.Context, req *model.GetQuestRequest) (*model.GetQuestResponse, error) {
	quest, err := d.questRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found quest")
		}

		xcontext.Logger(ctx).Errorf("Cannot get quest: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetQuestResponse{Quest: convertQuest(quest)}, nil
}

func (d *questDomain) GetList(
	ctx context.Context, req *model.GetListQuestRequest,
) (*model.GetListQuestResponse, error) {
	if req.Limit == 0 {
		req.Limit = xcontext.Configs(ctx).ApiServer.DefaultLimit
	}

	if req.Limit > xcontext.Configs(ctx).ApiServer.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit")
	}

	quests, err := d.questRepo.GetList(ctx, &repository.QuestFilter{
		ActiveOnly: req.ActiveOnly,
		Offset:     req.Offset,
		Limit:      req.Limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get quest list: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Quest{}
	for i := range quests {
		result = append(result, convertQuest(&quests[i]))
	}

	return &model.GetListQuestResponse{Quests: result}, nil
}
