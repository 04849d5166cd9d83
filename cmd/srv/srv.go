package main

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/questdrop/backend/config"
	"github.com/questdrop/backend/internal/client"
	"github.com/questdrop/backend/internal/common"
	"github.com/questdrop/backend/internal/domain"
	"github.com/questdrop/backend/internal/repository"
	"github.com/questdrop/backend/pkg/authenticator"
	"github.com/questdrop/backend/pkg/blockchain/eth"
	"github.com/questdrop/backend/pkg/kafka"
	"github.com/questdrop/backend/pkg/logger"
	"github.com/questdrop/backend/pkg/pubsub"
	"github.com/questdrop/backend/pkg/router"
	"github.com/questdrop/backend/pkg/xcontext"
	"github.com/questdrop/backend/pkg/xredis"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	ctx context.Context
	cfg config.Configs

	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	questRepo        repository.QuestRepository
	submissionRepo   repository.SubmissionRepository
	completionRepo   repository.CompletionRepository
	stakeRepo        repository.StakeRepository
	poolRepo         repository.PoolRepository
	payoutRepo       repository.PayoutRepository
	badgeRepo        repository.BadgeRepository

	authDomain       domain.AuthDomain
	questDomain      domain.QuestDomain
	submissionDomain domain.SubmissionDomain
	stakingDomain    domain.StakingDomain
	badgeDomain      domain.BadgeDomain
	adminDomain      domain.AdminDomain
	statisticDomain  domain.StatisticDomain

	publisher        pubsub.Publisher
	redisClient      xredis.Client
	blockchainCaller client.BlockchainCaller
	pauser           *common.Pauser

	router *router.Router
}

func (s *srv) loadConfig() {
	s.cfg = loadConfigs()
	s.ctx = xcontext.WithConfigs(context.Background(), s.cfg)
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.cfg.Env == "local" {
		level = logger.DEBUG
	}

	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(level))
}

func (s *srv) loadDatabase() {
	db, err := gorm.Open(mysql.Open(s.cfg.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithDB(s.ctx, db)
}

func (s *srv) loadAuthenticator() {
	s.ctx = xcontext.WithTokenEngine(s.ctx, authenticator.NewTokenEngine(s.cfg.Auth.TokenSecret))

	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithSnowFlake(s.ctx, node)
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.refreshTokenRepo = repository.NewRefreshTokenRepository()
	s.questRepo = repository.NewQuestRepository()
	s.submissionRepo = repository.NewSubmissionRepository()
	s.completionRepo = repository.NewCompletionRepository()
	s.stakeRepo = repository.NewStakeRepository()
	s.poolRepo = repository.NewPoolRepository()
	s.payoutRepo = repository.NewPayoutRepository()
	s.badgeRepo = repository.NewBadgeRepository()
}

func (s *srv) loadClients() {
	s.publisher = kafka.NewPublisher("questdrop-api", []string{s.cfg.Kafka.Addr})

	redisClient, err := xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}
	s.redisClient = redisClient
	s.pauser = common.NewPauser(s.redisClient)

	ethClient, err := eth.NewEthClient(s.cfg.Eth.RPCEndpoint)
	if err != nil {
		panic(err)
	}

	s.blockchainCaller, err = client.NewBlockchainCaller(ethClient, s.cfg.Eth)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadDomains() {
	stakingDomain := domain.NewStakingDomain(
		s.stakeRepo, s.poolRepo, s.payoutRepo, s.userRepo, s.blockchainCaller)
	badgeDomain := domain.NewBadgeDomain(s.badgeRepo, s.userRepo, s.blockchainCaller)

	s.authDomain = domain.NewAuthDomain(s.userRepo, s.refreshTokenRepo)
	s.questDomain = domain.NewQuestDomain(s.questRepo, s.userRepo, s.publisher)
	s.submissionDomain = domain.NewSubmissionDomain(
		s.questRepo, s.submissionRepo, s.completionRepo, s.userRepo,
		s.pauser, stakingDomain, badgeDomain, s.publisher, s.redisClient)
	s.stakingDomain = stakingDomain
	s.badgeDomain = badgeDomain
	s.adminDomain = domain.NewAdminDomain(s.userRepo, s.pauser)
	s.statisticDomain = domain.NewStatisticDomain(
		s.questRepo, s.submissionRepo, s.stakeRepo, s.poolRepo, s.payoutRepo,
		s.userRepo, s.redisClient)
}
