package main

import (
	"net/http"

	"github.com/questdrop/backend/internal/middleware"
	"github.com/questdrop/backend/migration"
	"github.com/questdrop/backend/pkg/router"
	"github.com/questdrop/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.loadAuthenticator()
	s.loadRepos()
	s.loadClients()
	s.loadDomains()
	s.loadRouter()

	xcontext.Logger(s.ctx).Infof("Starting api server on %s", s.cfg.ApiServer.Address())

	server := &http.Server{
		Addr:    s.cfg.ApiServer.Address(),
		Handler: s.router.Handler(s.cfg.ApiServer),
	}

	if err := server.ListenAndServe(); err != nil {
		panic(err)
	}

	return nil
}

func (s *srv) migrate(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()

	return migration.Migrate(s.ctx)
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)
	s.router.AddCloser(middleware.Logger(s.cfg.Env))

	// Public endpoints.
	publicRouter := s.router.Branch()
	router.POST(publicRouter, "/loginWallet", s.authDomain.WalletLogin)
	router.POST(publicRouter, "/verifyWallet", s.authDomain.WalletVerify)
	router.POST(publicRouter, "/refresh", s.authDomain.Refresh)
	router.GET(publicRouter, "/getQuest", s.questDomain.Get)
	router.GET(publicRouter, "/getQuests", s.questDomain.GetList)
	router.GET(publicRouter, "/getSubmission", s.submissionDomain.Get)
	router.GET(publicRouter, "/getBadge", s.badgeDomain.Get)
	router.GET(publicRouter, "/getPoolBalance", s.stakingDomain.GetPoolBalance)
	router.GET(publicRouter, "/getPlatformStats", s.statisticDomain.GetPlatformStats)
	router.GET(publicRouter, "/getLeaderboard", s.statisticDomain.GetLeaderboard)

	// Endpoints that need an authenticated wallet.
	authRouter := s.router.Branch()
	authRouter.Before(middleware.NewAuthVerifier().Middleware())
	router.GET(authRouter, "/getMe", s.authDomain.GetMe)
	router.POST(authRouter, "/submitQuest", s.submissionDomain.Submit)
	router.GET(authRouter, "/getMySubmissions", s.submissionDomain.GetMy)
	router.POST(authRouter, "/stake", s.stakingDomain.Stake)
	router.POST(authRouter, "/unstake", s.stakingDomain.Unstake)
	router.GET(authRouter, "/getMyStake", s.stakingDomain.GetMyStake)
	router.GET(authRouter, "/getMyBadges", s.badgeDomain.GetMy)

	// Admin endpoints. Role checks happen inside the domains so the error
	// carries which capability was missing.
	router.POST(authRouter, "/createQuest", s.questDomain.Create)
	router.POST(authRouter, "/updateQuestStatus", s.questDomain.UpdateStatus)
	router.POST(authRouter, "/verifySubmission", s.submissionDomain.Verify)
	router.GET(authRouter, "/getSubmissions", s.submissionDomain.GetList)
	router.POST(authRouter, "/addAdmin", s.adminDomain.AddAdmin)
	router.POST(authRouter, "/removeAdmin", s.adminDomain.RemoveAdmin)
	router.POST(authRouter, "/pausePlatform", s.adminDomain.Pause)
	router.POST(authRouter, "/unpausePlatform", s.adminDomain.Unpause)
}
