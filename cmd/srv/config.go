package main

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/questdrop/backend/config"
)

func loadConfigs() config.Configs {
	return config.Configs{
		Env: getEnv("ENV", "local"),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			Database: getEnv("MYSQL_DATABASE", "questdrop"),
			User:     getEnv("MYSQL_USER", "questdrop"),
			Password: getEnv("MYSQL_PASSWORD", "questdrop"),
		},
		ApiServer: config.ServerConfigs{
			Host:         getEnv("API_HOST", "localhost"),
			Port:         getEnv("API_PORT", "8080"),
			Cert:         getEnv("API_CERT", ""),
			Key:          getEnv("API_KEY", ""),
			MaxLimit:     getIntEnv("API_MAX_LIMIT", 50),
			DefaultLimit: getIntEnv("API_DEFAULT_LIMIT", 10),
			AllowCORS:    strings.Split(getEnv("API_ALLOW_CORS", "http://localhost:3000"), ","),
		},
		Auth: config.AuthConfigs{
			TokenSecret: getEnv("TOKEN_SECRET", "token-secret"),
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: getDurationEnv("ACCESS_TOKEN_DURATION", time.Hour),
			},
			RefreshToken: config.TokenConfigs{
				Name:       "refresh_token",
				Expiration: getDurationEnv("REFRESH_TOKEN_DURATION", 30*24*time.Hour),
			},
			WalletLoginExpiration: getDurationEnv("WALLET_LOGIN_DURATION", 5*time.Minute),
		},
		Quest: config.QuestConfigs{
			MaxProofLength: getIntEnv("QUEST_MAX_PROOF_LENGTH", 512),
		},
		Platform: config.PlatformConfigs{
			OwnerWalletAddress: getEnv("OWNER_WALLET_ADDRESS", ""),
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDR", "localhost:6379"),
		},
		Kafka: config.KafkaConfigs{
			Addr: getEnv("KAFKA_ADDR", "localhost:9092"),
		},
		Eth: config.EthConfigs{
			Chain:        getEnv("ETH_CHAIN", "sepolia"),
			RPCEndpoint:  getEnv("ETH_RPC_ENDPOINT", "http://localhost:8545"),
			PrivateKey:   getEnv("ETH_PRIVATE_KEY", ""),
			TokenAddress: getEnv("ETH_TOKEN_ADDRESS", ""),
			BadgeAddress: getEnv("ETH_BADGE_ADDRESS", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func getIntEnv(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		panic(err)
	}

	return n
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		panic(err)
	}

	return d
}
