package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	Database  DatabaseConfigs
	ApiServer ServerConfigs
	Auth      AuthConfigs
	Quest     QuestConfigs
	Platform  PlatformConfigs
	Redis     RedisConfigs
	Kafka     KafkaConfigs
	Eth       EthConfigs
}

type PlatformConfigs struct {
	// OwnerWalletAddress is granted the super admin role during migration.
	OwnerWalletAddress string
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string
	Port string
	Cert string
	Key  string

	MaxLimit     int
	DefaultLimit int
	AllowCORS    []string
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type TokenConfigs struct {
	Name       string
	Expiration time.Duration
}

type AuthConfigs struct {
	TokenSecret string

	AccessToken  TokenConfigs
	RefreshToken TokenConfigs

	// WalletLoginExpiration bounds the time between requesting a login nonce
	// and submitting the signed answer.
	WalletLoginExpiration time.Duration
}

type QuestConfigs struct {
	MaxProofLength int
}

type RedisConfigs struct {
	Addr string
}

type KafkaConfigs struct {
	Addr string
}

type EthConfigs struct {
	Chain        string
	RPCEndpoint  string
	PrivateKey   string
	TokenAddress string
	BadgeAddress string
}
