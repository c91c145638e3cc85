package config

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"rolemenu-service/internal/utils/runtime"
)

const (
	portFlag             = "port"
	grpcPortFlag         = "grpc-port"
	developmentFlag      = "development"
	discordPublicKeyFlag = "discord-public-key"
	discordTokenFlag     = "discord-token"
	storeBackendFlag     = "store-backend"
	redisAddrFlag        = "redis-addr"
	mongoDBURIFlag       = "mongodb-uri"
	kafkaEnabledFlag     = "kafka-enabled"
	kafkaHostFlag        = "kafka-host"
	kafkaPortFlag        = "kafka-port"
)

const (
	StoreBackendRedis = "redis"
	StoreBackendMongo = "mongo"
)

type Config struct {
	Discord DiscordConfig
	Store   StoreConfig
	Kafka   KafkaConfig

	Development bool

	Port     int
	GRPCPort int
}

type DiscordConfig struct {
	PublicKey ed25519.PublicKey
	Token     string
}

// Validate reports whether the credentials needed to serve interactions are present.
func (c DiscordConfig) Validate() error {
	if len(c.PublicKey) != ed25519.PublicKeySize {
		return errors.New("discord public key is not set")
	}
	if c.Token == "" {
		return errors.New("discord token is not set")
	}
	return nil
}

type StoreConfig struct {
	Backend string
	Redis   RedisConfig
	MongoDB MongoDBConfig
}

type RedisConfig struct {
	Addr string
}

type MongoDBConfig struct {
	URI string
}

type KafkaConfig struct {
	Enabled bool
	Host    string
	Port    int
}

// LoadGlobalConfig registers the service flags, parses them and overlays environment variables.
// Extra flags registered on pflag.CommandLine before the call are parsed as well.
func LoadGlobalConfig() (*Config, error) {
	viper.SetDefault(portFlag, 8080)
	viper.SetDefault(grpcPortFlag, 10010)
	viper.SetDefault(developmentFlag, true)
	viper.SetDefault(discordPublicKeyFlag, "")
	viper.SetDefault(discordTokenFlag, "")
	viper.SetDefault(storeBackendFlag, StoreBackendRedis)
	viper.SetDefault(redisAddrFlag, "localhost:6379")
	viper.SetDefault(mongoDBURIFlag, "mongodb://localhost:27017")
	viper.SetDefault(kafkaEnabledFlag, false)
	viper.SetDefault(kafkaHostFlag, "localhost")
	viper.SetDefault(kafkaPortFlag, 9092)

	pflag.Int32(portFlag, viper.GetInt32(portFlag), "HTTP port for interactions and metrics")
	pflag.Int32(grpcPortFlag, viper.GetInt32(grpcPortFlag), "gRPC health port")
	pflag.Bool(developmentFlag, viper.GetBool(developmentFlag), "Development mode")
	pflag.String(discordPublicKeyFlag, viper.GetString(discordPublicKeyFlag), "Hex encoded Discord application public key")
	pflag.String(discordTokenFlag, viper.GetString(discordTokenFlag), "Discord bot token")
	pflag.String(storeBackendFlag, viper.GetString(storeBackendFlag), "Group store backend (redis or mongo)")
	pflag.String(redisAddrFlag, viper.GetString(redisAddrFlag), "Redis address")
	pflag.String(mongoDBURIFlag, viper.GetString(mongoDBURIFlag), "MongoDB URI")
	pflag.Bool(kafkaEnabledFlag, viper.GetBool(kafkaEnabledFlag), "Publish role changes to Kafka")
	pflag.String(kafkaHostFlag, viper.GetString(kafkaHostFlag), "Kafka host")
	pflag.Int32(kafkaPortFlag, viper.GetInt32(kafkaPortFlag), "Kafka port")
	pflag.Parse()

	runtime.Must(viper.BindPFlags(pflag.CommandLine))

	// Bind the viper flags to environment variables
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	for _, key := range []string{
		portFlag, grpcPortFlag, developmentFlag, discordPublicKeyFlag, discordTokenFlag, storeBackendFlag,
		redisAddrFlag, mongoDBURIFlag, kafkaEnabledFlag, kafkaHostFlag, kafkaPortFlag,
	} {
		runtime.Must(viper.BindEnv(key))
	}

	publicKey, err := parsePublicKey(viper.GetString(discordPublicKeyFlag))
	if err != nil {
		return nil, err
	}

	backend := viper.GetString(storeBackendFlag)
	if backend != StoreBackendRedis && backend != StoreBackendMongo {
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}

	return &Config{
		Discord: DiscordConfig{
			PublicKey: publicKey,
			Token:     viper.GetString(discordTokenFlag),
		},
		Store: StoreConfig{
			Backend: backend,
			Redis: RedisConfig{
				Addr: viper.GetString(redisAddrFlag),
			},
			MongoDB: MongoDBConfig{
				URI: viper.GetString(mongoDBURIFlag),
			},
		},
		Kafka: KafkaConfig{
			Enabled: viper.GetBool(kafkaEnabledFlag),
			Host:    viper.GetString(kafkaHostFlag),
			Port:    int(viper.GetInt32(kafkaPortFlag)),
		},
		Development: viper.GetBool(developmentFlag),
		Port:        int(viper.GetInt32(portFlag)),
		GRPCPort:    int(viper.GetInt32(grpcPortFlag)),
	}, nil
}

func parsePublicKey(s string) (ed25519.PublicKey, error) {
	if s == "" {
		return nil, nil
	}

	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid discord public key: %w", err)
	}
	if len(b) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("invalid discord public key: expected %d bytes, got %d", ed25519.PublicKeySize, len(b))
	}

	return b, nil
}
