package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/ats-questionnaire/internal/logger"
	"github.com/spigell/ats-questionnaire/internal/manatal"
	"github.com/spigell/ats-questionnaire/internal/secrets"
	"github.com/spigell/ats-questionnaire/internal/storage"
)

const (
	app = "ats-questionnaire"

	tokenEnv = "MANATAL_API_TOKEN"
)

type Config struct {
	Manatal *ManatalConfig  `mapstructure:"manatal"`
	Server  *ServerConfig   `mapstructure:"server"`
	Storage *storage.Config `mapstructure:"storage"`
}

type ManatalConfig struct {
	APIURL    string        `mapstructure:"api-url"`
	Token     string        `mapstructure:"token"`
	TokenFile string        `mapstructure:"token-file"`
	UserAgent string        `mapstructure:"user-agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type ServerConfig struct {
	Listen string `mapstructure:"listen"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "ats-questionnaire scores personality questionnaires and stores the results in Manatal",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	viper.SetDefault("manatal.api-url", "https://api.manatal.com/open/v3")
	viper.SetDefault("manatal.timeout", "30s")
	viper.SetDefault("server.listen", ":8080")
	viper.SetDefault("storage.backend", storage.BackendFile)
	viper.SetDefault("storage.file.dir", ".")
	viper.SetDefault("storage.redis.key-prefix", "responses:")

	envs := map[string]string{
		"manatal.token":         tokenEnv,
		"manatal.token-file":    "MANATAL_TOKEN_FILE",
		"manatal.api-url":       "MANATAL_API_URL",
		"server.listen":         "ATS_LISTEN",
		"storage.redis.address": "REDIS_ADDR",
	}
	for key, env := range envs {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is ats-questionnaire.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// .env is optional, real environment variables win over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env file: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// Everything has a default or an env binding, so only a broken config file is fatal.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		return nil, errors.New("config is empty")
	}

	if config.Manatal == nil {
		config.Manatal = &ManatalConfig{}
	}

	if config.Server == nil {
		config.Server = &ServerConfig{}
	}

	if config.Storage == nil {
		config.Storage = &storage.Config{}
	}

	return config, nil
}

// newLogger builds the process logger from the persistent flags.
func newLogger() *zap.Logger {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	return logger
}

func resolveToken(config *ManatalConfig) (string, error) {
	if config == nil {
		return "", errors.New("manatal config is required")
	}

	return secrets.Load(secrets.Source{
		Name:  "manatal api token",
		Value: config.Token,
		File:  config.TokenFile,
		Env:   tokenEnv,
	})
}

func newManatalClient(config *ManatalConfig, logger *zap.Logger) (*manatal.Client, error) {
	token, err := resolveToken(config)
	if err != nil {
		return nil, fmt.Errorf("%w (set manatal.token, manatal.token-file or MANATAL_TOKEN_FILE)", err)
	}

	client := manatal.New(logger, token)

	if url := strings.TrimSuffix(strings.TrimSpace(config.APIURL), "/"); url != "" {
		client.APIURL = url
	}

	if config.UserAgent != "" {
		client.UserAgent = config.UserAgent
	}

	if config.Timeout > 0 {
		client.HTTPClient.Timeout = config.Timeout
	}

	return client, nil
}
