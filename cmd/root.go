package cmd

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/resume-parser/internal/ai/gemini"
	"github.com/spigell/resume-parser/internal/server"
)

const (
	app = "resume-parser"
)

type Config struct {
	SkillsFile  string             `mapstructure:"skills-file"`
	CustomRegex string             `mapstructure:"custom-regex"`
	BaseSkills  bool               `mapstructure:"base-skills"`
	NameWindow  int                `mapstructure:"name-window" validate:"gte=0"`
	Workers     int                `mapstructure:"workers" validate:"gte=0"`
	DomainModel *DomainModelConfig `mapstructure:"domain-model"`
	Server      *ServerConfig      `mapstructure:"server"`
}

type DomainModelConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider" validate:"omitempty,oneof=gemini"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxLogLength int    `mapstructure:"max-log-length" validate:"gte=0"`
}

type ServerConfig struct {
	Address        string `mapstructure:"address" validate:"required"`
	MaxUploadBytes int64  `mapstructure:"max-upload-bytes" validate:"gt=0"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-parser extracts structured fields from pdf, docx and text resumes",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	setDefaults()

	if err := viper.BindEnv("domain-model.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "a config file (default is resume-parser.yaml in current directory)")
	flags.BoolP("debug", "d", false, "verbose/debug output")
	flags.BoolP("json", "j", false, "json format for logging")
	flags.String("skills-file", "", "csv file with skills replacing the bundled list")
	flags.String("custom-regex", "", "regular expression replacing the default mobile number pattern")
	flags.Bool("base-skills", true, "match skills against the skills list")
	flags.Int("name-window", 0, "only consider the first N tokens for the name pattern (0 = whole document)")
	flags.Bool("domain-model", true, "query the domain entity model")

	bindFlag("debug", "debug")
	bindFlag("json", "json")
	bindFlag("skills-file", "skills-file")
	bindFlag("custom-regex", "custom-regex")
	bindFlag("base-skills", "base-skills")
	bindFlag("name-window", "name-window")
	bindFlag("domain-model.enabled", "domain-model")
}

func setDefaults() {
	viper.SetDefault("base-skills", true)
	viper.SetDefault("name-window", 0)
	viper.SetDefault("workers", 0)
	viper.SetDefault("domain-model.enabled", true)
	viper.SetDefault("domain-model.provider", gemini.Provider)
	viper.SetDefault("domain-model.gemini.model", "")
	viper.SetDefault("domain-model.gemini.max-log-length", 200)
	viper.SetDefault("server.address", server.DefaultAddress)
	viper.SetDefault("server.max-upload-bytes", server.DefaultMaxUploadBytes)
}

func bindFlag(key, flag string) {
	if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		log.Fatalf("binding %s flag: %v", flag, err)
	}
}

func initConfig() {
	// a missing .env is fine; variables may come from the environment
	_ = godotenv.Load()

	viper.SetEnvPrefix("RESUME_PARSER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional, but a broken one is fatal.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks value ranges and enums of the decoded configuration.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is required")
	}
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
