package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"historia/internal/config"
	"historia/internal/pkg/logger"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "historia",
	Short: "Historia - AI historical documentary pipeline",
	Long: `Historia turns a historical topic into a narrated documentary storyboard.
It researches the topic, drafts a three-act outline and script, breaks the
script into scenes, and generates oil-painting style imagery for each scene.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./configs/config.yaml)")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.historia")
	}

	// 环境变量设置
	viper.SetEnvPrefix("HISTORIA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 设置默认值
	setDefaults()

	// 读取配置文件
	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			fmt.Fprintln(os.Stderr, "No config file found, using defaults and environment variables")
		} else {
			fmt.Fprintf(os.Stderr, "Failed to read config: %v\n", err)
			os.Exit(1)
		}
	}

	// 反序列化到结构体
	cfg = &config.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to unmarshal config: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	if err := logger.Init(&cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}

	log.Debug().Str("config_file", viper.ConfigFileUsed()).Msg("configuration loaded")
}

func setDefaults() {
	// Server
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "300s")

	// AI
	viper.SetDefault("ai.provider", "openai")
	viper.SetDefault("ai.model", "gpt-4o")
	viper.SetDefault("ai.options.temperature", 0.7)
	viper.SetDefault("ai.options.max_tokens", 4096)
	viper.SetDefault("ai.options.top_p", 1.0)

	// Log
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.time_format", "RFC3339")

	// Redis (可选，留空则禁用研究缓存)
	viper.SetDefault("redis.addr", "")
	viper.SetDefault("redis.db", 0)

	// Research (Perplexity)
	viper.SetDefault("research.model", "sonar-pro")
	viper.SetDefault("research.base_url", "https://api.perplexity.ai")
	viper.SetDefault("research.timeout", "60s")
	viper.SetDefault("research.enable_cache", true)
	viper.SetDefault("research.cache_ttl", "24h")

	// Image generation
	viper.SetDefault("image.provider", "fal")
	viper.SetDefault("image.model", "fal-ai/nano-banana")
	viper.SetDefault("image.aspect_ratio", "16:9")
	viper.SetDefault("image.timeout", "120s")
	viper.SetDefault("image.unit_cost", 0.039)

	// Pipeline
	viper.SetDefault("pipeline.seconds_per_scene", 7)
	viper.SetDefault("pipeline.words_per_minute", 150)
	viper.SetDefault("pipeline.max_pooled_images", 60)
	viper.SetDefault("pipeline.per_scene_tokens", 120)
	viper.SetDefault("pipeline.token_buffer", 2000)
	viper.SetDefault("pipeline.min_breakdown_tokens", 4096)
	viper.SetDefault("pipeline.max_breakdown_tokens", 32768)
}

// GetConfig returns the global configuration
func GetConfig() *config.Config {
	return cfg
}
