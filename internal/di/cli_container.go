package di

import (
	"flag"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/phish-triage/internal/adapters/cache"
	"github.com/mikey/phish-triage/internal/config"
	"github.com/mikey/phish-triage/internal/core"
	"github.com/mikey/phish-triage/internal/factory"
	"github.com/mikey/phish-triage/internal/logging"
	"github.com/mikey/phish-triage/internal/ports"
	"github.com/mikey/phish-triage/internal/utils"
)

// CLIFlags contains all command line flags for the CLI application
type CLIFlags struct {
	// Embedding provider flags
	Provider     string
	MaxInputSize int

	// OpenAI flags
	OpenAIAPIKey string
	OpenAIModel  string

	// Bedrock flags
	BedrockRegion  string
	BedrockModelID string

	// Gemini flags
	GeminiAPIKey string
	GeminiModel  string

	// Triage flags
	PhishingSimilarity   float64
	SuspiciousSimilarity float64
	WhitelistCSV         string

	// Input flags
	InputFile  string
	Verbose    bool
	JSONLog    bool
	ConfigFile string
}

// ParseFlags parses command line flags and returns a CLIFlags struct
func ParseFlags() *CLIFlags {
	flags := &CLIFlags{}

	// Embedding provider flags
	flag.StringVar(&flags.Provider, "provider", "openai", "Embedding provider (openai, bedrock, gemini)")
	flag.IntVar(&flags.MaxInputSize, "max-input-size", 8192, "Maximum text size to send for embedding")

	// OpenAI flags
	flag.StringVar(&flags.OpenAIAPIKey, "openai-api-key", "", "API key for OpenAI")
	flag.StringVar(&flags.OpenAIModel, "openai-model", "text-embedding-3-small", "OpenAI embedding model")

	// Bedrock flags
	flag.StringVar(&flags.BedrockRegion, "bedrock-region", "us-east-1", "AWS region for Bedrock")
	flag.StringVar(&flags.BedrockModelID, "bedrock-model", "amazon.titan-embed-text-v2:0", "Bedrock embedding model ID")

	// Gemini flags
	flag.StringVar(&flags.GeminiAPIKey, "gemini-api-key", "", "API key for Google Gemini")
	flag.StringVar(&flags.GeminiModel, "gemini-model", "text-embedding-004", "Gemini embedding model")

	// Triage flags
	flag.Float64Var(&flags.PhishingSimilarity, "phishing-similarity", core.DefaultPhishingSimilarity, "Similarity above which keyword hits mean phishing")
	flag.Float64Var(&flags.SuspiciousSimilarity, "suspicious-similarity", core.DefaultSuspiciousSimilarity, "Similarity above which a message is suspicious")
	flag.StringVar(&flags.WhitelistCSV, "whitelist-csv", "", "CSV file of known-safe messages to seed the whitelist")

	// Input flags
	flag.StringVar(&flags.InputFile, "file", "", "Input message file (use stdin if not specified)")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	flag.StringVar(&flags.ConfigFile, "config", "", "Path to config file (overrides command line flags)")

	flag.Parse()
	return flags
}

// BuildCLIContainer creates and configures a dependency injection container for the CLI application
func BuildCLIContainer(flags *CLIFlags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
		if flags.ConfigFile != "" {
			cfg, err := config.New()
			if err != nil {
				return nil, err
			}
			logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
			return cfg, nil
		}

		return createConfigFromFlags(flags), nil
	}); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewEmbeddingFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewWhitelistFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewServerFactory); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register embedding engine
	if err := container.Provide(func(f *factory.EmbeddingFactory) (core.EmbeddingEngine, error) {
		return f.CreateEmbeddingEngine()
	}); err != nil {
		return nil, err
	}

	// Register whitelist store
	if err := container.Provide(func(f *factory.WhitelistFactory) (core.WhitelistStore, error) {
		return f.CreateWhitelistStore()
	}); err != nil {
		return nil, err
	}

	// Register similarity scorer with an in-process cache; one-shot runs
	// still benefit when the message text equals the comparison text
	if err := container.Provide(func(
		engine core.EmbeddingEngine,
		logger *zap.Logger,
	) core.SimilarityScorer {
		return core.NewEmbeddingScorer(engine, cache.NewMemoryCache(cache.DefaultCapacity, logger), logger)
	}); err != nil {
		return nil, err
	}

	// Register triage service
	if err := container.Provide(func(
		whitelist core.WhitelistStore,
		scorer core.SimilarityScorer,
		logger *zap.Logger,
		cfg *config.Config,
	) *core.TriageService {
		triageCfg := cfg.GetTriage()
		return core.NewTriageService(
			whitelist,
			scorer,
			logger,
			triageCfg.PhishingSimilarity,
			triageCfg.SuspiciousSimilarity,
		)
	}); err != nil {
		return nil, err
	}

	// Register message server
	if err := container.Provide(func(f *factory.ServerFactory) (ports.MessageServer, error) {
		return f.CreateMessageServer()
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags(flags *CLIFlags) *config.Config {
	v := config.NewEmptyViper()

	v.Set("server.type", "cli")
	v.Set("cli.verbose", flags.Verbose)

	v.Set("embedding.provider", flags.Provider)

	switch flags.Provider {
	case "openai":
		v.Set("openai.api_key", flags.OpenAIAPIKey)
		v.Set("openai.model", flags.OpenAIModel)
		v.Set("openai.max_input_size", flags.MaxInputSize)
	case "bedrock":
		v.Set("bedrock.region", flags.BedrockRegion)
		v.Set("bedrock.model_id", flags.BedrockModelID)
		v.Set("bedrock.max_input_size", flags.MaxInputSize)
	case "gemini":
		v.Set("gemini.api_key", flags.GeminiAPIKey)
		v.Set("gemini.model", flags.GeminiModel)
		v.Set("gemini.max_input_size", flags.MaxInputSize)
	}

	v.Set("triage.phishing_similarity", flags.PhishingSimilarity)
	v.Set("triage.suspicious_similarity", flags.SuspiciousSimilarity)
	v.Set("whitelist.csv_path", flags.WhitelistCSV)
	// One-shot runs should not write snapshot files
	v.Set("whitelist.snapshot_path", "")

	return config.NewFromViper(v)
}
