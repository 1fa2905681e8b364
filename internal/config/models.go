package config

// EmbeddingConfig represents the configuration for the embedding provider
type EmbeddingConfig struct {
	Provider string
}

// OpenAIConfig represents the configuration for OpenAI embeddings
type OpenAIConfig struct {
	APIKey       string
	Model        string
	MaxInputSize int
}

// BedrockConfig represents the configuration for Amazon Bedrock embeddings
type BedrockConfig struct {
	Region       string
	ModelID      string
	MaxInputSize int
}

// GeminiConfig represents the configuration for Google Gemini embeddings
type GeminiConfig struct {
	APIKey       string
	Model        string
	MaxInputSize int
}

// TriageConfig represents the decision-policy thresholds
type TriageConfig struct {
	PhishingSimilarity   float64
	SuspiciousSimilarity float64
}

// WhitelistConfig represents the whitelist bootstrap configuration
type WhitelistConfig struct {
	CSVPath      string
	SnapshotPath string
	Domains      []string
}

// GetEmbedding returns the embedding provider configuration
func (c *Config) GetEmbedding() EmbeddingConfig {
	return EmbeddingConfig{
		Provider: c.GetString("embedding.provider"),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:       c.GetString("openai.api_key"),
		Model:        c.GetString("openai.model"),
		MaxInputSize: c.GetInt("openai.max_input_size"),
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:       c.GetString("bedrock.region"),
		ModelID:      c.GetString("bedrock.model_id"),
		MaxInputSize: c.GetInt("bedrock.max_input_size"),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:       c.GetString("gemini.api_key"),
		Model:        c.GetString("gemini.model"),
		MaxInputSize: c.GetInt("gemini.max_input_size"),
	}
}

// GetTriage returns the triage policy configuration
func (c *Config) GetTriage() TriageConfig {
	return TriageConfig{
		PhishingSimilarity:   c.GetFloat64("triage.phishing_similarity"),
		SuspiciousSimilarity: c.GetFloat64("triage.suspicious_similarity"),
	}
}

// GetWhitelist returns the whitelist bootstrap configuration
func (c *Config) GetWhitelist() WhitelistConfig {
	return WhitelistConfig{
		CSVPath:      c.GetString("whitelist.csv_path"),
		SnapshotPath: c.GetString("whitelist.snapshot_path"),
		Domains:      c.GetStringSlice("whitelist.domains"),
	}
}
