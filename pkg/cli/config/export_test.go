package config

// NewLLMForTest creates an LLM config for testing purposes
func NewLLMForTest(backend, projectID, apiKey string) *LLM {
	return &LLM{
		backend:   backend,
		projectID: projectID,
		location:  "us-central1",
		apiKey:    apiKey,
	}
}

// NewTimeoutsForTest creates a Timeouts config for testing purposes
func NewTimeoutsForTest(analysis, embedding, write, similar, meta int) *Timeouts {
	return &Timeouts{
		analysisMS:  analysis,
		embeddingMS: embedding,
		writeMS:     write,
		similarMS:   similar,
		metaMS:      meta,
	}
}

// NewRepositoryForTest creates a Repository config for testing purposes
func NewRepositoryForTest(backend, projectID string) *Repository {
	return &Repository{
		backend:   backend,
		projectID: projectID,
	}
}

// NewAppConfigForTest creates an AppConfig bound to path
func NewAppConfigForTest(path string) *AppConfig {
	return &AppConfig{path: path}
}
