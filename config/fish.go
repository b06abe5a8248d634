package config

import (
	"fmt"
	"os"
)

type FishConfig struct {
	ApiUrl  string
	ApiKey  string
	ModelId string
	Format  string
}

func GetFishConfig() (*FishConfig, error) {
	apiUrl := os.Getenv("FISH_API_URL")
	if apiUrl == "" {
		return nil, fmt.Errorf("FISH_API_URL must be set")
	}
	apiKey := os.Getenv("FISH_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("FISH_API_KEY must be set")
	}
	modelId := os.Getenv("FISH_MODEL_ID")
	if modelId == "" {
		return nil, fmt.Errorf("FISH_MODEL_ID must be set")
	}
	format := os.Getenv("FISH_AUDIO_FORMAT")
	if format == "" {
		format = "mp3"
	}

	return &FishConfig{
		ApiUrl:  apiUrl,
		ApiKey:  apiKey,
		ModelId: modelId,
		Format:  format,
	}, nil
}
