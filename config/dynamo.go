package config

import (
	"fmt"
	"os"
	"strconv"
)

type DynamoConfig struct {
	TableName  string
	TtlMinutes int
}

func GetDynamoConfig() (*DynamoConfig, error) {
	tableName := os.Getenv("STUDY_CACHE_TABLE")
	if tableName == "" {
		return nil, fmt.Errorf("STUDY_CACHE_TABLE must be set")
	}
	ttlMinutes := 1440
	if raw := os.Getenv("STUDY_CACHE_TTL_MINUTES"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse STUDY_CACHE_TTL_MINUTES")
		}
		ttlMinutes = parsed
	}

	return &DynamoConfig{
		TableName:  tableName,
		TtlMinutes: ttlMinutes,
	}, nil
}
