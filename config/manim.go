package config

import (
	"fmt"
	"os"
)

type ManimConfig struct {
	Binary       string
	MediaDir     string
	VideoBaseUrl string
}

func GetManimConfig() (*ManimConfig, error) {
	binary := os.Getenv("MANIM_BIN")
	if binary == "" {
		binary = "manim"
	}
	mediaDir := os.Getenv("MANIM_MEDIA_DIR")
	if mediaDir == "" {
		return nil, fmt.Errorf("MANIM_MEDIA_DIR must be set")
	}
	videoBaseUrl := os.Getenv("VIDEO_BASE_URL")
	if videoBaseUrl == "" {
		return nil, fmt.Errorf("VIDEO_BASE_URL must be set")
	}

	return &ManimConfig{
		Binary:       binary,
		MediaDir:     mediaDir,
		VideoBaseUrl: videoBaseUrl,
	}, nil
}
