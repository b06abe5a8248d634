package adapters

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/DJRGVC/Noter/application/ports/outbound"
	"github.com/DJRGVC/Noter/config"
	"github.com/DJRGVC/Noter/domain"
	"github.com/google/uuid"
)

type manimRenderer struct {
	logger          outbound.LoggerPort
	manimConfig     *config.ManimConfig
	animationRegexp *regexp.Regexp
	progressRegexp  *regexp.Regexp
}

func NewManimRenderer(manimConfig *config.ManimConfig, logger outbound.LoggerPort) outbound.AnimationRendererPort {
	return &manimRenderer{
		logger:          logger,
		manimConfig:     manimConfig,
		animationRegexp: regexp.MustCompile(`Animation (\d+):`),
		progressRegexp:  regexp.MustCompile(`(\d+)%`),
	}
}

func (m *manimRenderer) Render(ctx context.Context, req outbound.RenderVideoRequest, onProgress func(domain.RenderProgress)) (*outbound.RenderVideoResponse, error) {
	sceneFile := filepath.Join(m.manimConfig.MediaDir, "scene_"+uuid.NewString()[:8]+".py")
	if err := os.WriteFile(sceneFile, []byte(m.wrapCode(req.Code, req.AspectRatio)), 0o644); err != nil {
		m.logger.Error(err, "error writing scene file")
		return nil, err
	}
	defer func() {
		if err := os.Remove(sceneFile); err != nil {
			m.logger.Error(err, "error removing scene file")
		}
	}()

	cmd := exec.CommandContext(ctx, m.manimConfig.Binary, sceneFile, req.SceneName,
		"--format=mp4", "--media_dir", m.manimConfig.MediaDir, "--custom_folders")
	cmd.Dir = m.manimConfig.MediaDir

	// Manim reports per-animation progress on stderr.
	stderr, err := cmd.StderrPipe()
	if err != nil {
		m.logger.Error(err, "error opening renderer stderr")
		return nil, err
	}

	if err := cmd.Start(); err != nil {
		m.logger.Error(err, "error starting renderer")
		return nil, err
	}

	scanner := bufio.NewScanner(stderr)
	var tail []string
	currentAnimation := -1
	for scanner.Scan() {
		line := scanner.Text()
		tail = append(tail, line)
		if len(tail) > 20 {
			tail = tail[1:]
		}

		animation, percentage, ok := m.parseProgress(line, currentAnimation)
		if !ok {
			continue
		}
		currentAnimation = animation
		if onProgress != nil {
			onProgress(domain.RenderProgress{
				AnimationIndex: animation,
				Percentage:     percentage,
			})
		}
	}

	if err := cmd.Wait(); err != nil {
		m.logger.ErrorWithFields(err, "rendering failed", map[string]interface{}{
			"stderr_tail": strings.Join(tail, "\n"),
		})
		return nil, fmt.Errorf("rendering failed: %w", err)
	}

	videoFile := filepath.Join(m.manimConfig.MediaDir, req.SceneName+".mp4")
	if _, err := os.Stat(videoFile); err != nil {
		m.logger.Error(err, "rendered video file not found")
		return nil, fmt.Errorf("rendered video file not found")
	}

	return &outbound.RenderVideoResponse{
		VideoFileName: videoFile,
	}, nil
}

// parseProgress extracts progress from one stderr line. A new animation
// header resets percentage to zero; otherwise a percentage applies to the
// current animation.
func (m *manimRenderer) parseProgress(line string, currentAnimation int) (animation int, percentage int, ok bool) {
	if match := m.animationRegexp.FindStringSubmatch(line); match != nil {
		index, err := strconv.Atoi(match[1])
		if err != nil {
			return 0, 0, false
		}
		return index, 0, true
	}
	if match := m.progressRegexp.FindStringSubmatch(line); match != nil {
		value, err := strconv.Atoi(match[1])
		if err != nil {
			return 0, 0, false
		}
		return currentAnimation, value, true
	}
	return 0, 0, false
}

// wrapCode prefixes the generated scene with frame configuration for the
// requested aspect ratio.
func (m *manimRenderer) wrapCode(code string, aspectRatio string) string {
	var frameSize string
	var frameWidth string
	switch aspectRatio {
	case "9:16":
		frameSize = "(1080, 1920)"
		frameWidth = "8.0"
	case "1:1":
		frameSize = "(1080, 1080)"
		frameWidth = "8.0"
	default:
		frameSize = "(3840, 2160)"
		frameWidth = "14.22"
	}

	return fmt.Sprintf(`
from manim import *
from math import *
config.frame_size = %s
config.frame_width = %s

%s
`, frameSize, frameWidth, code)
}
