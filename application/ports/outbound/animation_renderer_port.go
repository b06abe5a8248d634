package outbound

import (
	"context"

	"github.com/DJRGVC/Noter/domain"
)

type RenderVideoRequest struct {
	Code        string
	SceneName   string
	AspectRatio string
}

type RenderVideoResponse struct {
	VideoFileName string
}

// AnimationRendererPort renders animation code into a video file. onProgress
// may be nil; when set it is invoked from the render goroutine as the engine
// reports per-animation percentages.
type AnimationRendererPort interface {
	Render(ctx context.Context, req RenderVideoRequest, onProgress func(domain.RenderProgress)) (*RenderVideoResponse, error)
}
