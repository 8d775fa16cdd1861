package studio

import (
	"context"
	"fmt"
	"time"

	"studio/config"
	"studio/story"
	"studio/types"
)

// ProgressFunc receives simulated progress updates. It is called from the
// controller's goroutines, never after SubmitVideoRequest has returned.
type ProgressFunc func(types.ProgressState)

// SubmitVideoRequest turns a story into a narrated video. While the backend
// works, onProgress receives a cosmetic step estimate derived from the scene
// count; the estimate stops the moment the response arrives and only the
// final update reports 100%.
func (c *Controller) SubmitVideoRequest(ctx context.Context, prompt, voice string, onProgress ProgressFunc) (types.GenerationResult, error) {
	if story.Length(prompt) < config.MinStoryLength {
		c.flows.apply(FlowVideo, EventInvalid)
		return types.GenerationResult{}, &ValidationError{Message: MsgStoryTooShort}
	}
	if voice == "" {
		voice = config.DefaultVoice
	}
	if onProgress == nil {
		onProgress = func(types.ProgressState) {}
	}

	total := story.SceneCount(prompt)
	c.flows.apply(FlowVideo, EventSubmit)
	c.logger.Info().Int("scenes", total).Str("voice", voice).Msg("🎬 video request submitted")

	onProgress(InitialProgress(total))

	tickCtx, stopTicker := context.WithCancel(ctx)
	tickerDone := make(chan struct{})
	go func() {
		defer close(tickerDone)
		c.simulateProgress(tickCtx, total, onProgress)
	}()

	resp, err := c.backend.GenerateVideo(ctx, prompt, voice)

	// The ticker must be gone before anything else is reported.
	stopTicker()
	<-tickerDone

	result, err := c.videoResult(resp, err)
	c.settle(FlowVideo, err)
	if err != nil {
		c.logger.Warn().Err(err).Msg("❌ video generation failed")
		return types.GenerationResult{}, err
	}

	onProgress(FinalProgress(total))
	c.session.remember(result)
	c.logger.Info().Str("url", result.MediaURL).Msg("✅ video ready")
	return result, nil
}

func (c *Controller) videoResult(resp *types.VideoResponse, err error) (types.GenerationResult, error) {
	if err != nil {
		return types.GenerationResult{}, &TransportError{Err: err}
	}
	if resp == nil || resp.VideoURL == "" {
		var msg string
		if resp != nil {
			msg = resp.Error
		}
		return types.GenerationResult{}, serverError(msg, DefaultVideoError)
	}
	return types.GenerationResult{Kind: types.KindVideo, MediaURL: resp.VideoURL}, nil
}

// simulateProgress advances one step per tick until every scene has been
// announced or ctx is cancelled.
func (c *Controller) simulateProgress(ctx context.Context, total int, onProgress ProgressFunc) {
	if total <= 0 {
		return
	}

	ticker := time.NewTicker(c.tickInterval)
	defer ticker.Stop()

	for step := 1; step <= total; step++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		// A tick and the cancellation can be ready together.
		if ctx.Err() != nil {
			return
		}
		onProgress(StepProgress(step, total))
	}
}

// InitialProgress is reported as soon as the request is sent
func InitialProgress(total int) types.ProgressState {
	return types.ProgressState{
		CurrentStep: 0,
		TotalSteps:  total,
		Percent:     config.InitialProgressPercent,
		Status:      StatusConnecting,
	}
}

// StepProgress is the simulated state after step of total scenes. It never
// reaches 100%.
func StepProgress(step, total int) types.ProgressState {
	return types.ProgressState{
		CurrentStep: step,
		TotalSteps:  total,
		Percent:     float64(step) / float64(total+1) * 100,
		Status:      fmt.Sprintf(StatusSceneFormat, step),
	}
}

// FinalProgress is reported once the video exists
func FinalProgress(total int) types.ProgressState {
	return types.ProgressState{
		CurrentStep: total,
		TotalSteps:  total,
		Percent:     100,
		Status:      StatusReady,
	}
}
