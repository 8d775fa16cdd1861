package studio

import (
	"context"
	"sync"

	"studio/types"
)

// fakeBackend records calls and replays canned responses
type fakeBackend struct {
	mu sync.Mutex

	videoCalls   int
	imageCalls   int
	publishCalls int
	published    []types.PublishSubmission

	videoResp   *types.VideoResponse
	imageResp   *types.ImageResponse
	publishResp *types.PublishResponse
	err         error

	// release, when set, blocks GenerateVideo until it is closed
	release chan struct{}
}

func (f *fakeBackend) GenerateVideo(ctx context.Context, prompt, voice string) (*types.VideoResponse, error) {
	f.mu.Lock()
	f.videoCalls++
	release := f.release
	f.mu.Unlock()

	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.videoResp, f.err
}

func (f *fakeBackend) GenerateImage(ctx context.Context, prompt string) (*types.ImageResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.imageCalls++
	return f.imageResp, f.err
}

func (f *fakeBackend) Publish(ctx context.Context, sub types.PublishSubmission) (*types.PublishResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.publishCalls++
	f.published = append(f.published, sub)
	return f.publishResp, f.err
}

func (f *fakeBackend) calls() (video, image, publish int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.videoCalls, f.imageCalls, f.publishCalls
}

// progressRecorder collects progress updates from the controller goroutines
type progressRecorder struct {
	mu      sync.Mutex
	updates []types.ProgressState
	onStep  func(types.ProgressState)
}

func (r *progressRecorder) record(p types.ProgressState) {
	r.mu.Lock()
	r.updates = append(r.updates, p)
	hook := r.onStep
	r.mu.Unlock()
	if hook != nil {
		hook(p)
	}
}

func (r *progressRecorder) snapshot() []types.ProgressState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]types.ProgressState(nil), r.updates...)
}
