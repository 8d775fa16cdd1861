// Package studio drives the generation flows of the creative studio: it
// validates input, sends one request per submission, simulates video progress
// while the backend works and remembers the last generated artifact so it can
// be published to the gallery. It knows nothing about how results are drawn.
package studio

import (
	"context"
	"time"

	"studio/config"
	"studio/types"

	"github.com/rs/zerolog"
)

// Backend is the generation service the controller talks to. A non-nil error
// means the request never produced a readable response.
type Backend interface {
	GenerateVideo(ctx context.Context, prompt, voice string) (*types.VideoResponse, error)
	GenerateImage(ctx context.Context, prompt string) (*types.ImageResponse, error)
	Publish(ctx context.Context, sub types.PublishSubmission) (*types.PublishResponse, error)
}

// Options tunes a Controller. Zero values fall back to the config defaults.
type Options struct {
	TickInterval time.Duration
	Logger       *zerolog.Logger
	Session      *Session
}

// Controller runs the video, image and publish flows
type Controller struct {
	backend      Backend
	session      *Session
	flows        *flowTracker
	tickInterval time.Duration
	logger       zerolog.Logger
}

// NewController creates a controller bound to backend
func NewController(backend Backend, opts Options) *Controller {
	c := &Controller{
		backend:      backend,
		session:      opts.Session,
		flows:        newFlowTracker(),
		tickInterval: opts.TickInterval,
		logger:       zerolog.Nop(),
	}
	if c.session == nil {
		c.session = NewSession()
	}
	if c.tickInterval <= 0 {
		c.tickInterval = config.ProgressTickInterval
	}
	if opts.Logger != nil {
		c.logger = opts.Logger.With().Str("component", "controller").Logger()
	}
	return c
}

// Session returns the session the controller writes artifacts to
func (c *Controller) Session() *Session { return c.session }

// LastArtifact is shorthand for c.Session().Last()
func (c *Controller) LastArtifact() types.Artifact { return c.session.Last() }

// FlowState returns the current state of flow f
func (c *Controller) FlowState(f Flow) FlowState { return c.flows.state(f) }

// Retry moves a failed flow back to idle
func (c *Controller) Retry(f Flow) FlowState { return c.flows.apply(f, EventRetry) }

func (c *Controller) settle(f Flow, err error) {
	if err != nil {
		c.flows.apply(f, EventFailure)
		return
	}
	c.flows.apply(f, EventSuccess)
}
