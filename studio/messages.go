package studio

import (
	"errors"
	"fmt"

	"studio/types"
)

// User facing text
const (
	MsgStoryTooShort        = "Please enter a longer story (at least 2 sentences)!"
	MsgImagePromptMissing   = "Please describe the image!"
	MsgPublishFieldsMissing = "Please enter at least Title and Description!"
	MsgNothingToPublish     = "No file generated to publish!"

	DefaultVideoError   = "Server failed"
	DefaultImageError   = "AI Service unavailable"
	DefaultPublishError = "unknown error"

	StatusConnecting  = "Connecting to Neural Voice Servers..."
	StatusSceneFormat = "Generating Visuals and Natural Voice for Scene %d..."
	StatusReady       = "Your cinematic movie is ready ✨"

	LabelPublish    = "Publish Now ✨"
	LabelPublishing = "Publishing..."
	LabelFinishing  = "Finishing!"
)

// flowTexts holds the transport message and the server message prefix of
// each flow
var flowTexts = map[Flow]struct{ transport, server string }{
	FlowVideo:   {"Error: Server connection failed!", "Error: "},
	FlowImage:   {"Server connection failed!", "API Error: "},
	FlowPublish: {"Server Error while publishing!", "Publishing failed: "},
}

// UserMessage renders err as the notification shown for flow f
func UserMessage(f Flow, err error) string {
	if err == nil {
		return ""
	}

	var v *ValidationError
	if errors.As(err, &v) {
		return v.Message
	}

	texts, ok := flowTexts[f]
	switch {
	case !ok:
	case IsTransport(err):
		return texts.transport
	case IsServer(err):
		var s *ServerError
		errors.As(err, &s)
		return texts.server + s.Message
	}
	return "Error: " + err.Error()
}

// PublishedMessage is shown after a successful publish
func PublishedMessage(kind types.MediaKind) string {
	return fmt.Sprintf("Success! Your %s is now live in the Public Gallery. ✨", kind)
}

// StepLabel renders the step counter under the progress bar
func StepLabel(p types.ProgressState) string {
	if p.Done() {
		return LabelFinishing
	}
	return fmt.Sprintf("Step %d / %d", p.CurrentStep, p.TotalSteps)
}
