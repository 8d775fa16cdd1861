package types

// MediaKind identifies what a generation produced. The string values are the
// ones the gallery stores in its "type" field.
type MediaKind string

const (
	KindVideo MediaKind = "video"
	KindImage MediaKind = "photo"
)

// Label returns a human readable name for the kind
func (k MediaKind) Label() string {
	switch k {
	case KindVideo:
		return "video"
	case KindImage:
		return "image"
	default:
		return string(k)
	}
}

// Valid reports whether k is one of the known kinds
func (k MediaKind) Valid() bool {
	return k == KindVideo || k == KindImage
}

// GenerationRequest is one user submission to a generation endpoint, captured
// when the user submits and not changed afterwards
type GenerationRequest struct {
	Kind   MediaKind
	Prompt string
	Voice  string // video only
}

// GenerationResult is the media reference returned by a successful generation
type GenerationResult struct {
	Kind     MediaKind
	MediaURL string
}

// Artifact is the most recent successfully generated media. The zero value is
// the empty artifact. Kind and URL are only ever set together.
type Artifact struct {
	kind MediaKind
	url  string
}

// NewArtifact builds an artifact from a generation result. A result without a
// URL or with an unknown kind yields the empty artifact.
func NewArtifact(r GenerationResult) Artifact {
	if r.MediaURL == "" || !r.Kind.Valid() {
		return Artifact{}
	}
	return Artifact{kind: r.Kind, url: r.MediaURL}
}

// IsEmpty reports whether nothing has been generated yet
func (a Artifact) IsEmpty() bool { return a.url == "" }

// Kind returns the media kind, or "" for the empty artifact
func (a Artifact) Kind() MediaKind { return a.kind }

// URL returns the media URL exactly as the server returned it
func (a Artifact) URL() string { return a.url }

// ProgressState is the simulated progress of a video generation
type ProgressState struct {
	CurrentStep int
	TotalSteps  int
	Percent     float64
	Status      string
}

// Done reports whether the progress reached the final state
func (p ProgressState) Done() bool { return p.Percent >= 100 }

// PublishSubmission is the form sent to the gallery
type PublishSubmission struct {
	Kind        MediaKind
	Title       string
	Description string
	Tags        string
	FileURL     string
}
