package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"studio/storage"
	"studio/video"

	cohere "github.com/cohere-ai/cohere-go/v2"
	"github.com/cohere-ai/cohere-go/v2/option"
	"github.com/rs/zerolog"
)

func pngBytes(n int) []byte {
	return bytes.Repeat([]byte{0x89}, n)
}

func TestImageProviderIntegrityCheck(t *testing.T) {
	cases := []struct {
		name        string
		status      int
		contentType string
		size        int
		wantErr     bool
	}{
		{"valid", http.StatusOK, "image/jpeg", 20000, false},
		{"too small", http.StatusOK, "image/jpeg", 10000, true},
		{"text body", http.StatusOK, "text/html", 20000, true},
		{"server error", http.StatusInternalServerError, "image/jpeg", 20000, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var gotUA, gotPath string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUA = r.UserAgent()
				gotPath = r.URL.Path
				w.Header().Set("Content-Type", c.contentType)
				w.WriteHeader(c.status)
				_, _ = w.Write(pngBytes(c.size))
			}))
			defer srv.Close()

			p := NewImageProvider(srv.URL+"/prompt", zerolog.Nop())
			data, err := p.Render(context.Background(), "a red fox")
			if (err != nil) != c.wantErr {
				t.Fatalf("Render error = %v; wantErr %v", err, c.wantErr)
			}
			if c.wantErr && !errors.Is(err, ErrNotAnImage) {
				t.Fatalf("error = %v; want ErrNotAnImage", err)
			}
			if !c.wantErr && len(data) != c.size {
				t.Fatalf("got %d bytes", len(data))
			}
			if !strings.HasPrefix(gotUA, "Mozilla/5.0") {
				t.Fatalf("User-Agent = %q", gotUA)
			}
			if !strings.HasPrefix(gotPath, "/prompt/a red fox, high quality 3D render") {
				t.Fatalf("path = %q", gotPath)
			}
		})
	}
}

func TestImageProviderRequestURL(t *testing.T) {
	p := NewImageProvider("https://image.example/prompt/", zerolog.Nop())
	got := p.RequestURL("cat & dog", 42)
	if !strings.HasPrefix(got, "https://image.example/prompt/cat%20&%20dog%2C%20high%20quality") {
		t.Fatalf("RequestURL = %q", got)
	}
	for _, part := range []string{"width=1024", "height=1024", "seed=42", "nologo=true", "model=flux"} {
		if !strings.Contains(got, part) {
			t.Fatalf("RequestURL = %q; missing %q", got, part)
		}
	}
}

func TestHTTPNarrator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req narrateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Voice == "" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("ID3" + req.Text))
	}))
	defer srv.Close()

	n := NewHTTPNarrator(srv.URL)
	audio, err := n.Narrate(context.Background(), "hello", "en-US-AriaNeural")
	if err != nil {
		t.Fatalf("Narrate returned error: %v", err)
	}
	if string(audio) != "ID3hello" {
		t.Fatalf("audio = %q", audio)
	}

	if _, err := n.Narrate(context.Background(), "hello", ""); err == nil || !strings.Contains(err.Error(), "400") {
		t.Fatalf("error = %v; want status 400", err)
	}
}

type fakeChat struct {
	reply string
	err   error
	got   *cohere.ChatRequest
}

func (f *fakeChat) Chat(ctx context.Context, req *cohere.ChatRequest, opts ...option.RequestOption) (*cohere.NonStreamedChatResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &cohere.NonStreamedChatResponse{Text: f.reply}, nil
}

func TestCohereTranslator(t *testing.T) {
	chat := &fakeChat{reply: "  A king rides to war.\n"}
	tr := newCohereTranslator(chat, "command-r", zerolog.Nop())

	if got := tr.Translate(context.Background(), "राजा युद्ध में जाता है"); got != "A king rides to war." {
		t.Fatalf("Translate = %q", got)
	}
	if chat.got == nil || *chat.got.Model != "command-r" {
		t.Fatalf("unexpected request: %+v", chat.got)
	}

	long := strings.Repeat("क", 250)
	chat.err = errors.New("rate limited")
	if got := tr.Translate(context.Background(), long); got != strings.Repeat("क", 200) {
		t.Fatalf("fallback should be the input truncated to 200 runes, got %d runes", len([]rune(got)))
	}
	if n := len([]rune(chat.got.Message)); n != 200 {
		t.Fatalf("sent %d runes; want 200", n)
	}
}

// fakeImages fails for prompts containing "fail"
type fakeImages struct {
	mu      sync.Mutex
	prompts []string
}

func (f *fakeImages) Render(ctx context.Context, prompt string) ([]byte, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	if strings.Contains(prompt, "fail") {
		return nil, ErrNotAnImage
	}
	return pngBytes(20000), nil
}

type fakeNarrator struct{}

func (fakeNarrator) Narrate(ctx context.Context, text, voice string) ([]byte, error) {
	return []byte(voice + ":" + text), nil
}

type fakeComposer struct {
	scenes []video.Scene
	output string
	err    error
}

func (f *fakeComposer) Compose(ctx context.Context, scenes []video.Scene, outputPath string) error {
	f.scenes = scenes
	f.output = outputPath
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(outputPath, []byte("mp4"), 0o644)
}

func newTestService(t *testing.T, images ImageSource, narrator Narrator) (*Service, *fakeComposer) {
	t.Helper()
	store, err := storage.New(t.TempDir(), nil, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	composer := &fakeComposer{}
	svc := NewService(Config{
		Images:   images,
		Narrator: narrator,
		Composer: composer,
		Store:    store,
	}, zerolog.Nop())
	return svc, composer
}

func TestGenerateImage(t *testing.T) {
	svc, _ := newTestService(t, &fakeImages{}, nil)

	url, err := svc.GenerateImage(context.Background(), "a koi pond")
	if err != nil {
		t.Fatalf("GenerateImage returned error: %v", err)
	}
	if !strings.HasPrefix(url, "/static/images/art_") || !strings.HasSuffix(url, ".png") || len(url) != len("/static/images/art_12345678.png") {
		t.Fatalf("url = %q", url)
	}

	if _, err := svc.GenerateImage(context.Background(), "please fail"); !errors.Is(err, ErrNotAnImage) {
		t.Fatalf("error = %v; want ErrNotAnImage", err)
	}
}

func TestGenerateVideoSkipsFailedScenes(t *testing.T) {
	images := &fakeImages{}
	svc, composer := newTestService(t, images, fakeNarrator{})

	story := "The fox wakes up. The first hunt will fail. The fox finds the river. Night falls again."
	url, err := svc.GenerateVideo(context.Background(), story, "en-US-GuyNeural")
	if err != nil {
		t.Fatalf("GenerateVideo returned error: %v", err)
	}
	if !strings.HasPrefix(url, "/static/videos/story_") || !strings.HasSuffix(url, ".mp4") {
		t.Fatalf("url = %q", url)
	}

	if len(composer.scenes) != 3 {
		t.Fatalf("composed %d scenes; want 3", len(composer.scenes))
	}
	for i, scene := range composer.scenes {
		if scene.AudioPath == "" {
			t.Fatalf("scene %d has no narration", i)
		}
		if _, err := os.Stat(scene.ImagePath); err != nil {
			t.Fatalf("scene %d image missing: %v", i, err)
		}
	}
	// Scene order survives concurrent preparation.
	if !strings.HasSuffix(composer.scenes[0].ImagePath, "_0.png") || !strings.HasSuffix(composer.scenes[2].ImagePath, "_3.png") {
		t.Fatalf("scenes out of order: %+v", composer.scenes)
	}
	if len(images.prompts) != 4 {
		t.Fatalf("rendered %d prompts; want 4", len(images.prompts))
	}
}

func TestGenerateVideoFailsWithoutImages(t *testing.T) {
	svc, _ := newTestService(t, &fakeImages{}, nil)

	_, err := svc.GenerateVideo(context.Background(), "This will fail. And this will fail too.", "")
	if !errors.Is(err, ErrImageGeneration) || err.Error() != "AI image generation failed" {
		t.Fatalf("error = %v; want ErrImageGeneration", err)
	}

	if _, err := svc.GenerateVideo(context.Background(), "tiny. bits.", ""); !errors.Is(err, ErrNoScenes) {
		t.Fatalf("error = %v; want ErrNoScenes", err)
	}
}

func TestGenerateVideoSilentWithoutNarrator(t *testing.T) {
	svc, composer := newTestService(t, &fakeImages{}, nil)

	if _, err := svc.GenerateVideo(context.Background(), "A quiet morning in the hills.", ""); err != nil {
		t.Fatal(err)
	}
	if len(composer.scenes) != 1 || composer.scenes[0].AudioPath != "" {
		t.Fatalf("scenes = %+v; want one silent scene", composer.scenes)
	}
}

func TestGenerateVideoRemovesScenesWhenComposeFails(t *testing.T) {
	svc, composer := newTestService(t, &fakeImages{}, fakeNarrator{})
	composer.err = errors.New("ffmpeg: exit status 1")

	_, err := svc.GenerateVideo(context.Background(), "The ship leaves port. A storm rolls in.", "")
	if err == nil || err.Error() != "ffmpeg: exit status 1" {
		t.Fatalf("error = %v; want the compose error", err)
	}
	if len(composer.scenes) != 2 {
		t.Fatalf("composed %d scenes; want 2", len(composer.scenes))
	}
	for i, scene := range composer.scenes {
		if _, err := os.Stat(scene.ImagePath); !os.IsNotExist(err) {
			t.Fatalf("scene %d image left behind: %v", i, err)
		}
		if _, err := os.Stat(scene.AudioPath); !os.IsNotExist(err) {
			t.Fatalf("scene %d audio left behind: %v", i, err)
		}
	}
}
