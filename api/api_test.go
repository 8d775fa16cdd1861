package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"studio/client"
	"studio/config"
	"studio/gallery"
	"studio/generation"
	"studio/storage"
	"studio/studio"
	"studio/types"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeGenerator writes placeholder media into the store
type fakeGenerator struct {
	files    *storage.Store
	imageErr error
	videoErr error
	voices   []string
}

func (f *fakeGenerator) GenerateImage(ctx context.Context, prompt string) (string, error) {
	if f.imageErr != nil {
		return "", f.imageErr
	}
	return f.files.Write(ctx, config.ImagesDir, "art_00c0ffee.png", []byte("png"))
}

func (f *fakeGenerator) GenerateVideo(ctx context.Context, text, voice string) (string, error) {
	f.voices = append(f.voices, voice)
	if f.videoErr != nil {
		return "", f.videoErr
	}
	return f.files.Write(ctx, config.VideosDir, "story_abc123.mp4", []byte("mp4"))
}

type recordingPublisher struct {
	mu      sync.Mutex
	entries []types.GalleryEntry
	err     error
}

func (p *recordingPublisher) Published(ctx context.Context, entry types.GalleryEntry) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = append(p.entries, entry)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

type recordingUploader struct {
	paths chan string
}

func (u *recordingUploader) Upload(ctx context.Context, path string, entry types.GalleryEntry) (string, error) {
	u.paths <- path
	return "yt123", nil
}

type failingStore struct{}

func (failingStore) Add(context.Context, types.GalleryEntry) error { return errors.New("disk full") }
func (failingStore) List(context.Context, types.MediaKind) ([]types.GalleryEntry, error) {
	return nil, errors.New("disk full")
}

type testEnv struct {
	router    *gin.Engine
	gen       *fakeGenerator
	events    *recordingPublisher
	uploader  *recordingUploader
	galleryDB string
}

func newTestEnv(t *testing.T, store gallery.Store) *testEnv {
	t.Helper()
	dir := t.TempDir()
	files, err := storage.New(filepath.Join(dir, "static"), nil, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	env := &testEnv{
		gen:       &fakeGenerator{files: files},
		events:    &recordingPublisher{},
		uploader:  &recordingUploader{paths: make(chan string, 1)},
		galleryDB: filepath.Join(dir, "gallery_data.json"),
	}
	if store == nil {
		store = gallery.NewJSONStore(env.galleryDB, zerolog.Nop())
	}
	env.router = NewRouter(Deps{
		Generator: env.gen,
		Gallery:   store,
		Files:     files,
		Events:    env.events,
		Uploader:  env.uploader,
		Logger:    zerolog.Nop(),
	})
	return env
}

func postForm(t *testing.T, h http.Handler, path string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not JSON: %q", rec.Body.String())
	}
	return body.Error
}

func TestGenerationValidation(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := postForm(t, env.router, "/generate-video", map[string]string{"voice": "x"})
	if rec.Code != http.StatusBadRequest || decodeError(t, rec) != "Prompt is empty" {
		t.Fatalf("generate-video: %d %s", rec.Code, rec.Body.String())
	}

	rec = postForm(t, env.router, "/generate-image", nil)
	if rec.Code != http.StatusBadRequest || decodeError(t, rec) != "No prompt" {
		t.Fatalf("generate-image: %d %s", rec.Code, rec.Body.String())
	}
}

func TestGenerateVideoDefaultsVoice(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := postForm(t, env.router, "/generate-video", map[string]string{"prompt": "A long story. Told in parts."})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"video_url":"/static/videos/story_abc123.mp4"`) {
		t.Fatalf("body = %s", rec.Body.String())
	}
	if len(env.gen.voices) != 1 || env.gen.voices[0] != config.DefaultVoice {
		t.Fatalf("voices = %v", env.gen.voices)
	}
}

func TestGenerationFailures(t *testing.T) {
	env := newTestEnv(t, nil)
	env.gen.imageErr = generation.ErrNotAnImage
	env.gen.videoErr = generation.ErrImageGeneration

	rec := postForm(t, env.router, "/generate-image", map[string]string{"prompt": "a dragon"})
	if rec.Code != http.StatusInternalServerError || decodeError(t, rec) != "AI Service unavailable, try again in 10s" {
		t.Fatalf("generate-image: %d %s", rec.Code, rec.Body.String())
	}

	rec = postForm(t, env.router, "/generate-video", map[string]string{"prompt": "A long story. Told in parts."})
	if rec.Code != http.StatusInternalServerError || decodeError(t, rec) != "AI image generation failed" {
		t.Fatalf("generate-video: %d %s", rec.Code, rec.Body.String())
	}

	env.gen.videoErr = generation.ErrNoScenes
	rec = postForm(t, env.router, "/generate-video", map[string]string{"prompt": "a. b. c. d."})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("no scenes: %d %s", rec.Code, rec.Body.String())
	}
}

func TestPublishStoresAnnouncesAndUploads(t *testing.T) {
	env := newTestEnv(t, nil)

	// Make the video exist so it can be uploaded.
	rec := postForm(t, env.router, "/generate-video", map[string]string{"prompt": "A long story. Told in parts."})
	if rec.Code != http.StatusOK {
		t.Fatalf("generate-video: %d", rec.Code)
	}

	rec = postForm(t, env.router, "/publish", map[string]string{
		"type":        "video",
		"title":       "Storm",
		"description": "A sailor braves the sea",
		"tags":        "sea,storm",
		"file_url":    "/static/videos/story_abc123.mp4",
	})
	if rec.Code != http.StatusOK || rec.Body.String() != `{"success":true}` {
		t.Fatalf("publish: %d %s", rec.Code, rec.Body.String())
	}

	data, err := os.ReadFile(env.galleryDB)
	if err != nil {
		t.Fatalf("gallery file not written: %v", err)
	}
	var entries []types.GalleryEntry
	if err := json.Unmarshal(data, &entries); err != nil || len(entries) != 1 {
		t.Fatalf("gallery file = %s", data)
	}
	if entries[0].Title != "Storm" || entries[0].FileURL != "/static/videos/story_abc123.mp4" || len(entries[0].ID) != 8 {
		t.Fatalf("entry = %+v", entries[0])
	}

	if len(env.events.entries) != 1 || env.events.entries[0].ID != entries[0].ID {
		t.Fatalf("events = %+v", env.events.entries)
	}

	select {
	case path := <-env.uploader.paths:
		if filepath.Base(path) != "story_abc123.mp4" {
			t.Fatalf("uploaded %q", path)
		}
	case <-time.After(time.Second):
		t.Fatalf("video was not uploaded")
	}
}

func TestPublishRejectsBadInput(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := postForm(t, env.router, "/publish", map[string]string{"type": "gif", "file_url": "/x"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown type: %d", rec.Code)
	}
	rec = postForm(t, env.router, "/publish", map[string]string{"type": "photo"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing file: %d", rec.Code)
	}
}

func TestPublishStoreFailure(t *testing.T) {
	env := newTestEnv(t, failingStore{})

	rec := postForm(t, env.router, "/publish", map[string]string{"type": "photo", "file_url": "/static/images/a.png"})
	if rec.Code != http.StatusInternalServerError || decodeError(t, rec) != "JSON database error" {
		t.Fatalf("publish: %d %s", rec.Code, rec.Body.String())
	}
	if len(env.events.entries) != 0 {
		t.Fatalf("failed publication must not be announced")
	}
}

func TestDownload(t *testing.T) {
	env := newTestEnv(t, nil)
	postForm(t, env.router, "/generate-image", map[string]string{"prompt": "a dragon"})

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/download/art_00c0ffee.png", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "png" {
		t.Fatalf("download: %d %q", rec.Code, rec.Body.String())
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") || !strings.Contains(cd, "art_00c0ffee.png") {
		t.Fatalf("Content-Disposition = %q", cd)
	}

	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/download/missing.mp4", nil))
	if rec.Code != http.StatusNotFound || rec.Body.String() != "Not Found" {
		t.Fatalf("missing: %d %q", rec.Code, rec.Body.String())
	}
}

func TestEndToEndWithClient(t *testing.T) {
	env := newTestEnv(t, nil)
	srv := httptest.NewServer(env.router)
	defer srv.Close()

	api := client.NewClient(srv.URL)
	ctrl := studio.NewController(api, studio.Options{TickInterval: time.Hour})
	ctx := context.Background()

	if err := api.Health(ctx); err != nil {
		t.Fatalf("Health: %v", err)
	}
	result, err := ctrl.SubmitImageRequest(ctx, "a dragon over the hills")
	if err != nil {
		t.Fatalf("SubmitImageRequest: %v", err)
	}

	var img bytes.Buffer
	if _, err := api.Download(ctx, studio.Filename(result.MediaURL), &img); err != nil || img.String() != "png" {
		t.Fatalf("Download = %q, %v", img.String(), err)
	}

	resp, err := http.Get(api.Resolve(result.MediaURL))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("static file status = %d", resp.StatusCode)
	}

	if err := ctrl.SubmitPublish(ctx, "Dragon", "Over the hills", "fantasy"); err != nil {
		t.Fatalf("SubmitPublish: %v", err)
	}
	entries, err := api.Gallery(ctx, types.KindImage)
	if err != nil {
		t.Fatalf("Gallery: %v", err)
	}
	if len(entries) != 1 || entries[0].FileURL != result.MediaURL || entries[0].Type != types.KindImage {
		t.Fatalf("entries = %+v", entries)
	}

	videos, err := api.Gallery(ctx, types.KindVideo)
	if err != nil || len(videos) != 0 {
		t.Fatalf("videos = %+v, %v", videos, err)
	}
}
