package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/cloudflix/flixctl/internal/api"
	"github.com/cloudflix/flixctl/internal/models"
	"github.com/cloudflix/flixctl/internal/shared"
	tu "github.com/cloudflix/flixctl/internal/testing"
)

// recorder captures the last request the service dispatched and replies
// with a fixed body.
type recorder struct {
	method string
	path   string
	query  url.Values
	body   []byte

	status   int
	response string
}

func (rec *recorder) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.query = r.URL.Query()
		rec.body, _ = io.ReadAll(r.Body)
		if rec.status != 0 {
			w.WriteHeader(rec.status)
		}
		w.Write([]byte(rec.response))
	}
}

func newRecordedClient(t *testing.T, rec *recorder) *api.Client {
	t.Helper()
	server := httptest.NewServer(rec.handler())
	t.Cleanup(server.Close)
	return api.NewClient(server.URL, nil, &tu.MemoryStore{}, shared.NewLogger(nil))
}

const emptyPage = `{"content":[],"number":0,"size":20,"totalElements":0,"totalPages":0,"first":true,"last":true}`

func TestVideoService(t *testing.T) {
	t.Run("List", func(t *testing.T) {
		rec := &recorder{response: `{"content":[{"id":1,"title":"Dune"}],"number":0,"size":20,"totalElements":1,"totalPages":1}`}
		svc := NewVideoService(newRecordedClient(t, rec))

		page, err := svc.List(context.Background(), 0, 0, "")
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}

		if rec.path != "/videos" {
			t.Errorf("expected /videos, got %s", rec.path)
		}
		if rec.query.Get("size") != "20" {
			t.Errorf("expected default size 20, got %s", rec.query.Get("size"))
		}
		if rec.query.Get("sort") != "uploadTimestamp,desc" {
			t.Errorf("expected default sort, got %s", rec.query.Get("sort"))
		}
		if len(page.Content) != 1 || page.Content[0].Title != "Dune" {
			t.Errorf("unexpected page: %+v", page)
		}
	})

	t.Run("ByGenre escapes the genre segment", func(t *testing.T) {
		rec := &recorder{response: emptyPage}
		svc := NewVideoService(newRecordedClient(t, rec))

		if _, err := svc.ByGenre(context.Background(), "Sci Fi", 0, 10); err != nil {
			t.Fatalf("by genre failed: %v", err)
		}
		if rec.path != "/videos/genre/Sci Fi" {
			t.Errorf("expected decoded path /videos/genre/Sci Fi, got %s", rec.path)
		}
	})

	t.Run("ByTag targets the tag route", func(t *testing.T) {
		rec := &recorder{response: emptyPage}
		svc := NewVideoService(newRecordedClient(t, rec))

		if _, err := svc.ByTag(context.Background(), "classic", 1, 5); err != nil {
			t.Fatalf("by tag failed: %v", err)
		}
		if rec.path != "/videos/tag/classic" {
			t.Errorf("unexpected path %s", rec.path)
		}
		if rec.query.Get("page") != "1" || rec.query.Get("size") != "5" {
			t.Errorf("pagination not forwarded: %v", rec.query)
		}
	})

	t.Run("Genres decodes the list", func(t *testing.T) {
		rec := &recorder{response: `["Drama","Comedy"]`}
		svc := NewVideoService(newRecordedClient(t, rec))

		genres, err := svc.Genres(context.Background())
		if err != nil {
			t.Fatalf("genres failed: %v", err)
		}
		if rec.path != "/videos/genres" {
			t.Errorf("unexpected path %s", rec.path)
		}
		if len(genres) != 2 || genres[0] != "Drama" {
			t.Errorf("unexpected genres: %v", genres)
		}
	})

	t.Run("Search sends the title parameter", func(t *testing.T) {
		rec := &recorder{response: emptyPage}
		svc := NewVideoService(newRecordedClient(t, rec))

		if _, err := svc.Search(context.Background(), "blade runner", 0, 10); err != nil {
			t.Fatalf("search failed: %v", err)
		}
		if rec.path != "/videos/search" {
			t.Errorf("unexpected path %s", rec.path)
		}
		if rec.query.Get("title") != "blade runner" {
			t.Errorf("title param not forwarded: %v", rec.query)
		}
	})

	t.Run("Get and StreamURL hit the id routes", func(t *testing.T) {
		rec := &recorder{response: `{"id":42,"title":"Arrival"}`}
		svc := NewVideoService(newRecordedClient(t, rec))

		video, err := svc.Get(context.Background(), 42)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if rec.path != "/videos/42" {
			t.Errorf("unexpected path %s", rec.path)
		}
		if video.ID != 42 {
			t.Errorf("unexpected video: %+v", video)
		}

		rec.response = `{"videoId":42,"url":"https://cdn/42.m3u8"}`
		stream, err := svc.StreamURL(context.Background(), 42)
		if err != nil {
			t.Fatalf("stream url failed: %v", err)
		}
		if rec.path != "/videos/42/stream-url" {
			t.Errorf("unexpected path %s", rec.path)
		}
		if stream.URL != "https://cdn/42.m3u8" {
			t.Errorf("unexpected stream: %+v", stream)
		}
	})

	t.Run("Upload sends file and metadata parts", func(t *testing.T) {
		var fileContent, metadataPart, contentType string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			contentType = r.Header.Get("Content-Type")
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			file, header, err := r.FormFile("videoFile")
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			if header.Filename != "clip.mp4" {
				http.Error(w, "wrong filename", http.StatusBadRequest)
				return
			}
			data, _ := io.ReadAll(file)
			fileContent = string(data)
			metadataPart = r.FormValue("metadata")
			w.Write([]byte(`{"message":"Video uploaded successfully"}`))
		}))
		defer server.Close()

		client := api.NewClient(server.URL, nil, &tu.MemoryStore{}, shared.NewLogger(nil))
		svc := NewVideoService(client)

		metadata := models.UploadMetadata{Title: "Clip", Genre: "Short", Tags: []string{"test"}}
		ack, err := svc.Upload(context.Background(), "clip.mp4", strings.NewReader("binary-ish data"), metadata)
		if err != nil {
			t.Fatalf("upload failed: %v", err)
		}

		if ack.Message != "Video uploaded successfully" {
			t.Errorf("unexpected ack: %+v", ack)
		}
		if !strings.HasPrefix(contentType, "multipart/form-data") {
			t.Errorf("expected multipart content type, got %q", contentType)
		}
		if fileContent != "binary-ish data" {
			t.Errorf("file part corrupted: %q", fileContent)
		}

		// The metadata part is a JSON string, not a nested object.
		var decoded models.UploadMetadata
		if err := json.Unmarshal([]byte(metadataPart), &decoded); err != nil {
			t.Fatalf("metadata part is not valid JSON: %v", err)
		}
		if decoded.Title != "Clip" || decoded.Genre != "Short" {
			t.Errorf("unexpected metadata: %+v", decoded)
		}
	})
}
