package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"strconv"

	"github.com/cloudflix/flixctl/internal/api"
	"github.com/cloudflix/flixctl/internal/models"
)

const (
	videosPath = "/videos"
	uploadPath = "/upload"
)

// VideoService provides catalog queries, playback URLs, and uploads.
type VideoService struct {
	client *api.Client
}

// NewVideoService creates a video service over the request pipeline.
func NewVideoService(client *api.Client) *VideoService {
	return &VideoService{client: client}
}

// pageParams builds the server's pagination query values.
func pageParams(page, size int, sort string) url.Values {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("size", strconv.Itoa(size))
	if sort != "" {
		params.Set("sort", sort)
	}
	return params
}

// List retrieves available videos, newest first by default.
func (s *VideoService) List(ctx context.Context, page, size int, sort string) (*models.Page[models.Video], error) {
	if size <= 0 {
		size = 20
	}
	if sort == "" {
		sort = "uploadTimestamp,desc"
	}

	resp, err := s.client.GetQuery(ctx, videosPath, pageParams(page, size, sort))
	if err != nil {
		return nil, err
	}

	var result models.Page[models.Video]
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Get retrieves a single video by ID.
func (s *VideoService) Get(ctx context.Context, videoID int64) (*models.Video, error) {
	resp, err := s.client.Get(ctx, fmt.Sprintf("%s/%d", videosPath, videoID))
	if err != nil {
		return nil, err
	}

	var video models.Video
	if err := resp.Decode(&video); err != nil {
		return nil, err
	}
	return &video, nil
}

// ByGenre retrieves videos in the given genre.
func (s *VideoService) ByGenre(ctx context.Context, genre string, page, size int) (*models.Page[models.Video], error) {
	if size <= 0 {
		size = 20
	}

	path := fmt.Sprintf("%s/genre/%s", videosPath, url.PathEscape(genre))
	resp, err := s.client.GetQuery(ctx, path, pageParams(page, size, ""))
	if err != nil {
		return nil, err
	}

	var result models.Page[models.Video]
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ByTag retrieves videos carrying the given tag.
func (s *VideoService) ByTag(ctx context.Context, tag string, page, size int) (*models.Page[models.Video], error) {
	if size <= 0 {
		size = 20
	}

	path := fmt.Sprintf("%s/tag/%s", videosPath, url.PathEscape(tag))
	resp, err := s.client.GetQuery(ctx, path, pageParams(page, size, ""))
	if err != nil {
		return nil, err
	}

	var result models.Page[models.Video]
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Genres retrieves the distinct available genres.
func (s *VideoService) Genres(ctx context.Context) ([]string, error) {
	resp, err := s.client.Get(ctx, videosPath+"/genres")
	if err != nil {
		return nil, err
	}

	var genres []string
	if err := resp.Decode(&genres); err != nil {
		return nil, err
	}
	return genres, nil
}

// Search finds videos by title.
func (s *VideoService) Search(ctx context.Context, title string, page, size int) (*models.Page[models.Video], error) {
	if size <= 0 {
		size = 20
	}

	params := pageParams(page, size, "")
	params.Set("title", title)

	resp, err := s.client.GetQuery(ctx, videosPath+"/search", params)
	if err != nil {
		return nil, err
	}

	var result models.Page[models.Video]
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// StreamURL retrieves the short-lived playback address for a video.
func (s *VideoService) StreamURL(ctx context.Context, videoID int64) (*models.StreamURL, error) {
	resp, err := s.client.Get(ctx, fmt.Sprintf("%s/%d/stream-url", videosPath, videoID))
	if err != nil {
		return nil, err
	}

	var stream models.StreamURL
	if err := resp.Decode(&stream); err != nil {
		return nil, err
	}
	return &stream, nil
}

// Upload sends a video file plus its metadata as multipart form data.
// The metadata travels as a JSON string part named "metadata", matching
// what the server's @RequestPart handler expects.
func (s *VideoService) Upload(ctx context.Context, filename string, file io.Reader, metadata models.UploadMetadata) (*models.MessageResponse, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("videoFile", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to copy file data: %w", err)
	}

	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if err := writer.WriteField("metadata", string(metadataJSON)); err != nil {
		return nil, fmt.Errorf("failed to write metadata part: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	resp, err := s.client.PostMultipart(ctx, uploadPath+"/video", writer.FormDataContentType(), &buf)
	if err != nil {
		return nil, err
	}

	var ack models.MessageResponse
	if err := resp.Decode(&ack); err != nil {
		return nil, err
	}
	return &ack, nil
}
