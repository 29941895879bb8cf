package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/cloudflix/flixctl/internal/api"
	"github.com/cloudflix/flixctl/internal/models"
)

const (
	adminUsersPath  = "/admin/users"
	adminVideosPath = "/admin/videos"
)

// AdminService exposes the admin console's user and video management
// operations. The server enforces the administrative role; this client only
// pre-checks it for friendlier errors.
type AdminService struct {
	client *api.Client
}

// NewAdminService creates an admin service over the request pipeline.
func NewAdminService(client *api.Client) *AdminService {
	return &AdminService{client: client}
}

// Users retrieves all accounts, oldest first.
func (s *AdminService) Users(ctx context.Context, page, size int) (*models.Page[models.AdminUser], error) {
	if size <= 0 {
		size = 10
	}

	resp, err := s.client.GetQuery(ctx, adminUsersPath, pageParams(page, size, "createdAt,asc"))
	if err != nil {
		return nil, err
	}

	var result models.Page[models.AdminUser]
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// User retrieves one account by ID.
func (s *AdminService) User(ctx context.Context, userID int64) (*models.AdminUser, error) {
	resp, err := s.client.Get(ctx, fmt.Sprintf("%s/%d", adminUsersPath, userID))
	if err != nil {
		return nil, err
	}

	var user models.AdminUser
	if err := resp.Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserRoles replaces an account's role set.
func (s *AdminService) UpdateUserRoles(ctx context.Context, userID int64, roles []string) error {
	_, err := s.client.Put(ctx, fmt.Sprintf("%s/%d/roles", adminUsersPath, userID), map[string][]string{"roles": roles})
	return err
}

// UpdateUserActive enables or disables an account.
func (s *AdminService) UpdateUserActive(ctx context.Context, userID int64, active bool) error {
	_, err := s.client.Patch(ctx, fmt.Sprintf("%s/%d/status", adminUsersPath, userID), map[string]bool{"active": active})
	return err
}

// Videos retrieves all videos regardless of status, newest first.
func (s *AdminService) Videos(ctx context.Context, page, size int) (*models.Page[models.Video], error) {
	if size <= 0 {
		size = 10
	}

	resp, err := s.client.GetQuery(ctx, adminVideosPath, pageParams(page, size, "uploadTimestamp,desc"))
	if err != nil {
		return nil, err
	}

	var result models.Page[models.Video]
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateVideoStatus changes a video's availability. The status travels as a
// query parameter with an empty body, matching the server contract.
func (s *AdminService) UpdateVideoStatus(ctx context.Context, videoID int64, status string) error {
	params := url.Values{}
	params.Set("status", status)
	path := fmt.Sprintf("%s/%d/status?%s", adminVideosPath, videoID, params.Encode())
	_, err := s.client.Patch(ctx, path, nil)
	return err
}

// UpdateVideoMetadata replaces a video's metadata.
func (s *AdminService) UpdateVideoMetadata(ctx context.Context, videoID int64, metadata models.UploadMetadata) error {
	_, err := s.client.Put(ctx, fmt.Sprintf("%s/%d", adminVideosPath, videoID), metadata)
	return err
}

// DeleteVideo removes a video entirely.
func (s *AdminService) DeleteVideo(ctx context.Context, videoID int64) error {
	_, err := s.client.Delete(ctx, fmt.Sprintf("%s/%d", adminVideosPath, videoID))
	return err
}
