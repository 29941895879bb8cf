package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/cloudflix/flixctl/internal/models"
	"github.com/cloudflix/flixctl/internal/shared"
)

const adminRole = "ROLE_ADMIN"

// AdminUsersList lists user accounts.
func (r *Runner) AdminUsersList(ctx context.Context, cmd *cli.Command) error {
	if err := r.guard.RequireRole(adminRole); err != nil {
		return err
	}

	page, err := r.admin.Users(ctx, int(cmd.Int("page")), int(cmd.Int("size")))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, cmd.Bool("pretty"))
	}

	for _, user := range page.Content {
		state := "active"
		if !user.Active {
			state = "disabled"
		}
		r.writePlain("%6d  %-30s %-8s %s\n", user.ID, user.Email, state, strings.Join(user.Roles, ","))
	}
	return r.writePlain("Page %d of %d (%d total)\n", page.Number+1, page.TotalPages, page.TotalElements)
}

// AdminUsersShow prints one account.
func (r *Runner) AdminUsersShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.guard.RequireRole(adminRole); err != nil {
		return err
	}

	id, err := parseIDArg(cmd, "id")
	if err != nil {
		return err
	}

	user, err := r.admin.User(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(user, cmd.Bool("pretty"))
	}

	r.writePlainHeader(user.Email)
	r.writePlain("Name: %s %s\n", user.FirstName, user.LastName)
	r.writePlain("Roles: %s\n", strings.Join(user.Roles, ", "))
	r.writePlain("Active: %v\n", user.Active)
	return nil
}

// AdminUsersRoles replaces a user's role set.
func (r *Runner) AdminUsersRoles(ctx context.Context, cmd *cli.Command) error {
	if err := r.guard.RequireRole(adminRole); err != nil {
		return err
	}

	id, err := parseIDArg(cmd, "id")
	if err != nil {
		return err
	}

	roles := cmd.StringSlice("role")
	if len(roles) == 0 {
		return fmt.Errorf("%w: at least one --role is required", shared.ErrMissingArgument)
	}

	if err := r.admin.UpdateUserRoles(ctx, id, roles); err != nil {
		return err
	}
	return r.writePlain("✓ Roles updated: %s\n", strings.Join(roles, ", "))
}

// AdminUsersActivate enables an account.
func (r *Runner) AdminUsersActivate(ctx context.Context, cmd *cli.Command) error {
	return r.setUserActive(ctx, cmd, true)
}

// AdminUsersDeactivate disables an account.
func (r *Runner) AdminUsersDeactivate(ctx context.Context, cmd *cli.Command) error {
	return r.setUserActive(ctx, cmd, false)
}

func (r *Runner) setUserActive(ctx context.Context, cmd *cli.Command, active bool) error {
	if err := r.guard.RequireRole(adminRole); err != nil {
		return err
	}

	id, err := parseIDArg(cmd, "id")
	if err != nil {
		return err
	}

	if err := r.admin.UpdateUserActive(ctx, id, active); err != nil {
		return err
	}

	if active {
		return r.writePlain("✓ Account enabled\n")
	}
	return r.writePlain("✓ Account disabled\n")
}

// AdminVideosList lists all videos regardless of status.
func (r *Runner) AdminVideosList(ctx context.Context, cmd *cli.Command) error {
	if err := r.guard.RequireRole(adminRole); err != nil {
		return err
	}

	page, err := r.admin.Videos(ctx, int(cmd.Int("page")), int(cmd.Int("size")))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, cmd.Bool("pretty"))
	}

	for _, video := range page.Content {
		r.writePlain("%6d  %-40s %s\n", video.ID, video.Title, video.Status)
	}
	return r.writePlain("Page %d of %d (%d total)\n", page.Number+1, page.TotalPages, page.TotalElements)
}

// AdminVideosStatus changes one video's status.
func (r *Runner) AdminVideosStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.guard.RequireRole(adminRole); err != nil {
		return err
	}

	id, err := parseIDArg(cmd, "id")
	if err != nil {
		return err
	}

	status := cmd.String("to")
	if err := r.admin.UpdateVideoStatus(ctx, id, status); err != nil {
		return err
	}
	return r.writePlain("✓ Status set to %s\n", status)
}

// AdminVideosEdit updates a video's metadata.
func (r *Runner) AdminVideosEdit(ctx context.Context, cmd *cli.Command) error {
	if err := r.guard.RequireRole(adminRole); err != nil {
		return err
	}

	id, err := parseIDArg(cmd, "id")
	if err != nil {
		return err
	}

	metadata := models.UploadMetadata{
		Title:       cmd.String("title"),
		Description: cmd.String("description"),
		Genre:       cmd.String("genre"),
		Tags:        cmd.StringSlice("tag"),
	}

	if err := r.admin.UpdateVideoMetadata(ctx, id, metadata); err != nil {
		return err
	}
	return r.writePlain("✓ Metadata updated\n")
}

// AdminVideosDelete removes a video from the catalog.
func (r *Runner) AdminVideosDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.guard.RequireRole(adminRole); err != nil {
		return err
	}

	id, err := parseIDArg(cmd, "id")
	if err != nil {
		return err
	}

	if err := r.admin.DeleteVideo(ctx, id); err != nil {
		return err
	}
	return r.writePlain("✓ Video deleted\n")
}
