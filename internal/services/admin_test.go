package services

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/cloudflix/flixctl/internal/models"
)

func TestAdminService(t *testing.T) {
	t.Run("Users pages oldest first", func(t *testing.T) {
		rec := &recorder{response: `{"content":[{"id":1,"email":"a@b.co","active":true,"roles":["ROLE_USER"]}],"totalElements":1,"totalPages":1}`}
		svc := NewAdminService(newRecordedClient(t, rec))

		page, err := svc.Users(context.Background(), 0, 0)
		if err != nil {
			t.Fatalf("users failed: %v", err)
		}
		if rec.path != "/admin/users" {
			t.Errorf("unexpected path %s", rec.path)
		}
		if rec.query.Get("sort") != "createdAt,asc" {
			t.Errorf("expected createdAt,asc sort, got %s", rec.query.Get("sort"))
		}
		if len(page.Content) != 1 || page.Content[0].Email != "a@b.co" {
			t.Errorf("unexpected page: %+v", page)
		}
	})

	t.Run("UpdateUserRoles PUTs the roles wrapper", func(t *testing.T) {
		rec := &recorder{response: `{}`}
		svc := NewAdminService(newRecordedClient(t, rec))

		if err := svc.UpdateUserRoles(context.Background(), 7, []string{"ROLE_USER", "ROLE_ADMIN"}); err != nil {
			t.Fatalf("update roles failed: %v", err)
		}
		if rec.method != http.MethodPut || rec.path != "/admin/users/7/roles" {
			t.Errorf("unexpected request %s %s", rec.method, rec.path)
		}

		var sent map[string][]string
		json.Unmarshal(rec.body, &sent)
		if len(sent["roles"]) != 2 || sent["roles"][1] != "ROLE_ADMIN" {
			t.Errorf("roles not forwarded: %v", sent)
		}
	})

	t.Run("UpdateUserActive PATCHes the status route", func(t *testing.T) {
		rec := &recorder{response: `{}`}
		svc := NewAdminService(newRecordedClient(t, rec))

		if err := svc.UpdateUserActive(context.Background(), 7, false); err != nil {
			t.Fatalf("update active failed: %v", err)
		}
		if rec.method != http.MethodPatch || rec.path != "/admin/users/7/status" {
			t.Errorf("unexpected request %s %s", rec.method, rec.path)
		}

		var sent map[string]bool
		json.Unmarshal(rec.body, &sent)
		if active, present := sent["active"]; !present || active {
			t.Errorf("expected active:false, got %v", sent)
		}
	})

	t.Run("UpdateVideoStatus sends status as a query parameter with no body", func(t *testing.T) {
		rec := &recorder{response: `{}`}
		svc := NewAdminService(newRecordedClient(t, rec))

		if err := svc.UpdateVideoStatus(context.Background(), 5, "BLOCKED"); err != nil {
			t.Fatalf("update status failed: %v", err)
		}
		if rec.method != http.MethodPatch || rec.path != "/admin/videos/5/status" {
			t.Errorf("unexpected request %s %s", rec.method, rec.path)
		}
		if rec.query.Get("status") != "BLOCKED" {
			t.Errorf("status must travel as a query parameter, got %v", rec.query)
		}
		if len(rec.body) != 0 {
			t.Errorf("expected empty body, got %q", rec.body)
		}
	})

	t.Run("UpdateVideoMetadata PUTs the metadata", func(t *testing.T) {
		rec := &recorder{response: `{}`}
		svc := NewAdminService(newRecordedClient(t, rec))

		metadata := models.UploadMetadata{Title: "New title", Genre: "Drama"}
		if err := svc.UpdateVideoMetadata(context.Background(), 5, metadata); err != nil {
			t.Fatalf("update metadata failed: %v", err)
		}
		if rec.method != http.MethodPut || rec.path != "/admin/videos/5" {
			t.Errorf("unexpected request %s %s", rec.method, rec.path)
		}

		var sent models.UploadMetadata
		json.Unmarshal(rec.body, &sent)
		if sent.Title != "New title" {
			t.Errorf("metadata not forwarded: %+v", sent)
		}
	})

	t.Run("DeleteVideo targets the admin route", func(t *testing.T) {
		rec := &recorder{response: `{}`}
		svc := NewAdminService(newRecordedClient(t, rec))

		if err := svc.DeleteVideo(context.Background(), 5); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if rec.method != http.MethodDelete || rec.path != "/admin/videos/5" {
			t.Errorf("unexpected request %s %s", rec.method, rec.path)
		}
	})
}
