package services

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
)

func TestSocialService(t *testing.T) {
	t.Run("CreateComment", func(t *testing.T) {
		t.Run("posts a top-level comment with a null parent", func(t *testing.T) {
			rec := &recorder{response: `{"id":11,"videoId":4,"text":"great"}`}
			svc := NewSocialService(newRecordedClient(t, rec))

			comment, err := svc.CreateComment(context.Background(), 4, "great", nil)
			if err != nil {
				t.Fatalf("create failed: %v", err)
			}
			if rec.method != http.MethodPost || rec.path != "/videos/4/comments" {
				t.Errorf("unexpected request %s %s", rec.method, rec.path)
			}

			var sent map[string]any
			json.Unmarshal(rec.body, &sent)
			if sent["text"] != "great" {
				t.Errorf("text not forwarded: %v", sent)
			}
			if parent, present := sent["parentCommentId"]; !present || parent != nil {
				t.Errorf("expected explicit null parentCommentId, got %v", sent)
			}
			if comment.ID != 11 {
				t.Errorf("unexpected comment: %+v", comment)
			}
		})

		t.Run("posts a reply with the parent id", func(t *testing.T) {
			rec := &recorder{response: `{"id":12,"parentCommentId":11}`}
			svc := NewSocialService(newRecordedClient(t, rec))

			parent := int64(11)
			if _, err := svc.CreateComment(context.Background(), 4, "agreed", &parent); err != nil {
				t.Fatalf("reply failed: %v", err)
			}

			var sent map[string]any
			json.Unmarshal(rec.body, &sent)
			if sent["parentCommentId"] != float64(11) {
				t.Errorf("parent id not forwarded: %v", sent)
			}
		})
	})

	t.Run("Comments and Replies use their sort orders", func(t *testing.T) {
		rec := &recorder{response: `{"content":[],"totalElements":0}`}
		svc := NewSocialService(newRecordedClient(t, rec))

		if _, err := svc.Comments(context.Background(), 4, 0, 0); err != nil {
			t.Fatalf("comments failed: %v", err)
		}
		if rec.path != "/videos/4/comments" || rec.query.Get("sort") != "createdAt,desc" {
			t.Errorf("unexpected request %s sort=%s", rec.path, rec.query.Get("sort"))
		}

		if _, err := svc.Replies(context.Background(), 11, 0, 0); err != nil {
			t.Fatalf("replies failed: %v", err)
		}
		if rec.path != "/comments/11/replies" || rec.query.Get("sort") != "createdAt,asc" {
			t.Errorf("unexpected request %s sort=%s", rec.path, rec.query.Get("sort"))
		}
	})

	t.Run("UpdateComment and DeleteComment target the comment routes", func(t *testing.T) {
		rec := &recorder{response: `{"id":11,"text":"edited"}`}
		svc := NewSocialService(newRecordedClient(t, rec))

		comment, err := svc.UpdateComment(context.Background(), 11, "edited")
		if err != nil {
			t.Fatalf("update failed: %v", err)
		}
		if rec.method != http.MethodPut || rec.path != "/comments/11" {
			t.Errorf("unexpected request %s %s", rec.method, rec.path)
		}
		if comment.Text != "edited" {
			t.Errorf("unexpected comment: %+v", comment)
		}

		if err := svc.DeleteComment(context.Background(), 11); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if rec.method != http.MethodDelete || rec.path != "/comments/11" {
			t.Errorf("unexpected request %s %s", rec.method, rec.path)
		}
	})

	t.Run("Rate", func(t *testing.T) {
		t.Run("rejects out-of-range values locally", func(t *testing.T) {
			rec := &recorder{response: `{}`}
			svc := NewSocialService(newRecordedClient(t, rec))

			for _, value := range []int{0, 6, -1} {
				if err := svc.Rate(context.Background(), 4, value); err == nil {
					t.Errorf("rating %d should be rejected", value)
				}
			}
			if rec.method != "" {
				t.Error("invalid ratings must not reach the network")
			}
		})

		t.Run("PUTs a valid rating", func(t *testing.T) {
			rec := &recorder{response: `{}`}
			svc := NewSocialService(newRecordedClient(t, rec))

			if err := svc.Rate(context.Background(), 4, 5); err != nil {
				t.Fatalf("rate failed: %v", err)
			}
			if rec.method != http.MethodPut || rec.path != "/videos/4/ratings" {
				t.Errorf("unexpected request %s %s", rec.method, rec.path)
			}

			var sent map[string]int
			json.Unmarshal(rec.body, &sent)
			if sent["ratingValue"] != 5 {
				t.Errorf("rating not forwarded: %v", sent)
			}
		})
	})

	t.Run("rating queries", func(t *testing.T) {
		rec := &recorder{response: `{"videoId":4,"ratingValue":3}`}
		svc := NewSocialService(newRecordedClient(t, rec))

		mine, err := svc.MyRating(context.Background(), 4)
		if err != nil {
			t.Fatalf("my rating failed: %v", err)
		}
		if rec.path != "/videos/4/ratings/my-rating" {
			t.Errorf("unexpected path %s", rec.path)
		}
		if mine.RatingValue != 3 {
			t.Errorf("unexpected rating: %+v", mine)
		}

		rec.response = `{"videoId":4,"averageRating":4.2,"ratingCount":17}`
		summary, err := svc.RatingSummary(context.Background(), 4)
		if err != nil {
			t.Fatalf("summary failed: %v", err)
		}
		if rec.path != "/videos/4/ratings/summary" {
			t.Errorf("unexpected path %s", rec.path)
		}
		if summary.AverageRating != 4.2 || summary.RatingCount != 17 {
			t.Errorf("unexpected summary: %+v", summary)
		}

		if err := svc.DeleteRating(context.Background(), 4); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if rec.method != http.MethodDelete || rec.path != "/videos/4/ratings" {
			t.Errorf("unexpected request %s %s", rec.method, rec.path)
		}
	})
}
