// package models defines the data model for the CloudFlix terminal client
package models

import (
	"encoding/json"
	"time"
)

// Model defines the base interface for all persistent models in the local cache.
// Implementations include CachedVideo and WatchEntry.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error // Create inserts a new model into the database
	Get(id string) (T, error)
	Update(model T) error
	Delete(id string) error // Delete soft-deletes a model by setting deleted_at
	List() ([]T, error)
}

// Session represents the currently authenticated identity.
//
// The server's signin response body is kept verbatim so the persisted record
// matches it byte-for-byte, including profile fields this client does not
// model explicitly.
type Session struct {
	AccessToken string   `json:"accessToken"`
	UserID      int64    `json:"id"`
	Email       string   `json:"email"`
	FirstName   string   `json:"firstName"`
	Roles       []string `json:"roles"`

	raw json.RawMessage
}

// UnmarshalJSON decodes the known fields and retains the original payload.
func (s *Session) UnmarshalJSON(data []byte) error {
	type alias Session
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*s = Session(a)
	s.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON re-emits the original server payload when one was captured.
func (s Session) MarshalJSON() ([]byte, error) {
	if len(s.raw) > 0 {
		return s.raw, nil
	}
	type alias Session
	return json.Marshal(alias(s))
}

// HasRole reports whether the session carries the given role string.
func (s *Session) HasRole(role string) bool {
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports membership in the administrative role.
func (s *Session) IsAdmin() bool {
	return s.HasRole("ROLE_ADMIN")
}

// RegistrationForm carries the signup fields.
// MiddleName is omitted from the wire payload entirely when empty.
type RegistrationForm struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	MiddleName  string `json:"middleName,omitempty"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DateOfBirth string `json:"dateOfBirth"`
}

// Video represents a catalog entry returned by the API.
type Video struct {
	ID              int64    `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Genre           string   `json:"genre"`
	Tags            []string `json:"tags"`
	DurationSeconds int      `json:"durationSeconds"`
	Status          string   `json:"status"`
	ThumbnailURL    string   `json:"thumbnailUrl"`
	UploadTimestamp string   `json:"uploadTimestamp"`
	UploaderID      int64    `json:"uploaderId"`
}

// Page is the server's pagination envelope.
type Page[T any] struct {
	Content       []T  `json:"content"`
	Number        int  `json:"number"`
	Size          int  `json:"size"`
	TotalElements int  `json:"totalElements"`
	TotalPages    int  `json:"totalPages"`
	First         bool `json:"first"`
	Last          bool `json:"last"`
}

// StreamURL is the short-lived playback address for a video.
type StreamURL struct {
	VideoID int64  `json:"videoId"`
	URL     string `json:"url"`
}

// WatchProgress is the resume state reported for a video.
type WatchProgress struct {
	ResumePositionSeconds int  `json:"resumePositionSeconds"`
	Completed             bool `json:"completed"`
}

// HistoryEntry is one row of the user's watch history.
type HistoryEntry struct {
	ID                    int64  `json:"id"`
	VideoID               int64  `json:"videoId"`
	VideoTitle            string `json:"videoTitle"`
	ThumbnailURL          string `json:"thumbnailUrl"`
	ResumePositionSeconds int    `json:"resumePositionSeconds"`
	Completed             bool   `json:"completed"`
	WatchedAt             string `json:"watchedAt"`
}

// Comment is a top-level comment or reply on a video.
type Comment struct {
	ID              int64  `json:"id"`
	VideoID         int64  `json:"videoId"`
	Text            string `json:"text"`
	AuthorID        int64  `json:"authorId"`
	AuthorName      string `json:"authorName"`
	ParentCommentID *int64 `json:"parentCommentId"`
	ReplyCount      int    `json:"replyCount"`
	CreatedAt       string `json:"createdAt"`
}

// Rating is the caller's rating for a video (1-5).
type Rating struct {
	VideoID     int64 `json:"videoId"`
	RatingValue int   `json:"ratingValue"`
}

// RatingSummary aggregates ratings for a video.
type RatingSummary struct {
	VideoID       int64   `json:"videoId"`
	AverageRating float64 `json:"averageRating"`
	RatingCount   int     `json:"ratingCount"`
}

// UploadMetadata describes a video being uploaded.
// Serialized to a JSON string part alongside the binary file part.
type UploadMetadata struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Genre       string   `json:"genre"`
	Tags        []string `json:"tags,omitempty"`
}

// AdminUser is the admin console's view of an account.
type AdminUser struct {
	ID        int64    `json:"id"`
	Email     string   `json:"email"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Roles     []string `json:"roles"`
	Active    bool     `json:"active"`
	CreatedAt string   `json:"createdAt"`
}

// PaymentRequest is the test transaction payload.
type PaymentRequest struct {
	CardNumber string  `json:"cardNumber"`
	ExpiryDate string  `json:"expiryDate"`
	CVV        string  `json:"cvv"`
	Amount     float64 `json:"amount"`
	PlanName   string  `json:"planName"`
}

// MessageResponse is the server's generic acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}
