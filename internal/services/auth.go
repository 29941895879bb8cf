package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/cloudflix/flixctl/internal/api"
	"github.com/cloudflix/flixctl/internal/models"
	"github.com/cloudflix/flixctl/internal/shared"
)

const (
	signinPath = "/auth/signin"
	signupPath = "/auth/signup"

	// MinPasswordLength is enforced before any network call.
	MinPasswordLength = 6
)

// Basic local@domain shape. The server performs its own stricter checks.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)

// AuthService translates user-entered credentials into a Session by calling
// the remote authentication endpoints. It does not touch the credential
// store; persisting the result is the session context's job.
type AuthService struct {
	client *api.Client
}

// NewAuthService creates an auth service over the request pipeline.
func NewAuthService(client *api.Client) *AuthService {
	return &AuthService{client: client}
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login calls the sign-in endpoint and returns the response body verbatim
// as the prospective session. A failed call applies no side effects.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Session, error) {
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	resp, err := s.client.Post(ctx, signinPath, signinRequest{Email: email, Password: password})
	if err != nil {
		return nil, authError(shared.ErrAuthFailed, err)
	}

	var session models.Session
	if err := resp.Decode(&session); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}
	if session.AccessToken == "" {
		return nil, fmt.Errorf("%w: server response missing access token", shared.ErrAuthFailed)
	}

	return &session, nil
}

// Register calls the sign-up endpoint. The middle name is omitted from the
// payload entirely when not supplied. Returns the server's acknowledgement.
func (s *AuthService) Register(ctx context.Context, form models.RegistrationForm) (string, error) {
	if err := validateRegistration(form); err != nil {
		return "", err
	}

	resp, err := s.client.Post(ctx, signupPath, form)
	if err != nil {
		return "", authError(shared.ErrSignupFailed, err)
	}

	var ack models.MessageResponse
	if err := resp.Decode(&ack); err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrSignupFailed, err)
	}

	return ack.Message, nil
}

// authError normalizes a pipeline failure into the given kind, carrying the
// server-provided message when one exists.
func authError(kind error, err error) error {
	var httpErr *api.HTTPError
	if errors.As(err, &httpErr) {
		if msg := httpErr.Message(); msg != "" {
			return fmt.Errorf("%w: %s", kind, msg)
		}
		return fmt.Errorf("%w: status %d", kind, httpErr.Status)
	}
	return fmt.Errorf("%w: %v", kind, err)
}

func validateCredentials(email, password string) error {
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: email must look like local@domain", shared.ErrValidation)
	}
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", shared.ErrValidation, MinPasswordLength)
	}
	return nil
}

func validateRegistration(form models.RegistrationForm) error {
	if form.FirstName == "" {
		return fmt.Errorf("%w: first name is required", shared.ErrValidation)
	}
	if form.LastName == "" {
		return fmt.Errorf("%w: last name is required", shared.ErrValidation)
	}
	if form.DateOfBirth == "" {
		return fmt.Errorf("%w: date of birth is required", shared.ErrValidation)
	}
	return validateCredentials(form.Email, form.Password)
}
