// internal/identity/identity.go
//
// The identity service wraps the account endpoints: sign-up, email OTP
// verification, password creation, sign-in and the password reset flow.
// It returns raw server material (tokens, messages) and leaves session
// persistence to the session manager.

package identity

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/propseller/propseller/internal/api"
	"github.com/propseller/propseller/internal/config"
)

// ErrInvalidCode is returned when a verification code is not numeric.
// The account endpoints carry the OTP as a number, so a non-numeric code
// can be rejected before any network call.
var ErrInvalidCode = errors.New("identity: verification code must be numeric")

// Service performs account operations against the remote API.
type Service struct {
	api    *api.Client
	device config.DeviceConfig
}

// NewService creates an identity service using the given API client and
// device settings. The device settings supply the fixed profile-type and
// platform discriminators every sign-in carries.
func NewService(client *api.Client, device config.DeviceConfig) *Service {
	return &Service{api: client, device: device}
}

type signUpRequest struct {
	Email           string `json:"email"`
	UserProfileType int    `json:"userProfileType"`
}

// SignUpResult carries the server acknowledgement of a new registration.
type SignUpResult struct {
	Message string `json:"message"`
}

// SignUp registers a new account for the configured profile type. The
// server responds by sending a verification code to the email address.
func (s *Service) SignUp(ctx context.Context, email string) (SignUpResult, error) {
	var out SignUpResult
	req := signUpRequest{Email: strings.TrimSpace(email), UserProfileType: s.device.ProfileType}
	if err := s.api.PostJSON(ctx, "/Account/signup", req, &out); err != nil {
		return SignUpResult{}, err
	}
	return out, nil
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   int    `json:"otp"`
}

// VerifyCode confirms the emailed verification code. The endpoint answers
// with a plain-text message rather than JSON.
func (s *Service) VerifyCode(ctx context.Context, email, code string) (string, error) {
	otp, err := strconv.Atoi(strings.TrimSpace(code))
	if err != nil {
		return "", ErrInvalidCode
	}
	return s.api.PostText(ctx, "/Account/verify-otp", verifyOTPRequest{
		Email: strings.TrimSpace(email),
		OTP:   otp,
	})
}

type createPasswordRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreatePassword sets the initial password after registration. Plain-text
// response, same as code verification.
func (s *Service) CreatePassword(ctx context.Context, email, password string) (string, error) {
	return s.api.PostText(ctx, "/Account/create-password", createPasswordRequest{
		Email:    strings.TrimSpace(email),
		Password: password,
	})
}

type signInRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	DeviceToken     string `json:"deviceToken"`
	UserProfileType int    `json:"userProfileType"`
	Platform        int    `json:"platform"`
}

type signInResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// SignIn exchanges credentials for a bearer token. The caller hands the
// token to the session manager, which validates and persists it.
func (s *Service) SignIn(ctx context.Context, email, password string) (string, error) {
	req := signInRequest{
		Email:           strings.TrimSpace(email),
		Password:        password,
		DeviceToken:     s.device.Token,
		UserProfileType: s.device.ProfileType,
		Platform:        s.device.Platform,
	}
	var out signInResponse
	if err := s.api.PostJSON(ctx, "/Account/signin", req, &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", fmt.Errorf("identity: sign-in response carried no token")
	}
	return out.Token, nil
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPasswordResult acknowledges a reset request.
type ForgotPasswordResult struct {
	Message string `json:"message"`
}

// ForgotPassword asks the server to email a reset code.
func (s *Service) ForgotPassword(ctx context.Context, email string) (ForgotPasswordResult, error) {
	var out ForgotPasswordResult
	req := forgotPasswordRequest{Email: strings.TrimSpace(email)}
	if err := s.api.PostJSON(ctx, "/Account/forgot-password", req, &out); err != nil {
		return ForgotPasswordResult{}, err
	}
	return out, nil
}

type resetPasswordRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ResetPassword verifies the emailed reset code and, only on success,
// submits the new password. A wrong code stops the flow before the
// password changes hands.
func (s *Service) ResetPassword(ctx context.Context, email, code, password string) (string, error) {
	if _, err := s.VerifyCode(ctx, email, code); err != nil {
		return "", err
	}
	return s.api.PostText(ctx, "/Account/reset-password", resetPasswordRequest{
		Email:    strings.TrimSpace(email),
		Password: password,
	})
}
