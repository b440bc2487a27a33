package tui

import (
	"errors"

	"github.com/propseller/propseller/internal/api"
	"github.com/propseller/propseller/internal/identity"
	"github.com/propseller/propseller/internal/listing"
	"github.com/propseller/propseller/internal/media"
	"github.com/propseller/propseller/internal/profile"
	"github.com/propseller/propseller/internal/session"
	"github.com/propseller/propseller/internal/verify"
)

// userMessage maps an error to the line shown in the footer. Server
// rejections surface near-verbatim; local validation errors name the
// problem; anything else gets a generic retry prompt.
func userMessage(err error) string {
	if err == nil {
		return ""
	}
	if api.IsRemote(err) {
		return api.RemoteMessage(err)
	}

	var profileErr *profile.ValidationError
	var listingErr *listing.ValidationError
	switch {
	case errors.As(err, &profileErr):
		return "Please fill in: " + profileErr.Field
	case errors.As(err, &listingErr):
		return "Please fill in: " + listingErr.Field
	case errors.Is(err, verify.ErrInvalidFormat):
		return "That does not look like a valid mobile number"
	case errors.Is(err, verify.ErrInvalidState):
		return "Send a code first"
	case errors.Is(err, identity.ErrInvalidCode):
		return "The verification code must be numeric"
	case errors.Is(err, media.ErrQuotaExceeded):
		return "Media limit reached for this submission"
	case errors.Is(err, session.ErrDecode):
		return "Sign-in succeeded but the session could not be established; please try again"
	}
	return "Something went wrong; please check your connection and try again"
}
