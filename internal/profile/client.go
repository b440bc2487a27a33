// internal/profile/client.go
//
// Remote operations on the seller profile. Create and update are not
// symmetric on the wire: create is a JSON document with proper arrays,
// update is a multipart form with CSV-joined lists and repeated parts for
// upload URLs. The server requires each shape on its own endpoint, so
// both are kept exactly as observed.

package profile

import (
	"context"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/propseller/propseller/internal/api"
)

const deletedDetails = "This profile is deleted."

// FetchResult is the outcome of a profile fetch.
type FetchResult struct {
	Exists bool
	Record Record
}

// Service performs profile calls against the remote API.
type Service struct {
	api *api.Client
}

// NewService wraps the shared API client.
func NewService(client *api.Client) *Service {
	return &Service{api: client}
}

// fetchEnvelope tolerates both response shapes the endpoint has been seen
// returning: the record under "sellerProfile" or under "data".
type fetchEnvelope struct {
	SellerProfile *Record `json:"sellerProfile"`
	Data          *Record `json:"data"`
}

// Get fetches the caller's profile. A rejection that names the deleted
// tombstone maps to an existing deleted record; any other rejection maps
// to no record. Transport failures propagate.
func (s *Service) Get(ctx context.Context) (FetchResult, error) {
	var env fetchEnvelope
	err := s.api.GetJSON(ctx, "/SellerProfile/GetSellerProfile", &env)
	if err != nil {
		if api.RemoteMessage(err) == deletedDetails {
			return FetchResult{Exists: true, Record: Record{Status: deletedStatus}}, nil
		}
		if api.IsRemote(err) {
			return FetchResult{}, nil
		}
		return FetchResult{}, err
	}
	switch {
	case env.SellerProfile != nil:
		return FetchResult{Exists: true, Record: *env.SellerProfile}, nil
	case env.Data != nil:
		return FetchResult{Exists: true, Record: *env.Data}, nil
	}
	return FetchResult{}, fmt.Errorf("profile: fetch response carried no record")
}

type createRequest struct {
	Name          string   `json:"Name"`
	Email         string   `json:"Email"`
	PhoneNumber   string   `json:"PhoneNumber"`
	NumberOfYears int      `json:"NumberOfYears"`
	ServingStates []string `json:"ServingStates"`
	Languages     []string `json:"Languages"`
	Market        []string `json:"Market"`

	UserProfileImage      string   `json:"UserProfileImage"`
	PassportUploads       []string `json:"PassportUploads"`
	DriversLicenseUploads []string `json:"DriversLicenseUploads"`
	StateIDUploads        []string `json:"StateIDUploads"`
	MilitaryIDUploads     []string `json:"MilitaryIdUploads"`
	GreenCardUploads      []string `json:"GreenCardUploads"`
	VotersCardUploads     []string `json:"VotersCardUploads"`

	BusinessName      string `json:"BusinessName,omitempty"`
	PersonalWebsite   string `json:"PersonalWebsite,omitempty"`
	RealStateIDNo     string `json:"RealStateIdNo,omitempty"`
	RealStateID       string `json:"RealStateId,omitempty"`
	CompanyLogo       string `json:"CompanyLogo,omitempty"`
	BrokerName        string `json:"BrokerName,omitempty"`
	BrokerContact     string `json:"BrokerContact,omitempty"`
	GeographicalAreas string `json:"GeographicalAreas,omitempty"`
	AboutMe           string `json:"AboutMe,omitempty"`
	Facebook          string `json:"Facebook,omitempty"`
	Twitter           string `json:"Twitter,omitempty"`
	LinkedIn          string `json:"LinkedIn,omitempty"`
	Youtube           string `json:"Youtube,omitempty"`
	TikTok            string `json:"TikTok,omitempty"`
	Instagram         string `json:"Instagram,omitempty"`
}

// Create submits a new profile as a JSON document. List fields stay
// arrays; optional scalar fields are sent only when they hold a real
// value.
func (s *Service) Create(ctx context.Context, d Draft) error {
	req := createRequest{
		Name:          d.Name,
		Email:         d.Email,
		PhoneNumber:   d.PhoneNumber,
		NumberOfYears: d.NumberOfYears,
		ServingStates: orEmpty(d.ServingStates),
		Languages:     orEmpty(d.Languages),
		Market:        orEmpty(d.Markets),

		UserProfileImage:      d.UserProfileImage,
		PassportUploads:       orEmpty(d.PassportUploads),
		DriversLicenseUploads: orEmpty(d.DriversLicenseUploads),
		StateIDUploads:        orEmpty(d.StateIDUploads),
		MilitaryIDUploads:     orEmpty(d.MilitaryIDUploads),
		GreenCardUploads:      orEmpty(d.GreenCardUploads),
		VotersCardUploads:     orEmpty(d.VotersCardUploads),

		BusinessName:      CleanString(d.BusinessName),
		PersonalWebsite:   CleanString(d.PersonalWebsite),
		RealStateIDNo:     CleanString(d.RealStateIDNo),
		RealStateID:       CleanString(d.RealStateID),
		CompanyLogo:       CleanString(d.CompanyLogo),
		BrokerName:        CleanString(d.BrokerName),
		BrokerContact:     CleanString(d.BrokerContact),
		GeographicalAreas: CleanString(d.GeographicalAreas),
		AboutMe:           CleanString(d.AboutMe),
		Facebook:          CleanString(d.Facebook),
		Twitter:           CleanString(d.Twitter),
		LinkedIn:          CleanString(d.LinkedIn),
		Youtube:           CleanString(d.Youtube),
		TikTok:            CleanString(d.TikTok),
		Instagram:         CleanString(d.Instagram),
	}
	return s.api.PostJSON(ctx, "/SellerProfile/CreateSellerProfile", req, nil)
}

// Update submits profile changes as a multipart form. Lists are joined
// with commas; each upload category writes one part per URL, or a single
// empty part when the category has none so the server clears it.
func (s *Service) Update(ctx context.Context, d Draft) error {
	return s.api.PostForm(ctx, "/SellerProfile/UpdateSellerProfile", func(w *multipart.Writer) error {
		required := map[string]string{
			"Name":          d.Name,
			"Email":         d.Email,
			"PhoneNumber":   d.PhoneNumber,
			"NumberOfYears": strconv.Itoa(d.NumberOfYears),
		}
		for name, value := range required {
			if err := w.WriteField(name, value); err != nil {
				return err
			}
		}

		optional := []struct {
			name  string
			value string
		}{
			{"BusinessName", d.BusinessName},
			{"PersonalWebsite", d.PersonalWebsite},
			{"UserProfileImage", d.UserProfileImage},
			{"CompanyLogo", d.CompanyLogo},
			{"RealStateIdNo", d.RealStateIDNo},
			{"RealStateId", d.RealStateID},
			{"BrokerName", d.BrokerName},
			{"BrokerContact", d.BrokerContact},
			{"GeographicalAreas", d.GeographicalAreas},
			{"AboutMe", d.AboutMe},
			{"Facebook", d.Facebook},
			{"Twitter", d.Twitter},
			{"LinkedIn", d.LinkedIn},
			{"Youtube", d.Youtube},
			{"TikTok", d.TikTok},
			{"Instagram", d.Instagram},
		}
		for _, f := range optional {
			if !RealString(f.value) {
				continue
			}
			if err := w.WriteField(f.name, f.value); err != nil {
				return err
			}
		}

		lists := []struct {
			name   string
			values []string
		}{
			{"ServingStates", d.ServingStates},
			{"Languages", d.Languages},
			{"Market", d.Markets},
		}
		for _, l := range lists {
			if len(l.values) == 0 {
				continue
			}
			if err := w.WriteField(l.name, strings.Join(l.values, ",")); err != nil {
				return err
			}
		}

		uploads := []struct {
			name string
			urls []string
		}{
			{"PassportUploads", d.PassportUploads},
			{"DriversLicenseUploads", d.DriversLicenseUploads},
			{"StateIDUploads", d.StateIDUploads},
			{"MilitaryIdUploads", d.MilitaryIDUploads},
			{"GreenCardUploads", d.GreenCardUploads},
			{"VotersCardUploads", d.VotersCardUploads},
		}
		for _, u := range uploads {
			if len(u.urls) == 0 {
				if err := w.WriteField(u.name, ""); err != nil {
					return err
				}
				continue
			}
			for _, url := range u.urls {
				if err := w.WriteField(u.name, url); err != nil {
					return err
				}
			}
		}
		return nil
	}, nil)
}

// Delete removes the caller's profile. The endpoint answers plain text.
func (s *Service) Delete(ctx context.Context) (string, error) {
	return s.api.PostText(ctx, "/SellerProfile/DeleteSellerProfile", struct{}{})
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
