// internal/listing/listing.go
//
// Property listings: local draft, validation and the remote operations.
// Create and update travel as multipart forms where list fields repeat
// one part per value and media parts carry the already-uploaded storage
// URLs, never file bytes.

package listing

import (
	"context"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/propseller/propseller/internal/api"
)

// Option catalogs for the draft editor. The server validates against the
// same sets.
var (
	PropertyTypes  = []string{"House", "Townhouse", "Condo", "Multifamily", "Manufactured", "Co-op"}
	HeatingOptions = []string{"Baseboard", "Forced Air", "Geothermal", "Heat Pump", "Radiant", "Stove", "Wall", "Other"}
	CoolingOptions = []string{"Central", "Evaporative", "Geothermal", "Refrigeration", "Wall", "Other"}
)

// Listing is the remote representation of one property.
type Listing struct {
	PropertyListingID    int      `json:"propertyListingId"`
	AccountID            string   `json:"accountId"`
	PropertyAddress      string   `json:"propertyAddress"`
	PropertyTypeName     string   `json:"propertyTypeName"`
	YearBuilt            int      `json:"yearBuilt"`
	Bedrooms             int      `json:"bedrooms"`
	Bathrooms            int      `json:"bathrooms"`
	SquareFoot           int      `json:"squareFoot"`
	Price                float64  `json:"price"`
	LotSize              string   `json:"lotSize"`
	Parking              []string `json:"parking"`
	HeatingSystems       []string `json:"heatingSystems"`
	CoolingSystems       []string `json:"coolingSystems"`
	SiteOrPropertyImages []string `json:"siteOrPropertyImages"`
	Documents            []string `json:"documents"`
	Description          string   `json:"description"`
	Networth             float64  `json:"networth"`
	RehabEstimate        float64  `json:"rehabEstimate"`
	AverageLeasePrice    float64  `json:"averageLeasePrice"`
	ImageCount           int      `json:"imageCount"`
	VideoCount           int      `json:"videoCount"`
	Views                int      `json:"views"`
	Saves                int      `json:"saves"`
	SoldStatus           string   `json:"soldStatus"`
	IsDeleted            bool     `json:"isDeleted"`
	IsExpired            bool     `json:"isExpired"`
	CreatedDate          string   `json:"createdDate"`
	ExpireDate           string   `json:"expireDate"`
}

// Page is one page of the caller's listings.
type Page struct {
	Items      []Listing `json:"items"`
	PageNumber int       `json:"pageNumber"`
	PageSize   int       `json:"pageSize"`
	TotalCount int       `json:"totalCount"`
	TotalPages int       `json:"totalPages"`
}

// Draft is the local editing state for one listing submission. Media
// slices hold uploaded storage URLs from the media pipeline.
type Draft struct {
	PropertyAddress string
	PropertyType    string
	YearBuilt       int
	Bedrooms        int
	Bathrooms       int
	SquareFoot      int
	Price           float64
	LotSize         string
	Parking         []string
	HeatingSystems  []string
	CoolingSystems  []string
	Description     string
	Networth        float64

	// Optional appraisal figures; nil means the user never entered one.
	RehabEstimate     *float64
	AverageLeasePrice *float64

	SiteOrPropertyImages []string
	Documents            []string
	ImageCount           int
	VideoCount           int
}

// ValidationError names the first missing required field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("listing: required field %q is missing", e.Field)
}

// Validate checks the draft's required fields in a fixed order. Raised
// locally, before any network call.
func (d Draft) Validate() error {
	switch {
	case strings.TrimSpace(d.PropertyAddress) == "":
		return &ValidationError{Field: "propertyAddress"}
	case strings.TrimSpace(d.PropertyType) == "":
		return &ValidationError{Field: "propertyType"}
	case d.YearBuilt == 0:
		return &ValidationError{Field: "yearBuilt"}
	case d.Price <= 0:
		return &ValidationError{Field: "price"}
	case d.SquareFoot <= 0:
		return &ValidationError{Field: "squareFoot"}
	}
	return nil
}

// Service performs listing calls against the remote API.
type Service struct {
	api *api.Client
}

// NewService wraps the shared API client.
func NewService(client *api.Client) *Service {
	return &Service{api: client}
}

// List fetches one page of the caller's listings.
func (s *Service) List(ctx context.Context, pageNumber, pageSize int) (Page, error) {
	var page Page
	path := fmt.Sprintf("/PropertyListings/GetLoggedUserPropertyListings?pageNumber=%d&pageSize=%d", pageNumber, pageSize)
	if err := s.api.GetJSON(ctx, path, &page); err != nil {
		return Page{}, err
	}
	return page, nil
}

// Create submits a new listing.
func (s *Service) Create(ctx context.Context, d Draft) error {
	if err := d.Validate(); err != nil {
		return err
	}
	return s.api.PostForm(ctx, "/PropertyListings/CreatePropertyListing", d.writeForm, nil)
}

// Update resubmits an existing listing under its identifier.
func (s *Service) Update(ctx context.Context, id int, d Draft) error {
	if err := d.Validate(); err != nil {
		return err
	}
	path := fmt.Sprintf("/PropertyListings/UpdatePropertyListing/%d", id)
	return s.api.PostForm(ctx, path, d.writeForm, nil)
}

// Delete removes a listing. The remote copy of its media stays in place.
func (s *Service) Delete(ctx context.Context, id int) error {
	return s.api.PostJSON(ctx, fmt.Sprintf("/PropertyListings/DeletePropertyListing?id=%d", id), nil, nil)
}

// MarkSold toggles a listing's sold status.
func (s *Service) MarkSold(ctx context.Context, id int) error {
	return s.api.PostJSON(ctx, fmt.Sprintf("/PropertyListings/UpdateSoldStatus?id=%d", id), nil, nil)
}

// Renew extends an expired listing.
func (s *Service) Renew(ctx context.Context, id int) error {
	return s.api.PostJSON(ctx, fmt.Sprintf("/PropertyListings/RenewProperty/%d", id), nil, nil)
}

func (d Draft) writeForm(w *multipart.Writer) error {
	// Media parts carry only storage URLs; anything else is dropped.
	for _, url := range d.SiteOrPropertyImages {
		if !strings.HasPrefix(strings.TrimSpace(url), "http") {
			continue
		}
		if err := w.WriteField("SiteOrPropertyImages", strings.TrimSpace(url)); err != nil {
			return err
		}
	}
	for _, url := range d.Documents {
		if !strings.HasPrefix(strings.TrimSpace(url), "http") {
			continue
		}
		if err := w.WriteField("Documents", strings.TrimSpace(url)); err != nil {
			return err
		}
	}

	scalars := []struct {
		name  string
		value string
	}{
		{"PropertyAddress", d.PropertyAddress},
		{"PropertyType", d.PropertyType},
		{"YearBuilt", strconv.Itoa(d.YearBuilt)},
		{"Price", formatFloat(d.Price)},
		{"Bedrooms", strconv.Itoa(d.Bedrooms)},
		{"Bathrooms", strconv.Itoa(d.Bathrooms)},
		{"LotSize", d.LotSize},
		{"SquareFoot", strconv.Itoa(d.SquareFoot)},
		{"Description", d.Description},
		{"Networth", formatFloat(d.Networth)},
		{"ImageCount", strconv.Itoa(d.ImageCount)},
		{"VideoCount", strconv.Itoa(d.VideoCount)},
	}
	for _, f := range scalars {
		if err := w.WriteField(f.name, f.value); err != nil {
			return err
		}
	}

	lists := []struct {
		name   string
		values []string
	}{
		{"HeatingSystems", d.HeatingSystems},
		{"CoolingSystems", d.CoolingSystems},
		{"Parking", d.Parking},
	}
	for _, l := range lists {
		for _, v := range l.values {
			if err := w.WriteField(l.name, v); err != nil {
				return err
			}
		}
	}

	if d.RehabEstimate != nil {
		if err := w.WriteField("RehabEstimate", formatFloat(*d.RehabEstimate)); err != nil {
			return err
		}
	}
	if d.AverageLeasePrice != nil {
		if err := w.WriteField("AverageLeasePrice", formatFloat(*d.AverageLeasePrice)); err != nil {
			return err
		}
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
