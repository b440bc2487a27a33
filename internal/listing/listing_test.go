package listing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/propseller/propseller/internal/api"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewService(api.NewClient(srv.URL, 2*time.Second, nil))
}

func validDraft() Draft {
	return Draft{
		PropertyAddress: "12 Main St, Austin, TX",
		PropertyType:    "House",
		YearBuilt:       1998,
		Bedrooms:        3,
		Bathrooms:       2,
		SquareFoot:      1850,
		Price:           425000,
		LotSize:         "0.25 acres",
		Description:     "Renovated ranch house.",
		Networth:        380000,
		SiteOrPropertyImages: []string{
			"https://cdn.example/front.jpg",
			"https://cdn.example/kitchen.jpg",
		},
		ImageCount: 2,
	}
}

func TestDraftValidateNamesFirstMissingField(t *testing.T) {
	tests := []struct {
		name  string
		mutil func(*Draft)
		field string
	}{
		{"no address", func(d *Draft) { d.PropertyAddress = " " }, "propertyAddress"},
		{"no type", func(d *Draft) { d.PropertyType = "" }, "propertyType"},
		{"no year", func(d *Draft) { d.YearBuilt = 0 }, "yearBuilt"},
		{"no price", func(d *Draft) { d.Price = 0 }, "price"},
		{"no square footage", func(d *Draft) { d.SquareFoot = 0 }, "squareFoot"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := validDraft()
			tc.mutil(&d)
			err := d.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want validation error", err)
			}
			if verr.Field != tc.field {
				t.Fatalf("field = %q, want %q", verr.Field, tc.field)
			}
		})
	}
	if err := validDraft().Validate(); err != nil {
		t.Fatalf("valid draft rejected: %v", err)
	}
}

func TestCreateWritesRepeatedMediaPartsAndSkipsNonURLs(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/PropertyListings/CreatePropertyListing" {
			t.Fatalf("path = %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		form := r.MultipartForm.Value
		if got := form["SiteOrPropertyImages"]; len(got) != 2 {
			t.Fatalf("images = %v, want the two real URLs only", got)
		}
		if got := form["HeatingSystems"]; len(got) != 2 || got[0] != "Forced Air" {
			t.Fatalf("heating = %v", got)
		}
		if got := form["Price"]; len(got) != 1 || got[0] != "425000" {
			t.Fatalf("price = %v", got)
		}
		if _, present := form["RehabEstimate"]; present {
			t.Fatal("unset rehab estimate was written")
		}
		if got := form["ImageCount"]; len(got) != 1 || got[0] != "2" {
			t.Fatalf("image count = %v", got)
		}
		w.Write([]byte(`{"success":true,"message":"created"}`))
	})

	d := validDraft()
	d.HeatingSystems = []string{"Forced Air", "Heat Pump"}
	d.SiteOrPropertyImages = append(d.SiteOrPropertyImages, "file:///tmp/local.jpg")
	if err := svc.Create(context.Background(), d); err != nil {
		t.Fatalf("create: %v", err)
	}
}

func TestCreateOptionalAppraisalFieldsSentWhenSet(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.FormValue("RehabEstimate"); got != "15000" {
			t.Fatalf("rehab estimate = %q", got)
		}
		w.Write([]byte(`{}`))
	})
	d := validDraft()
	rehab := 15000.0
	d.RehabEstimate = &rehab
	if err := svc.Create(context.Background(), d); err != nil {
		t.Fatalf("create: %v", err)
	}
}

func TestCreateInvalidDraftNeverHitsNetwork(t *testing.T) {
	calls := 0
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) { calls++ })
	d := validDraft()
	d.PropertyAddress = ""
	var verr *ValidationError
	if err := svc.Create(context.Background(), d); !errors.As(err, &verr) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if calls != 0 {
		t.Fatal("invalid draft reached the network")
	}
}

func TestListFetchesPage(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/PropertyListings/GetLoggedUserPropertyListings" {
			t.Fatalf("path = %s", r.URL.Path)
		}
		if r.URL.Query().Get("pageNumber") != "2" || r.URL.Query().Get("pageSize") != "10" {
			t.Fatalf("query = %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"items":[{"propertyListingId":7,"propertyAddress":"12 Main St"}],"pageNumber":2,"pageSize":10,"totalCount":11,"totalPages":2}`))
	})

	page, err := svc.List(context.Background(), 2, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].PropertyListingID != 7 {
		t.Fatalf("page = %+v", page)
	}
	if page.TotalPages != 2 {
		t.Fatalf("total pages = %d", page.TotalPages)
	}
}

func TestListingLifecycleEndpoints(t *testing.T) {
	var paths []string
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path+"?"+r.URL.RawQuery)
		w.Write([]byte(`{"success":true}`))
	})

	ctx := context.Background()
	if err := svc.MarkSold(ctx, 7); err != nil {
		t.Fatalf("mark sold: %v", err)
	}
	if err := svc.Delete(ctx, 7); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Renew(ctx, 7); err != nil {
		t.Fatalf("renew: %v", err)
	}
	want := []string{
		"/PropertyListings/UpdateSoldStatus?id=7",
		"/PropertyListings/DeletePropertyListing?id=7",
		"/PropertyListings/RenewProperty/7?",
	}
	for i, p := range want {
		if paths[i] != p {
			t.Fatalf("call %d = %s, want %s", i, paths[i], p)
		}
	}
}
