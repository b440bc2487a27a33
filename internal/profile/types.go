// internal/profile/types.go
//
// Remote and local profile shapes. The server is inconsistent about list
// fields: some responses carry them as arrays, others as comma-separated
// strings, so StringList decodes both. The editor's Draft always holds
// proper slices.

package profile

import (
	"encoding/json"
	"strings"
)

// StringList is a []string that also accepts a CSV string on decode.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var asSlice []string
	if err := json.Unmarshal(data, &asSlice); err == nil {
		*l = asSlice
		return nil
	}
	var asString string
	if err := json.Unmarshal(data, &asString); err != nil {
		return err
	}
	if strings.TrimSpace(asString) == "" {
		*l = nil
		return nil
	}
	parts := strings.Split(asString, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	*l = out
	return nil
}

// deletedStatus is the tombstone the server leaves on a deleted record.
const deletedStatus = "Deleted"

// Record is the remote profile representation.
type Record struct {
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	PhoneNumber     string     `json:"phoneNumber"`
	BusinessName    string     `json:"businessName"`
	PersonalWebsite string     `json:"personalWebsite"`
	ServingStates   StringList `json:"servingStates"`
	NoOfYears       int        `json:"noOfYears"`
	Language        StringList `json:"language"`
	Market          StringList `json:"market"`

	UserProfileImage string `json:"userProfileImage"`
	CompanyLogo      string `json:"companyLogo"`
	RealStateIDNo    string `json:"realStateIdNo"`
	RealStateID      string `json:"realStateId"`
	BrokerName       string `json:"brokerName"`
	BrokerContact    string `json:"brokerContact"`

	Passports       StringList `json:"passports"`
	DriversLicenses StringList `json:"driversLicenses"`
	StateIDs        StringList `json:"stateIDs"`
	MilitaryIDs     StringList `json:"militaryIds"`
	GreenCards      StringList `json:"greenCards"`
	VotersCards     StringList `json:"votersCards"`

	GeographicalAreas string `json:"geographicalAreas"`
	AboutMe           string `json:"aboutMe"`
	Facebook          string `json:"facebook"`
	Twitter           string `json:"twitter"`
	LinkedIn          string `json:"linkedIn"`
	Youtube           string `json:"youtube"`
	TikTok            string `json:"tikTok"`
	Instagram         string `json:"instagram"`

	Status    string `json:"status"`
	Completed bool   `json:"isCompleted"`
}

// Deleted reports whether the record is a tombstone.
func (r Record) Deleted() bool {
	return r.Status == deletedStatus
}

// Draft is the local editing state for one profile submission. It holds
// exactly what the user typed plus the remote URLs of completed uploads.
type Draft struct {
	Name            string
	Email           string
	PhoneNumber     string
	BusinessName    string
	PersonalWebsite string
	ServingStates   []string
	NumberOfYears   int
	Languages       []string
	Markets         []string

	UserProfileImage string
	CompanyLogo      string
	RealStateIDNo    string
	RealStateID      string
	BrokerName       string
	BrokerContact    string

	PassportUploads       []string
	DriversLicenseUploads []string
	StateIDUploads        []string
	MilitaryIDUploads     []string
	GreenCardUploads      []string
	VotersCardUploads     []string

	GeographicalAreas string
	AboutMe           string
	Facebook          string
	Twitter           string
	LinkedIn          string
	Youtube           string
	TikTok            string
	Instagram         string
}

// GovernmentIDCount totals the uploaded IDs across every category.
func (d Draft) GovernmentIDCount() int {
	return len(d.PassportUploads) +
		len(d.DriversLicenseUploads) +
		len(d.StateIDUploads) +
		len(d.MilitaryIDUploads) +
		len(d.GreenCardUploads) +
		len(d.VotersCardUploads)
}

// DraftFromRecord seeds the editor from a fetched record, scrubbing
// placeholder tokens and flattening CSV lists.
func DraftFromRecord(r Record) Draft {
	return Draft{
		Name:            CleanString(r.Name),
		Email:           CleanString(r.Email),
		PhoneNumber:     CleanString(r.PhoneNumber),
		BusinessName:    CleanString(r.BusinessName),
		PersonalWebsite: CleanString(r.PersonalWebsite),
		ServingStates:   CleanSlice(r.ServingStates),
		NumberOfYears:   r.NoOfYears,
		Languages:       CleanSlice(r.Language),
		Markets:         CleanSlice(r.Market),

		UserProfileImage: CleanString(r.UserProfileImage),
		CompanyLogo:      CleanString(r.CompanyLogo),
		RealStateIDNo:    CleanString(r.RealStateIDNo),
		RealStateID:      CleanString(r.RealStateID),
		BrokerName:       CleanString(r.BrokerName),
		BrokerContact:    CleanString(r.BrokerContact),

		PassportUploads:       CleanSlice(r.Passports),
		DriversLicenseUploads: CleanSlice(r.DriversLicenses),
		StateIDUploads:        CleanSlice(r.StateIDs),
		MilitaryIDUploads:     CleanSlice(r.MilitaryIDs),
		GreenCardUploads:      CleanSlice(r.GreenCards),
		VotersCardUploads:     CleanSlice(r.VotersCards),

		GeographicalAreas: CleanString(r.GeographicalAreas),
		AboutMe:           CleanString(r.AboutMe),
		Facebook:          CleanString(r.Facebook),
		Twitter:           CleanString(r.Twitter),
		LinkedIn:          CleanString(r.LinkedIn),
		Youtube:           CleanString(r.Youtube),
		TikTok:            CleanString(r.TikTok),
		Instagram:         CleanString(r.Instagram),
	}
}
