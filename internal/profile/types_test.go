package profile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListDecodesArraysAndCSV(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"json array", `["Texas","Ohio"]`, []string{"Texas", "Ohio"}},
		{"csv string", `"Texas, Ohio"`, []string{"Texas", "Ohio"}},
		{"csv without spaces", `"Texas,Ohio"`, []string{"Texas", "Ohio"}},
		{"single value", `"Texas"`, []string{"Texas"}},
		{"empty string", `""`, nil},
		{"blank string", `"   "`, nil},
		{"empty array", `[]`, []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got StringList
			require.NoError(t, json.Unmarshal([]byte(tc.in), &got))
			assert.Equal(t, StringList(tc.want), got)
		})
	}

	var got StringList
	assert.Error(t, json.Unmarshal([]byte(`42`), &got), "numbers are neither array nor CSV")
}

func TestDraftFromRecordScrubsPlaceholders(t *testing.T) {
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(`{
		"name": "Jane Doe",
		"businessName": "string",
		"phoneNumber": "3001234567",
		"servingStates": "Texas, string",
		"noOfYears": 4,
		"passports": ["https://cdn.example/passport.jpg", "string"],
		"aboutMe": "  "
	}`), &rec))

	draft := DraftFromRecord(rec)
	assert.Equal(t, "Jane Doe", draft.Name)
	assert.Empty(t, draft.BusinessName, "placeholder must not reach the editor")
	assert.Equal(t, []string{"Texas"}, draft.ServingStates)
	assert.Equal(t, 4, draft.NumberOfYears)
	assert.Equal(t, []string{"https://cdn.example/passport.jpg"}, draft.PassportUploads)
	assert.Empty(t, draft.AboutMe)
}

func TestRecordDeletedFlag(t *testing.T) {
	assert.True(t, Record{Status: "Deleted"}.Deleted())
	assert.False(t, Record{Status: "Active"}.Deleted())
	assert.False(t, Record{}.Deleted())
}
