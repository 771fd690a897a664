package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Length(t *testing.T) {
	tests := []struct {
		name   string
		length int
		want   int
	}{
		{"default on zero", 0, DefaultLength},
		{"default on negative", -5, DefaultLength},
		{"explicit length", 20, 20},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Generate(tc.length)
			require.NoError(t, err)
			assert.Len(t, got, tc.want)
		})
	}
}

func TestGenerate_Alphabet(t *testing.T) {
	got, err := Generate(64)
	require.NoError(t, err)
	for _, r := range got {
		assert.Contains(t, alphabet, string(r))
	}
}

func TestGenerateWithPrefix(t *testing.T) {
	got, err := GenerateWithPrefix(PrefixCampaign, DefaultLength)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "camp_"))

	prefix, shortID, err := ParsePrefixedID(got)
	require.NoError(t, err)
	assert.Equal(t, PrefixCampaign, prefix)
	assert.Len(t, shortID, DefaultLength)
}

func TestParsePrefixedID_Invalid(t *testing.T) {
	_, _, err := ParsePrefixedID("noprefix")
	assert.Error(t, err)
}

func TestValidatePrefix(t *testing.T) {
	assert.NoError(t, ValidatePrefix("org_abc123", PrefixOrganization))
	assert.Error(t, ValidatePrefix("usr_abc123", PrefixOrganization))
}

func TestEntityConstructors(t *testing.T) {
	assert.True(t, strings.HasPrefix(NewOrganizationID(), "org_"))
	assert.True(t, strings.HasPrefix(NewCampaignID(), "camp_"))
	assert.True(t, strings.HasPrefix(NewChatSessionID(), "sess_"))
	assert.True(t, strings.HasPrefix(NewChatMessageID(), "msg_"))
	assert.True(t, strings.HasPrefix(NewSubscriptionID(), "sub_"))
	assert.True(t, strings.HasPrefix(NewUsageEventID(), "evt_"))
}

func TestGenerate_Uniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		got := MustGenerate(DefaultLength)
		require.False(t, seen[got], "duplicate short ID generated: %s", got)
		seen[got] = true
	}
}
