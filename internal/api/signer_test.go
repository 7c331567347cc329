package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignature_GoldenValues(t *testing.T) {
	tests := []struct {
		name      string
		devID     string
		authKey   string
		method    string
		timestamp string
		expected  string
	}{
		{
			name:      "createsession",
			devID:     "1004",
			authKey:   "23DF3C7E9BD14D84BF892AD206B6755C",
			method:    "createsession",
			timestamp: "20120927183145",
			expected:  "8f53249be0922c94720834771ad43f0f",
		},
		{
			name:      "getplayer",
			devID:     "dev",
			authKey:   "key",
			method:    "getplayer",
			timestamp: "20230101120000",
			expected:  "2ca04e5c92a6ca1aa979400be9de353d",
		},
		{
			name:      "getmatchhistory",
			devID:     "dev",
			authKey:   "key",
			method:    "getmatchhistory",
			timestamp: "20230101120000",
			expected:  "c21d54c1735ca51c88217ee566f00557",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, signature(tt.devID, tt.authKey, tt.method, tt.timestamp))
		})
	}
}

func TestSignature_Deterministic(t *testing.T) {
	first := signature("dev", "key", "getplayer", "20230101120000")
	second := signature("dev", "key", "getplayer", "20230101120000")
	assert.Equal(t, first, second)
}

func TestSignature_InputSensitive(t *testing.T) {
	base := signature("dev", "key", "getplayer", "20230101120000")
	assert.NotEqual(t, base, signature("dev", "key", "getplayer", "20230101120001"))
	assert.NotEqual(t, base, signature("dev", "key", "getqueuestats", "20230101120000"))
	assert.NotEqual(t, base, signature("dev2", "key", "getplayer", "20230101120000"))
}
