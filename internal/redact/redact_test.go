package redact

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString_RedactsKnownEnvVars(t *testing.T) {
	const secret = "qp_TESTSECRETVALUE1234567890" //nolint:gosec // fake test credential
	t.Setenv("QAPULSE_TOKEN", secret)
	resetCache()
	defer resetCache()

	got := String("error: auth failed with token qp_TESTSECRETVALUE1234567890 for sheet")
	assert.Equal(t, "error: auth failed with token [REDACTED] for sheet", got)
}

func TestString_NoSecretSetIsNoop(t *testing.T) {
	os.Unsetenv("QAPULSE_TOKEN") //nolint:errcheck // test cleanup
	resetCache()

	input := "some normal error message"
	assert.Equal(t, input, String(input))
}

func TestString_ShortValuesIgnored(t *testing.T) {
	// Values under 4 chars could cause false-positive redaction.
	t.Setenv("QAPULSE_TOKEN", "abc")
	resetCache()
	defer resetCache()

	input := "abc is in the string abc"
	assert.Equal(t, input, String(input))
}

func TestString_MultipleSecrets(t *testing.T) {
	t.Setenv("QAPULSE_TOKEN", "test-token-aaaa")
	t.Setenv("GOOGLE_API_KEY", "test-token-bbbb")
	resetCache()
	defer resetCache()

	got := String("tokens: test-token-aaaa and test-token-bbbb")
	assert.Equal(t, "tokens: [REDACTED] and [REDACTED]", got)
}

func TestDocKeys(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{
			"published",
			`GET https://docs.google.com/spreadsheets/d/e/2PACX-1vQabcdefghijklmnop/pub?gid=12&output=csv: 404`,
			`GET https://docs.google.com/spreadsheets/d/e/[REDACTED]/pub?gid=12&output=csv: 404`,
		},
		{
			"edit link",
			"see https://docs.google.com/spreadsheets/d/1AbCdEfGhIjKlMnOpQrStUv/edit#gid=0",
			"see https://docs.google.com/spreadsheets/d/[REDACTED]/edit#gid=0",
		},
		{"short path left alone", "/spreadsheets/d/short/pub", "/spreadsheets/d/short/pub"},
		{"unrelated", "https://example.com/data.csv", "https://example.com/data.csv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DocKeys(tt.in))
			assert.Equal(t, tt.want, String(tt.in))
		})
	}
}
