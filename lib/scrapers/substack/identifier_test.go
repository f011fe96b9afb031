package substack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractIdentifier(t *testing.T) {
	cases := []struct {
		input  string
		expect string
	}{
		{"astralcodexten", "astralcodexten"},
		{"AstralCodexTen", "astralcodexten"},
		{"  astralcodexten  ", "astralcodexten"},
		{"https://astralcodexten.substack.com", "astralcodexten"},
		{"https://astralcodexten.substack.com/", "astralcodexten"},
		{"http://astralcodexten.substack.com", "astralcodexten"},
		{"https://substack.com/@astralcodexten", "astralcodexten"},
		{"https://www.compoundingquality.net", "compoundingquality.net"},
		{"https://compoundingquality.net/archive", "compoundingquality.net"},
		{"compoundingquality.net", "compoundingquality.net"},
	}
	for _, test := range cases {
		got, err := ExtractIdentifier(test.input)
		require.NoError(t, err, test.input)
		require.Equal(t, test.expect, got, test.input)
	}
}

func TestExtractIdentifierRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "   ", "https:///just-a-path"} {
		_, err := ExtractIdentifier(input)
		require.Error(t, err, "%q", input)
	}
}
