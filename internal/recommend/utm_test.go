package recommend

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trackingSuffix = "utm_source=quiz_ia&utm_medium=recommendation&utm_campaign=quiz-recommendation&utm_content=cta-button"

func TestTagURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "bare product url",
			in:   "https://floryn.com.br/products/rosa",
			want: "https://floryn.com.br/products/rosa?" + trackingSuffix,
		},
		{
			name: "keeps unrelated params in place",
			in:   "https://floryn.com.br/products/rosa?variant=42&ref=home",
			want: "https://floryn.com.br/products/rosa?variant=42&ref=home&" + trackingSuffix,
		},
		{
			name: "replaces existing tracking params",
			in:   "https://floryn.com.br/products/rosa?utm_source=old&variant=42&utm_medium=email&utm_medium=x",
			want: "https://floryn.com.br/products/rosa?variant=42&" + trackingSuffix,
		},
		{
			name: "keeps fragment",
			in:   "https://floryn.com.br/products/rosa#notas",
			want: "https://floryn.com.br/products/rosa?" + trackingSuffix + "#notas",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TagURL(tt.in, "quiz_ia")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTagURL_Idempotent(t *testing.T) {
	once, err := TagURL("https://floryn.com.br/products/rosa?variant=1", "quiz_ia")
	require.NoError(t, err)
	twice, err := TagURL(once, "quiz_ia")
	require.NoError(t, err)
	assert.Equal(t, once, twice)

	u, err := url.Parse(twice)
	require.NoError(t, err)
	q := u.Query()
	for _, key := range []string{"utm_source", "utm_medium", "utm_campaign", "utm_content"} {
		assert.Len(t, q[key], 1, key)
	}
	assert.Equal(t, "1", q.Get("variant"))
}

func TestTagURL_DefaultSource(t *testing.T) {
	got, err := TagURL("https://floryn.com.br/", "")
	require.NoError(t, err)

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, DefaultUTMSource, u.Query().Get("utm_source"))
}

func TestTagURL_Invalid(t *testing.T) {
	for _, in := range []string{"", "not a url", "/products/rosa", "://missing-scheme", "https://%zz"} {
		_, err := TagURL(in, "quiz_ia")
		assert.ErrorIs(t, err, ErrInvalidURL, "input %q", in)
	}
}
