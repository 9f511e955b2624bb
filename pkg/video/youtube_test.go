package video

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseYouTube(t *testing.T) {
	cases := []struct {
		name  string
		input string
		id    string // "" means expect nil
	}{
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch url with extra params", "https://www.youtube.com/watch?list=PL123&v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"short url", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"short url with query", "https://youtu.be/dQw4w9WgXcQ?t=42", "dQw4w9WgXcQ"},
		{"embed url", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"bare id", "dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"empty", "", ""},
		{"random url", "https://vimeo.com/123456789", ""},
		{"id too short", "dQw4w9WgXc", ""},
		{"garbage", "not a url at all", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, embed := ParseYouTube(tc.input)
			if tc.id == "" {
				require.Nil(t, id)
				require.Nil(t, embed)
				return
			}
			require.NotNil(t, id)
			require.Equal(t, tc.id, *id)
			require.NotNil(t, embed)
			require.Equal(t, "https://www.youtube.com/embed/"+tc.id, *embed)
		})
	}
}
