package video

import (
	"regexp"
)

// YouTube video IDs are exactly 11 characters from this alphabet.
var (
	watchRe = regexp.MustCompile(`(?:youtube\.com/watch\?(?:.*&)?v=)([A-Za-z0-9_-]{11})`)
	shortRe = regexp.MustCompile(`youtu\.be/([A-Za-z0-9_-]{11})`)
	embedRe = regexp.MustCompile(`youtube\.com/embed/([A-Za-z0-9_-]{11})`)
	bareRe  = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
)

// ParseYouTube extracts the canonical video id and embed URL from the four
// accepted URL shapes: watch?v=, youtu.be/, /embed/, and a bare 11-character
// id. Unrecognized input yields nils rather than an error.
func ParseYouTube(input string) (videoID, embedURL *string) {
	if input == "" {
		return nil, nil
	}
	var id string
	switch {
	case watchRe.MatchString(input):
		id = watchRe.FindStringSubmatch(input)[1]
	case shortRe.MatchString(input):
		id = shortRe.FindStringSubmatch(input)[1]
	case embedRe.MatchString(input):
		id = embedRe.FindStringSubmatch(input)[1]
	case bareRe.MatchString(input):
		id = input
	default:
		return nil, nil
	}
	embed := "https://www.youtube.com/embed/" + id
	return &id, &embed
}
