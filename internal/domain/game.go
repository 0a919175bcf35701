package domain

import (
	"fmt"
	"strconv"
	"time"
)

// GameID is a numeric catalog identifier. Valid IDs are strictly positive.
type GameID int64

// ParseGameID parses a catalog ID from its decimal string form.
func ParseGameID(s string) (GameID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: game id [%s] is not an integer", ErrValidation, s)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%w: game id [%d] must be positive", ErrValidation, v)
	}
	return GameID(v), nil
}

func (id GameID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

type Game struct {
	ID               GameID    `json:"id"`
	Title            string    `json:"title"`
	ShortDescription string    `json:"short_description"`
	LongDescription  string    `json:"long_description,omitempty"`
	HeaderImageURL   string    `json:"header_image_url,omitempty"`
	ScreenshotURLs   []string  `json:"screenshot_urls,omitempty"`
	VideoURLs        []string  `json:"video_urls,omitempty"`
	Tags             []string  `json:"tags"`
	UpdatedAt        time.Time `json:"updated_at"`
}
