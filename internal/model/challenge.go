package model

import "time"

// Challenge is a published, shareable challenge from the content pool. The
// step sequence itself (correct lines, distractors, hints) is produced by the
// external generator and carried opaquely in Content.
type Challenge struct {
	Serial     string
	Title      string
	Question   string
	Language   string
	Difficulty string
	Steps      int
	Rating     *float64
	Content    []byte
	CreatedAt  time.Time
}

// RatingOrDefault returns the challenge rating, or 3.0 when nobody has rated
// it yet.
func (c *Challenge) RatingOrDefault() float64 {
	if c.Rating == nil {
		return 3.0
	}
	return *c.Rating
}
