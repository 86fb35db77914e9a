package fields

import (
	"fmt"
	"strconv"
)

// MovieRating is the stored average of a movie's scores.
// Rendered with a single decimal so 7.3333... doesn't leak into responses.
type MovieRating float64

func (r MovieRating) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(r), 'f', 1, 64)), nil
}

func (r *MovieRating) UnmarshalJSON(data []byte) error {
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid rating: %w", err)
	}
	*r = MovieRating(v)
	return nil
}
