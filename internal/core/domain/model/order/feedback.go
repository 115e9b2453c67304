package order

import (
	"strings"

	"ordering/internal/pkg/errs"
)

// Rating bounds, inclusive.
const (
	MinRating = 1
	MaxRating = 5
)

// Feedback is the client's rating of a delivered order.
type Feedback struct {
	rating  int
	comment string
}

// NewFeedback validates a rating and trims the comment.
//
// Parameters:
//   - rating: between MinRating and MaxRating
//   - comment: free text, may be empty
//
// Returns ValueIsOutOfRange when the rating is outside the bounds.
//
// Example:
//
//	fb, err := order.NewFeedback(5, "Delivered on time")
//	if err != nil {
//	    return err
//	}
//	err = lifecycle.SubmitFeedback(o, fb, order.ActorClient)
func NewFeedback(rating int, comment string) (Feedback, error) {
	if rating < MinRating || rating > MaxRating {
		return Feedback{}, errs.NewValueIsOutOfRangeError("rating", rating, MinRating, MaxRating)
	}
	return Feedback{rating: rating, comment: strings.TrimSpace(comment)}, nil
}

// Rating returns the score from 1 to 5.
func (f Feedback) Rating() int {
	return f.rating
}

// Comment returns the trimmed free text.
func (f Feedback) Comment() string {
	return f.comment
}
