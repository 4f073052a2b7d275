// Package validation holds the pure input validators gating what may be
// persisted. No side effects; services call these before touching the store.
package validation

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyText   = errors.New("text must not be empty")
	ErrRatingRange = errors.New("rating must be between 1 and 10")
)

const (
	RatingMin     = 1
	RatingMax     = 10
	RatingDefault = 1
)

// ValidatePostText rejects empty or whitespace-only post bodies.
func ValidatePostText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("post: %w", ErrEmptyText)
	}
	return nil
}

// ValidateCommentText applies the same non-empty rule to comments.
func ValidateCommentText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("comment: %w", ErrEmptyText)
	}
	return nil
}

// ValidateRating checks the closed range [RatingMin, RatingMax].
func ValidateRating(rating int) error {
	if rating < RatingMin || rating > RatingMax {
		return ErrRatingRange
	}
	return nil
}
