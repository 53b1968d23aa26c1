package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeCarouselNotFound = "CRS001"
	ErrCodeSlugTaken        = "CRS002"
	ErrCodeValidation       = "CRS003"
	ErrCodePersistence      = "CRS004"
	ErrCodeCacheClear       = "CRS005"
)

// Errors
var (
	ErrCarouselNotFound = errors.New("carousel not found")
	ErrSlugTaken        = errors.New("slug already in use")
	ErrValidation       = errors.New("invalid carousel data")
	ErrPersistence      = errors.New("persistence failure")
)

// CarouselError custom error type
type CarouselError struct {
	Code    string
	Message string
	Err     error
}

func (e *CarouselError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CarouselError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewNotFoundError() *CarouselError {
	return &CarouselError{
		Code:    ErrCodeCarouselNotFound,
		Message: "Carousel not found",
		Err:     ErrCarouselNotFound,
	}
}

func NewSlugTakenError(slug string) *CarouselError {
	return &CarouselError{
		Code:    ErrCodeSlugTaken,
		Message: fmt.Sprintf("A carousel with slug %q already exists", slug),
		Err:     ErrSlugTaken,
	}
}

func NewValidationError(detail string) *CarouselError {
	return &CarouselError{
		Code:    ErrCodeValidation,
		Message: detail,
		Err:     ErrValidation,
	}
}

func NewPersistenceError(err error) *CarouselError {
	return &CarouselError{
		Code:    ErrCodePersistence,
		Message: "Failed to persist carousel",
		Err:     fmt.Errorf("%w: %v", ErrPersistence, err),
	}
}
