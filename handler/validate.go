package handler

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jacentio/todos/store"
)

// Field length bounds, counted in characters.
const (
	MinTitleLength       = 1
	MaxTitleLength       = 100
	MaxDescriptionLength = 1000
)

// Problem is a single field validation failure.
type Problem struct {
	Field   string
	Message string
}

// ValidationError is returned by Check when a payload has problems.
type ValidationError struct {
	Problems []Problem
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = p.Field + ": " + p.Message
	}
	return "todos: invalid payload: " + strings.Join(msgs, "; ")
}

// Validate returns every field-level problem with f. An empty result means f is valid.
func Validate(f store.Fields) []Problem {
	var problems []Problem

	switch n := utf8.RuneCountInString(f.Title); {
	case n < MinTitleLength:
		problems = append(problems, Problem{Field: "title", Message: "title is required"})
	case n > MaxTitleLength:
		problems = append(problems, Problem{
			Field:   "title",
			Message: fmt.Sprintf("title must be at most %d characters, got %d", MaxTitleLength, n),
		})
	}

	if n := utf8.RuneCountInString(f.Description); n > MaxDescriptionLength {
		problems = append(problems, Problem{
			Field:   "description",
			Message: fmt.Sprintf("description must be at most %d characters, got %d", MaxDescriptionLength, n),
		})
	}

	return problems
}

// Check is Validate in error form. It returns nil or a *ValidationError.
func Check(f store.Fields) error {
	if problems := Validate(f); len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
