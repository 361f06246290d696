package parserlib_test_harness

import (
	"fmt"
	"net/http"

	"github.com/vilterp/parsec/pkg/corpus"
)

type errorResponse struct {
	Error string
}

type noSuchLanguage struct {
	Name string
}

func (e *noSuchLanguage) Error() string {
	return fmt.Sprintf("no such language: %q", e.Name)
}

type methodNotAllowed struct {
	Method string
}

func (e *methodNotAllowed) Error() string {
	return fmt.Sprintf("method not allowed: %s", e.Method)
}

type badRequest struct {
	Err error
}

func (e *badRequest) Error() string {
	return fmt.Sprintf("error parsing request body: %v", e.Err)
}

type inputTooLarge struct {
	Size int
	Max  int
}

func (e *inputTooLarge) Error() string {
	return fmt.Sprintf("input is %d bytes; max is %d", e.Size, e.Max)
}

type corpusDisabled struct{}

func (e *corpusDisabled) Error() string {
	return "no corpus configured"
}

func statusCode(err error) int {
	switch err.(type) {
	case *noSuchLanguage, *corpus.NoSuchSample, *corpusDisabled:
		return http.StatusNotFound
	case *methodNotAllowed:
		return http.StatusMethodNotAllowed
	case *inputTooLarge:
		return http.StatusRequestEntityTooLarge
	case *badRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
