package corpus

import "fmt"

type NoSuchSample struct {
	Language string
	Name     string
}

func (e *NoSuchSample) Error() string {
	return fmt.Sprintf("no such sample in language %s: %s", e.Language, e.Name)
}

type invalidName struct {
	What string
}

func (e *invalidName) Error() string {
	return fmt.Sprintf("%s name must not be empty", e.What)
}
