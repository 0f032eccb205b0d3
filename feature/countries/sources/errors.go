package sources

import "fmt"

// SourceError reports that one upstream source could not be used.
// The cause is flattened into Message; callers only branch on Source.
type SourceError struct {
	Source  string
	Message string
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Source, e.Message)
}

func newSourceError(source, format string, args ...any) *SourceError {
	return &SourceError{Source: source, Message: fmt.Sprintf(format, args...)}
}
