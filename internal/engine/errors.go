package engine

import (
	"errors"
	"fmt"
)

// ErrTemplateNotFound is matched by every *TemplateNotFoundError via errors.Is.
var ErrTemplateNotFound = errors.New("template not found")

// TemplateNotFoundError is returned when none of the candidate paths built for
// a template name points to an existing regular file.
type TemplateNotFoundError struct {
	// Name is the template name as the caller supplied it.
	Name string
	// Paths lists every candidate that was probed, in probe order.
	Paths   []string
	Message string
}

func (e *TemplateNotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("template %q not found", e.Name)
}

func (e *TemplateNotFoundError) Is(target error) bool {
	return target == ErrTemplateNotFound
}

// IsTemplateNotFound returns true if err is or wraps a TemplateNotFoundError.
func IsTemplateNotFound(err error) bool {
	var nf *TemplateNotFoundError
	return errors.As(err, &nf)
}

// InvalidNameError reports a template name that cannot be parsed.
type InvalidNameError struct {
	Name   string
	Reason string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("the template name %q is not valid: %s", e.Name, e.Reason)
}

// FolderError reports an invalid folder registration or lookup.
type FolderError struct {
	Folder string
	Reason string
}

func (e *FolderError) Error() string {
	return fmt.Sprintf("template folder %q: %s", e.Folder, e.Reason)
}
