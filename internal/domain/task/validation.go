package task

import (
	"fmt"
	"strings"
)

// ValidateCreateInput validates fields required to create a task.
func ValidateCreateInput(req CreateRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if req.Status != "" && !req.Status.Valid() {
		return fmt.Errorf("%w: status %q", ErrInvalidInput, req.Status)
	}
	if req.Energy != "" && !req.Energy.Valid() {
		return fmt.Errorf("%w: energy %q", ErrInvalidInput, req.Energy)
	}
	return nil
}
