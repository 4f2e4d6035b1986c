package controller

import perrors "github.com/abgdnv/inventory/internal/errors"

// Level is the severity of a notice.
type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Notice is a user-visible message produced by an operation.
// Field is set for validation messages.
type Notice struct {
	Level   Level  `json:"level"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// TakeNotices returns and clears the pending notices.
func (c *Controller) TakeNotices() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	notices := c.notices
	c.notices = nil
	return notices
}

func (c *Controller) notify(level Level, field, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notices = append(c.notices, Notice{Level: level, Field: field, Message: message})
}

func (c *Controller) notifyValidation(ve *perrors.ValidationError) {
	for _, p := range ve.Problems {
		c.notify(LevelError, p.Field, p.Message)
	}
}
