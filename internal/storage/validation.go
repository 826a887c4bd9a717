package storage

import (
	"context"
	"errors"
	"fmt"

	"daybook/internal/model"
)

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context must not be nil")
	}
	return ctx.Err()
}

func validateString(value, name string) error {
	if value == "" {
		return fmt.Errorf("%s must not be empty", name)
	}
	return nil
}

func validateEvent(event *model.Event) error {
	if event == nil {
		return errors.New("event must not be nil")
	}
	return event.Validate()
}
