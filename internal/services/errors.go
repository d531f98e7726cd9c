package services

import (
	"context"
	"errors"
	"fmt"

	"sheetpulse/internal/dataprocessing"
	apierrors "sheetpulse/internal/errors"
)

// MapAnalysisError translates pipeline failures into the error types the
// HTTP layer renders. Typed application errors and context errors pass
// through unchanged.
func MapAnalysisError(filename string, err error) error {
	if err == nil {
		return nil
	}

	var formatErr *dataprocessing.UnsupportedFormatError
	if errors.As(err, &formatErr) {
		return apierrors.UnsupportedFormatError(formatErr.Extension)
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var parseErr *dataprocessing.ParseError
	if errors.As(err, &parseErr) {
		return apierrors.UnprocessableFileError(filename, string(parseErr.Format), parseErr.Err)
	}

	var appErr *apierrors.AppError
	var apiErr *apierrors.APIError
	if errors.As(err, &appErr) || errors.As(err, &apiErr) {
		return err
	}

	return fmt.Errorf("analyze %s: %w", filename, err)
}
