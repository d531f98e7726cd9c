package validation

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"sheetpulse/internal/dataprocessing"
	apierrors "sheetpulse/internal/errors"
)

// UnknownSize marks an upload whose length is not known up front
const UnknownSize int64 = -1

// lockFilePrefix marks Office owner/lock files such as ~$sales.xlsx
const lockFilePrefix = "~$"

// Upload describes a spreadsheet handed to the analyzer
type Upload struct {
	Filename string `validate:"required,max=255,safe_filename"`
	Size     int64  `validate:"gte=-1"`
}

// UploadValidator checks spreadsheet names and sizes before any bytes are
// parsed. An extension outside .csv, .xls and .xlsx yields the loader's
// UnsupportedFormatError so callers map every format failure the same way.
type UploadValidator struct {
	validate *validator.Validate
	maxBytes int64
	logger   *slog.Logger
}

// NewUploadValidator creates a validator. maxBytes <= 0 disables the size limit.
func NewUploadValidator(maxBytes int64, logger *slog.Logger) *UploadValidator {
	if logger == nil {
		logger = slog.Default()
	}
	v := validator.New()
	v.RegisterValidation("safe_filename", isSafeFilename)

	return &UploadValidator{
		validate: v,
		maxBytes: maxBytes,
		logger:   logger.With(slog.String("component", "upload_validator")),
	}
}

// MaxBytes returns the configured size limit
func (v *UploadValidator) MaxBytes() int64 {
	return v.maxBytes
}

// Validate checks an upload's name and size
func (v *UploadValidator) Validate(u Upload) error {
	if err := v.validate.Struct(u); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			msg := describe(verrs[0])
			v.logger.Warn("upload rejected",
				slog.String("filename", u.Filename),
				slog.String("reason", msg))
			return apierrors.NewAppValidationError(msg)
		}
		return fmt.Errorf("validate upload: %w", err)
	}

	if strings.HasPrefix(filepath.Base(u.Filename), lockFilePrefix) {
		v.logger.Warn("skipping office lock file", slog.String("filename", u.Filename))
		return apierrors.NewAppValidationError(fmt.Sprintf("%s is an Office lock file, not a spreadsheet", u.Filename))
	}

	if _, err := dataprocessing.DetectFormat(u.Filename); err != nil {
		return err
	}

	if v.maxBytes > 0 && u.Size > v.maxBytes {
		v.logger.Warn("upload too large",
			slog.String("filename", u.Filename),
			slog.Int64("size", u.Size),
			slog.Int64("max_bytes", v.maxBytes))
		return apierrors.NewTooLargeError(fmt.Sprintf("%s is %d bytes, limit is %d", u.Filename, u.Size, v.maxBytes), v.maxBytes)
	}

	return nil
}

// ValidateFile checks that path is a readable regular file with an
// acceptable name and size
func (v *UploadValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return apierrors.NewNotFoundError(path, err)
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return apierrors.NewAppValidationError(fmt.Sprintf("%s is a directory, not a file", path))
	}

	if err := v.Validate(Upload{Filename: filepath.Base(path), Size: info.Size()}); err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("file %s is not readable: %w", path, err)
	}
	file.Close()

	v.logger.Debug("file validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateOutputDirectory ensures the parent directory of an output file
// exists or can be created
func (v *UploadValidator) ValidateOutputDirectory(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return nil
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "safe_filename":
		return fmt.Sprintf("%s must not contain path separators or '..'", field)
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// isSafeFilename rejects names that could escape the staging directory
func isSafeFilename(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	return !strings.Contains(name, "..") && !strings.ContainsAny(name, `/\`)
}
