package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nmm-portal/nmm-api/internal/models"
	"github.com/nmm-portal/nmm-api/internal/validation"
)

// multipartMemory is how much of a multipart body gin keeps in memory
// before spilling parts to temp files
const multipartMemory = 32 << 20

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// readFile loads one uploaded part into a FileHandle
func readFile(fh *multipart.FileHeader) (models.FileHandle, error) {
	f, err := fh.Open()
	if err != nil {
		return models.FileHandle{}, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return models.FileHandle{}, fmt.Errorf("read %s: %w", fh.Filename, err)
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return models.FileHandle{
		Name:        fh.Filename,
		ContentType: contentType,
		Size:        fh.Size,
		Data:        data,
	}, nil
}

// parseRegistrationForm builds a draft from dot-path form fields and a
// file selection from the file parts keyed by purpose. Unknown fields come
// back as validation errors.
func parseRegistrationForm(form *multipart.Form) (*models.RegistrationDraft, models.FileSelection, validation.ValidationErrors, error) {
	draft := &models.RegistrationDraft{}
	var errs validation.ValidationErrors

	for path, values := range form.Value {
		if err := draft.SetField(path, values...); err != nil {
			errs = append(errs, validation.ValidationError{
				Field:   path,
				Code:    validation.CodeInvalid,
				Message: err.Error(),
			})
		}
	}

	files := models.FileSelection{}
	for purpose, headers := range form.File {
		for _, fh := range headers {
			handle, err := readFile(fh)
			if err != nil {
				return nil, nil, nil, err
			}
			files.Add(models.FilePurpose(purpose), handle)
		}
	}

	return draft, files, sortErrors(errs), nil
}

// sortErrors orders field errors by field so map iteration does not leak
// into responses
func sortErrors(errs validation.ValidationErrors) validation.ValidationErrors {
	sort.SliceStable(errs, func(i, j int) bool { return errs[i].Field < errs[j].Field })
	return errs
}
