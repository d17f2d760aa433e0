package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/rpupo63/portfolio-admin-backend/errs"
)

var v = newValidator()

// newValidator reports fields under their json names so messages match the
// names clients submit.
func newValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

// ImageUpload is an uploaded file as received by the request boundary.
type ImageUpload struct {
	Filename string
	Data     []byte
}

// ProjectInput carries every user-settable project field. A nil TechnologyIDs
// means the caller did not submit technologies at all; an empty non-nil slice
// means "no technologies".
type ProjectInput struct {
	Title         string       `json:"title" validate:"required,min=3,max=255"`
	URL           string       `json:"url" validate:"required"`
	Content       string       `json:"content" validate:"required,min=10"`
	TypeID        uint         `json:"type_id" validate:"required"`
	TechnologyIDs []uint       `json:"technologies"`
	Image         *ImageUpload `json:"-"`
}

// trimmed returns the input with surrounding whitespace removed from its
// text fields, so blank values fail the required rules.
func (in ProjectInput) trimmed() ProjectInput {
	in.Title = strings.TrimSpace(in.Title)
	in.URL = strings.TrimSpace(in.URL)
	in.Content = strings.TrimSpace(in.Content)
	return in
}

// NameInput is the payload for creating a technology or a type.
type NameInput struct {
	Name string `json:"name" validate:"required,max=255"`
}

func (in NameInput) trimmed() NameInput {
	in.Name = strings.TrimSpace(in.Name)
	return in
}

var allowedImageTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/bmp",
	"image/webp",
	"image/svg+xml",
}

const (
	messageTitleTaken      = "The title has already been taken."
	messageTypeInvalid     = "The selected type id is invalid."
	messageTechnologiesBad = "The selected technologies are invalid."
	messageNotAnImage      = "The image field must be an image."
	messageImageTooLarge   = "The image field must not be greater than %d kilobytes."
)

// collectFieldErrors runs the struct rules and adds one message per failing field.
func collectFieldErrors(input any, fields errs.FieldErrors) error {
	err := v.Struct(input)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	for _, fieldErr := range validationErrs {
		fields.Add(fieldErr.Field(), fieldMessage(fieldErr))
	}
	return nil
}

func fieldMessage(fieldErr validator.FieldError) string {
	attribute := strings.ReplaceAll(fieldErr.Field(), "_", " ")

	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", attribute)
	case "min":
		return fmt.Sprintf("The %s field must be at least %s characters.", attribute, fieldErr.Param())
	case "max":
		return fmt.Sprintf("The %s field must not be greater than %s characters.", attribute, fieldErr.Param())
	default:
		return fmt.Sprintf("The %s field is invalid.", attribute)
	}
}

// inspectImage sniffs the upload's content. It returns the detected content
// type, or a validation message when the upload is not an accepted image or
// exceeds maxBytes (0 disables the size check).
func inspectImage(image *ImageUpload, maxBytes int) (string, string) {
	if len(image.Data) == 0 {
		return "", messageNotAnImage
	}

	detected := mimetype.Detect(image.Data)
	if !isAllowedImage(detected) {
		return "", messageNotAnImage
	}

	if maxBytes > 0 && len(image.Data) > maxBytes {
		return "", fmt.Sprintf(messageImageTooLarge, maxBytes/1024)
	}

	contentType, _, _ := strings.Cut(detected.String(), ";")
	return strings.TrimSpace(contentType), ""
}

func isAllowedImage(detected *mimetype.MIME) bool {
	for _, allowed := range allowedImageTypes {
		if detected.Is(allowed) {
			return true
		}
	}
	return false
}
