package api

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rpupo63/portfolio-admin-backend/errs"
	"github.com/rpupo63/portfolio-admin-backend/services"
)

const (
	mediaTypeJSON      = "application/json"
	mediaTypeMultipart = "multipart/form-data"
	mediaTypeForm      = "application/x-www-form-urlencoded"

	maxMultipartMemory = 8 << 20
)

var acceptedMediaTypes = []string{mediaTypeJSON, mediaTypeMultipart, mediaTypeForm}

// projectPayload is the JSON shape of a project submission. The image, when
// sent as JSON, is base64 encoded in data.
type projectPayload struct {
	Title        string `json:"title"`
	URL          string `json:"url"`
	Content      string `json:"content"`
	TypeID       uint   `json:"type_id"`
	Technologies []uint `json:"technologies"`
	Image        *struct {
		Filename string `json:"filename"`
		Data     []byte `json:"data"`
	} `json:"image"`
}

func requestMediaType(r *http.Request) string {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return mediaType
}

func bodyError(payloadType string, err error, maxBytes int64) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return errs.NewMaxBodySizeExceededError(maxBytes)
	}
	return errs.NewMalformedPayloadError(payloadType, err)
}

// decodeProjectInput reads a project submission from a JSON, multipart or
// urlencoded body.
func decodeProjectInput(w http.ResponseWriter, r *http.Request, maxBytes int64) (services.ProjectInput, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	switch mediaType := requestMediaType(r); mediaType {
	case mediaTypeJSON:
		var payload projectPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			return services.ProjectInput{}, bodyError("project", err, maxBytes)
		}

		input := services.ProjectInput{
			Title:         payload.Title,
			URL:           payload.URL,
			Content:       payload.Content,
			TypeID:        payload.TypeID,
			TechnologyIDs: payload.Technologies,
		}
		if payload.Image != nil {
			input.Image = &services.ImageUpload{Filename: payload.Image.Filename, Data: payload.Image.Data}
		}
		return input, nil

	case mediaTypeMultipart:
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			return services.ProjectInput{}, bodyError("multipart", err, maxBytes)
		}

		input, err := projectInputFromForm(r.Form)
		if err != nil {
			return services.ProjectInput{}, err
		}

		image, err := formImage(r)
		if err != nil {
			return services.ProjectInput{}, bodyError("multipart", err, maxBytes)
		}
		input.Image = image
		return input, nil

	case mediaTypeForm:
		if err := r.ParseForm(); err != nil {
			return services.ProjectInput{}, bodyError("form", err, maxBytes)
		}
		return projectInputFromForm(r.PostForm)

	default:
		return services.ProjectInput{}, errs.NewUnsupportedMediaTypeError(r.Header.Get("Content-Type"), acceptedMediaTypes)
	}
}

// projectInputFromForm maps form fields onto ProjectInput. Technologies count
// as submitted when any technologies value or the technologies_present marker
// is sent, so an empty selection can clear them.
func projectInputFromForm(form url.Values) (services.ProjectInput, error) {
	input := services.ProjectInput{
		Title:   form.Get("title"),
		URL:     form.Get("url"),
		Content: form.Get("content"),
	}
	fields := errs.FieldErrors{}

	if raw := strings.TrimSpace(form.Get("type_id")); raw != "" {
		typeID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			fields.Add("type_id", "The type id field must be an integer.")
		}
		input.TypeID = uint(typeID)
	}

	values, submitted := form["technologies[]"]
	if !submitted {
		values, submitted = form["technologies"]
	}
	if form.Get("technologies_present") != "" {
		submitted = true
	}

	if submitted {
		input.TechnologyIDs = []uint{}
		for _, value := range values {
			if value = strings.TrimSpace(value); value == "" {
				continue
			}
			id, err := strconv.ParseUint(value, 10, 64)
			if err != nil {
				fields.Add("technologies", "The selected technologies are invalid.")
				break
			}
			input.TechnologyIDs = append(input.TechnologyIDs, uint(id))
		}
	}

	return input, fields.Err()
}

func formImage(r *http.Request) (*services.ImageUpload, error) {
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return &services.ImageUpload{Filename: header.Filename, Data: data}, nil
}

// decodeNameInput reads {"name": ...} from JSON or a form.
func decodeNameInput(w http.ResponseWriter, r *http.Request, maxBytes int64) (services.NameInput, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	switch mediaType := requestMediaType(r); mediaType {
	case mediaTypeJSON:
		var input services.NameInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			return services.NameInput{}, bodyError("name", err, maxBytes)
		}
		return input, nil

	case mediaTypeMultipart, mediaTypeForm:
		if mediaType == mediaTypeMultipart {
			if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
				return services.NameInput{}, bodyError("multipart", err, maxBytes)
			}
		} else if err := r.ParseForm(); err != nil {
			return services.NameInput{}, bodyError("form", err, maxBytes)
		}
		return services.NameInput{Name: r.FormValue("name")}, nil

	default:
		return services.NameInput{}, errs.NewUnsupportedMediaTypeError(r.Header.Get("Content-Type"), acceptedMediaTypes)
	}
}
