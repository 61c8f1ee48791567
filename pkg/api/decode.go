package api

import (
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/adfharrison1/todod/pkg/domain"
)

const formContentType = "application/x-www-form-urlencoded"

// Unknown form fields are ignored by every decoder below.

// decodeNewTodo reads a NewTodo from a form-urlencoded request body
func decodeNewTodo(r *http.Request) (domain.NewTodo, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != formContentType {
		return domain.NewTodo{}, &domain.DecodeError{
			Reason: "expected request with `Content-Type: " + formContentType + "`",
			Status: http.StatusUnsupportedMediaType,
		}
	}

	if err := r.ParseForm(); err != nil {
		return domain.NewTodo{}, &domain.DecodeError{
			Reason: "failed to parse form body: " + err.Error(),
			Status: http.StatusBadRequest,
		}
	}

	description, err := requiredField(r.PostForm, "description")
	if err != nil {
		return domain.NewTodo{}, err
	}
	return domain.NewTodo{Description: description}, nil
}

// decodeTodo reads a full Todo (id, description, done) from form values
func decodeTodo(values url.Values) (domain.Todo, error) {
	rawID, err := requiredField(values, "id")
	if err != nil {
		return domain.Todo{}, err
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return domain.Todo{}, domain.NewDecodeError("id", "invalid integer "+strconv.Quote(rawID))
	}

	description, err := requiredField(values, "description")
	if err != nil {
		return domain.Todo{}, err
	}

	rawDone, err := requiredField(values, "done")
	if err != nil {
		return domain.Todo{}, err
	}
	done, err := parseBool(rawDone)
	if err != nil {
		return domain.Todo{}, err
	}

	return domain.Todo{ID: id, Description: description, Done: done}, nil
}

// parsePathID parses the {id} path segment
func parsePathID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &domain.DecodeError{
			Field:  "id",
			Reason: "invalid integer " + strconv.Quote(raw),
			Status: http.StatusBadRequest,
		}
	}
	return id, nil
}

func requiredField(values url.Values, name string) (string, error) {
	if _, ok := values[name]; !ok {
		return "", domain.NewDecodeError(name, "missing field")
	}
	return values.Get(name), nil
}

// parseBool accepts exactly "true" or "false"
func parseBool(raw string) (bool, error) {
	switch raw {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, domain.NewDecodeError("done", "invalid boolean "+strconv.Quote(raw))
}
