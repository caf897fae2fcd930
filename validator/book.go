package validator

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/deepeshsaheb-tal/bookcritic/model"
)

func ValidateBookCreateRequest(req *model.BookCreateRequest) error {
	if req == nil {
		return errors.New("book is nil")
	}
	if strings.TrimSpace(req.Title) == "" {
		return errors.New("Title is required")
	}
	if strings.TrimSpace(req.Author) == "" {
		return errors.New("Author is required")
	}
	return nil
}
