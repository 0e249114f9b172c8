package model

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

const tagSeparator = ","

type Content struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug,omitempty"`
	Text        string    `json:"text"`
	Published   bool      `json:"published"`
	CreatedTime time.Time `json:"created_time"`
	Tags        []string  `json:"tags"`
	UserID      int64     `json:"user_id"`
}

// Tags accepts either a JSON list of strings or a single comma-delimited
// string and normalizes it to a trimmed list without empty entries.
type Tags []string

func (t *Tags) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = normalizeTags(list)
		return nil
	}

	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return errors.New("tags must be a list of strings or a comma separated string")
	}

	*t = SplitTags(joined)
	return nil
}

// JoinTags renders tags in their persisted, comma-delimited form.
func JoinTags(tags []string) string {
	return strings.Join(normalizeTags(tags), tagSeparator)
}

// SplitTags parses the persisted form back into a list.
func SplitTags(joined string) []string {
	return normalizeTags(strings.Split(joined, tagSeparator))
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

type CreateContentRequest struct {
	Title     string `json:"title"`
	Text      string `json:"text"`
	Published bool   `json:"published"`
	Tags      Tags   `json:"tags"`
}

func (r CreateContentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Text, validation.Required),
		validation.Field(&r.Tags, validation.By(tagsWithoutSeparator)),
	)
}

// ContentPatch lists every field a caller may change on existing content.
// Fields left nil are untouched.
type ContentPatch struct {
	Title     *string `json:"title"`
	Text      *string `json:"text"`
	Published *bool   `json:"published"`
	Tags      *Tags   `json:"tags"`
}

func (p ContentPatch) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.NilOrNotEmpty, validation.Length(1, 200)),
		validation.Field(&p.Text, validation.NilOrNotEmpty),
		validation.Field(&p.Tags, validation.By(tagsWithoutSeparator)),
	)
}

// Apply merges the patch into c field by field.
func (p ContentPatch) Apply(c *Content) {
	if p.Title != nil {
		c.Title = strings.TrimSpace(*p.Title)
	}
	if p.Text != nil {
		c.Text = *p.Text
	}
	if p.Published != nil {
		c.Published = *p.Published
	}
	if p.Tags != nil {
		c.Tags = normalizeTags(*p.Tags)
	}
}

func tagsWithoutSeparator(value interface{}) error {
	var tags []string
	switch v := value.(type) {
	case Tags:
		tags = v
	case *Tags:
		if v == nil {
			return nil
		}
		tags = *v
	}

	for _, tag := range tags {
		if strings.Contains(tag, tagSeparator) {
			return errors.New("tags cannot contain commas")
		}
	}
	return nil
}
