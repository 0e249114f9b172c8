package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"smart-life-organizer/internal/authz"
	"smart-life-organizer/internal/model"
	"smart-life-organizer/internal/util"
)

const maxSlugAttempts = 20

type ContentService struct {
	content ContentStore
	logger  *slog.Logger
}

func NewContentService(content ContentStore, logger *slog.Logger) *ContentService {
	return &ContentService{content: content, logger: logger}
}

func (s *ContentService) List(ctx context.Context) ([]model.Content, error) {
	return s.content.List(ctx)
}

// Get resolves a numeric id first and falls back to the slug.
func (s *ContentService) Get(ctx context.Context, idOrSlug string) (model.Content, error) {
	if id, err := strconv.ParseInt(idOrSlug, 10, 64); err == nil {
		content, err := s.content.FindByID(ctx, id)
		if !errors.Is(err, model.ErrContentNotFound) {
			return content, err
		}
	}
	return s.content.FindBySlug(ctx, idOrSlug)
}

// Create stores content owned by the caller. The slug is derived from the
// title; taken slugs get a numeric suffix.
func (s *ContentService) Create(ctx context.Context, caller *model.Principal, req model.CreateContentRequest) (model.Content, error) {
	if d := authz.Authenticated(caller); !d.Allowed() {
		return model.Content{}, d.Err()
	}

	req.Title = strings.TrimSpace(req.Title)
	if err := req.Validate(); err != nil {
		return model.Content{}, ValidationError(err)
	}

	content := model.Content{
		Title:     req.Title,
		Text:      req.Text,
		Published: req.Published,
		Tags:      req.Tags,
		UserID:    caller.User.ID,
	}

	base := util.Slugify(req.Title)
	if base == "" {
		return s.create(ctx, content)
	}

	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		content.Slug = base
		if attempt > 1 {
			content.Slug = fmt.Sprintf("%s-%d", base, attempt)
		}

		created, err := s.create(ctx, content)
		if !errors.Is(err, model.ErrSlugConflict) {
			return created, err
		}
	}
	return model.Content{}, model.ErrSlugConflict
}

func (s *ContentService) create(ctx context.Context, content model.Content) (model.Content, error) {
	created, err := s.content.Create(ctx, content)
	if err != nil {
		return model.Content{}, err
	}
	s.logger.Info("content created", "content_id", created.ID, "slug", created.Slug, "user_id", created.UserID)
	return created, nil
}

// Patch applies an allow-listed partial update. The resource is loaded before
// ownership is checked, so a missing id is reported ahead of a forbidden one.
func (s *ContentService) Patch(ctx context.Context, caller *model.Principal, id int64, patch model.ContentPatch) (model.Content, error) {
	content, err := s.content.FindByID(ctx, id)
	if err != nil {
		return model.Content{}, err
	}

	if d := authz.OwnerOrAdmin(caller, content.UserID); !d.Allowed() {
		return model.Content{}, d.Err()
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		patch.Title = &title
	}
	if err := patch.Validate(); err != nil {
		return model.Content{}, ValidationError(err)
	}

	patch.Apply(&content)
	return s.content.Update(ctx, content)
}

func (s *ContentService) Delete(ctx context.Context, caller *model.Principal, id int64) error {
	content, err := s.content.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if d := authz.OwnerOrAdmin(caller, content.UserID); !d.Allowed() {
		return d.Err()
	}

	if err := s.content.Delete(ctx, content.ID); err != nil {
		return err
	}

	s.logger.Info("content deleted", "content_id", content.ID, "by", caller.User.Username)
	return nil
}
