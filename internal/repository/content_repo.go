package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"smart-life-organizer/internal/database"
	"smart-life-organizer/internal/model"
)

const contentColumns = `id, title, COALESCE(slug, ''), text, published, created_time, tags, user_id`

type ContentRepository struct {
	db *database.DB
}

func NewContentRepository(db *database.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

func (r *ContentRepository) List(ctx context.Context) ([]model.Content, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT `+contentColumns+` FROM content ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	defer rows.Close()

	contents := make([]model.Content, 0)
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		contents = append(contents, c)
	}
	return contents, rows.Err()
}

func (r *ContentRepository) FindByID(ctx context.Context, id int64) (model.Content, error) {
	return r.findOne(ctx, `SELECT `+contentColumns+` FROM content WHERE id = $1`, id)
}

func (r *ContentRepository) FindBySlug(ctx context.Context, slug string) (model.Content, error) {
	return r.findOne(ctx, `SELECT `+contentColumns+` FROM content WHERE slug = $1`, slug)
}

func (r *ContentRepository) Create(ctx context.Context, c model.Content) (model.Content, error) {
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO content (title, slug, text, published, tags, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_time`,
		c.Title, nullIfEmpty(c.Slug), c.Text, c.Published, model.JoinTags(c.Tags), c.UserID).
		Scan(&c.ID, &c.CreatedTime)

	if database.IsUniqueViolation(err) {
		return model.Content{}, model.ErrSlugConflict
	}
	if database.IsForeignKeyViolation(err) {
		return model.Content{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.Content{}, fmt.Errorf("create content: %w", err)
	}
	c.Tags = model.SplitTags(model.JoinTags(c.Tags))
	return c, nil
}

func (r *ContentRepository) Update(ctx context.Context, c model.Content) (model.Content, error) {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE content SET title = $2, text = $3, published = $4, tags = $5 WHERE id = $1`,
		c.ID, c.Title, c.Text, c.Published, model.JoinTags(c.Tags))
	if err != nil {
		return model.Content{}, fmt.Errorf("update content: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.Content{}, model.ErrContentNotFound
	}
	return c, nil
}

func (r *ContentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM content WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrContentNotFound
	}
	return nil
}

func (r *ContentRepository) findOne(ctx context.Context, query string, arg any) (model.Content, error) {
	c, err := scanContent(r.db.Pool.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Content{}, model.ErrContentNotFound
	}
	if err != nil {
		return model.Content{}, fmt.Errorf("find content: %w", err)
	}
	return c, nil
}

func scanContent(row pgx.Row) (model.Content, error) {
	var c model.Content
	var tags string
	if err := row.Scan(&c.ID, &c.Title, &c.Slug, &c.Text, &c.Published, &c.CreatedTime, &tags, &c.UserID); err != nil {
		return model.Content{}, err
	}
	c.Tags = model.SplitTags(tags)
	return c, nil
}

func nullIfEmpty(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
