package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nmm-portal/nmm-api/internal/models"
)

const (
	resourceColumns         = `id, title, description, type, url, uploaded_by, uploaded_at, category`
	resourceColumnsPrefixed = `r.id, r.title, r.description, r.type, r.url, r.uploaded_by, r.uploaded_at, r.category`
)

func (s *Store) ListResources(ctx context.Context, category string) (resources []*models.Resource, err error) {
	start := time.Now()
	defer func() { observe(ctx, "getResources", start, err) }()

	return s.queryResources(ctx, `
		SELECT `+resourceColumns+` FROM resources
		WHERE ($1 = '' OR category = $1)
		ORDER BY uploaded_at DESC`, category)
}

func (s *Store) GetResources(ctx context.Context, ids []string) (resources []*models.Resource, err error) {
	start := time.Now()
	defer func() { observe(ctx, "getResourcesByID", start, err) }()

	found, err := s.queryResources(ctx, `SELECT `+resourceColumns+` FROM resources WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}

	// keep the caller's order
	byID := make(map[string]*models.Resource, len(found))
	for _, r := range found {
		byID[r.ID] = r
	}
	resources = []*models.Resource{}
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			resources = append(resources, r)
		}
	}
	return resources, nil
}

func (s *Store) CreateResource(ctx context.Context, r *models.Resource) (created *models.Resource, err error) {
	start := time.Now()
	defer func() { observe(ctx, "uploadResource", start, err) }()

	id := r.ID
	if id == "" {
		id = uuid.NewString()
	}

	row := s.pool.QueryRow(ctx, `
		INSERT INTO resources (`+resourceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+resourceColumns,
		id, r.Title, r.Description, string(r.Type), r.URL, r.UploadedBy, r.UploadedAt, r.Category)

	created, err = scanResource(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return created, nil
}

func (s *Store) Categories(ctx context.Context) (categories []string, err error) {
	start := time.Now()
	defer func() { observe(ctx, "resourceCategories", start, err) }()

	rows, err := s.pool.Query(ctx, `SELECT DISTINCT category FROM resources ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	categories, err = pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan categories: %w", err)
	}
	return categories, nil
}

func (s *Store) queryResources(ctx context.Context, query string, args ...any) ([]*models.Resource, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query resources: %w", err)
	}
	defer rows.Close()

	resources := []*models.Resource{}
	for rows.Next() {
		r, err := scanResource(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resource: %w", err)
		}
		resources = append(resources, r)
	}
	return resources, rows.Err()
}

// scanResource reads the resource columns after any leading destinations
func scanResource(row pgx.Row, leading ...any) (*models.Resource, error) {
	var (
		r       models.Resource
		resType string
	)
	dest := append(leading, &r.ID, &r.Title, &r.Description, &resType, &r.URL, &r.UploadedBy, &r.UploadedAt, &r.Category)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	r.Type = models.ResourceType(resType)
	return &r, nil
}
