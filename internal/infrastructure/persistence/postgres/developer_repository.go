package postgres

import (
	"context"
	"fmt"

	"developer-directory/internal/database"
	"developer-directory/internal/domain/developer"

	"github.com/google/uuid"
)

type DeveloperRepository struct {
	db database.DB
}

func NewDeveloperRepository(db database.DB) *DeveloperRepository {
	return &DeveloperRepository{db: db}
}

const developerColumns = `id, user_id, name, role, tech_stack, experience, description, photo_url, joining_date, created_at, updated_at`

func (r *DeveloperRepository) List(ctx context.Context, q developer.ListQuery) ([]developer.Developer, int64, error) {
	st := buildListStatement(q.Normalize())

	var total int64
	if err := r.db.QueryRow(ctx, st.Count, st.CountArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count developers: %w", err)
	}

	rows, err := r.db.Query(ctx, st.Select, st.Args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list developers: %w", err)
	}
	defer rows.Close()

	out := make([]developer.Developer, 0)
	for rows.Next() {
		d, err := scanDeveloper(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *DeveloperRepository) GetByID(ctx context.Context, id uuid.UUID) (developer.Developer, error) {
	row := r.db.QueryRow(ctx, `SELECT `+developerColumns+` FROM developers WHERE id = $1`, id)
	d, err := scanDeveloper(row)
	if err != nil {
		if isNoRows(err) {
			return developer.Developer{}, developer.ErrNotFound
		}
		return developer.Developer{}, err
	}
	return d, nil
}

func (r *DeveloperRepository) Create(ctx context.Context, d developer.Developer) (developer.Developer, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO developers (id, user_id, name, role, tech_stack, experience, description, photo_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+developerColumns,
		d.ID, d.UserID, d.Name, string(d.Role), d.TechStack, d.Experience, d.Description, d.PhotoURL,
	)
	created, err := scanDeveloper(row)
	if err != nil {
		return developer.Developer{}, fmt.Errorf("insert developer: %w", err)
	}
	return created, nil
}

func (r *DeveloperRepository) Update(ctx context.Context, d developer.Developer) (developer.Developer, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE developers
		 SET name = $1, role = $2, tech_stack = $3, experience = $4, description = $5, photo_url = $6, updated_at = NOW()
		 WHERE id = $7 AND user_id = $8
		 RETURNING `+developerColumns,
		d.Name, string(d.Role), d.TechStack, d.Experience, d.Description, d.PhotoURL, d.ID, d.UserID,
	)
	updated, err := scanDeveloper(row)
	if err != nil {
		if isNoRows(err) {
			return developer.Developer{}, developer.ErrNotFound
		}
		return developer.Developer{}, fmt.Errorf("update developer: %w", err)
	}
	return updated, nil
}

func (r *DeveloperRepository) Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM developers WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete developer: %w", err)
	}
	if n == 0 {
		return developer.ErrNotFound
	}
	return nil
}

func scanDeveloper(row database.Row) (developer.Developer, error) {
	var (
		d    developer.Developer
		role string
	)
	if err := row.Scan(
		&d.ID, &d.UserID, &d.Name, &role, &d.TechStack, &d.Experience,
		&d.Description, &d.PhotoURL, &d.JoiningDate, &d.CreatedAt, &d.UpdatedAt,
	); err != nil {
		return developer.Developer{}, err
	}
	d.Role = developer.Role(role)
	if d.TechStack == nil {
		d.TechStack = []string{}
	}
	return d, nil
}
