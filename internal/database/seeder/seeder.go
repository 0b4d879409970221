package seeder

import (
	"context"

	"developer-directory/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
