package seeder

import "developer-directory/internal/pkg/password"

func Defaults(hasher password.Hasher) []Seeder {
	return []Seeder{
		DemoSeeder{Hasher: hasher},
	}
}
