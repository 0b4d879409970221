package seeder

import (
	"context"
	"fmt"

	"developer-directory/internal/database"
	"developer-directory/internal/domain/developer"
	"developer-directory/internal/pkg/password"

	"github.com/google/uuid"
)

const (
	DemoEmail    = "demo@devdirectory.local"
	DemoPassword = "demo1234"
)

// DemoSeeder creates a demo account and, when that account owns no profiles
// yet, a sample set of developers. It is safe to run repeatedly.
type DemoSeeder struct {
	Hasher password.Hasher
}

func (DemoSeeder) Name() string { return "demo" }

func (s DemoSeeder) Run(ctx context.Context, db database.DB) error {
	if s.Hasher == nil {
		return fmt.Errorf("nil password hasher")
	}
	if err := EnsureTableColumns(ctx, db, "accounts", "id", "name", "email", "password_hash"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "developers", "id", "user_id", "name", "role", "tech_stack", "experience", "description", "photo_url"); err != nil {
		return err
	}

	hash, err := s.Hasher.Hash(DemoPassword)
	if err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	if _, err := tx.Exec(ctx,
		`INSERT INTO accounts (id, name, email, password_hash) VALUES ($1, $2, $3, $4) ON CONFLICT (email) DO NOTHING`,
		uuid.New(), "Demo User", DemoEmail, hash,
	); err != nil {
		return err
	}

	var ownerID uuid.UUID
	if err := tx.QueryRow(ctx, `SELECT id FROM accounts WHERE email = $1`, DemoEmail).Scan(&ownerID); err != nil {
		return err
	}

	var owned int
	if err := tx.QueryRow(ctx, `SELECT COUNT(1) FROM developers WHERE user_id = $1`, ownerID).Scan(&owned); err != nil {
		return err
	}
	if owned == 0 {
		for _, d := range DemoDevelopers() {
			if _, err := tx.Exec(ctx,
				`INSERT INTO developers (id, user_id, name, role, tech_stack, experience, description)
				 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				uuid.New(), ownerID, d.Name, string(d.Role), d.TechStack, d.Experience, d.Description,
			); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// DemoDevelopers returns the sample profiles loaded by DemoSeeder.
func DemoDevelopers() []developer.Developer {
	type row struct {
		name  string
		role  developer.Role
		stack []string
		years int
	}
	rows := []row{
		{"Ada Lovelace", developer.RoleBackend, []string{"Go", "PostgreSQL"}, 12},
		{"Alan Turing", developer.RoleFullStack, []string{"React", "Node"}, 9},
		{"Grace Hopper", developer.RoleBackend, []string{"COBOL", "Java"}, 30},
		{"Linus Torvalds", developer.RoleBackend, []string{"C", "Rust"}, 25},
		{"Margaret Hamilton", developer.RoleFullStack, []string{"TypeScript", "Go"}, 20},
		{"Dan Abramov", developer.RoleFrontend, []string{"React", "Redux"}, 10},
		{"Evan You", developer.RoleFrontend, []string{"Vue", "Vite"}, 9},
		{"Rich Harris", developer.RoleFrontend, []string{"Svelte", "JavaScript"}, 8},
		{"Rob Pike", developer.RoleBackend, []string{"Go", "Plan 9"}, 40},
		{"Ken Thompson", developer.RoleBackend, []string{"C", "Go"}, 50},
		{"Sarah Drasner", developer.RoleFrontend, []string{"Vue", "SVG"}, 11},
		{"Kent C. Dodds", developer.RoleFrontend, []string{"React", "Testing Library"}, 10},
		{"Guillermo Rauch", developer.RoleFullStack, []string{"Next.js", "Node"}, 14},
		{"Ryan Dahl", developer.RoleBackend, []string{"Node", "Deno"}, 15},
		{"Addy Osmani", developer.RoleFrontend, []string{"JavaScript", "Chrome"}, 13},
		{"Kelsey Hightower", developer.RoleBackend, []string{"Go", "Kubernetes"}, 16},
		{"Jessie Frazelle", developer.RoleBackend, []string{"Go", "Docker"}, 9},
		{"Mitchell Hashimoto", developer.RoleBackend, []string{"Go", "Terraform"}, 14},
		{"Lea Verou", developer.RoleFrontend, []string{"CSS", "JavaScript"}, 15},
		{"Wes Bos", developer.RoleFullStack, []string{"JavaScript", "Node"}, 12},
		{"Tanner Linsley", developer.RoleFrontend, []string{"React", "TypeScript"}, 7},
		{"Miško Hevery", developer.RoleFrontend, []string{"Angular", "Qwik"}, 20},
		{"DHH", developer.RoleFullStack, []string{"Ruby", "Rails"}, 22},
		{"Taylor Otwell", developer.RoleFullStack, []string{"PHP", "Laravel"}, 13},
		{"Junior Dev", developer.RoleFullStack, []string{"HTML", "CSS"}, 0},
	}

	out := make([]developer.Developer, 0, len(rows))
	for _, r := range rows {
		desc := fmt.Sprintf("%s developer working with %s.", r.role, r.stack[0])
		out = append(out, developer.Developer{
			Name:        r.name,
			Role:        r.role,
			TechStack:   r.stack,
			Experience:  r.years,
			Description: &desc,
		})
	}
	return out
}
