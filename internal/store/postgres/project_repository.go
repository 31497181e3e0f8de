package postgres

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dshills/qfscore/internal/project"
	"github.com/dshills/qfscore/internal/store"
)

// ProjectRepository reads projects together with their funding totals.
type ProjectRepository struct {
	pool *Pool
	now  func() time.Time
}

func NewProjectRepository(pool *Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool, now: time.Now}
}

var _ store.ProjectSource = (*ProjectRepository)(nil)

// Create inserts a project. A nil deadline means open-ended.
func (r *ProjectRepository) Create(ctx context.Context, p project.Project, deadline *time.Time) error {
	const query = `
		INSERT INTO projects (id, title, category, goal, deadline)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.pool.Exec(ctx, query, p.ID, p.Title, p.Category, p.Goal, deadline); err != nil {
		return fmt.Errorf("postgres.ProjectRepository.Create: %w", err)
	}
	return nil
}

const projectSelect = `
	SELECT p.id,
	       p.title,
	       p.category,
	       p.goal::float8,
	       p.deadline,
	       COALESCE(SUM(x.amount), 0)::float8,
	       COUNT(DISTINCT x.donor_id)
	FROM projects p
	LEFT JOIN donations x ON x.project_id = p.id
`

// List returns every project ordered by ID.
func (r *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	rows, err := r.pool.Query(ctx, projectSelect+` GROUP BY p.id ORDER BY p.id`)
	if err != nil {
		return nil, fmt.Errorf("postgres.ProjectRepository.List: %w", err)
	}
	defer rows.Close()

	var out []project.Project
	for rows.Next() {
		p, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres.ProjectRepository.List: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres.ProjectRepository.List: %w", err)
	}
	return out, nil
}

// Get returns one project or store.ErrNotFound.
func (r *ProjectRepository) Get(ctx context.Context, id string) (project.Project, error) {
	row := r.pool.QueryRow(ctx, projectSelect+` WHERE p.id = $1 GROUP BY p.id`, id)
	p, err := r.scan(row)
	if err != nil {
		if isNotFoundError(err) {
			return project.Project{}, store.ErrNotFound
		}
		return project.Project{}, fmt.Errorf("postgres.ProjectRepository.Get: %w", err)
	}
	return p, nil
}

func (r *ProjectRepository) scan(row pgx.Row) (project.Project, error) {
	var (
		p            project.Project
		deadline     *time.Time
		contributors int64
	)
	if err := row.Scan(&p.ID, &p.Title, &p.Category, &p.Goal, &deadline, &p.Raised, &contributors); err != nil {
		return project.Project{}, err
	}
	p.Contributors = int(contributors)
	if deadline != nil {
		p.DaysLeft = daysLeft(*deadline, r.now())
	}
	return p, nil
}

// daysLeft rounds the remaining time up to whole days; past deadlines give 0.
func daysLeft(deadline, now time.Time) int {
	d := deadline.Sub(now)
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Hours() / 24))
}
