package postgres

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/qfscore/internal/store"
	"github.com/dshills/qfscore/internal/trust"
)

// Donor is a row of the donors table.
type Donor struct {
	ID        string
	Wallet    string
	Verified  bool
	CreatedAt time.Time
}

// DonorRepository aggregates donations into trust activity.
type DonorRepository struct {
	pool *Pool
	now  func() time.Time
}

func NewDonorRepository(pool *Pool) *DonorRepository {
	return &DonorRepository{pool: pool, now: time.Now}
}

var _ store.ActivitySource = (*DonorRepository)(nil)

// Create inserts a donor. A zero CreatedAt uses the database clock.
func (r *DonorRepository) Create(ctx context.Context, d Donor) error {
	const query = `
		INSERT INTO donors (id, wallet, verified, created_at)
		VALUES ($1, NULLIF($2, ''), $3, COALESCE($4, now()))
	`
	var createdAt *time.Time
	if !d.CreatedAt.IsZero() {
		createdAt = &d.CreatedAt
	}
	if _, err := r.pool.Exec(ctx, query, d.ID, d.Wallet, d.Verified, createdAt); err != nil {
		return fmt.Errorf("postgres.DonorRepository.Create: %w", err)
	}
	return nil
}

// RecordDonation stores one contribution and returns its ID.
func (r *DonorRepository) RecordDonation(ctx context.Context, donorID, projectID string, amount float64) (uuid.UUID, error) {
	const query = `
		INSERT INTO donations (id, donor_id, project_id, amount)
		VALUES ($1, $2, $3, $4)
	`
	id := uuid.New()
	if _, err := r.pool.Exec(ctx, query, id.String(), donorID, projectID, amount); err != nil {
		return uuid.Nil, fmt.Errorf("postgres.DonorRepository.RecordDonation: %w", err)
	}
	return id, nil
}

// Activity returns the aggregated donation history of a donor. It returns
// store.ErrNotFound for an unknown donor.
func (r *DonorRepository) Activity(ctx context.Context, donorID string) (trust.Activity, error) {
	const query = `
		SELECT d.verified,
		       d.created_at,
		       COUNT(x.id),
		       COALESCE(SUM(x.amount), 0)::float8,
		       COUNT(DISTINCT x.project_id)
		FROM donors d
		LEFT JOIN donations x ON x.donor_id = d.id
		WHERE d.id = $1
		GROUP BY d.id
	`
	var (
		verified      bool
		createdAt     time.Time
		contributions int64
		donated       float64
		projects      int64
	)
	err := r.pool.QueryRow(ctx, query, donorID).Scan(&verified, &createdAt, &contributions, &donated, &projects)
	if err != nil {
		if isNotFoundError(err) {
			return trust.Activity{}, store.ErrNotFound
		}
		return trust.Activity{}, fmt.Errorf("postgres.DonorRepository.Activity: %w", err)
	}

	return trust.Activity{
		AccountAgeDays:     ageDays(createdAt, r.now()),
		TotalContributions: int(contributions),
		TotalDonated:       donated,
		UniqueProjects:     int(projects),
		Verified:           verified,
	}, nil
}

// ageDays counts whole days between created and now, never negative.
func ageDays(created, now time.Time) int {
	d := now.Sub(created)
	if d <= 0 {
		return 0
	}
	return int(math.Floor(d.Hours() / 24))
}
