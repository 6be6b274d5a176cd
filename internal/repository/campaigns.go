package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/sdr-agent/internal/entity"
)

// ErrCampaignNotFound indicates there is no campaign row for the given id.
var ErrCampaignNotFound = errors.New("campaign not found")

// pgxPool is the subset of *pgxpool.Pool the repositories use. Tests swap in
// a stub.
type pgxPool interface {
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

var _ pgxPool = (*pgxpool.Pool)(nil)

// CampaignsRepository describes persistence operations for campaign runs.
type CampaignsRepository interface {
	Create(ctx context.Context, campaign *entity.Campaign) error
	Get(ctx context.Context, id uuid.UUID) (*entity.Campaign, error)
	SaveResults(ctx context.Context, campaignID uuid.UUID, results []*entity.ProcessingResult) error
	ListResults(ctx context.Context, campaignID uuid.UUID) ([]*entity.ProcessingResult, error)
}

// PGXCampaignsRepository implements CampaignsRepository using pgx.
type PGXCampaignsRepository struct {
	pool pgxPool
}

// NewPGXCampaignsRepository wires a pgx backed repository.
func NewPGXCampaignsRepository(pool *pgxpool.Pool) *PGXCampaignsRepository {
	return &PGXCampaignsRepository{pool: pool}
}

// Create inserts a campaign row with its profile stored as jsonb.
func (r *PGXCampaignsRepository) Create(ctx context.Context, campaign *entity.Campaign) error {
	if campaign == nil {
		return fmt.Errorf("campaign payload is nil")
	}

	profileJSON, err := json.Marshal(campaign.Profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
        INSERT INTO campaigns (id, value_proposition, profile, send, created_at)
        VALUES ($1, $2, $3::jsonb, $4, $5)
    `, campaign.ID, campaign.ValueProposition, string(profileJSON), campaign.Send, campaign.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert campaign: %w", err)
	}

	return nil
}

// Get retrieves a campaign by identifier.
func (r *PGXCampaignsRepository) Get(ctx context.Context, id uuid.UUID) (*entity.Campaign, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT id, value_proposition, profile, send, created_at
        FROM campaigns
        WHERE id = $1
    `, id)

	var (
		campaign    entity.Campaign
		profileJSON []byte
	)
	if err := row.Scan(&campaign.ID, &campaign.ValueProposition, &profileJSON, &campaign.Send, &campaign.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("query campaign: %w", err)
	}

	if len(profileJSON) > 0 {
		if err := json.Unmarshal(profileJSON, &campaign.Profile); err != nil {
			return nil, fmt.Errorf("unmarshal profile: %w", err)
		}
	}

	return &campaign, nil
}

// SaveResults persists a batch of prospect results in one transaction so a
// campaign's result set is never half-written.
func (r *PGXCampaignsRepository) SaveResults(ctx context.Context, campaignID uuid.UUID, results []*entity.ProcessingResult) error {
	if len(results) == 0 {
		return nil
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("start save results tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, result := range results {
		payload, err := json.Marshal(result)
		if err != nil {
			return fmt.Errorf("marshal result for %q: %w", result.Company, err)
		}

		_, err = tx.Exec(ctx, `
            INSERT INTO campaign_results (id, campaign_id, company, fit_score, skipped, payload, created_at)
            VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7)
        `, result.ID, campaignID, result.Company, result.FitScore, result.Skipped, string(payload), result.Timestamp)
		if err != nil {
			return fmt.Errorf("insert result for %q: %w", result.Company, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit save results tx: %w", err)
	}

	return nil
}

// ListResults returns a campaign's results in processing order.
func (r *PGXCampaignsRepository) ListResults(ctx context.Context, campaignID uuid.UUID) ([]*entity.ProcessingResult, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT payload
        FROM campaign_results
        WHERE campaign_id = $1
        ORDER BY created_at ASC, id ASC
    `, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list campaign results: %w", err)
	}
	defer rows.Close()

	var results []*entity.ProcessingResult
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan result row: %w", err)
		}
		var result entity.ProcessingResult
		if err := json.Unmarshal(payload, &result); err != nil {
			return nil, fmt.Errorf("unmarshal result payload: %w", err)
		}
		results = append(results, &result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate campaign results: %w", err)
	}
	return results, nil
}
