package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/octobees/sdr-agent/internal/entity"
)

func TestPGXCampaignsRepository_CreateValidation(t *testing.T) {
	repo := &PGXCampaignsRepository{}
	if err := repo.Create(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil campaign")
	}
}

func TestPGXCampaignsRepository_Create(t *testing.T) {
	profile, err := entity.NewProfile("SaaS", nil, nil, []string{"CTO"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	campaign := entity.NewCampaign(profile, "We save you time", true)

	called := false
	repo := &PGXCampaignsRepository{pool: &stubPool{
		execFunc: func(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
			called = true
			if len(args) != 5 {
				t.Fatalf("expected 5 args, got %d", len(args))
			}
			if args[0] != campaign.ID {
				t.Fatalf("expected campaign id arg, got %v", args[0])
			}
			var stored entity.Profile
			if err := json.Unmarshal([]byte(args[2].(string)), &stored); err != nil {
				t.Fatalf("profile arg not valid json: %v", err)
			}
			if stored.Industry != "SaaS" {
				t.Fatalf("unexpected stored profile %+v", stored)
			}
			return pgconn.CommandTag{}, nil
		},
	}}

	if err := repo.Create(context.Background(), campaign); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatalf("expected exec to be called")
	}
}

func TestPGXCampaignsRepository_Get(t *testing.T) {
	id := uuid.MustParse("cccccccc-cccc-cccc-cccc-cccccccccccc")
	profileJSON := []byte(`{"industry":"SaaS","job_titles":["CTO"]}`)

	repo := &PGXCampaignsRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			return &stubRow{scan: func(dest ...any) error {
				*dest[0].(*uuid.UUID) = id
				*dest[1].(*string) = "We save you time"
				*dest[2].(*[]byte) = profileJSON
				*dest[3].(*bool) = true
				*dest[4].(*time.Time) = time.Now()
				return nil
			}}
		},
	}}

	campaign, err := repo.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if campaign.ID != id || !campaign.Send {
		t.Fatalf("unexpected campaign %+v", campaign)
	}
	if campaign.Profile.Industry != "SaaS" || len(campaign.Profile.JobTitles) != 1 {
		t.Fatalf("profile not decoded: %+v", campaign.Profile)
	}
}

func TestPGXCampaignsRepository_GetNotFound(t *testing.T) {
	repo := &PGXCampaignsRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			return &stubRow{scan: func(dest ...any) error { return pgx.ErrNoRows }}
		},
	}}

	_, err := repo.Get(context.Background(), uuid.New())
	if !errors.Is(err, ErrCampaignNotFound) {
		t.Fatalf("expected ErrCampaignNotFound, got %v", err)
	}
}

func TestPGXCampaignsRepository_SaveResultsEmpty(t *testing.T) {
	repo := &PGXCampaignsRepository{}
	if err := repo.SaveResults(context.Background(), uuid.New(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPGXCampaignsRepository_ListResults(t *testing.T) {
	first := entity.NewProcessingResult("Acme")
	first.FitScore = 85
	second := entity.NewProcessingResult("Globex")
	second.Skipped = true
	second.SkipReason = entity.SkipReasonLowFit

	payloads := make([][]byte, 0, 2)
	for _, result := range []*entity.ProcessingResult{first, second} {
		payload, err := json.Marshal(result)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		payloads = append(payloads, payload)
	}

	scans := make([]func(dest ...any) error, 0, len(payloads))
	for _, payload := range payloads {
		payload := payload
		scans = append(scans, func(dest ...any) error {
			*dest[0].(*[]byte) = payload
			return nil
		})
	}

	repo := &PGXCampaignsRepository{pool: &stubPool{
		queryFunc: func(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
			return &stubRows{scans: scans}, nil
		},
	}}

	results, err := repo.ListResults(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Company != "Acme" || results[0].FitScore != 85 {
		t.Fatalf("unexpected first result %+v", results[0])
	}
	if !results[1].Skipped || results[1].SkipReason != entity.SkipReasonLowFit {
		t.Fatalf("unexpected second result %+v", results[1])
	}
}
