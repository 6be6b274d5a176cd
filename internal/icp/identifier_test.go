package icp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/octobees/sdr-agent/internal/entity"
	"github.com/octobees/sdr-agent/internal/llm"
)

type fakeCompleter struct {
	payload string
	err     error
}

func (f *fakeCompleter) CompleteJSON(_ context.Context, _ llm.Request, out any) error {
	if f.err != nil {
		return f.err
	}
	return json.Unmarshal([]byte(f.payload), out)
}

func TestAnalyzeFit(t *testing.T) {
	identifier := NewIdentifier(&fakeCompleter{payload: `{"fit_score":85,"reasoning":"industry and size align","recommendation":"pursue"}`})

	analysis := identifier.AnalyzeFit(context.Background(), entity.Company{Name: "Acme"}, entity.Profile{Industry: "Technology"})
	if analysis.FitScore != 85 || analysis.Reasoning == "" {
		t.Fatalf("unexpected analysis: %+v", analysis)
	}
}

func TestAnalyzeFit_ClampsScore(t *testing.T) {
	cases := []struct {
		payload string
		want    int
	}{
		{`{"fit_score":140,"reasoning":"x"}`, 100},
		{`{"fit_score":-5,"reasoning":"x"}`, 0},
	}

	for _, tc := range cases {
		identifier := NewIdentifier(&fakeCompleter{payload: tc.payload})
		analysis := identifier.AnalyzeFit(context.Background(), entity.Company{Name: "Acme"}, entity.Profile{Industry: "Tech"})
		if analysis.FitScore != tc.want {
			t.Fatalf("expected clamped score %d, got %d", tc.want, analysis.FitScore)
		}
	}
}

func TestAnalyzeFit_FallbackOnFailure(t *testing.T) {
	identifier := NewIdentifier(&fakeCompleter{err: errors.New("model down")})

	analysis := identifier.AnalyzeFit(context.Background(), entity.Company{Name: "Acme"}, entity.Profile{Industry: "Tech"})
	if analysis.FitScore != 0 {
		t.Fatalf("expected zero fallback score, got %d", analysis.FitScore)
	}
	if analysis.Recommendation != "Manual review required" {
		t.Fatalf("unexpected recommendation %q", analysis.Recommendation)
	}
}

func TestIdentifyDecisionMakers(t *testing.T) {
	payload := `{"contacts":[
		{"first_name":"Jane","last_name":"Doe","job_title":"CTO","email":"jane@acme.com"},
		{"first_name":"John","last_name":"Smith","job_title":"VP Engineering"}
	]}`
	identifier := NewIdentifier(&fakeCompleter{payload: payload})

	contacts := identifier.IdentifyDecisionMakers(context.Background(), entity.Company{Name: "Acme"}, []string{"CTO"})
	if len(contacts) != 2 {
		t.Fatalf("expected 2 contacts, got %d", len(contacts))
	}
	if contacts[0].Company != "Acme" || contacts[0].Email != "jane@acme.com" {
		t.Fatalf("unexpected contact: %+v", contacts[0])
	}
	if contacts[1].Email != "" {
		t.Fatalf("expected second contact without email, got %q", contacts[1].Email)
	}
}

func TestIdentifyDecisionMakers_DropsInvalidCandidates(t *testing.T) {
	payload := `{"contacts":[
		{"first_name":"Jane","last_name":"Doe","job_title":"CTO","email":"not-an-email"},
		{"first_name":"John","last_name":"Smith","job_title":"CIO","email":"john@acme.com"}
	]}`
	identifier := NewIdentifier(&fakeCompleter{payload: payload})

	contacts := identifier.IdentifyDecisionMakers(context.Background(), entity.Company{Name: "Acme"}, []string{"CTO", "CIO"})
	if len(contacts) != 1 || contacts[0].FirstName != "John" {
		t.Fatalf("expected only the valid candidate, got %+v", contacts)
	}
}

func TestIdentifyDecisionMakers_FailureReturnsEmpty(t *testing.T) {
	identifier := NewIdentifier(&fakeCompleter{err: errors.New("boom")})

	if contacts := identifier.IdentifyDecisionMakers(context.Background(), entity.Company{Name: "Acme"}, nil); len(contacts) != 0 {
		t.Fatalf("expected no contacts on failure, got %+v", contacts)
	}
}
