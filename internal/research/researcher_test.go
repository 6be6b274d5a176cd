package research

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/octobees/sdr-agent/internal/entity"
	"github.com/octobees/sdr-agent/internal/llm"
)

type fakeCompleter struct {
	payload string
	err     error
	calls   int
}

func (f *fakeCompleter) CompleteJSON(_ context.Context, _ llm.Request, out any) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return json.Unmarshal([]byte(f.payload), out)
}

func TestResearchCompany(t *testing.T) {
	completer := &fakeCompleter{payload: `{"industry":"Technology","size":250,"location":"Austin, TX","description":"Builds widgets."}`}
	researcher := NewResearcher(completer, nil)

	company, err := researcher.ResearchCompany(context.Background(), "Acme", "https://acme.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if company.Name != "Acme" || company.Industry != "Technology" || company.Headcount != 250 {
		t.Fatalf("unexpected company: %+v", company)
	}
	if company.Website != "https://acme.com" {
		t.Fatalf("expected website to be carried over, got %q", company.Website)
	}
}

func TestResearchCompany_DegradesToBareRecord(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("model unavailable")}
	researcher := NewResearcher(completer, nil)

	company, err := researcher.ResearchCompany(context.Background(), "Acme", "")
	if err != nil {
		t.Fatalf("expected best-effort record, got error: %v", err)
	}
	if company.Name != "Acme" || company.Industry != "" {
		t.Fatalf("expected bare record, got %+v", company)
	}
}

func TestResearchCompany_RequiresName(t *testing.T) {
	researcher := NewResearcher(&fakeCompleter{}, nil)
	if _, err := researcher.ResearchCompany(context.Background(), "  ", ""); err == nil {
		t.Fatalf("expected error for empty name")
	}
}

func TestTriggerEvents_AttachedToCompany(t *testing.T) {
	completer := &fakeCompleter{payload: `{"trigger_events":["Raised Series B","Opened Berlin office"]}`}
	researcher := NewResearcher(completer, nil)

	company := entity.Company{Name: "Acme"}
	events := researcher.TriggerEvents(context.Background(), &company)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %v", events)
	}
	if len(company.TriggerEvents) != 2 {
		t.Fatalf("expected events attached to company, got %v", company.TriggerEvents)
	}
}

func TestTriggerEvents_FailureReturnsEmpty(t *testing.T) {
	researcher := NewResearcher(&fakeCompleter{err: errors.New("boom")}, nil)

	company := entity.Company{Name: "Acme"}
	if events := researcher.TriggerEvents(context.Background(), &company); events != nil {
		t.Fatalf("expected nil events on failure, got %v", events)
	}
}

func TestCompanyNews_PrefersWorker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/news" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"data":{"headlines":["Acme raises $40M","Acme launches v2"]}}`))
	}))
	defer server.Close()

	completer := &fakeCompleter{payload: `{"news":["model headline"]}`}
	researcher := NewResearcher(completer, NewWorkerClient(server.Client(), server.URL))

	company := entity.Company{Name: "Acme"}
	news := researcher.CompanyNews(context.Background(), &company)
	if len(news) != 2 || news[0] != "Acme raises $40M" {
		t.Fatalf("expected worker headlines, got %v", news)
	}
	if completer.calls != 0 {
		t.Fatalf("expected model to be skipped when worker answers")
	}
}

func TestCompanyNews_WorkerFailureFallsBackToModel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"news source down"}`, http.StatusBadGateway)
	}))
	defer server.Close()

	completer := &fakeCompleter{payload: `{"news":["Acme in the press"]}`}
	researcher := NewResearcher(completer, NewWorkerClient(server.Client(), server.URL))

	company := entity.Company{Name: "Acme"}
	news := researcher.CompanyNews(context.Background(), &company)
	if len(news) != 1 || news[0] != "Acme in the press" {
		t.Fatalf("expected model fallback headlines, got %v", news)
	}
	if len(company.RecentNews) != 1 {
		t.Fatalf("expected news attached to company, got %v", company.RecentNews)
	}
}
