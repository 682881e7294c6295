package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/alzia/storefront/internal/core/domain"
	"github.com/alzia/storefront/internal/core/ports"
)

var (
	pngBytes  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	jpegBytes = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00")
)

type tryOnFixture struct {
	svc        *TryOnService
	customers  *stubCustomerRepo
	results    *stubTryOnRepo
	store      *stubObjectStore
	model      *stubModel
	compositor *stubCompositor
}

func newTryOnFixture(credits int, status domain.CustomerStatus) *tryOnFixture {
	customers := newStubCustomerRepo(&domain.Customer{
		ID: "c1", Email: "c1@example.com", Role: domain.RoleNormal, Status: status, TryOnCredits: credits,
	})
	f := &tryOnFixture{
		customers:  customers,
		results:    &stubTryOnRepo{},
		store:      newStubObjectStore(),
		model:      &stubModel{},
		compositor: &stubCompositor{},
	}
	f.svc = NewTryOnService(customers, f.results, f.store, f.model, &stubFetcher{}, f.compositor, "virtual-tryon", zerolog.Nop())
	n := 0
	f.svc.newJobID = func() string {
		n++
		return fmt.Sprintf("job-%d", n)
	}
	return f
}

func (f *tryOnFixture) generate() (*ports.TryOnOutput, error) {
	return f.svc.Generate(context.Background(), ports.TryOnInput{CustomerID: "c1", Garment: pngBytes, Person: jpegBytes})
}

func TestTryOnService_CreditsExhaust(t *testing.T) {
	const credits = 3
	f := newTryOnFixture(credits, domain.StatusActive)

	for i := 1; i <= credits; i++ {
		out, err := f.generate()
		if err != nil {
			t.Fatalf("generation %d failed: %v", i, err)
		}
		if out.CreditsRemaining != credits-i {
			t.Fatalf("after %d runs expected %d credits, got %d", i, credits-i, out.CreditsRemaining)
		}
	}

	if _, err := f.generate(); !errors.Is(err, domain.ErrNoCredits) {
		t.Fatalf("expected ErrNoCredits after exhausting credits, got %v", err)
	}
	if f.model.calls != credits {
		t.Fatalf("model must not run without credits: %d calls", f.model.calls)
	}

	c := f.customers.get("c1")
	if c.TryOnCredits != 0 || c.TryOnCreditsUsed != credits || c.LastTryOnAt == nil {
		t.Fatalf("unexpected ledger: %+v", c.Balance())
	}
	if len(f.results.results) != credits || len(f.results.history) != credits {
		t.Fatalf("expected %d results and history rows, got %d/%d", credits, len(f.results.results), len(f.results.history))
	}
}

func TestTryOnService_Artifacts(t *testing.T) {
	f := newTryOnFixture(1, domain.StatusActive)

	out, err := f.generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, key := range []string{
		"virtual-tryon/job-1/garment.png",
		"virtual-tryon/job-1/person.jpg",
		"virtual-tryon/job-1/output.png",
		"virtual-tryon/job-1/combined.png",
		"virtual-tryon/job-1/metadata.json",
	} {
		if _, ok := f.store.objects[key]; !ok {
			t.Errorf("missing artifact %s", key)
		}
	}
	if out.CombinedURL != "https://cdn.test/virtual-tryon/job-1/combined.png" {
		t.Fatalf("unexpected combined url %q", out.CombinedURL)
	}
	if f.model.params != domain.DefaultInferenceParams() {
		t.Fatalf("model invoked with unexpected params %+v", f.model.params)
	}
	res := f.results.results[0]
	if res.JobID != "job-1" || res.ModelUsed != domain.TryOnModelName || res.ResultImageURL != out.ResultURL {
		t.Fatalf("unexpected stored result %+v", res)
	}
}

func TestTryOnService_ModelFailureKeepsCredit(t *testing.T) {
	f := newTryOnFixture(2, domain.StatusActive)
	f.model.err = errors.New("queue full")

	_, err := f.generate()
	var ue *domain.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if f.model.calls != 1 {
		t.Fatalf("model must be invoked exactly once, got %d", f.model.calls)
	}
	if c := f.customers.get("c1"); c.TryOnCredits != 2 || c.TryOnCreditsUsed != 0 {
		t.Fatalf("credit must be untouched on failure: %+v", c.Balance())
	}
	if len(f.results.results) != 0 {
		t.Fatalf("no result row expected on failure")
	}
	if _, ok := f.store.objects["virtual-tryon/job-1/garment.png"]; !ok {
		t.Fatalf("uploaded inputs are not rolled back")
	}
}

func TestTryOnService_LaterStepFailuresKeepCredit(t *testing.T) {
	cases := map[string]func(f *tryOnFixture){
		"composite":     func(f *tryOnFixture) { f.compositor.err = errors.New("decode failed") },
		"output upload": func(f *tryOnFixture) { f.store.failOn = "virtual-tryon/job-1/output.png" },
		"metadata":      func(f *tryOnFixture) { f.store.failOn = "virtual-tryon/job-1/metadata.json" },
		"result row":    func(f *tryOnFixture) { f.results.resultErr = errors.New("write conflict") },
	}
	for name, breakIt := range cases {
		t.Run(name, func(t *testing.T) {
			f := newTryOnFixture(1, domain.StatusActive)
			breakIt(f)
			if _, err := f.generate(); err == nil {
				t.Fatalf("expected error")
			}
			if c := f.customers.get("c1"); c.TryOnCredits != 1 {
				t.Fatalf("credit deducted despite failure: %+v", c.Balance())
			}
		})
	}
}

func TestTryOnService_HistoryFailureIsNonFatal(t *testing.T) {
	f := newTryOnFixture(1, domain.StatusActive)
	f.results.historyErr = errors.New("history down")

	if _, err := f.generate(); err != nil {
		t.Fatalf("history failure must not fail the job: %v", err)
	}
	if c := f.customers.get("c1"); c.TryOnCredits != 0 {
		t.Fatalf("credit should still be charged, got %d", c.TryOnCredits)
	}
}

func TestTryOnService_Preconditions(t *testing.T) {
	f := newTryOnFixture(5, domain.StatusBlocked)
	if _, err := f.generate(); !errors.Is(err, domain.ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}

	f = newTryOnFixture(0, domain.StatusActive)
	if _, err := f.generate(); !errors.Is(err, domain.ErrNoCredits) {
		t.Fatalf("expected ErrNoCredits, got %v", err)
	}

	if _, err := f.svc.Generate(context.Background(), ports.TryOnInput{CustomerID: "ghost", Garment: pngBytes, Person: pngBytes}); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
	if _, err := f.svc.Generate(context.Background(), ports.TryOnInput{Garment: pngBytes, Person: pngBytes}); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	var ve *domain.ValidationError
	if _, err := f.svc.Generate(context.Background(), ports.TryOnInput{CustomerID: "c1", Person: pngBytes}); !errors.As(err, &ve) {
		t.Fatalf("expected validation error for missing garment, got %v", err)
	}
	if f.model.calls != 0 {
		t.Fatalf("model must not run when preconditions fail")
	}
}

func TestTryOnService_Credits(t *testing.T) {
	f := newTryOnFixture(2, domain.StatusActive)
	b, err := f.svc.Credits(context.Background(), "c1")
	if err != nil {
		t.Fatalf("Credits: %v", err)
	}
	if b.Credits != 2 || b.CreditsUsed != 0 || b.LastTryOnAt != nil {
		t.Fatalf("unexpected balance %+v", b)
	}
}
