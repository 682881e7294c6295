package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/alzia/storefront/internal/core/domain"
	"github.com/alzia/storefront/internal/core/ports"
)

func newTestTokenService() (*ImageTokenService, *stubTokenStore, *stubFetcher) {
	store := newStubTokenStore()
	fetcher := &stubFetcher{}
	return NewImageTokenService(store, fetcher, []string{"https://cdn.test"}, 10*time.Minute, 24*time.Hour, zerolog.Nop()), store, fetcher
}

func TestImageTokenService_IssueDefaults(t *testing.T) {
	svc, store, _ := newTestTokenService()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	issued, err := svc.Issue(context.Background(), "https://cdn.test/result.png", 0)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if len(issued.Token) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(issued.Token))
	}
	if !issued.ExpiresAt.Equal(now.Add(10*time.Minute)) || issued.ExpiresIn != 10*time.Minute {
		t.Fatalf("unexpected expiry %v / %v", issued.ExpiresAt, issued.ExpiresIn)
	}
	if _, ok := store.tokens[issued.Token]; !ok {
		t.Fatalf("token not stored")
	}

	other, _ := svc.Issue(context.Background(), "https://cdn.test/result.png", 5)
	if other.Token == issued.Token {
		t.Fatalf("tokens must be unique")
	}
	if other.ExpiresIn != 5*time.Minute {
		t.Fatalf("expected 5 minute expiry, got %v", other.ExpiresIn)
	}
}

func TestImageTokenService_IssueValidation(t *testing.T) {
	svc, _, _ := newTestTokenService()
	var ve *domain.ValidationError

	for _, u := range []string{"", "ftp://x/y.png", "/relative.png", "https://"} {
		if _, err := svc.Issue(context.Background(), u, 0); !errors.As(err, &ve) {
			t.Errorf("expected validation error for %q, got %v", u, err)
		}
	}
	if _, err := svc.Issue(context.Background(), "https://cdn.test/a.png", -1); !errors.As(err, &ve) {
		t.Fatalf("expected validation error for negative minutes, got %v", err)
	}
	if _, err := svc.Issue(context.Background(), "https://cdn.test/a.png", 24*60+1); !errors.As(err, &ve) {
		t.Fatalf("expected validation error above max, got %v", err)
	}
}

func TestImageTokenService_SingleUse(t *testing.T) {
	svc, _, fetcher := newTestTokenService()
	ctx := context.Background()

	issued, _ := svc.Issue(ctx, "https://cdn.test/result.png", 0)

	img, tok, err := svc.Redeem(ctx, issued.Token)
	if err != nil {
		t.Fatalf("first redeem: %v", err)
	}
	if len(img.Data) == 0 || tok.Downloads != 1 || !tok.Used {
		t.Fatalf("unexpected first redeem result: %+v", tok)
	}

	if _, _, err := svc.Redeem(ctx, issued.Token); !errors.Is(err, domain.ErrTokenUsed) {
		t.Fatalf("expected ErrTokenUsed on second redeem, got %v", err)
	}
	if fetcher.calls != 1 {
		t.Fatalf("source must be fetched once, got %d", fetcher.calls)
	}
}

func TestImageTokenService_Expired(t *testing.T) {
	svc, store, fetcher := newTestTokenService()
	ctx := context.Background()
	now := time.Now()
	svc.now = func() time.Time { return now }

	issued, _ := svc.Issue(ctx, "https://cdn.test/result.png", 1)

	svc.now = func() time.Time { return now.Add(2 * time.Minute) }
	if _, _, err := svc.Redeem(ctx, issued.Token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
	if _, ok := store.tokens[issued.Token]; ok {
		t.Fatalf("expired token should be removed")
	}
	if fetcher.calls != 0 {
		t.Fatalf("expired token must not fetch the source")
	}
}

func TestImageTokenService_FetchFailureBurnsToken(t *testing.T) {
	svc, _, fetcher := newTestTokenService()
	ctx := context.Background()
	fetcher.err = errors.New("connection reset")

	issued, _ := svc.Issue(ctx, "https://cdn.test/result.png", 0)

	var ue *domain.UpstreamError
	if _, _, err := svc.Redeem(ctx, issued.Token); !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}

	fetcher.err = nil
	if _, _, err := svc.Redeem(ctx, issued.Token); !errors.Is(err, domain.ErrTokenUsed) {
		t.Fatalf("token must stay consumed after a failed fetch, got %v", err)
	}
}

func TestImageTokenService_UnknownAndMissing(t *testing.T) {
	svc, _, _ := newTestTokenService()

	if _, _, err := svc.Redeem(context.Background(), "deadbeef"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
	var ve *domain.ValidationError
	if _, _, err := svc.Redeem(context.Background(), ""); !errors.As(err, &ve) {
		t.Fatalf("expected validation error for missing token, got %v", err)
	}
}

func TestImageTokenService_IssueOnlyUnderStorage(t *testing.T) {
	svc, _, _ := newTestTokenService()
	var ve *domain.ValidationError

	for _, u := range []string{
		"http://169.254.169.254/latest/meta-data/iam",
		"http://localhost:6379/",
		"https://cdn.test.evil.example/x.png",
		"http://cdn.test/x.png",
		"https://user:pw@cdn.test/x.png",
		"https://cdn.test/a/../../x.png",
		"https://cdn.test",
	} {
		if _, err := svc.Issue(context.Background(), u, 0); !errors.As(err, &ve) {
			t.Errorf("expected %q to be refused, got %v", u, err)
		}
	}

	if _, err := svc.Issue(context.Background(), "https://CDN.test/virtual-tryon/job/output.png", 0); err != nil {
		t.Fatalf("storage URL refused: %v", err)
	}
}

func TestImageTokenService_IssuePathStyleBucket(t *testing.T) {
	svc := NewImageTokenService(newStubTokenStore(), &stubFetcher{},
		[]string{"http://minio:9000/tryon", "::not a url::"}, 0, 0, zerolog.Nop())
	var ve *domain.ValidationError

	if _, err := svc.Issue(context.Background(), "http://minio:9000/tryon/job/output.png", 0); err != nil {
		t.Fatalf("object in bucket refused: %v", err)
	}
	for _, u := range []string{
		"http://minio:9000/tryon-private/x.png",
		"http://minio:9000/other/x.png",
		"http://minio:9000/tryon/../other/x.png",
	} {
		if _, err := svc.Issue(context.Background(), u, 0); !errors.As(err, &ve) {
			t.Errorf("expected %q to be refused, got %v", u, err)
		}
	}
}

func TestImageTokenService_NoSourcesRefusesAll(t *testing.T) {
	svc := NewImageTokenService(newStubTokenStore(), &stubFetcher{}, nil, 0, 0, zerolog.Nop())
	var ve *domain.ValidationError
	if _, err := svc.Issue(context.Background(), "https://cdn.test/result.png", 0); !errors.As(err, &ve) {
		t.Fatalf("expected validation error without sources, got %v", err)
	}
}

func TestImageTokenService_RedeemRejectsNonImageBody(t *testing.T) {
	svc, _, fetcher := newTestTokenService()
	ctx := context.Background()
	fetcher.images = map[string]*ports.Image{
		"https://cdn.test/leak.png": {Data: []byte(`{"AccessKeyId":"AKIA-SECRET"}`), ContentType: "application/json"},
	}

	issued, err := svc.Issue(ctx, "https://cdn.test/leak.png", 0)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	var ue *domain.UpstreamError
	img, _, err := svc.Redeem(ctx, issued.Token)
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError for a non-image body, got %v", err)
	}
	if img != nil {
		t.Fatalf("body must not be returned")
	}
	if _, _, err := svc.Redeem(ctx, issued.Token); !errors.Is(err, domain.ErrTokenUsed) {
		t.Fatalf("token must stay consumed, got %v", err)
	}
}
