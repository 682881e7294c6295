package service

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/alzia/storefront/internal/core/domain"
	"github.com/alzia/storefront/internal/core/ports"
)

const historyLimit = 50

// TryOnService runs one virtual try-on job per request, strictly in sequence:
// upload inputs, generate, download, composite, upload outputs, record, charge.
type TryOnService struct {
	customers  ports.CustomerRepository
	results    ports.TryOnRepository
	store      ports.ObjectStore
	model      ports.TryOnModel
	fetcher    ports.ImageFetcher
	compositor ports.Compositor
	prefix     string
	logger     zerolog.Logger
	now        func() time.Time
	newJobID   func() string
}

func NewTryOnService(
	customers ports.CustomerRepository,
	results ports.TryOnRepository,
	store ports.ObjectStore,
	model ports.TryOnModel,
	fetcher ports.ImageFetcher,
	compositor ports.Compositor,
	prefix string,
	logger zerolog.Logger,
) *TryOnService {
	return &TryOnService{
		customers:  customers,
		results:    results,
		store:      store,
		model:      model,
		fetcher:    fetcher,
		compositor: compositor,
		prefix:     prefix,
		logger:     logger,
		now:        time.Now,
		newJobID:   uuid.NewString,
	}
}

type tryOnMetadata struct {
	JobID      string    `json:"job_id"`
	CustomerID string    `json:"customer_id"`
	Model      string    `json:"model"`
	GarmentURL string    `json:"garment_url"`
	PersonURL  string    `json:"person_url"`
	OutputURL  string    `json:"output_url"`
	Combined   string    `json:"combined_url"`
	Params     paramsDoc `json:"params"`
	CreatedAt  time.Time `json:"created_at"`
}

type paramsDoc struct {
	GarmentDescription string `json:"garment_description"`
	AutoMask           bool   `json:"auto_mask"`
	AutoCrop           bool   `json:"auto_crop"`
	DenoiseSteps       int    `json:"denoise_steps"`
	Seed               int    `json:"seed"`
}

// Generate executes a try-on job. Any failure aborts the job; artifacts
// already uploaded are left in place and no credit is charged.
func (s *TryOnService) Generate(ctx context.Context, in ports.TryOnInput) (*ports.TryOnOutput, error) {
	if in.CustomerID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if len(in.Garment) == 0 {
		return nil, domain.NewValidationError("garment", "image is required")
	}
	if len(in.Person) == 0 {
		return nil, domain.NewValidationError("person", "image is required")
	}

	customer, err := s.customers.FindByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if !customer.IsActive() {
		return nil, domain.ErrAccountDisabled
	}
	if customer.TryOnCredits <= 0 {
		return nil, domain.ErrNoCredits
	}

	jobID := s.newJobID()
	log := s.logger.With().Str("job_id", jobID).Str("customer_id", customer.ID).Logger()
	log.Info().Msg("try-on job started")

	garmentURL, err := s.putImage(ctx, jobID, domain.ArtifactGarment, in.Garment)
	if err != nil {
		return nil, err
	}
	personURL, err := s.putImage(ctx, jobID, domain.ArtifactPerson, in.Person)
	if err != nil {
		return nil, err
	}

	params := domain.DefaultInferenceParams()
	resultURL, err := s.model.Generate(ctx, garmentURL, personURL, params)
	if err != nil {
		log.Error().Err(err).Msg("try-on generation failed")
		return nil, domain.Upstream("try-on model", err)
	}

	result, err := s.fetcher.Fetch(ctx, resultURL)
	if err != nil {
		return nil, domain.Upstream("result download", err)
	}

	combined, err := s.compositor.Compose(in.Garment, in.Person, result.Data, s.now())
	if err != nil {
		return nil, fmt.Errorf("build composite: %w", err)
	}

	outputURL, err := s.put(ctx, s.key(jobID, string(domain.ArtifactOutput)+".png"), "image/png", result.Data)
	if err != nil {
		return nil, err
	}
	combinedURL, err := s.put(ctx, s.key(jobID, string(domain.ArtifactCombined)+".png"), "image/png", combined)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	meta, err := json.Marshal(tryOnMetadata{
		JobID:      jobID,
		CustomerID: customer.ID,
		Model:      domain.TryOnModelName,
		GarmentURL: garmentURL,
		PersonURL:  personURL,
		OutputURL:  outputURL,
		Combined:   combinedURL,
		Params: paramsDoc{
			GarmentDescription: params.GarmentDescription,
			AutoMask:           params.AutoMask,
			AutoCrop:           params.AutoCrop,
			DenoiseSteps:       params.DenoiseSteps,
			Seed:               params.Seed,
		},
		CreatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}
	metadataURL, err := s.put(ctx, s.key(jobID, string(domain.ArtifactMetadata)+".json"), "application/json", meta)
	if err != nil {
		return nil, err
	}

	if err := s.results.InsertResult(ctx, &domain.TryOnResult{
		JobID:          jobID,
		CustomerID:     customer.ID,
		GarmentURL:     garmentURL,
		PersonURL:      personURL,
		ResultImageURL: outputURL,
		CombinedURL:    combinedURL,
		MetadataURL:    metadataURL,
		ModelUsed:      domain.TryOnModelName,
		CreatedAt:      now,
	}); err != nil {
		return nil, fmt.Errorf("save try-on result: %w", err)
	}

	charged, err := s.customers.DeductTryOnCredit(ctx, customer.ID, now)
	if err != nil {
		return nil, err
	}

	if err := s.results.InsertHistory(ctx, &domain.TryOnHistory{
		ID:          uuid.NewString(),
		CustomerID:  customer.ID,
		JobID:       jobID,
		CreditsUsed: 1,
		ModelUsed:   domain.TryOnModelName,
		CreatedAt:   now,
	}); err != nil {
		log.Warn().Err(err).Msg("failed to record try-on history")
	}

	log.Info().Int("credits_remaining", charged.Balance().Credits).Msg("try-on job completed")

	return &ports.TryOnOutput{
		JobID:            jobID,
		ResultURL:        outputURL,
		CombinedURL:      combinedURL,
		GarmentURL:       garmentURL,
		PersonURL:        personURL,
		MetadataURL:      metadataURL,
		CreditsRemaining: charged.Balance().Credits,
	}, nil
}

func (s *TryOnService) Credits(ctx context.Context, customerID string) (*domain.CreditBalance, error) {
	c, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	b := c.Balance()
	return &b, nil
}

func (s *TryOnService) History(ctx context.Context, customerID string) ([]*domain.TryOnResult, error) {
	return s.results.ListResults(ctx, customerID, historyLimit)
}

// putImage stores an uploaded input under <role>.<ext>, with the extension
// taken from the sniffed content type.
func (s *TryOnService) putImage(ctx context.Context, jobID string, role domain.ArtifactRole, data []byte) (string, error) {
	mt := mimetype.Detect(data)
	return s.put(ctx, s.key(jobID, string(role)+mt.Extension()), mt.String(), data)
}

func (s *TryOnService) put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	url, err := s.store.Put(ctx, key, contentType, data)
	if err != nil {
		return "", domain.Upstream("storage", err)
	}
	return url, nil
}

func (s *TryOnService) key(jobID, name string) string {
	return path.Join(s.prefix, jobID, name)
}
