package domain

import "time"

const TryOnModelName = "IDM-VTON"

// MaxTryOnImageBytes caps each uploaded try-on image.
const MaxTryOnImageBytes = 10 << 20

// InferenceParams are the fixed generation parameters sent with every job.
type InferenceParams struct {
	GarmentDescription string
	AutoMask           bool
	AutoCrop           bool
	DenoiseSteps       int
	Seed               int
}

func DefaultInferenceParams() InferenceParams {
	return InferenceParams{
		GarmentDescription: "A garment",
		AutoMask:           true,
		AutoCrop:           false,
		DenoiseSteps:       30,
		Seed:               42,
	}
}

// ArtifactRole names a file stored in a job folder.
type ArtifactRole string

const (
	ArtifactGarment  ArtifactRole = "garment"
	ArtifactPerson   ArtifactRole = "person"
	ArtifactOutput   ArtifactRole = "output"
	ArtifactCombined ArtifactRole = "combined"
	ArtifactMetadata ArtifactRole = "metadata"
)

// TryOnResult is the stored record of a successful generation.
type TryOnResult struct {
	JobID          string    `json:"job_id" bson:"_id"`
	CustomerID     string    `json:"customer_id" bson:"customer_id"`
	GarmentURL     string    `json:"garment_url" bson:"garment_url"`
	PersonURL      string    `json:"person_url" bson:"person_url"`
	ResultImageURL string    `json:"result_image_url" bson:"result_image_url"`
	CombinedURL    string    `json:"combined_url" bson:"combined_url"`
	MetadataURL    string    `json:"metadata_url" bson:"metadata_url"`
	ModelUsed      string    `json:"model_used" bson:"model_used"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}

// TryOnHistory is the credit usage ledger entry.
type TryOnHistory struct {
	ID          string    `json:"id" bson:"_id"`
	CustomerID  string    `json:"customer_id" bson:"customer_id"`
	JobID       string    `json:"job_id" bson:"job_id"`
	CreditsUsed int       `json:"credits_used" bson:"credits_used"`
	ModelUsed   string    `json:"model_used" bson:"model_used"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
