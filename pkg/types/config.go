package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`

	// Cap on the /runningCampaigns listing.
	RunningCampaignsLimit uint `envconfig:"RUNNING_CAMPAIGNS_LIMIT" default:"6"`

	// Origins the front-end client is served from.
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`

	// Campaign photo storage. Uploads are disabled when the bucket is unset.
	StorageBucketName string `envconfig:"STORAGE_BUCKET_NAME"`
	StorageBaseURL    string `envconfig:"STORAGE_BASE_URL"`
}
