package storage

// Config holds configuration for the object storage holding catalog
// snapshots and raw API responses.
type Config struct {
	// Endpoint is the S3/MinIO host, with or without scheme.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket holds the catalog snapshots. It is created on first write.
	Bucket string `mapstructure:"bucket" default:"blitz-stats"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds bounds dialing, TLS and response headers.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
