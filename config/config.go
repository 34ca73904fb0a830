package config

import "os"

// Voting model variants. The rating variant records a 1-10 score per cast,
// the binary variant records a single preference (score fixed to 1).
const (
	VotingModeRating = "rating"
	VotingModeBinary = "binary"
)

var (
	Port      = getEnv("PORT", "8080")
	GinMode   = getEnv("GIN_MODE", "debug")
	JWTSecret = getEnv("JWT_SECRET", "dev-secret-change-me")

	PostgresHost     = getEnv("POSTGRES_HOST", "localhost")
	PostgresPort     = getEnv("POSTGRES_PORT", "5432")
	PostgresUser     = getEnv("POSTGRES_USER", "postgres")
	PostgresPassword = getEnv("POSTGRES_PASSWORD", "postgres")
	PostgresDB       = getEnv("POSTGRES_DB", "cookoff")

	// VotingMode selects the active voting variant for this deployment.
	VotingMode = getEnv("VOTING_MODE", VotingModeRating)

	// Photo storage (S3-compatible). PhotoPublicURL is the prefix under which
	// uploaded photos are publicly reachable; storage keys are derived from it.
	S3Region       = getEnv("S3_REGION", "eu-west-1")
	S3Endpoint     = getEnv("S3_ENDPOINT", "")
	S3AccessKey    = getEnv("S3_ACCESS_KEY", "")
	S3SecretKey    = getEnv("S3_SECRET_KEY", "")
	S3Bucket       = getEnv("S3_BUCKET", "dish-photos")
	PhotoPublicURL = getEnv("PHOTO_PUBLIC_URL", "")
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
