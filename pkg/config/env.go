package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvJWTSecret   = "JWT_SECRET"
	EnvJWTTokenTTL = "JWT_TOKEN_TTL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvBookingLockTTL = "BOOKING_LOCK_TTL"

	EnvKafkaBrokers = "KAFKA_BROKERS"
	EnvBookingTopic = "KAFKA_BOOKING_EVENTS_TOPIC"

	EnvImageBucket       = "IMAGE_BUCKET"
	EnvImageBucketRegion = "IMAGE_BUCKET_REGION"
	EnvImageBaseURL      = "IMAGE_BASE_URL"
	EnvMaxImageSize      = "MAX_IMAGE_SIZE"
)
