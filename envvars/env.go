package envvars

import (
	"log"
	"os"
)

const (
	MapsAPIKey    = "GOOGLE_MAPS_API_KEY"
	Environment   = "ENVIRONMENT"
	ProjectID     = "GCP_PROJECT_ID"
	StorageBucket = "STORAGE_BUCKET"
	SessionSecret = "SESSION_SECRET"
	SMTPHost      = "SMTP_HOST"
	SMTPPort      = "SMTP_PORT"
	EmailHostUser = "EMAIL_HOST_USER"
	EmailHostPass = "EMAIL_HOST_PASSWORD"
)

const (
	ProductionEnv = "production"
	DevEnv        = "dev"
)

type Env struct {
	MapsAPIKey    string
	Environment   string
	ProjectID     string
	StorageBucket string
	SessionSecret string
	SMTPHost      string
	SMTPPort      string
	EmailUser     string
	EmailPassword string
}

func GetEnv() Env {
	mapsKey, ok := os.LookupEnv(MapsAPIKey)
	if !ok {
		log.Fatalf("%s required", MapsAPIKey)
	}
	environment, ok := os.LookupEnv(Environment)
	if !ok {
		environment = DevEnv
	}
	projectID, ok := os.LookupEnv(ProjectID)
	if !ok {
		projectID = "packtravel"
	}
	bucket, ok := os.LookupEnv(StorageBucket)
	if !ok {
		bucket = "packtravel-profiles"
	}
	secret, ok := os.LookupEnv(SessionSecret)
	if !ok {
		secret = "packtravel-dev-secret"
	}
	smtpHost, ok := os.LookupEnv(SMTPHost)
	if !ok {
		smtpHost = "smtp.gmail.com"
	}
	smtpPort, ok := os.LookupEnv(SMTPPort)
	if !ok {
		smtpPort = "587"
	}
	return Env{
		MapsAPIKey:    mapsKey,
		Environment:   environment,
		ProjectID:     projectID,
		StorageBucket: bucket,
		SessionSecret: secret,
		SMTPHost:      smtpHost,
		SMTPPort:      smtpPort,
		EmailUser:     os.Getenv(EmailHostUser),
		EmailPassword: os.Getenv(EmailHostPass),
	}
}

func IsProd(e Env) bool {
	return e.Environment == ProductionEnv
}

func IsDev(e Env) bool {
	return e.Environment == DevEnv
}
