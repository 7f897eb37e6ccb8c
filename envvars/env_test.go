package envvars

import (
	"os"
	"testing"
)

func TestGetEnv(t *testing.T) {
	// Backup and defer restore of environment variables
	backup := os.Environ()
	defer func() {
		os.Clearenv()
		for _, env := range backup {
			pair := splitEnv(env)
			os.Setenv(pair[0], pair[1])
		}
	}()

	t.Run("all env vars set", func(t *testing.T) {
		os.Clearenv()
		os.Setenv(MapsAPIKey, "test_maps_key")
		os.Setenv(Environment, "production")
		os.Setenv(ProjectID, "test-project")
		os.Setenv(StorageBucket, "test-bucket")
		os.Setenv(SessionSecret, "test-secret")
		os.Setenv(SMTPHost, "smtp.example.com")
		os.Setenv(SMTPPort, "2525")
		os.Setenv(EmailHostUser, "mailer@example.com")
		os.Setenv(EmailHostPass, "mailer-pass")

		got := GetEnv()
		if got.MapsAPIKey != "test_maps_key" {
			t.Errorf("MapsAPIKey = %q, want %q", got.MapsAPIKey, "test_maps_key")
		}
		if got.Environment != ProductionEnv {
			t.Errorf("Environment = %q, want %q", got.Environment, ProductionEnv)
		}
		if got.ProjectID != "test-project" {
			t.Errorf("ProjectID = %q, want %q", got.ProjectID, "test-project")
		}
		if got.StorageBucket != "test-bucket" {
			t.Errorf("StorageBucket = %q, want %q", got.StorageBucket, "test-bucket")
		}
		if got.SMTPHost != "smtp.example.com" || got.SMTPPort != "2525" {
			t.Errorf("SMTP = %q:%q, want smtp.example.com:2525", got.SMTPHost, got.SMTPPort)
		}
		if got.EmailUser != "mailer@example.com" || got.EmailPassword != "mailer-pass" {
			t.Errorf("unexpected email credentials: %q / %q", got.EmailUser, got.EmailPassword)
		}
	})

	t.Run("environment defaults to dev", func(t *testing.T) {
		os.Clearenv()
		os.Setenv(MapsAPIKey, "test_maps_key")

		got := GetEnv()
		if got.Environment != DevEnv {
			t.Errorf("Expected environment to default to dev, got %s", got.Environment)
		}
		if got.SMTPPort != "587" {
			t.Errorf("Expected SMTP port to default to 587, got %s", got.SMTPPort)
		}
	})
}

func TestIsProd(t *testing.T) {
	tests := []struct {
		name string
		env  Env
		want bool
	}{
		{"production env", Env{Environment: ProductionEnv}, true},
		{"dev env", Env{Environment: DevEnv}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsProd(tt.env); got != tt.want {
				t.Errorf("IsProd() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsDev(t *testing.T) {
	tests := []struct {
		name string
		env  Env
		want bool
	}{
		{"production env", Env{Environment: ProductionEnv}, false},
		{"dev env", Env{Environment: DevEnv}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDev(tt.env); got != tt.want {
				t.Errorf("IsDev() = %v, want %v", got, tt.want)
			}
		})
	}
}

func splitEnv(env string) []string {
	for i := 0; i < len(env); i++ {
		if env[i] == '=' {
			return []string{env[:i], env[i+1:]}
		}
	}
	return []string{"", ""}
}
