package env

import (
	"errors"
	"os"
	"strings"
	"time"

	"tosipeli/internal/config"
)

const (
	firebaseAPIKeyEnvName       = "FIREBASE_API_KEY"
	firebaseProjectIDEnvName    = "FIREBASE_PROJECT_ID"
	firebaseIdentityURLEnvName  = "FIREBASE_IDENTITY_URL"
	firebaseFirestoreURLEnvName = "FIREBASE_FIRESTORE_URL"
	firebaseTimeoutEnvName      = "FIREBASE_TIMEOUT"

	defaultIdentityURL     = "https://identitytoolkit.googleapis.com/v1"
	defaultFirestoreURL    = "https://firestore.googleapis.com/v1"
	defaultFirebaseTimeout = 10 * time.Second
)

type firebaseConfig struct {
	apiKey       string
	projectID    string
	identityURL  string
	firestoreURL string
	timeout      time.Duration
}

func NewFirebaseConfig() (config.FirebaseConfig, error) {
	apiKey := os.Getenv(firebaseAPIKeyEnvName)
	if len(apiKey) == 0 {
		return nil, errors.New("firebase api key not found")
	}

	projectID := os.Getenv(firebaseProjectIDEnvName)
	if len(projectID) == 0 {
		return nil, errors.New("firebase project id not found")
	}

	timeout, err := durationOr(firebaseTimeoutEnvName, defaultFirebaseTimeout)
	if err != nil {
		return nil, err
	}

	return &firebaseConfig{
		apiKey:       apiKey,
		projectID:    projectID,
		identityURL:  strings.TrimRight(getOr(firebaseIdentityURLEnvName, defaultIdentityURL), "/"),
		firestoreURL: strings.TrimRight(getOr(firebaseFirestoreURLEnvName, defaultFirestoreURL), "/"),
		timeout:      timeout,
	}, nil
}

func (cfg *firebaseConfig) APIKey() string {
	return cfg.apiKey
}

func (cfg *firebaseConfig) ProjectID() string {
	return cfg.projectID
}

func (cfg *firebaseConfig) IdentityURL() string {
	return cfg.identityURL
}

func (cfg *firebaseConfig) FirestoreURL() string {
	return cfg.firestoreURL
}

func (cfg *firebaseConfig) Timeout() time.Duration {
	return cfg.timeout
}
