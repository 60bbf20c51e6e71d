package db

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"kitchenharmony-backend-go/internal/config"
)

// Clients bundles the Firebase Admin SDK clients the server needs.
type Clients struct {
	Firestore *firestore.Client
	Auth      *auth.Client
}

// Close releases the Firestore connection.
func (c *Clients) Close() error {
	if c == nil || c.Firestore == nil {
		return nil
	}
	return c.Firestore.Close()
}

// InitFirestore initializes the Firebase Admin SDK and returns the Firestore and Auth clients.
// Credentials come from GOOGLE_APPLICATION_CREDENTIALS, then FIREBASE_SERVICE_ACCOUNT_JSON_BASE64,
// and otherwise Application Default Credentials.
func InitFirestore(ctx context.Context, appConfig *config.Config, logger *zap.Logger) (*Clients, error) {
	if appConfig == nil {
		return nil, fmt.Errorf("InitFirestore: appConfig cannot be nil")
	}

	var opts []option.ClientOption
	switch {
	case appConfig.GoogleApplicationCredentials != "":
		logger.Info("Initializing Firebase with credentials file", zap.String("path", appConfig.GoogleApplicationCredentials))
		if _, err := os.Stat(appConfig.GoogleApplicationCredentials); os.IsNotExist(err) {
			logger.Warn("Credentials file in GOOGLE_APPLICATION_CREDENTIALS does not exist", zap.String("path", appConfig.GoogleApplicationCredentials))
		}
		opts = append(opts, option.WithCredentialsFile(appConfig.GoogleApplicationCredentials))
	case appConfig.FirebaseServiceAccountJSONBase64 != "":
		logger.Info("Initializing Firebase with Base64 encoded service account JSON")
		decodedJSON, err := base64.StdEncoding.DecodeString(appConfig.FirebaseServiceAccountJSONBase64)
		if err != nil {
			return nil, fmt.Errorf("failed to decode FirebaseServiceAccountJSONBase64: %w", err)
		}
		opts = append(opts, option.WithCredentialsJSON(decodedJSON))
	default:
		logger.Info("Initializing Firebase using Application Default Credentials (ADC)")
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: appConfig.FirebaseProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase.NewApp: %w", err)
	}

	fsClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("app.Firestore: %w", err)
	}
	logger.Info("Firestore client initialized", zap.String("projectID", appConfig.FirebaseProjectID))

	clients := &Clients{Firestore: fsClient}

	// The Auth client is only needed when tokens are Firebase ID tokens.
	if appConfig.AuthProvider == config.AuthProviderFirebase {
		authClient, err := app.Auth(ctx)
		if err != nil {
			_ = fsClient.Close()
			return nil, fmt.Errorf("app.Auth: %w", err)
		}
		clients.Auth = authClient
		logger.Info("Firebase Auth client initialized")
	}

	return clients, nil
}
