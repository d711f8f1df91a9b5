package clientcred_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/clientcred/pkg/credsdk"
	"github.com/aussiebroadwan/clientcred/pkg/jwtx"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for clientcred end-to-end tests.
 * This includes container setup, admin-token minting, and assertions.
 */

const (
	testImageName = "clientcred-test:latest"

	adminJWTSecret = "e2e-admin-jwt-secret-0123456789abcdef"
	adminIssuer    = "clientcred-admin"
	adminOperator  = "e2e-admin"
)

// TestMain manages the test lifecycle, builds the Docker image once before
// all tests and cleans it up after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building clientcred Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up clientcred Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/clientcred/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// setupContainer starts the clientcred service in a container and returns
// the base URL. Rate limits are raised so rapid test requests never trip
// the production defaults.
func setupContainer(t *testing.T) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"CLIENTCRED_ADMIN_JWT_SECRET": adminJWTSecret,
			"CLIENTCRED_ISSUER":           adminIssuer,
			"CLIENTCRED_DATABASE_FILE":    "/tmp/clientcred.db",
			"CLIENTCRED_PEPPER_FILE":      "/tmp/pepper",
			"ENV":                         "test",
			"LOG_LEVEL":                   "info",
			"LOG_FORMAT":                  "json",
			"RATELIMIT_STRICT_REQUESTS":   "1000",
			"RATELIMIT_STRICT_BURST":      "1000",
			"RATELIMIT_MODERATE_REQUESTS": "1000",
			"RATELIMIT_MODERATE_BURST":    "1000",
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// mintAdminToken signs an HS256 admin token with the container's secret.
func mintAdminToken(t *testing.T, scopes ...string) string {
	t.Helper()

	signer := jwtx.NewSignerHS256([]byte(adminJWTSecret))
	claims := jwtx.NewClaims(adminOperator, scopes, time.Hour, adminIssuer, adminOperator, time.Now().UTC())

	token, err := signer.Sign(claims)
	require.NoError(t, err)
	return token
}

// newAdminSDK returns an SDK client holding a token with the full admin
// scope set.
func newAdminSDK(t *testing.T, baseURL string) *credsdk.Client {
	t.Helper()
	token := mintAdminToken(t, "clients:read", "clients:write", "clients:check")
	return credsdk.NewClient(baseURL, token)
}

// assertCredentials verifies a credentials response is fully populated.
func assertCredentials(t *testing.T, creds *credsdk.Credentials, wantClientID string) {
	t.Helper()
	require.NotNil(t, creds)
	require.Equal(t, wantClientID, creds.ClientID)
	require.NotEmpty(t, creds.ClientSecret, "Client secret should not be empty")
	require.NotEmpty(t, creds.Base64ClientID, "Base64 client id should not be empty")
	require.NotEmpty(t, creds.Base64ClientSecret, "Base64 client secret should not be empty")
}

// assertAPIConflict checks that an error is a 409 from the API.
func assertAPIConflict(t *testing.T, err error, context string) {
	t.Helper()
	require.Error(t, err, context)
	require.True(t, credsdk.IsConflict(err), "%s - expected 409 conflict, got: %v", context, err)
}
