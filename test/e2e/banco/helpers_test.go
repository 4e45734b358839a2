package banco_test

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/mibanco/pkg/bancosdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Container setup and assertions shared by the banco service end-to-end
 * tests. The image is built once in TestMain.
 */

const (
	testImageName = "mibanco-banco-test:latest"
	servicePort   = "8001/tcp"

	clientRUT      = "12345678-5"
	clientPassword = "secreta123"
)

// baseEnv is the environment of every test container.
func baseEnv() map[string]string {
	return map[string]string{
		"ENV":           "test",
		"LOG_LEVEL":     "info",
		"LOG_FORMAT":    "json",
		"STORE_DRIVER":  "sqlite",
		"DATABASE_FILE": "/data/banco.db",
		"PEPPER_FILE":   "/data/pepper",
	}
}

// relaxedLimits lifts the strict and moderate profiles so scenario tests
// can issue many requests quickly.
func relaxedLimits() map[string]string {
	return map[string]string{
		"RATELIMIT_STRICT_REQUESTS":   "1000",
		"RATELIMIT_STRICT_WINDOW_SEC": "60",
		"RATELIMIT_STRICT_BURST":      "1000",
		"RATELIMIT_MODERATE_REQUESTS": "1000",
		"RATELIMIT_MODERATE_BURST":    "1000",
	}
}

func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Banco Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Banco Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/banco/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	_ = exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName).Run()
}

// startBanco runs the service with env layered over baseEnv and returns its
// base URL. The container is terminated when the test ends.
func startBanco(t *testing.T, env map[string]string, opts ...func(*testcontainers.ContainerRequest)) string {
	t.Helper()
	ctx := context.Background()

	merged := baseEnv()
	maps.Copy(merged, env)

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{servicePort},
		Env:          merged,
		WaitingFor: wait.ForHTTP("/livez").
			WithPort(servicePort).
			WithStartupTimeout(60 * time.Second),
	}
	for _, opt := range opts {
		opt(&req)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, servicePort)
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	return fmt.Sprintf("http://%s:%s", host, mappedPort.Port())
}

// setupBancoContainer starts the service with relaxed rate limits.
func setupBancoContainer(t *testing.T) *bancosdk.SDKClient {
	t.Helper()
	return bancosdk.NewSDKClient(startBanco(t, relaxedLimits()))
}

// registerClient creates the default test client.
func registerClient(t *testing.T, client *bancosdk.SDKClient) *bancosdk.Usuario {
	t.Helper()

	u, err := client.Register(t.Context(), bancosdk.CreateUsuarioRequest{
		Nombre:   "Juan Pérez",
		Email:    "juan.perez@example.com",
		Rut:      clientRUT,
		Password: clientPassword,
	})
	require.NoError(t, err, "Register should succeed")
	require.Equal(t, clientRUT, u.Rut)
	return u
}

// assertAPIError checks err is an *APIError with the given status.
func assertAPIError(t *testing.T, err error, status int) *bancosdk.APIError {
	t.Helper()
	require.Error(t, err)

	var apiErr *bancosdk.APIError
	require.True(t, errors.As(err, &apiErr), "expected *APIError, got %T: %v", err, err)
	require.Equal(t, status, apiErr.StatusCode, "unexpected error: %v", apiErr)
	return apiErr
}

func assertHealthy(t *testing.T, health *bancosdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}
