package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"

	"ankivoice/internal/config"
	"ankivoice/internal/services/elevenlabs"
)

const providerCheckTimeout = 10 * time.Second

// CheckCollectionFile verifies that the collection database exists and is
// readable and writable.
func CheckCollectionFile(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.Mode().IsRegular() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a regular file)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckMediaDirectory is CheckDirectoryAccess, except that a missing media
// directory passes when its parent is writable; the generator creates it on
// first use.
func CheckMediaDirectory(name, path string) Result {
	if _, err := os.Stat(path); err != nil && os.IsNotExist(err) {
		parent := CheckDirectoryAccess(name, filepath.Dir(path))
		if !parent.Passed {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist and parent is unusable)", path)}
		}
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", path)}
	}
	return CheckDirectoryAccess(name, path)
}

// CheckAPIKey reports whether an ElevenLabs API key is configured.
func CheckAPIKey(cfg *config.Config) Result {
	const name = "ElevenLabs API key"
	if err := cfg.RequireAPIKey(); err != nil {
		return Result{Name: name, Detail: "missing (set ELEVEN_LABS_API_KEY or elevenlabs.api_key)"}
	}
	return Result{Name: name, Passed: true, Detail: "configured"}
}

// CheckElevenLabs lists voices to confirm the API is reachable and the key is
// accepted, and reports which voice a batch would use.
func CheckElevenLabs(ctx context.Context, client *elevenlabs.Client) Result {
	const name = "ElevenLabs API"

	checkCtx, cancel := context.WithTimeout(ctx, providerCheckTimeout)
	defer cancel()

	voice, err := client.ResolveVoice(checkCtx)
	if err != nil {
		return Result{Name: name, Detail: summarizeProviderError(err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("reachable (voice %s, %s)", voice.Name, voice.ID)}
}

func summarizeProviderError(err error) string {
	if errors.Is(err, elevenlabs.ErrNoVoices) {
		return "no voices available for this API key"
	}
	var statusErr *elevenlabs.StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case 401, 403:
			return "auth failed (invalid api key)"
		default:
			return fmt.Sprintf("voice listing failed (%d)", statusErr.StatusCode)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "health check timed out (API unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "health check timed out (API unreachable)"
	}
	return err.Error()
}
