package injector

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/leadrun/fulfillment-service/internal/domain"
)

const (
	finalDomainMarker  = "FINAL_DOMAIN:"
	proxyExpiredMarker = "PROXY_EXPIRED:"

	defaultTaskTimeout = 5 * time.Minute
)

// ScriptRunner drives the external form-submission task: one process per
// lead, fed the payload as a single JSON argument. The task is opaque; the
// contract is its exit code plus recognized stdout markers.
type ScriptRunner struct {
	ScriptPath string
	Timeout    time.Duration
}

func NewScriptRunner(scriptPath string, timeout time.Duration) *ScriptRunner {
	if timeout <= 0 {
		timeout = defaultTaskTimeout
	}
	return &ScriptRunner{ScriptPath: scriptPath, Timeout: timeout}
}

func (r *ScriptRunner) Run(ctx context.Context, payload *domain.InjectionPayload) (*domain.InjectionResult, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, r.ScriptPath, string(data))
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if runCtx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("submission task timed out after %s", r.Timeout)
	}

	result := parseOutput(stdout.String())
	result.ErrOutput = stderr.String()

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			// Clean non-zero exit is a failure outcome, not a transport error.
			result.Success = false
			return result, nil
		}
		return nil, fmt.Errorf("failed to spawn submission task: %w", runErr)
	}

	result.Success = true
	return result, nil
}

func parseOutput(output string) *domain.InjectionResult {
	result := &domain.InjectionResult{Output: output}
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, finalDomainMarker) {
			result.FinalDomain = strings.TrimSpace(strings.TrimPrefix(line, finalDomainMarker))
		}
		if strings.HasPrefix(line, proxyExpiredMarker) {
			result.ProxyExpired = true
		}
	}
	return result
}
