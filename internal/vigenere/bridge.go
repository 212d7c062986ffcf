// Package vigenere runs the external classical-cipher script and captures
// its output.
//
// Two invocation strategies exist. Short payloads travel as direct process
// arguments (inline invocation); payloads whose simulated command line
// would exceed the configured limit are handed over through a pair of
// temporary files (file invocation) so the invocation never trips the
// host's command-length ceiling. The strategy is chosen here, never by the
// caller, and temporary artifacts are removed on every exit path.
package vigenere

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"scriptum/internal/logger"
	"scriptum/models"
)

// fileModeSuffix is appended to the operation name to form the file-mode
// verb the script understands ("encrypt" → "encrypt-file"). Deployments
// shipping the historical script with localized verbs only edit this.
const fileModeSuffix = "-file"

// DefaultCommandLimit is a conservative bound below the smallest
// command-line ceiling among supported hosts (Windows cmd stops at 8191
// characters).
const DefaultCommandLimit = 8000

// Config carries the explicit bridge settings. ScriptPath is required;
// everything else has a default.
type Config struct {
	// Interpreter is the executable that runs the script, e.g. "python".
	Interpreter string

	// ScriptPath is the path to the cipher script.
	ScriptPath string

	// CommandLimit caps the simulated command-line length for inline
	// invocation. Zero means DefaultCommandLimit.
	CommandLimit int

	// TempDir is the directory for temporary payload artifacts. Empty
	// means the OS default temp directory.
	TempDir string
}

// Bridge invokes the external cipher process. Each invocation owns its
// temporary artifacts exclusively; a Bridge is safe for concurrent use.
type Bridge struct {
	interpreter  string
	scriptPath   string
	commandLimit int
	tempDir      string
	log          *logger.Logger
}

// NewBridge constructs a [Bridge] from cfg. The script path is validated
// for presence only; whether it actually runs is the process's business.
func NewBridge(cfg Config, log *logger.Logger) (*Bridge, error) {
	if cfg.ScriptPath == "" {
		return nil, errors.New("vigenere: script path is required")
	}
	if cfg.Interpreter == "" {
		cfg.Interpreter = "python"
	}
	if cfg.CommandLimit <= 0 {
		cfg.CommandLimit = DefaultCommandLimit
	}

	return &Bridge{
		interpreter:  cfg.Interpreter,
		scriptPath:   cfg.ScriptPath,
		commandLimit: cfg.CommandLimit,
		tempDir:      cfg.TempDir,
		log:          log,
	}, nil
}

// ProcessText runs one cipher invocation for op over payload and key,
// choosing the invocation strategy by simulated command-line length. The
// simulation includes the script path, mode and key, so a long key can
// force file mode even for a short payload. A length exactly at the limit
// still goes inline; the decision is deterministic.
func (b *Bridge) ProcessText(ctx context.Context, op models.Operation, payload, key string) (models.ExternalResult, error) {
	mode := op.String()

	simulated := strings.Join([]string{b.interpreter, b.scriptPath, mode, payload, key}, " ")
	if len(simulated) <= b.commandLimit {
		b.log.Debug().Int("command_len", len(simulated)).Str("mode", mode).
			Msg("inline invocation selected")
		return b.processInline(ctx, mode, payload, key)
	}

	b.log.Debug().Int("command_len", len(simulated)).Int("limit", b.commandLimit).Str("mode", mode).
		Msg("command exceeds limit, using temp-file invocation")
	return b.processViaFiles(ctx, mode, payload, key)
}

// ProcessFile runs the script in file mode over caller-provided paths. The
// caller owns both files; the bridge creates and removes nothing here.
func (b *Bridge) ProcessFile(ctx context.Context, op models.Operation, inputPath, outputPath, key string) (models.ExternalResult, error) {
	stdout, stderr, err := b.run(ctx, op.String()+fileModeSuffix, inputPath, outputPath, key)
	if err != nil {
		return models.ExternalResult{}, err
	}
	return models.ExternalResult{
		Output:      strings.TrimSpace(stdout),
		Diagnostics: strings.TrimSpace(stderr),
	}, nil
}

// processInline passes the payload and key as direct process arguments; the
// primary output is the process's standard output.
func (b *Bridge) processInline(ctx context.Context, mode, payload, key string) (models.ExternalResult, error) {
	stdout, stderr, err := b.run(ctx, mode, payload, key)
	if err != nil {
		return models.ExternalResult{}, err
	}
	return models.ExternalResult{
		Output:      strings.TrimSpace(stdout),
		Diagnostics: strings.TrimSpace(stderr),
	}, nil
}

// processViaFiles writes the payload to a temporary input artifact, points
// the script at it together with an empty output artifact, and reads the
// primary output back from the latter.
func (b *Bridge) processViaFiles(ctx context.Context, mode, payload, key string) (models.ExternalResult, error) {
	inPath, outPath, err := b.createArtifacts(payload)
	if err != nil {
		return models.ExternalResult{}, err
	}
	// Cleanup is unconditional: a failed or cancelled invocation must not
	// leave payload material on disk. Removal failure only warns; the
	// primary result, if any, has already been obtained.
	defer b.removeArtifacts(inPath, outPath)

	_, stderr, err := b.run(ctx, mode+fileModeSuffix, inPath, outPath, key)
	if err != nil {
		return models.ExternalResult{}, err
	}

	result, err := os.ReadFile(outPath)
	if err != nil {
		return models.ExternalResult{}, fmt.Errorf("%w: read output artifact: %v", ErrArtifactIO, err)
	}

	return models.ExternalResult{
		Output:      strings.TrimSpace(string(result)),
		Diagnostics: strings.TrimSpace(stderr),
	}, nil
}

// createArtifacts writes the payload to a fresh input file and creates an
// empty output file next to it. Names embed a per-invocation unique id so
// concurrent invocations can never collide.
func (b *Bridge) createArtifacts(payload string) (inPath, outPath string, err error) {
	dir := b.tempDir
	if dir == "" {
		dir = os.TempDir()
	}

	id := newArtifactID()
	inPath = filepath.Join(dir, "scriptum_in_"+id+".txt")
	outPath = filepath.Join(dir, "scriptum_out_"+id+".txt")

	if err = os.WriteFile(inPath, []byte(payload), 0o600); err != nil {
		return "", "", fmt.Errorf("%w: write input artifact: %v", ErrArtifactIO, err)
	}
	b.log.Debug().Str("path", inPath).Msg("temporary input artifact created")

	if err = os.WriteFile(outPath, nil, 0o600); err != nil {
		b.removeArtifacts(inPath)
		return "", "", fmt.Errorf("%w: create output artifact: %v", ErrArtifactIO, err)
	}
	b.log.Debug().Str("path", outPath).Msg("temporary output artifact created")

	return inPath, outPath, nil
}

// newArtifactID returns a time-ordered unique id for artifact names.
func newArtifactID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return v7.String()
}

// removeArtifacts deletes the given files, logging a warning for anything
// that would not go away.
func (b *Bridge) removeArtifacts(paths ...string) {
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			b.log.Warn().Err(err).Str("path", p).Msg("could not remove temporary artifact")
		}
	}
}

// run spawns the script with args and captures both output streams. With
// buffer sinks, os/exec pumps each stream on its own goroutine, so a full
// OS pipe buffer on either side cannot stall the child; both pumps are
// joined before the exit status is read.
func (b *Bridge) run(ctx context.Context, args ...string) (stdout, stderr string, err error) {
	cmdArgs := append([]string{b.scriptPath}, args...)
	cmd := exec.CommandContext(ctx, b.interpreter, cmdArgs...)

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	b.log.Debug().Str("interpreter", b.interpreter).Str("script", b.scriptPath).Str("mode", args[0]).
		Msg("spawning external cipher process")

	if err := cmd.Start(); err != nil {
		return "", "", &ProcessError{Diagnostics: err.Error(), Err: err}
	}

	waitErr := cmd.Wait()
	stdout = outBuf.String()
	stderr = errBuf.String()

	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			b.log.Error().Int("exit_code", exitErr.ExitCode()).Str("stderr", strings.TrimSpace(stderr)).
				Msg("external cipher process failed")
			// The join keeps the ExitError reachable through Unwrap and,
			// when the invocation was cancelled, the context error too.
			return "", "", &ProcessError{
				ExitCode:    exitErr.ExitCode(),
				Diagnostics: strings.TrimSpace(stderr),
				Err:         errors.Join(waitErr, ctx.Err()),
			}
		}
		return "", "", &ProcessError{Diagnostics: strings.TrimSpace(stderr), Err: waitErr}
	}

	b.log.Debug().Int("stdout_len", len(stdout)).Int("stderr_len", len(stderr)).
		Msg("external cipher process finished")
	return stdout, stderr, nil
}
