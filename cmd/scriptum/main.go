package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/atotto/clipboard"

	"scriptum/internal/adapter"
	"scriptum/internal/config"
	"scriptum/internal/crypto"
	"scriptum/internal/logger"
	"scriptum/internal/service"
	"scriptum/internal/vigenere"
	"scriptum/internal/workers"
	"scriptum/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	// Application flags must be registered before config.GetStructuredConfig,
	// whose single flag.Parse picks them all up.
	var (
		opName  = flag.String("op", "encrypt", "Operation: encrypt or decrypt")
		algName = flag.String("alg", "aes", "Algorithm: aes, vigenere or vigenere-api")
		key     = flag.String("key", "", "Cipher passphrase")
		keyFile = flag.String("key-file", "", "Read the passphrase from a file instead of -key")
		inPath  = flag.String("in", "", "Read the payload from a file instead of the argument")
		outPath = flag.String("out", "", "Write the result to a file instead of stdout")
		binary  = flag.Bool("binary", false, "Treat the payload as raw bytes (images); requires -in and -out")
		toClip  = flag.Bool("copy", false, "Copy the textual result to the system clipboard")
		check   = flag.Bool("check", false, "Check that the remote vigenere service is reachable and exit")
		logFile = flag.Bool("log-file", false, "Append logs to a file next to the executable instead of stderr")
	)

	cfg, err := config.GetStructuredConfig()

	var log *logger.Logger
	if *logFile {
		log = logger.NewFileLogger("scriptum")
	} else {
		log = logger.NewLogger("scriptum")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = log.WithContext(ctx)

	remote := adapter.NewClient(adapter.ClientConfig{
		BaseURL: cfg.Remote.BaseURL,
		Timeout: cfg.Remote.RequestTimeout,
	}, log.GetChildLogger())

	if *check {
		if err := remote.Health(ctx); err != nil {
			fail(log, err)
		}
		fmt.Fprintln(os.Stderr, "remote vigenere service: ok")
		return
	}

	req, op, err := buildRequest(*opName, *algName, *key, *keyFile, *inPath, *outPath, *binary)
	if err != nil {
		fail(log, err)
	}

	svc, err := buildService(cfg, remote, log)
	if err != nil {
		fail(log, err)
	}

	job := workers.NewInvocationJob(svc)
	defer job.Stop()
	job.Start(ctx, op, req)

	var out workers.Outcome
	select {
	case out = <-job.Results():
	case <-ctx.Done():
		fail(log, ctx.Err())
	}
	if out.Err != nil {
		fail(log, out.Err)
	}

	if err := deliver(out.Result, *outPath, *binary, *toClip); err != nil {
		fail(log, err)
	}
	if out.Result.Diagnostics != "" {
		log.Warn().Str("diagnostics", out.Result.Diagnostics).Msg("cipher process diagnostics")
	}
}

func buildRequest(opName, algName, key, keyFile, inPath, outPath string, binary bool) (models.CipherRequest, models.Operation, error) {
	var op models.Operation
	switch opName {
	case "encrypt":
		op = models.OperationEncrypt
	case "decrypt":
		op = models.OperationDecrypt
	default:
		return models.CipherRequest{}, 0, fmt.Errorf("unknown operation %q", opName)
	}

	var alg models.Algorithm
	switch algName {
	case "aes":
		alg = models.AlgorithmAES
	case "vigenere":
		alg = models.AlgorithmVigenere
	case "vigenere-api":
		alg = models.AlgorithmVigenereAPI
	default:
		return models.CipherRequest{}, 0, fmt.Errorf("unknown algorithm %q", algName)
	}

	if keyFile != "" {
		raw, err := os.ReadFile(keyFile)
		if err != nil {
			return models.CipherRequest{}, 0, fmt.Errorf("read key file: %w", err)
		}
		key = strings.TrimSpace(string(raw))
	}

	req := models.CipherRequest{
		Algorithm:  alg,
		Kind:       models.PayloadText,
		Passphrase: key,
	}

	if binary {
		if inPath == "" {
			return models.CipherRequest{}, 0, errors.New("-binary requires -in")
		}
		raw, err := os.ReadFile(inPath)
		if err != nil {
			return models.CipherRequest{}, 0, fmt.Errorf("read payload file: %w", err)
		}
		req.Kind = models.PayloadBinary
		req.Binary = raw
		return req, op, nil
	}

	// The external cipher paths work on the files directly when both ends
	// are given, so a large payload never travels through arguments.
	if alg != models.AlgorithmAES && inPath != "" && outPath != "" {
		req.InputPath = inPath
		req.OutputPath = outPath
		return req, op, nil
	}

	switch {
	case inPath != "":
		raw, err := os.ReadFile(inPath)
		if err != nil {
			return models.CipherRequest{}, 0, fmt.Errorf("read payload file: %w", err)
		}
		req.Text = string(raw)
	case flag.NArg() > 0:
		req.Text = flag.Arg(0)
	default:
		return models.CipherRequest{}, 0, errors.New("no payload: pass it as an argument or via -in")
	}

	return req, op, nil
}

func buildService(cfg *config.StructuredConfig, remote service.RemoteCipher, log *logger.Logger) (service.CipherService, error) {
	deriver, err := crypto.NewKeyDeriver(crypto.KeyProfile(cfg.Security.KeyProfile))
	if err != nil {
		return nil, err
	}

	// A typed nil inside the interface would defeat the service's nil
	// checks, so the bridge is only assigned when actually configured.
	var bridge service.ExternalCipher
	if cfg.Vigenere.ScriptPath != "" {
		b, err := vigenere.NewBridge(vigenere.Config{
			Interpreter:  cfg.Vigenere.Interpreter,
			ScriptPath:   cfg.Vigenere.ScriptPath,
			CommandLimit: cfg.Vigenere.CommandLimit,
			TempDir:      cfg.Vigenere.TempDir,
		}, log.GetChildLogger())
		if err != nil {
			return nil, err
		}
		bridge = b
	}

	return service.NewCipherService(deriver, crypto.NewBlockCodec(), bridge, remote, log), nil
}

// deliver writes the cipher result where the user asked for it: a file, the
// clipboard, or stdout. Stdout receives nothing but the result itself.
func deliver(res models.CipherResult, outPath string, binary, toClip bool) error {
	if binary {
		if outPath == "" {
			return errors.New("-binary requires -out")
		}
		if err := os.WriteFile(outPath, res.Binary, 0o600); err != nil {
			return fmt.Errorf("write result file: %w", err)
		}
		return nil
	}

	if outPath != "" {
		if err := os.WriteFile(outPath, []byte(res.Output), 0o600); err != nil {
			return fmt.Errorf("write result file: %w", err)
		}
	} else {
		fmt.Println(res.Output)
	}

	if toClip {
		if err := clipboard.WriteAll(res.Output); err != nil {
			return fmt.Errorf("copy result to clipboard: %w", err)
		}
	}
	return nil
}

func fail(log *logger.Logger, err error) {
	log.Error().Err(err).Msg("cipher invocation failed")
	fmt.Fprintln(os.Stderr, "scriptum:", err)
	os.Exit(1)
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Fprintf(os.Stderr, "Build version: %s\n", buildVersion)
	fmt.Fprintf(os.Stderr, "Build date: %s\n", buildDate)
	fmt.Fprintf(os.Stderr, "Build commit: %s\n", buildCommit)
}
