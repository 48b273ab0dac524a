package solc

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/creack/pty"
	"github.com/trebuchet-org/solbuild/internal/domain/config"
	"github.com/trebuchet-org/solbuild/internal/usecase"
)

// SolcAdapter runs the solc command line compiler
type SolcAdapter struct {
	binary string
	stream bool
	log    *slog.Logger
}

// NewSolcAdapter creates a new solc adapter. Compiler output is streamed
// through a PTY when running in debug mode.
func NewSolcAdapter(cfg *config.RuntimeConfig, log *slog.Logger) *SolcAdapter {
	binary := cfg.SolcBinary
	if binary == "" {
		binary = "solc"
	}
	return &SolcAdapter{
		binary: binary,
		stream: cfg.Debug && !cfg.JSON,
		log:    log.With("component", "SolcAdapter"),
	}
}

// Version returns the installed compiler version
func (s *SolcAdapter) Version(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, s.binary, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("failed to run %s --version: %w", s.binary, err)
	}
	return ParseVersion(string(out))
}

// ParseVersion extracts the version from solc --version output
func ParseVersion(output string) (string, error) {
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if v, ok := strings.CutPrefix(line, "Version:"); ok {
			v = strings.TrimSpace(v)
			if v != "" {
				return v, nil
			}
		}
	}
	return "", fmt.Errorf("no version in solc output: %q", strings.TrimSpace(output))
}

// Args returns the full command line, binary first
func (s *SolcAdapter) Args(req usecase.CompileRequest) []string {
	args := []string{s.binary, "--bin", "--abi", "--overwrite", "-o", req.OutputDir}

	if req.Settings.OptimizerEnabled {
		args = append(args, "--optimize", "--optimize-runs", strconv.FormatInt(req.Settings.OptimizerRuns, 10))
	}
	if req.Settings.EVMVersion != "" {
		args = append(args, "--evm-version", req.Settings.EVMVersion)
	}

	args = append(args, "--base-path", req.ContractsDir)
	for _, src := range req.Sources {
		args = append(args, filepath.Join(req.ContractsDir, filepath.FromSlash(src.Path)))
	}
	return args
}

// Compile runs solc and returns the artifacts it wrote
func (s *SolcAdapter) Compile(ctx context.Context, req usecase.CompileRequest) (*usecase.CompileResult, error) {
	if err := os.MkdirAll(req.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	args := s.Args(req)
	s.log.Debug("running solc", "args", args)

	start := time.Now()
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = req.ContractsDir

	var output []byte
	var err error
	if s.stream {
		output, err = runWithPTY(cmd)
	} else {
		output, err = cmd.CombinedOutput()
	}
	duration := time.Since(start)

	result := &usecase.CompileResult{Output: string(output)}
	if err != nil {
		s.log.Error("solc failed", "error", err, "duration", duration)
		if msg := strings.TrimSpace(result.Output); msg != "" {
			return result, fmt.Errorf("%w\n%s", err, msg)
		}
		return result, err
	}
	s.log.Debug("solc completed", "duration", duration)

	artifacts, err := listArtifacts(req.OutputDir)
	if err != nil {
		return result, err
	}
	result.Artifacts = artifacts
	return result, nil
}

// runWithPTY streams the command's output to stdout while capturing it
func runWithPTY(cmd *exec.Cmd) ([]byte, error) {
	ptyFile, err := pty.Start(cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to start pty: %w", err)
	}
	defer func() {
		_ = ptyFile.Close()
	}()

	var buf bytes.Buffer
	// Reading a PTY whose child exited returns EIO
	_, _ = io.Copy(io.MultiWriter(os.Stdout, &buf), ptyFile)

	return buf.Bytes(), cmd.Wait()
}

func listArtifacts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read output directory: %w", err)
	}

	var artifacts []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".bin", ".abi":
			artifacts = append(artifacts, e.Name())
		}
	}
	slices.Sort(artifacts)
	return artifacts, nil
}

// Ensure the adapter implements the interface
var _ usecase.Compiler = (*SolcAdapter)(nil)
