package fs

import (
	"context"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/solbuild/internal/domain/models"
	"github.com/trebuchet-org/solbuild/internal/usecase"
)

// SolidityExt is the extension of the sources handed to solc
const SolidityExt = ".sol"

// SourceScannerAdapter walks a contracts directory for Solidity sources
type SourceScannerAdapter struct{}

// NewSourceScannerAdapter creates a new source scanner
func NewSourceScannerAdapter() *SourceScannerAdapter {
	return &SourceScannerAdapter{}
}

// Scan returns every .sol file below dir, sorted by slash-separated relative
// path, each with its keccak256 hash. Hidden directories are skipped. The
// aggregate hash covers paths and contents, so renames change it too.
func (s *SourceScannerAdapter) Scan(ctx context.Context, dir string) ([]models.SourceFile, string, error) {
	var sources []models.SourceFile

	err := filepath.WalkDir(dir, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(d.Name()) != SolidityExt {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		sources = append(sources, models.SourceFile{
			Path: filepath.ToSlash(rel),
			Hash: crypto.Keccak256Hash(data).Hex(),
			Size: int64(len(data)),
		})
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	slices.SortFunc(sources, func(a, b models.SourceFile) int {
		return strings.Compare(a.Path, b.Path)
	})

	return sources, AggregateHash(sources), nil
}

// AggregateHash hashes the (path, hash) pairs of sources in order. It is
// empty when there are no sources.
func AggregateHash(sources []models.SourceFile) string {
	if len(sources) == 0 {
		return ""
	}
	var b strings.Builder
	for _, src := range sources {
		b.WriteString(src.Path)
		b.WriteByte(0)
		b.WriteString(src.Hash)
		b.WriteByte('\n')
	}
	return crypto.Keccak256Hash([]byte(b.String())).Hex()
}

// Ensure the adapter implements the interface
var _ usecase.SourceScanner = (*SourceScannerAdapter)(nil)
