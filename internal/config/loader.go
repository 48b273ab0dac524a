package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/trebuchet-org/solbuild/internal/domain"
	"github.com/trebuchet-org/solbuild/internal/domain/config"
)

const (
	// DefaultContractsDirectory is used when contracts_directory is omitted
	DefaultContractsDirectory = "./contracts"
	// DefaultBuildDirectory is used when contracts_build_directory is omitted
	DefaultBuildDirectory = "./build/contracts"
	// DefaultOptimizerRuns matches solc's own default
	DefaultOptimizerRuns = 200
)

// ConfigFileNames are searched, in order, by FindConfigFile
var ConfigFileNames = []string{
	"solbuild.toml",
	"solbuild.yaml",
	"solbuild.yml",
	"solbuild.json",
}

// LookupEnvFunc resolves a variable referenced from the document
type LookupEnvFunc func(key string) (string, bool)

// Loader parses and validates build documents
type Loader struct {
	validate  *validator.Validate
	lookupEnv LookupEnvFunc
}

// LoaderOption customizes a Loader
type LoaderOption func(*Loader)

// WithLookupEnv replaces the process environment as the source for ${VAR} expansion
func WithLookupEnv(fn LookupEnvFunc) LoaderOption {
	return func(l *Loader) {
		l.lookupEnv = fn
	}
}

// NewLoader creates a new Loader
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		validate:  newValidator(),
		lookupEnv: os.LookupEnv,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the document at path and returns a validated BuildConfig with
// selectedNetwork as the active profile
func Load(path, selectedNetwork string) (*config.BuildConfig, error) {
	return NewLoader().Load(path, selectedNetwork)
}

// Load reads the document at path and returns a validated BuildConfig with
// selectedNetwork as the active profile. Every failure wraps one of
// domain.ErrNotFound, domain.ErrMalformedDocument, domain.ErrUnknownNetwork or
// domain.ErrInvalidField; reading the file is the only side effect.
func (l *Loader) Load(path, selectedNetwork string) (*config.BuildConfig, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path %s: %w", path, err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file %s: %w", path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	format, err := DetectFormat(absPath)
	if err != nil {
		return nil, err
	}

	tree, err := decodeTree(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(absPath), err)
	}

	doc, err := parseDocument(tree)
	if err != nil {
		return nil, err
	}

	baseDir := filepath.Dir(absPath)
	expand := l.expander(baseDir)
	for name, spec := range doc.Networks {
		spec.Host = expand(spec.Host)
		doc.Networks[name] = spec
	}
	doc.ContractsDirectory = expand(doc.ContractsDirectory)
	doc.BuildDirectory = expand(doc.BuildDirectory)
	doc.Solc.Version = expand(doc.Solc.Version)

	applyDefaults(doc)

	if err := validateDocument(l.validate, doc); err != nil {
		return nil, err
	}

	if _, ok := doc.Networks[selectedNetwork]; !ok {
		return nil, domain.NewUnknownNetworkError(selectedNetwork, sortedKeys(doc.Networks))
	}

	contractsPath := resolvePath(baseDir, doc.ContractsDirectory)
	if err := checkReadableDir(contractsPath); err != nil {
		return nil, &domain.FieldError{Path: "contracts_directory", Value: doc.ContractsDirectory, Reason: err.Error()}
	}

	networks := make(map[string]config.NetworkProfile, len(doc.Networks))
	for name, spec := range doc.Networks {
		networks[name] = config.NetworkProfile{
			Name:       name,
			Host:       spec.Host,
			Port:       int(spec.Port),
			NetworkID:  uint64(spec.NetworkID),
			AnyNetwork: spec.AnyNetwork,
		}
	}

	return config.NewBuildConfig(config.BuildConfigParams{
		Source:             absPath,
		ContractsDirectory: doc.ContractsDirectory,
		ContractsPath:      contractsPath,
		BuildDirectory:     doc.BuildDirectory,
		BuildPath:          resolvePath(baseDir, doc.BuildDirectory),
		Networks:           networks,
		Active:             selectedNetwork,
		Compiler: config.CompilerSettings{
			Version:          doc.Solc.Version,
			OptimizerEnabled: doc.Solc.OptimizerEnabled,
			OptimizerRuns:    doc.Solc.OptimizerRuns,
			EVMVersion:       doc.Solc.EVMVersion,
		},
		DBEnabled: doc.DBEnabled,
	})
}

// FindConfigFile walks up from startDir looking for a build document
func FindConfigFile(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no build document (%s) found in %s or any parent directory: %w", ConfigFileNames[0], startDir, domain.ErrNotFound)
		}
		dir = parent
	}
}

func applyDefaults(doc *document) {
	if doc.ContractsDirectory == "" {
		doc.ContractsDirectory = DefaultContractsDirectory
	}
	if doc.BuildDirectory == "" {
		doc.BuildDirectory = DefaultBuildDirectory
	}
	if !doc.Solc.runsSet {
		doc.Solc.OptimizerRuns = DefaultOptimizerRuns
	}
}

// expander returns a function that substitutes ${VAR} references. Variables
// come from the process environment first, then .env.local, then .env next to
// the document. The dotenv files are read, never exported.
func (l *Loader) expander(baseDir string) func(string) string {
	fileEnv := map[string]string{}
	for _, name := range []string{".env", ".env.local"} {
		envFile := filepath.Join(baseDir, name)
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		values, err := godotenv.Read(envFile)
		if err != nil {
			continue
		}
		for k, v := range values {
			fileEnv[k] = v
		}
	}

	return func(s string) string {
		return os.Expand(s, func(key string) string {
			if v, ok := l.lookupEnv(key); ok {
				return v
			}
			return fileEnv[key]
		})
	}
}

func resolvePath(baseDir, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(baseDir, p)
}

func checkReadableDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("directory %s does not exist", path)
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("directory %s is not readable: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Readdirnames(1); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("directory %s is not readable: %w", path, err)
	}
	return nil
}
