package usecase

import (
	"context"
	"fmt"
	"path/filepath"
)

// DocumentTemplate holds the values of a starter build document
type DocumentTemplate struct {
	NetworkName        string
	Host               string
	Port               int
	NetworkID          uint64
	ContractsDirectory string
	SolcVersion        string
	OptimizerEnabled   bool
	OptimizerRuns      int64
	DBEnabled          bool
}

// DefaultDocumentTemplate targets a local Ganache instance
func DefaultDocumentTemplate() DocumentTemplate {
	return DocumentTemplate{
		NetworkName:        "development",
		Host:               "127.0.0.1",
		Port:               7545,
		NetworkID:          5777,
		ContractsDirectory: "./contracts",
		SolcVersion:        "0.8.19",
		OptimizerEnabled:   true,
		OptimizerRuns:      200,
		DBEnabled:          false,
	}
}

// InitProjectParams contains parameters for project initialization
type InitProjectParams struct {
	Dir      string
	FileName string
	Force    bool
	Template DocumentTemplate
}

// InitProjectResult contains the result of project initialization
type InitProjectResult struct {
	ConfigPath         string
	ConfigCreated      bool
	ContractsDir       string
	AlreadyInitialized bool
	Steps              []InitStep
}

// InitStep represents a step in the initialization process
type InitStep struct {
	Name    string
	Success bool
	Message string
	Error   error
}

// InitProject scaffolds a build document and contracts directory
type InitProject struct {
	fileWriter FileWriter
	renderer   DocumentRenderer
	progress   ProgressSink
}

// NewInitProject creates a new init project use case
func NewInitProject(fileWriter FileWriter, renderer DocumentRenderer, progress ProgressSink) *InitProject {
	return &InitProject{
		fileWriter: fileWriter,
		renderer:   renderer,
		progress:   progress,
	}
}

// Run initializes a project in params.Dir
func (i *InitProject) Run(ctx context.Context, params InitProjectParams) (*InitProjectResult, error) {
	fileName := params.FileName
	if fileName == "" {
		fileName = "solbuild.toml"
	}
	tmpl := params.Template
	if tmpl.NetworkName == "" {
		tmpl = DefaultDocumentTemplate()
	}

	result := &InitProjectResult{
		ConfigPath:   filepath.Join(params.Dir, fileName),
		ContractsDir: filepath.Join(params.Dir, tmpl.ContractsDirectory),
	}

	exists, err := i.fileWriter.FileExists(ctx, result.ConfigPath)
	if err != nil {
		return result, fmt.Errorf("failed to check %s: %w", result.ConfigPath, err)
	}

	switch {
	case exists && !params.Force:
		result.AlreadyInitialized = true
		result.Steps = append(result.Steps, InitStep{
			Name:    "Create build document",
			Success: true,
			Message: fmt.Sprintf("%s already exists (use --force to overwrite)", fileName),
		})
	default:
		i.progress.OnProgress(ctx, ProgressEvent{Stage: "init", Message: "Writing " + fileName})
		content, err := i.renderer.RenderDocument(ctx, tmpl)
		if err != nil {
			result.Steps = append(result.Steps, InitStep{Name: "Create build document", Error: err})
			return result, fmt.Errorf("failed to render %s: %w", fileName, err)
		}
		if err := i.fileWriter.WriteFile(ctx, result.ConfigPath, content); err != nil {
			result.Steps = append(result.Steps, InitStep{Name: "Create build document", Error: err})
			return result, fmt.Errorf("failed to write %s: %w", fileName, err)
		}
		result.ConfigCreated = true
		result.Steps = append(result.Steps, InitStep{
			Name:    "Create build document",
			Success: true,
			Message: "Created " + fileName,
		})
	}

	if err := i.fileWriter.EnsureDirectory(ctx, result.ContractsDir); err != nil {
		result.Steps = append(result.Steps, InitStep{Name: "Create contracts directory", Error: err})
		return result, fmt.Errorf("failed to create contracts directory: %w", err)
	}
	result.Steps = append(result.Steps, InitStep{
		Name:    "Create contracts directory",
		Success: true,
		Message: "Ensured " + tmpl.ContractsDirectory,
	})

	return result, nil
}
