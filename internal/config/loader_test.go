package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/solbuild/internal/domain"
	"github.com/trebuchet-org/solbuild/internal/domain/config"
)

const developmentTOML = `
contracts_directory = "./contracts"

[networks.development]
host = "127.0.0.1"   # no http://, no caps
port = 7545
network_id = 5777    # match the node's network ID

[compilers.solc]
version = "0.8.19"

[compilers.solc.optimizer]
enabled = true
runs = 200

[db]
enabled = false
`

const developmentYAML = `
networks:
  development:
    host: 127.0.0.1
    port: 7545
    network_id: 5777
contracts_directory: ./contracts
compilers:
  solc:
    version: "0.8.19"
    optimizer:
      enabled: true
      runs: 200
db:
  enabled: false
`

const developmentJSON = `{
  "networks": {
    "development": {"host": "127.0.0.1", "port": 7545, "network_id": 5777}
  },
  "contracts_directory": "./contracts",
  "compilers": {
    "solc": {"version": "0.8.19", "optimizer": {"enabled": true, "runs": 200}}
  },
  "db": {"enabled": false}
}`

// writeProject creates a project dir with a contracts/ directory and the given document
func writeProject(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "contracts"), 0755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func noEnv(string) (string, bool) { return "", false }

func TestLoad(t *testing.T) {
	t.Run("loads the development profile with exact values", func(t *testing.T) {
		path := writeProject(t, "solbuild.toml", developmentTOML)

		cfg, err := NewLoader(WithLookupEnv(noEnv)).Load(path, "development")
		require.NoError(t, err)

		active := cfg.Active()
		assert.Equal(t, "development", cfg.ActiveName())
		assert.Equal(t, "development", active.Name)
		assert.Equal(t, "127.0.0.1", active.Host)
		assert.Equal(t, 7545, active.Port)
		assert.Equal(t, uint64(5777), active.NetworkID)
		assert.False(t, active.AnyNetwork)
		assert.Equal(t, "http://127.0.0.1:7545", active.RPCURL())

		assert.Equal(t, "./contracts", cfg.ContractsDirectory())
		assert.Equal(t, filepath.Join(filepath.Dir(path), "contracts"), cfg.ContractsPath())
		assert.Equal(t, DefaultBuildDirectory, cfg.BuildDirectory())

		compiler := cfg.Compiler()
		assert.Equal(t, "0.8.19", compiler.Version)
		assert.True(t, compiler.OptimizerEnabled)
		assert.Equal(t, int64(200), compiler.OptimizerRuns)
		assert.False(t, cfg.DBEnabled())
		assert.Equal(t, path, cfg.Source())
	})

	t.Run("unknown network", func(t *testing.T) {
		path := writeProject(t, "solbuild.toml", developmentTOML)

		_, err := Load(path, "production")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUnknownNetwork)

		var unknown *domain.UnknownNetworkError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "production", unknown.Name)
		assert.Equal(t, []string{"development"}, unknown.Available)
		assert.Empty(t, unknown.Suggestion)
	})

	t.Run("unknown network suggests the closest name", func(t *testing.T) {
		path := writeProject(t, "solbuild.toml", developmentTOML)

		_, err := Load(path, "devel")
		var unknown *domain.UnknownNetworkError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "development", unknown.Suggestion)
		assert.Contains(t, err.Error(), `did you mean "development"?`)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "solbuild.toml"), "development")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("is idempotent", func(t *testing.T) {
		path := writeProject(t, "solbuild.toml", developmentTOML)

		first, err := Load(path, "development")
		require.NoError(t, err)
		second, err := Load(path, "development")
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("networks copy cannot mutate the config", func(t *testing.T) {
		path := writeProject(t, "solbuild.toml", developmentTOML)
		cfg, err := Load(path, "development")
		require.NoError(t, err)

		networks := cfg.Networks()
		networks["development"] = config.NetworkProfile{Name: "hijacked"}
		delete(networks, "development")

		assert.Equal(t, "127.0.0.1", cfg.Active().Host)
		assert.Equal(t, []string{"development"}, cfg.NetworkNames())
	})
}

func TestLoadFormats(t *testing.T) {
	tomlPath := writeProject(t, "solbuild.toml", developmentTOML)
	expected, err := Load(tomlPath, "development")
	require.NoError(t, err)

	for _, tc := range []struct {
		name    string
		file    string
		content string
	}{
		{name: "yaml", file: "solbuild.yaml", content: developmentYAML},
		{name: "yml", file: "solbuild.yml", content: developmentYAML},
		{name: "json", file: "solbuild.json", content: developmentJSON},
	} {
		t.Run(tc.name, func(t *testing.T) {
			path := writeProject(t, tc.file, tc.content)

			cfg, err := Load(path, "development")
			require.NoError(t, err)

			assert.Equal(t, expected.Active(), cfg.Active())
			assert.Equal(t, expected.Compiler(), cfg.Compiler())
			assert.Equal(t, expected.ContractsDirectory(), cfg.ContractsDirectory())
			assert.Equal(t, expected.DBEnabled(), cfg.DBEnabled())
		})
	}
}

func TestLoadMalformed(t *testing.T) {
	for _, tc := range []struct {
		name    string
		file    string
		content string
	}{
		{name: "toml syntax", file: "solbuild.toml", content: "invalid [[ toml"},
		{name: "yaml syntax", file: "solbuild.yaml", content: "networks:\n  development: [unclosed"},
		{name: "json syntax", file: "solbuild.json", content: `{"networks": {`},
		{name: "json trailing data", file: "solbuild.json", content: `{} {}`},
		{name: "yaml top-level list", file: "solbuild.yaml", content: "- a\n- b\n"},
		{name: "unsupported extension", file: "truffle-config.js", content: "module.exports = {}"},
		{
			name: "json duplicate network",
			file: "solbuild.json",
			content: `{"networks": {
				"development": {"host": "127.0.0.1", "port": 7545, "network_id": 1},
				"development": {"host": "10.0.0.1", "port": 8545, "network_id": 2}
			}}`,
		},
		{
			name:    "json duplicate top-level key",
			file:    "solbuild.json",
			content: `{"contracts_directory": "./contracts", "contracts_directory": "./src", "networks": {}}`,
		},
		{name: "toml duplicate network", file: "solbuild.toml", content: "[networks.development]\nport = 1\n[networks.development]\nport = 2\n"},
		{name: "yaml duplicate network", file: "solbuild.yaml", content: "networks:\n  development:\n    port: 1\n  development:\n    port: 2\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			path := writeProject(t, tc.file, tc.content)

			_, err := Load(path, "development")
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrMalformedDocument)
		})
	}
}

func TestLoadInvalidFields(t *testing.T) {
	network := func(body string) string {
		return "[networks.development]\n" + body + "\n"
	}

	for _, tc := range []struct {
		name    string
		content string
		path    string
	}{
		{name: "port zero", content: network(`host = "127.0.0.1"` + "\nport = 0\nnetwork_id = 5777"), path: "networks.development.port"},
		{name: "port above range", content: network(`host = "127.0.0.1"` + "\nport = 65536\nnetwork_id = 5777"), path: "networks.development.port"},
		{name: "port negative", content: network(`host = "127.0.0.1"` + "\nport = -1\nnetwork_id = 5777"), path: "networks.development.port"},
		{name: "port not an integer", content: network(`host = "127.0.0.1"` + "\nport = \"7545\"\nnetwork_id = 5777"), path: "networks.development.port"},
		{name: "host with scheme", content: network(`host = "http://127.0.0.1"` + "\nport = 7545\nnetwork_id = 5777"), path: "networks.development.host"},
		{name: "host with uppercase", content: network(`host = "LocalHost"` + "\nport = 7545\nnetwork_id = 5777"), path: "networks.development.host"},
		{name: "host with uppercase scheme", content: network(`host = "HTTP://127.0.0.1"` + "\nport = 7545\nnetwork_id = 5777"), path: "networks.development.host"},
		{name: "host missing", content: network("port = 7545\nnetwork_id = 5777"), path: "networks.development.host"},
		{name: "network id missing", content: network(`host = "127.0.0.1"` + "\nport = 7545"), path: "networks.development.network_id"},
		{name: "network id negative", content: network(`host = "127.0.0.1"` + "\nport = 7545\nnetwork_id = -3"), path: "networks.development.network_id"},
		{name: "network id garbage", content: network(`host = "127.0.0.1"` + "\nport = 7545\nnetwork_id = \"any\""), path: "networks.development.network_id"},
		{name: "network not a table", content: "networks = { development = 5 }", path: "networks.development"},
		{
			name:    "optimizer runs negative",
			content: network(`host = "127.0.0.1"`+"\nport = 7545\nnetwork_id = 5777") + "[compilers.solc.optimizer]\nenabled = true\nruns = -1\n",
			path:    "compilers.solc.optimizer.runs",
		},
		{
			name:    "optimizer runs negative while disabled",
			content: network(`host = "127.0.0.1"`+"\nport = 7545\nnetwork_id = 5777") + "[compilers.solc.optimizer]\nenabled = false\nruns = -1\n",
			path:    "compilers.solc.optimizer.runs",
		},
		{
			name:    "optimizer enabled not a bool",
			content: network(`host = "127.0.0.1"`+"\nport = 7545\nnetwork_id = 5777") + "[compilers.solc.optimizer]\nenabled = \"yes\"\n",
			path:    "compilers.solc.optimizer.enabled",
		},
		{
			name:    "solc version not semver",
			content: network(`host = "127.0.0.1"`+"\nport = 7545\nnetwork_id = 5777") + "[compilers.solc]\nversion = \"latest\"\n",
			path:    "compilers.solc.version",
		},
		{
			name:    "unknown evm version",
			content: network(`host = "127.0.0.1"`+"\nport = 7545\nnetwork_id = 5777") + "[compilers.solc]\nevmVersion = \"frontier2\"\n",
			path:    "compilers.solc.evmVersion",
		},
		{
			name:    "db enabled not a bool",
			content: network(`host = "127.0.0.1"`+"\nport = 7545\nnetwork_id = 5777") + "[db]\nenabled = 1\n",
			path:    "db.enabled",
		},
		{
			name:    "contracts directory missing",
			content: `contracts_directory = "./nope"` + "\n" + network(`host = "127.0.0.1"`+"\nport = 7545\nnetwork_id = 5777"),
			path:    "contracts_directory",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			path := writeProject(t, "solbuild.toml", tc.content)

			_, err := Load(path, "development")
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidField)

			var fieldErr *domain.FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tc.path, fieldErr.Path)
		})
	}
}

func TestLoadNetworkIDZero(t *testing.T) {
	content := "[networks.development]\nhost = \"127.0.0.1\"\nport = 7545\nnetwork_id = 0\n"
	path := writeProject(t, "solbuild.toml", content)

	_, err := Load(path, "development")
	var fieldErr *domain.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "networks.development.network_id", fieldErr.Path)
	assert.Equal(t, `must be a positive integer or "*"`, fieldErr.Reason)
}

func TestLoadFloatLiteralsRejected(t *testing.T) {
	for _, tc := range []struct {
		name    string
		file    string
		content string
	}{
		{name: "toml", file: "solbuild.toml", content: "[networks.development]\nhost = \"127.0.0.1\"\nport = 7545.0\nnetwork_id = 5777\n"},
		{name: "yaml", file: "solbuild.yaml", content: "networks:\n  development:\n    host: 127.0.0.1\n    port: 7545.0\n    network_id: 5777\n"},
		{name: "json", file: "solbuild.json", content: `{"networks": {"development": {"host": "127.0.0.1", "port": 7545.0, "network_id": 5777}}}`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			path := writeProject(t, tc.file, tc.content)

			_, err := Load(path, "development")
			assert.ErrorIs(t, err, domain.ErrInvalidField)

			var fieldErr *domain.FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, "networks.development.port", fieldErr.Path)
			assert.Equal(t, "must be an integer", fieldErr.Reason)
		})
	}
}

func TestLoadInvalidFieldInInactiveProfile(t *testing.T) {
	content := developmentTOML + `
[networks.staging]
host = "Staging.Example.com"
port = 8545
network_id = 1337
`
	path := writeProject(t, "solbuild.toml", content)

	_, err := Load(path, "development")
	var fieldErr *domain.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "networks.staging.host", fieldErr.Path)
}

func TestLoadContractsDirectoryIsFile(t *testing.T) {
	content := `contracts_directory = "./solbuild.toml"` + "\n" + `
[networks.development]
host = "127.0.0.1"
port = 7545
network_id = 5777
`
	path := writeProject(t, "solbuild.toml", content)

	_, err := Load(path, "development")
	var fieldErr *domain.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "contracts_directory", fieldErr.Path)
	assert.Contains(t, fieldErr.Reason, "not a directory")
}

func TestLoadDefaults(t *testing.T) {
	content := `
[networks.development]
host = "localhost"
port = 8545
network_id = "*"
`
	path := writeProject(t, "solbuild.toml", content)

	cfg, err := Load(path, "development")
	require.NoError(t, err)

	assert.True(t, cfg.Active().AnyNetwork)
	assert.Equal(t, "*", cfg.Active().NetworkIDString())
	assert.Equal(t, DefaultContractsDirectory, cfg.ContractsDirectory())
	assert.Equal(t, DefaultBuildDirectory, cfg.BuildDirectory())
	assert.Equal(t, filepath.Join(filepath.Dir(path), "build", "contracts"), cfg.BuildPath())
	assert.Empty(t, cfg.Compiler().Version)
	assert.False(t, cfg.Compiler().OptimizerEnabled)
	assert.Equal(t, int64(DefaultOptimizerRuns), cfg.Compiler().OptimizerRuns)
	assert.False(t, cfg.DBEnabled())
}

func TestLoadNetworkIDAsString(t *testing.T) {
	content := `
[networks.development]
host = "127.0.0.1"
port = 7545
network_id = "5777"
`
	path := writeProject(t, "solbuild.toml", content)

	cfg, err := Load(path, "development")
	require.NoError(t, err)
	assert.Equal(t, uint64(5777), cfg.Active().NetworkID)
}

func TestLoadEnvExpansion(t *testing.T) {
	content := `
contracts_directory = "${SRC_DIR}"

[networks.development]
host = "${NODE_HOST}"
port = 7545
network_id = 5777
`
	t.Run("reads .env next to the document", func(t *testing.T) {
		path := writeProject(t, "solbuild.toml", content)
		dir := filepath.Dir(path)
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("NODE_HOST=ganache.local\nSRC_DIR=./contracts\n"), 0644))

		cfg, err := NewLoader(WithLookupEnv(noEnv)).Load(path, "development")
		require.NoError(t, err)
		assert.Equal(t, "ganache.local", cfg.Active().Host)
		assert.Equal(t, "./contracts", cfg.ContractsDirectory())

		_, exported := os.LookupEnv("NODE_HOST")
		assert.False(t, exported, ".env values must not leak into the process environment")
	})

	t.Run(".env.local overrides .env", func(t *testing.T) {
		path := writeProject(t, "solbuild.toml", content)
		dir := filepath.Dir(path)
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("NODE_HOST=ganache.local\nSRC_DIR=./contracts\n"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.local"), []byte("NODE_HOST=anvil.local\n"), 0644))

		cfg, err := NewLoader(WithLookupEnv(noEnv)).Load(path, "development")
		require.NoError(t, err)
		assert.Equal(t, "anvil.local", cfg.Active().Host)
	})

	t.Run("environment wins over dotenv files", func(t *testing.T) {
		path := writeProject(t, "solbuild.toml", content)
		dir := filepath.Dir(path)
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("NODE_HOST=ganache.local\nSRC_DIR=./contracts\n"), 0644))

		env := map[string]string{"NODE_HOST": "node.internal"}
		cfg, err := NewLoader(WithLookupEnv(func(k string) (string, bool) {
			v, ok := env[k]
			return v, ok
		})).Load(path, "development")
		require.NoError(t, err)
		assert.Equal(t, "node.internal", cfg.Active().Host)
	})

	t.Run("expanded values are still validated", func(t *testing.T) {
		path := writeProject(t, "solbuild.toml", content)
		dir := filepath.Dir(path)
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("NODE_HOST=HTTP://X\nSRC_DIR=./contracts\n"), 0644))

		_, err := NewLoader(WithLookupEnv(noEnv)).Load(path, "development")
		assert.ErrorIs(t, err, domain.ErrInvalidField)
	})
}

func TestBuildConfigJSON(t *testing.T) {
	path := writeProject(t, "solbuild.toml", developmentTOML)
	cfg, err := Load(path, "development")
	require.NoError(t, err)

	data, err := json.Marshal(cfg)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "development", out["active_network"])
	assert.Equal(t, "./contracts", out["contracts_directory"])

	dev := out["networks"].(map[string]any)["development"].(map[string]any)
	assert.Equal(t, "127.0.0.1", dev["host"])
	assert.Equal(t, float64(7545), dev["port"])
	assert.Equal(t, "5777", dev["network_id"])
	assert.Equal(t, true, dev["active"])
}

func TestFindConfigFile(t *testing.T) {
	t.Run("walks up to the nearest document", func(t *testing.T) {
		root := t.TempDir()
		nested := filepath.Join(root, "contracts", "tokens")
		require.NoError(t, os.MkdirAll(nested, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(root, "solbuild.yaml"), []byte(developmentYAML), 0644))

		found, err := FindConfigFile(nested)
		require.NoError(t, err)

		expected, err := filepath.EvalSymlinks(filepath.Join(root, "solbuild.yaml"))
		require.NoError(t, err)
		actual, err := filepath.EvalSymlinks(found)
		require.NoError(t, err)
		assert.Equal(t, expected, actual)
	})

	t.Run("prefers toml over yaml in the same directory", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "solbuild.yaml"), []byte(developmentYAML), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(root, "solbuild.toml"), []byte(developmentTOML), 0644))

		found, err := FindConfigFile(root)
		require.NoError(t, err)
		assert.Equal(t, "solbuild.toml", filepath.Base(found))
	})
}

func TestDetectFormat(t *testing.T) {
	for path, expected := range map[string]Format{
		"solbuild.toml": FormatTOML,
		"SOLBUILD.TOML": FormatTOML,
		"a/b.yaml":      FormatYAML,
		"b.yml":         FormatYAML,
		"c.json":        FormatJSON,
	} {
		format, err := DetectFormat(path)
		require.NoError(t, err, path)
		assert.Equal(t, expected, format, path)
	}

	_, err := DetectFormat("truffle-config.js")
	assert.ErrorIs(t, err, domain.ErrMalformedDocument)
}
