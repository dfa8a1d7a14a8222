package config

// Config is the full configuration for hwidctl.
//
// All fields have working defaults; an empty file (or no file at all) yields
// a usable config targeting the stock ChromeOS-style tool paths.
type Config struct {
	Logging  LoggingConfig  `json:"logging"`
	Paths    PathsConfig    `json:"paths"`
	Commands CommandsConfig `json:"commands"`
	History  HistoryConfig  `json:"history"`
}

type LoggingConfig struct {
	Level   string            `json:"level,omitempty"`
	Console bool              `json:"console"`
	File    LoggingFileConfig `json:"file"`
}

type LoggingFileConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path,omitempty"`
}

// PathsConfig holds the two shared files the tool owns: the plain-text
// operation log and the VPD backup dump. Both are overridable so tests can
// point them at temp dirs instead of the real locations.
type PathsConfig struct {
	OperationLog string `json:"operation_log,omitempty"`
	Backup       string `json:"backup,omitempty"`
}

// CommandsConfig holds the argv of each external collaborator. The first
// element is the binary, the rest are fixed leading arguments; callers append
// operation-specific arguments after them.
type CommandsConfig struct {
	VPDDump        []string `json:"vpd_dump,omitempty"`
	VPDSet         []string `json:"vpd_set,omitempty"`
	DisableWP      []string `json:"disable_wp,omitempty"`
	ModelQuery     []string `json:"model_query,omitempty"`
	DMIProductName string   `json:"dmi_product_name,omitempty"`
}

// HistoryConfig controls the optional operation history journal.
//
// Driver values:
//   - "file": append-only JSON Lines journal
//   - "sqlite": SQLite database file
//   - "" or "none": history disabled
type HistoryConfig struct {
	Driver      string `json:"driver,omitempty"`
	Path        string `json:"path,omitempty"`
	BusyTimeout string `json:"busy_timeout,omitempty"` // Go duration string (sqlite)
}

// Defaults for every omitted field.
const (
	DefaultOperationLogPath = "/var/log/hwid_tool.log"
	DefaultBackupPath       = "/usr/local/hwid_backup.txt"
	DefaultDMIProductName   = "/sys/class/dmi/id/product_name"
)

func (c *Config) ApplyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Paths.OperationLog == "" {
		c.Paths.OperationLog = DefaultOperationLogPath
	}
	if c.Paths.Backup == "" {
		c.Paths.Backup = DefaultBackupPath
	}
	if len(c.Commands.VPDDump) == 0 {
		c.Commands.VPDDump = []string{"vpd", "-l"}
	}
	if len(c.Commands.VPDSet) == 0 {
		c.Commands.VPDSet = []string{"vpd", "-s"}
	}
	if len(c.Commands.DisableWP) == 0 {
		c.Commands.DisableWP = []string{"flashrom", "--wp-disable"}
	}
	if len(c.Commands.ModelQuery) == 0 {
		c.Commands.ModelQuery = []string{"mosys", "platform", "model"}
	}
	if c.Commands.DMIProductName == "" {
		c.Commands.DMIProductName = DefaultDMIProductName
	}
	if c.History.Driver == "" {
		c.History.Driver = "none"
	}
}
