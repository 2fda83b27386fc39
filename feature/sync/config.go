package sync

// Config holds configuration for the workbook synchronization engine.
type Config struct {
	// SourcePath is the default workbook synced when a request supplies no
	// custom path and no upload.
	SourcePath string `mapstructure:"source_path" default:"excel/見積原価管理システム.xlsm"`
	// BaseDir is the directory operator-supplied custom paths must resolve
	// under. Paths escaping it are rejected before the engine runs.
	BaseDir string `mapstructure:"base_dir" default:"excel"`
	// AllowCustomPath toggles acceptance of operator-supplied workbook paths.
	AllowCustomPath bool `mapstructure:"allow_custom_path" default:"false"`
	// MaxUploadBytes is the upload size ceiling. Larger uploads are rejected
	// before any parsing.
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes" default:"20971520"`
	// UploadDir is where uploaded workbooks are written before syncing.
	UploadDir string `mapstructure:"upload_dir" default:"data/uploads"`
}
