package export

const (
	EXPORT_OUTPUT_DIR = "EXPORT_OUTPUT_DIR"
	EXPORT_TABLES     = "EXPORT_TABLES"
)

// TOML bindings
const (
	EXPORT_OUTPUT_DIR_TOML = "export.outputDir"
	EXPORT_TABLES_TOML     = "export.tables"
)

// CLI flags
const (
	EXPORT_OUTPUT_DIR_CLI = "export-output-dir"
	EXPORT_TABLES_CLI     = "export-tables"
)
