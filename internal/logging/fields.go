package logging

// Field name constants for structured logging.
const (
	FieldError = "error"
	FieldPath  = "path"

	// Load pass.
	FieldLines      = "lines"
	FieldSuppressed = "suppressed"
	FieldRecords    = "records"
	FieldParagraphs = "paragraphs"
	FieldUnmatched  = "unmatched"
	FieldLine       = "line"
	FieldOffsets    = "offsets"

	// Layout.
	FieldWidth        = "width"
	FieldHeight       = "height"
	FieldPageWidth    = "page_width"
	FieldContentWidth = "content_width"
	FieldRuleChars    = "rule_chars"

	// Configuration.
	FieldConfig = "config"
	FieldLevel  = "level"

	// Version.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
