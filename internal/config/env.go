package config

import (
	"fmt"
	"os"
	"strconv"
)

// envVarPrefix is the prefix for all mdread environment variables.
const envVarPrefix = "MDREAD_"

type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeInt
)

type envMapping struct {
	field  string
	typ    envFieldType
	setStr func(*Config, string)
	setInt func(*Config, int)
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"LOG_LEVEL":         {field: "log_level", typ: envTypeString, setStr: func(c *Config, v string) { c.LogLevel = v }},
	"LOG_FILE":          {field: "log_file", typ: envTypeString, setStr: func(c *Config, v string) { c.LogFile = v }},
	"BULLET":            {field: "bullet", typ: envTypeString, setStr: func(c *Config, v string) { c.Bullet = v }},
	"COLOR":             {field: "color", typ: envTypeString, setStr: func(c *Config, v string) { c.Color = ColorMode(v) }},
	"CELL_WIDTH":        {field: "cell_width", typ: envTypeInt, setInt: func(c *Config, v int) { c.CellWidth = v }},
	"CELL_HEIGHT":       {field: "cell_height", typ: envTypeInt, setInt: func(c *Config, v int) { c.CellHeight = v }},
	"TAB_WIDTH":         {field: "tab_width", typ: envTypeInt, setInt: func(c *Config, v int) { c.TabWidth = v }},
	"PARAGRAPH_SPACING": {field: "paragraph_spacing", typ: envTypeInt, setInt: func(c *Config, v int) { c.ParagraphSpacing = v }},
	"RENDER_WIDTH":      {field: "render.width", typ: envTypeInt, setInt: func(c *Config, v int) { c.Render.Width = v }},
	"PAGE_MAX_WIDTH":    {field: "page.max_width", typ: envTypeInt, setInt: func(c *Config, v int) { c.Page.MaxWidth = v }},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with MDREAD_ (e.g., MDREAD_LOG_LEVEL).
func LoadFromEnv(cfg *Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value, ok := os.LookupEnv(envVar)
		if !ok || value == "" {
			continue
		}

		switch mapping.typ {
		case envTypeString:
			mapping.setStr(cfg, value)
		case envTypeInt:
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("%s (%s): %w", envVar, mapping.field, err)
			}
			mapping.setInt(cfg, n)
		}
	}
	return nil
}
