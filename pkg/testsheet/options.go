// Package testsheet manages test case workbooks held in memory: a registry
// of open workbooks and the operations that read and write their test
// tables.
package testsheet

import (
	"fmt"
	"os"

	"github.com/ukaji3/testsheet-go/pkg/testsheet/textfmt"
	"gopkg.in/yaml.v3"
)

// DefaultServerName is announced to tool clients.
const DefaultServerName = "Excel Test Case MCP Server"

// Options configures the service.
type Options struct {
	// DefaultTemplatePath is used by CreateWorkbook when no template is
	// given. If it is empty or missing, a blank sheet is generated.
	DefaultTemplatePath string `yaml:"default_template_path"`
	// WrapWidth is the line width for wrapped cell text.
	// Zero means textfmt.DefaultWidth.
	WrapWidth int `yaml:"wrap_width"`
	// ServerName is the name the tool server reports.
	ServerName string `yaml:"server_name"`
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{
		WrapWidth:  textfmt.DefaultWidth,
		ServerName: DefaultServerName,
	}
}

// LoadOptions reads a YAML config file on top of DefaultOptions.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parse config %s: %w", path, err)
	}
	return opts, nil
}

func (o Options) wrapWidth() int {
	if o.WrapWidth <= 0 {
		return textfmt.DefaultWidth
	}
	return o.WrapWidth
}
