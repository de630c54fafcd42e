package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/debemdeboas/notice-desk/internal/config"
)

const header = "Notice Desk configuration example\nCopy this file to config.yaml (or config.toml) and customize as needed"

func main() {
	outputFile := "config.example.yaml"
	if len(os.Args) > 1 {
		outputFile = os.Args[1]
	}

	format := "yaml"
	if strings.EqualFold(filepath.Ext(outputFile), ".toml") {
		format = "toml"
	}

	cfg := &config.Config{}
	config.ApplyDefaults(cfg)

	output, err := generate(cfg, format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating config: %v\n", err)
		os.Exit(1)
	}

	if outputFile == "-" {
		fmt.Print(string(output))
		return
	}

	if err := os.WriteFile(outputFile, output, 0644); err != nil {
		fmt.Fprintf(os.Stderr, config.ErrWriteConfigContentFmt+"\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generated example config: %s\n", outputFile)
}

// generate renders cfg as commented YAML or TOML.
func generate(cfg *config.Config, format string) ([]byte, error) {
	var buf bytes.Buffer
	for _, line := range strings.Split(header, "\n") {
		buf.WriteString("# " + line + "\n")
	}
	buf.WriteString("\n")

	switch format {
	case "toml":
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, err
		}
	default:
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	return buf.Bytes(), nil
}
