package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// fileConfig is the optional --config document:
//
//	conn: 8
//	drill: true
//	log_level: debug
//	max_steps: 10000
//	memo: 32
//
// Flags given on the command line win over the file.
type fileConfig struct {
	Conn     int    `yaml:"conn"`
	Drill    bool   `yaml:"drill"`
	LogLevel string `yaml:"log_level"`
	MaxSteps int    `yaml:"max_steps"`
	Memo     int    `yaml:"memo"`
}

func applyConfig(cmd *cobra.Command, f *flags) error {
	if f.configFile == "" {
		return nil
	}
	raw, err := os.ReadFile(f.configFile)
	if err != nil {
		return err
	}
	var c fileConfig
	if err = yaml.Unmarshal(raw, &c); err != nil {
		return fmt.Errorf("config %s: %w", f.configFile, err)
	}

	set := cmd.Flags().Changed
	if c.Conn != 0 && !set("conn") {
		f.conn = c.Conn
	}
	if c.Drill && !set("drill") {
		f.drill = true
	}
	if c.LogLevel != "" && !set("log-level") {
		f.logLevel = c.LogLevel
	}
	if c.MaxSteps != 0 && !set("max-steps") {
		f.maxSteps = c.MaxSteps
	}
	if c.Memo != 0 && !set("memo") {
		f.memo = c.Memo
	}
	return nil
}
