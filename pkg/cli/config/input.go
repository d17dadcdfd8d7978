package config

import "github.com/urfave/cli/v3"

// Input holds the package list location
type Input struct {
	File string
}

// Flags returns CLI flags for input configuration
func (c *Input) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "file",
			Aliases:     []string{"f"},
			Usage:       "Path of the YAML package list",
			Value:       "go-packages.yaml",
			Destination: &c.File,
			Sources:     cli.EnvVars("GO_PACKAGES_YAML"),
		},
	}
}

// Export holds export destination configuration
type Export struct {
	Output string
}

// Flags returns CLI flags for export configuration
func (c *Export) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Path of the CSV file to write",
			Value:       "go-packages.csv",
			Destination: &c.Output,
			Sources:     cli.EnvVars("BUILDPROBE_EXPORT_OUTPUT"),
		},
	}
}
