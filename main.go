package main

import (
	"context"
	"errors"
	"os"

	"github.com/buildprobe/buildprobe/pkg/cli"
	"github.com/buildprobe/buildprobe/pkg/domain/model"
)

func main() {
	if err := cli.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, model.ErrInputNotFound) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
