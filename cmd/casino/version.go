package main

import (
	"fmt"
	"runtime"
)

type VersionCmd struct{}

func (c *VersionCmd) Run(g *Globals) error {
	fmt.Printf("casino %s (%s/%s, %s)\n", version, runtime.GOOS, runtime.GOARCH, runtime.Version())
	return nil
}
