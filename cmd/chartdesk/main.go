package main

import (
	"github.com/c9s/chartdesk/pkg/cmd"
)

func main() {
	cmd.Execute()
}
