package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/carrental/carrental/mcp"
)

func main() {
	if err := mcp.RunMCPServer(os.Args[1:]); err != nil {
		log.Error().Err(err).Msg("MCP server exited with error")
		os.Exit(1)
	}
}
