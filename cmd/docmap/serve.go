package main

import (
	"fmt"

	docfsnotify "github.com/awray/docmap/fsnotify"
	"github.com/awray/docmap/mcp"
)

// Run executes the serve command: an MCP tool server over stdio. With
// watching enabled, external file changes rebuild the index in the
// background so long-lived clients see fresh structure.
func (c *ServeCmd) Run(deps *Dependencies) error {
	if c.Watch {
		watcher := docfsnotify.NewWatcher(deps.Root, deps.Index, deps.Logger)
		go func() {
			if err := watcher.Run(deps.Ctx); err != nil {
				deps.Logger.Error("file watcher stopped", "err", err)
			}
		}()
	}

	fmt.Fprintf(deps.Stderr, "docmap MCP server: root %s\n", deps.Root)
	return mcp.NewServer(deps.Index, deps.Asker).ServeStdio()
}
