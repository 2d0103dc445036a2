package main

import (
	"fmt"
	"os"

	"dcastano/siigo-ingest/cmd/batch"
	"dcastano/siigo-ingest/cmd/ingest"
	"dcastano/siigo-ingest/cmd/root"
	"dcastano/siigo-ingest/cmd/uploads"
)

func init() {
	root.Init()
	ingest.Init()
	batch.Init()
	uploads.Init()

	root.Cmd.AddCommand(ingest.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(uploads.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
