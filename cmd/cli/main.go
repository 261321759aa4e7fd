package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/echojournal/internal/client/cli"
)

func main() {

	app := cli.NewApp(os.Stdin, os.Stdout)

	if err := app.Execute(context.Background(), cli.NewRootCommand(app)); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

}
