package main

import (
	"context"
	"os"

	"termchat/pkg/app"

	_ "termchat/pkg/ai/providers"
)

func main() {
	os.Exit(app.Run(context.Background(), app.Options{
		Variant:       app.TypeChat(),
		Args:          os.Args[1:],
		Stdin:         os.Stdin,
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
		HandleSignals: true,
	}))
}
