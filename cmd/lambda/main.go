package main

import (
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	lambdaadapter "github.com/Yarielito06/humanizer-app/internal/lambda"
	"github.com/Yarielito06/humanizer-app/internal/server"
)

var version = "dev"

func main() {
	app, err := server.FromEnvironment(version)
	if err != nil {
		slog.Error("startup failed", "error", err)
		os.Exit(1)
	}

	a := &lambdaadapter.Adapter{Handler: app.Rewrite}
	lambda.Start(a.Handle)
}
