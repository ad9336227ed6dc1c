package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-clinic-client/internal/app"
	"github.com/MKhiriev/go-clinic-client/internal/cli"
	"github.com/MKhiriev/go-clinic-client/internal/client"
	"github.com/MKhiriev/go-clinic-client/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	if err := cli.New(client.NewRuntimeFactory(), buildInfo).ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "Error:", app.MessageFor(err))
		os.Exit(1)
	}
}
