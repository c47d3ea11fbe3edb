package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/scanmark/rostersync/internal/adapter"
	"github.com/scanmark/rostersync/internal/config"
	"github.com/scanmark/rostersync/internal/logger"
	"github.com/scanmark/rostersync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	// Registered before GetClientConfig so the shared flag parse picks
	// these up together with the config flags.
	pushPath := flag.String("push", "", "Roster snapshot JSON file to upload")
	pullArg := flag.String("pull", "", "6-digit code or pasted share link to redeem")
	outPath := flag.String("o", "", "Write the pulled snapshot to this file instead of stdout")
	origin := flag.String("origin", "https://scanmark.app", "Origin used to build share links")

	log := logger.NewClientLogger("rostersync-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	serverAdapter, err := adapter.NewHTTPSyncAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create sync adapter")
	}

	ctx := context.Background()

	switch {
	case *pushPath != "":
		runPush(ctx, serverAdapter, *pushPath, *origin, log)
	case *pullArg != "":
		runPull(ctx, serverAdapter, *pullArg, *outPath, log)
	default:
		printBuildInfo()
		flag.Usage()
		os.Exit(2)
	}
}

func runPush(ctx context.Context, a adapter.ServerAdapter, path, origin string, log *logger.Logger) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("read snapshot file")
	}

	snapshot, err := models.UnmarshalSnapshotBody(data)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("parse snapshot file")
	}

	created, err := a.PushSnapshot(ctx, snapshot)
	if err != nil {
		log.Fatal().Err(err).Msg("push snapshot")
	}

	fmt.Printf("Code: %s (expires in %d seconds)\n", created.Code, created.ExpiresInSec)
	fmt.Printf("Share link: %s\n", adapter.ShareLink(origin, created.Code))
}

func runPull(ctx context.Context, a adapter.ServerAdapter, arg, outPath string, log *logger.Logger) {
	code := arg
	if fromLink, ok := adapter.CodeFromLink(arg); ok {
		code = fromLink
	}

	snapshot, err := a.PullSnapshot(ctx, code)
	if err != nil {
		log.Fatal().Err(err).Str("code", code).Msg("pull snapshot")
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("encode snapshot")
	}

	if outPath == "" {
		fmt.Println(string(data))
		return
	}

	if err := os.WriteFile(outPath, data, 0o600); err != nil {
		log.Fatal().Err(err).Str("path", outPath).Msg("write snapshot file")
	}
	fmt.Printf("Snapshot written to %s\n", outPath)
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
