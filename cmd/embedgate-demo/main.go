// Command embedgate-demo registers a single embedding client and embeds
// every line read from stdin, printing one JSON vector per line. It is a
// minimal end-to-end exercise of the fx wiring; credentials are picked up
// from the environment (a .env file is honored when present).
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"github.com/embedgate/embedgate/v1/config"
	"github.com/embedgate/embedgate/v1/engine"
	"github.com/embedgate/embedgate/v1/logger"
	"github.com/embedgate/embedgate/v1/metrics"
)

func main() {
	_ = godotenv.Load()

	clientName := flag.String("client", "default", "registration name of the client")
	clientConfig := flag.String("config", "ollama::nomic-embed-text", "client configuration string")
	metricsAddr := flag.String("metrics", ":9090", "listen address of the /metrics endpoint")
	flag.Parse()

	app := fx.New(
		fx.Supply(
			logger.Config{Level: logger.Info, ServiceName: "embedgate-demo"},
			metrics.Config{
				Address:                 *metricsAddr,
				ServiceName:             "embedgate-demo",
				EnableDefaultCollectors: true,
			},
		),
		logger.FXModule,
		metrics.FXModule,
		engine.FXModule,
		fx.Invoke(func(lc fx.Lifecycle, shutdowner fx.Shutdowner, eng *engine.Engine, log *logger.Logger) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					go func() {
						defer func() { _ = shutdowner.Shutdown() }()
						if err := run(eng, *clientName, *clientConfig); err != nil {
							log.Error("demo failed", err, nil)
						}
					}()
					return nil
				},
			})
		}),
	)

	app.Run()
}

func run(eng *engine.Engine, name, rawConfig string) error {
	if err := eng.Register(name, config.Input{Raw: rawConfig}); err != nil {
		return err
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		vec, err := eng.EmbedOne(context.Background(), name, line)
		if err != nil {
			return err
		}
		out, err := json.Marshal(vec)
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	}
	return scanner.Err()
}
