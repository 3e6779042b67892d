// Command agentd-mock serves a fake agent for local development, so bridge
// code can run without a real orchestration agent.
package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"

	"github.com/odvcencio/agentbridge/pkg/agenttest"
	"github.com/odvcencio/agentbridge/pkg/webdriver"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:8585", "listen address")
	dialect := flag.String("dialect", string(webdriver.DialectW3C), "negotiated dialect (legacy or w3c)")
	flag.Parse()

	d := webdriver.Dialect(*dialect)
	if !d.Valid() {
		slog.Error("unknown dialect", slog.String("dialect", *dialect))
		os.Exit(1)
	}

	server := agenttest.NewServer(d)
	slog.Info("mock agent listening",
		slog.String("addr", *addr),
		slog.String("session_id", server.SessionID()),
		slog.String("dialect", string(d)))
	if err := http.ListenAndServe(*addr, server.Handler()); err != nil {
		slog.Error("mock agent exited", "error", err)
		os.Exit(1)
	}
}
