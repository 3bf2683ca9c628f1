// Command termshelld serves terminal sessions over websocket. Every
// connection gets its own isolated session: its own filesystem,
// history and aliases, discarded when the connection closes.
package main

import (
	"flag"
	"net/http"
	"os"

	"github.com/gorilla/websocket"

	"termshell/internal/logging"
	"termshell/internal/shell"
)

var logger = logging.GetLogger().WithPrefix("ws")

// wsResult is the JSON frame written for every executed line.
type wsResult struct {
	Output   string   `json:"output"`
	OK       bool     `json:"ok"`
	ExitCode int      `json:"exitCode"`
	Effects  []string `json:"effects,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func handleTerminal(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	session, err := shell.NewSession()
	if err != nil {
		logger.Error("failed to create session: %v", err)
		return
	}
	logger.Info("session %s connected from %s", session.ID(), r.RemoteAddr)

	for {
		msgType, line, readErr := conn.ReadMessage()
		if readErr != nil {
			logger.Info("session %s closed: %v", session.ID(), readErr)
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		res := session.Execute(string(line))
		out := wsResult{
			Output:   res.Output,
			OK:       res.OK,
			ExitCode: res.ExitCode,
			Effects:  res.Effects,
		}
		if writeErr := conn.WriteJSON(out); writeErr != nil {
			logger.Warn("session %s write failed: %v", session.ID(), writeErr)
			return
		}
	}
}

func main() {
	addr := flag.String("addr", ":8089", "Listen address")
	verbose := flag.Bool("verbose", false, "Enable verbose logging")
	flag.Parse()

	if *verbose {
		logging.GetLogger().SetLevel(logging.LevelDebug)
	}

	http.HandleFunc("/terminal", handleTerminal)
	logger.Info("listening on %s", *addr)
	if err := http.ListenAndServe(*addr, nil); err != nil {
		logger.Error("server failed: %v", err)
		os.Exit(1)
	}
}
