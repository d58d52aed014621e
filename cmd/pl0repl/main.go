/*
File    : pl0run/cmd/pl0repl/main.go
*/

// Command pl0repl is an interactive PL/0 front end: no arguments starts
// a local REPL on stdin/stdout, and
// "server <port>" starts a TCP listener handing each connection its own
// single-threaded REPL session, tagged with a github.com/google/uuid
// session id logged to the server's stderr rather than to the
// connection itself.
package main

import (
	"net"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/pl0toolkit/pl0run/repl"
)

const (
	version = "v1.0.0"
	author  = "pl0toolkit"
	license = "MIT"
	prompt  = "pl0 >>> "
	line    = "----------------------------------------------------------------"
	banner  = `
 ____  _     ___   ___
|  _ \| |   / _ \ / _ \
| |_) | |  | | | | | | |
|  __/| |__| |_| | |_| |
|_|   |_____\___/ \___/
`
)

var (
	redColor  = color.New(color.FgRed)
	cyanColor = color.New(color.FgCyan)
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "server" {
		if len(os.Args) < 3 {
			redColor.Fprintln(os.Stderr, "usage: pl0repl server <port>")
			os.Exit(1)
		}
		startServer(os.Args[2])
		return
	}

	r := repl.NewRepl(banner, version, author, line, license, prompt)
	r.Start(os.Stdin, os.Stdout)
}

func startServer(port string) {
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[SERVER ERROR] failed to listen on %s: %v\n", port, err)
		os.Exit(1)
	}
	defer listener.Close()

	cyanColor.Printf("pl0repl server listening on :%s\n", port)

	for {
		conn, err := listener.Accept()
		if err != nil {
			redColor.Fprintf(os.Stderr, "[SERVER ERROR] accept: %v\n", err)
			continue
		}
		go handleClient(conn)
	}
}

// handleClient logs connection lifecycle to the server's own stderr,
// tagged by a session id that is never exposed on the connection itself.
func handleClient(conn net.Conn) {
	defer conn.Close()
	sessionID := uuid.New()
	cyanColor.Fprintf(os.Stderr, "[session %s] connected from %s\n", sessionID, conn.RemoteAddr())

	r := repl.NewRepl(banner, version, author, line, license, prompt)
	r.Start(conn, conn)

	cyanColor.Fprintf(os.Stderr, "[session %s] disconnected\n", sessionID)
}
