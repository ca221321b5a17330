package main

import (
	"github.com/bornholm/scheduler/internal/command"
	"github.com/bornholm/scheduler/internal/command/schedules"
	"github.com/bornholm/scheduler/internal/command/server"
	"github.com/bornholm/scheduler/internal/command/sessions"

	_ "github.com/ncruces/go-sqlite3/embed"
)

func main() {
	command.Main(
		"scheduler", "a session authenticated schedule board",
		server.Command(),
		sessions.Command(),
		schedules.Command(),
	)
}
