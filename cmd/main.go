package main

import (
	// 数据源在 init 中注册到 adapter 工厂表
	_ "EsportsSchedule/internal/adapter/cargo"
	_ "EsportsSchedule/internal/adapter/demo"
	_ "EsportsSchedule/internal/adapter/lpdb"

	"github.com/alecthomas/kong"
)

type globalCmd struct {
	ConfigDir string `name:"config" help:"Directory containing config.yaml." default:"./config" type:"path" env:"CONFIG_DIR"`
	LogLevel  string `help:"Override log.level (debug, info, warn, error)." env:"LOG_LEVEL"`
	Demo      bool   `help:"Read local sample payloads instead of calling Liquipedia."`
}

var CLI struct {
	globalCmd

	Fetch fetchCmd `cmd:"" help:"Run one fetch cycle and write the schedule snapshot."`
	Serve serveCmd `cmd:"" default:"withargs" help:"Serve the schedule snapshot over HTTP."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("esports-schedule"),
		kong.Description("Fetches a club's upcoming esports matches from Liquipedia and serves them as JSON."),
	)
	err := ctx.Run(&CLI.globalCmd)
	ctx.FatalIfErrorf(err)
}
