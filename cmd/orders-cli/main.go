package main

import (
	"orderhistory/cmd/orders-cli/commands"
	"orderhistory/lib/telemetry"
	"orderhistory/lib/util/serviceutil"
)

func main() {
	telemetry.InitSlog(false)
	commands.ExecuteContext(serviceutil.SignalContext())
}
