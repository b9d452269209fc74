// Shiftfit turns daypart covers forecasts into hourly demand and checks it against the rota.
package main

import (
	"github.com/huangsam/shiftfit/cmd"
	"github.com/huangsam/shiftfit/internal/contract"
	"github.com/huangsam/shiftfit/internal/iocache"
)

func main() {
	cmd.SetCacheManager(iocache.Manager)

	err := cmd.Execute()

	if perr := cmd.StopProfiling(); perr != nil {
		contract.LogWarn("Failed to stop profiling", perr)
	}
	iocache.CloseCaching()

	if err != nil {
		contract.LogFatal("Command failed", err)
	}
	contract.SyncLogger()
}
