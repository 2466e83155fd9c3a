package cfg

import "github.com/ethereum/go-ethereum/metrics"

var (
	controlTransferMeter = metrics.NewRegisteredMeter("cfg/block/controltransfer", nil)
	faultCounter         = metrics.NewRegisteredCounter("cfg/block/fault", nil)
	firstTakeCounter     = metrics.NewRegisteredCounter("cfg/branch/firsttake", nil)
	saturatedCounter     = metrics.NewRegisteredCounter("cfg/branch/saturated", nil)
	escalationDeferred   = metrics.NewRegisteredCounter("cfg/escalation/deferred", nil)
)
