package utils

import (
	"runtime"

	"go.uber.org/zap/zapcore"
)

// MemUsage is a snapshot of the Go heap, sizes in MiB
type MemUsage struct {
	AllocMiB      uint64
	TotalAllocMiB uint64
	SysMiB        uint64
	NumGC         uint32
}

func GetMemUsage() MemUsage {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	// For info on each, see: https://golang.org/pkg/runtime/#MemStats
	bToMb := func(b uint64) uint64 {
		return b / 1024 / 1024
	}
	return MemUsage{
		AllocMiB:      bToMb(m.Alloc),
		TotalAllocMiB: bToMb(m.TotalAlloc),
		SysMiB:        bToMb(m.Sys),
		NumGC:         m.NumGC,
	}
}

func (mu MemUsage) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddUint64("alloc_mib", mu.AllocMiB)
	enc.AddUint64("total_alloc_mib", mu.TotalAllocMiB)
	enc.AddUint64("sys_mib", mu.SysMiB)
	enc.AddUint32("num_gc", mu.NumGC)
	return nil
}
