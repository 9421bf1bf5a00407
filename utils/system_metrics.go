package utils

import (
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

var (
	CPUUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "system_cpu_usage_percent",
		Help: "Current CPU usage as a percentage",
	})

	MemoryUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "system_memory_usage_percent",
		Help: "Current memory usage as a percentage",
	})
)

// StartSystemMetrics samples CPU and memory usage on the given interval
// and exposes them as prometheus gauges. Runs until the process exits.
func StartSystemMetrics(interval time.Duration) {
	go func() {
		for {
			if percentages, err := cpu.Percent(0, false); err != nil {
				log.Printf("Error getting CPU usage: %v", err)
			} else if len(percentages) > 0 {
				CPUUsage.Set(percentages[0])
			}

			if vm, err := mem.VirtualMemory(); err != nil {
				log.Printf("Error getting memory usage: %v", err)
			} else {
				MemoryUsage.Set(vm.UsedPercent)
			}

			time.Sleep(interval)
		}
	}()
}
