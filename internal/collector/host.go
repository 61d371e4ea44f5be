// Package collector exports host-level CPU and memory metrics into the
// process registry.
package collector

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Host samples host memory and per-core CPU utilization on every gather.
type Host struct {
	memTotal *prometheus.Desc
	memFree  *prometheus.Desc
	cpuUtil  *prometheus.Desc
}

var _ prometheus.Collector = (*Host)(nil)

// NewHost creates the host metrics collector.
func NewHost() *Host {
	return &Host{
		memTotal: prometheus.NewDesc(
			"host_memory_total_bytes",
			"Total amount of host memory",
			nil, nil,
		),
		memFree: prometheus.NewDesc(
			"host_memory_free_bytes",
			"Amount of free host memory",
			nil, nil,
		),
		cpuUtil: prometheus.NewDesc(
			"host_cpu_utilization_percent",
			"Instantaneous CPU utilization, per core",
			[]string{"cpu"}, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (h *Host) Describe(ch chan<- *prometheus.Desc) {
	ch <- h.memTotal
	ch <- h.memFree
	ch <- h.cpuUtil
}

// Collect implements prometheus.Collector. Sampling failures drop the
// affected metrics from the snapshot rather than failing the gather.
func (h *Host) Collect(ch chan<- prometheus.Metric) {
	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		ch <- prometheus.MustNewConstMetric(h.memTotal, prometheus.GaugeValue, float64(vm.Total))
		ch <- prometheus.MustNewConstMetric(h.memFree, prometheus.GaugeValue, float64(vm.Free))
	}
	if perCPU, err := cpu.Percent(0, true); err == nil {
		for i, v := range perCPU {
			ch <- prometheus.MustNewConstMetric(h.cpuUtil, prometheus.GaugeValue, v, strconv.Itoa(i))
		}
	}
}
