package models

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	sceneLabel = "scene"
)

var (
	raidoVolumeCount = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "volume_count",
		Help: "The number of live volumes.",
	}, []string{sceneLabel})

	raidoVolumeCountTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "volume_count_total",
		Help: "The total number of volumes created.",
	}, []string{sceneLabel})
)

func instrumentIncreaseVolumeGauge(scene string) {
	raidoVolumeCount.
		With(prometheus.Labels{sceneLabel: scene}).
		Inc()
}

func instrumentDecreaseVolumeGauge(scene string) {
	raidoVolumeCount.
		With(prometheus.Labels{sceneLabel: scene}).
		Dec()
}

func instrumentCountVolume(scene string) {
	raidoVolumeCountTotal.
		With(prometheus.Labels{sceneLabel: scene}).
		Inc()
}
