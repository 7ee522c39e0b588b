package analysis

import (
	"errors"

	"github.com/harrison/operant/internal/metrics"
	"github.com/harrison/operant/internal/models"
)

// Metric names as recorded in outcomes, reports and the results ledger
const (
	MetricRewardRetrieval   = "reward_retrieval"
	MetricCueITIResponding  = "cue_iti_responding"
	MetricLeverPressLatency = "lever_press_latency"
	MetricGoNoGoTrials      = "go_nogo_trials"
	MetricLeverPressing     = "lever_pressing"
	MetricHeadPokes         = "head_pokes"
	MetricSuccessfulGoNoGo  = "successful_go_nogo"
)

// MetricNames lists every metric in the order it runs
var MetricNames = []string{
	MetricRewardRetrieval,
	MetricCueITIResponding,
	MetricLeverPressLatency,
	MetricGoNoGoTrials,
	MetricLeverPressing,
	MetricHeadPokes,
	MetricSuccessfulGoNoGo,
}

// Markers names the labels of the configurable metrics
type Markers struct {
	CueOn            string
	CueOff           string
	LeverOn          string
	LeverPress       string
	SecondLeverPress string
}

// DefaultMarkers returns tone cues and the right lever
func DefaultMarkers() Markers {
	return Markers{
		CueOn:            "ToneOn1",
		CueOff:           "ToneOff1",
		LeverOn:          metrics.RLeverOn,
		LeverPress:       "RPressOn",
		SecondLeverPress: "LPressOn",
	}
}

type metricFunc func(stream *models.EventStream) (map[string]float64, interface{}, error)

type namedMetric struct {
	name string
	run  metricFunc
}

func (m Markers) metrics() []namedMetric {
	return []namedMetric{
		{MetricRewardRetrieval, func(s *models.EventStream) (map[string]float64, interface{}, error) {
			r, err := metrics.RewardRetrieval(s)
			if err != nil {
				return nil, nil, err
			}
			return map[string]float64{
				"presented":    float64(r.Presented),
				"retrieved":    float64(r.Retrieved),
				"mean_latency": r.MeanLatency,
			}, r, nil
		}},
		{MetricCueITIResponding, func(s *models.EventStream) (map[string]float64, interface{}, error) {
			r, err := metrics.CueITIResponding(s, m.CueOn, m.CueOff)
			if err != nil {
				return nil, nil, err
			}
			return map[string]float64{
				"cycles":   float64(r.Cycles),
				"cue_rate": r.CueRate,
				"iti_rate": r.ITIRate,
			}, r, nil
		}},
		{MetricLeverPressLatency, func(s *models.EventStream) (map[string]float64, interface{}, error) {
			r, err := metrics.LeverPressLatency(s, m.LeverOn, m.LeverPress)
			values := map[string]float64{
				"windows":   float64(r.Windows),
				"responded": float64(r.Responded),
			}
			if err != nil {
				if errors.Is(err, metrics.ErrNoPresses) {
					return values, r, err
				}
				return nil, nil, err
			}
			values["mean_latency"] = r.MeanLatency
			return values, r, nil
		}},
		{MetricGoNoGoTrials, func(s *models.EventStream) (map[string]float64, interface{}, error) {
			r := metrics.GoNoGoTrials(s)
			return map[string]float64{
				"go":    float64(r.Go),
				"nogo":  float64(r.NoGo),
				"total": float64(r.Total()),
			}, r, nil
		}},
		{MetricLeverPressing, func(s *models.EventStream) (map[string]float64, interface{}, error) {
			r := metrics.LeverPressing(s, m.LeverPress, m.SecondLeverPress)
			return map[string]float64{
				"lever1": float64(r.Lever1),
				"lever2": float64(r.Lever2),
				"total":  float64(r.Total),
			}, r, nil
		}},
		{MetricHeadPokes, func(s *models.EventStream) (map[string]float64, interface{}, error) {
			return map[string]float64{"total": float64(metrics.TotalHeadPokes(s))}, nil, nil
		}},
		{MetricSuccessfulGoNoGo, func(s *models.EventStream) (map[string]float64, interface{}, error) {
			goCount, nogoCount := metrics.SuccessfulGoNoGoTrials(s)
			return map[string]float64{"go": float64(goCount), "nogo": float64(nogoCount)}, nil, nil
		}},
	}
}

// classify maps a metric error onto an outcome status
func classify(err error) models.OutcomeStatus {
	switch {
	case err == nil:
		return models.StatusOK
	case errors.Is(err, metrics.ErrNoPresses):
		return models.StatusNoPresses
	default:
		return models.StatusFailed
	}
}
