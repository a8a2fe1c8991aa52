package analysis

import (
	"fmt"
	"time"

	"github.com/apex/log"

	domain "github.com/bryanwahyu/automaton-ml/internal/domain/analysis"
	"github.com/bryanwahyu/automaton-ml/internal/infra/accel"
	"github.com/bryanwahyu/automaton-ml/internal/infra/monitoring"
	"github.com/bryanwahyu/automaton-ml/internal/textutil"
)

// Service implements use-cases untuk analisis konten
// Service is designed to be used concurrently and is thread-safe
type Service struct {
	Engine domain.Engine
	Clock  Clock
}

// Clock abstraction supaya gampang ditest
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Command untuk analisis konten
type AnalyzeCommand struct {
	Text      string
	SourceURL string
}

// Analyze runs the credibility pipeline on the command text and records
// prediction metrics for the call. A panicking engine is turned into an
// error and reported with request context; one bad request never takes
// the process down.
func (s *Service) Analyze(cmd AnalyzeCommand) (res *domain.Result, err error) {
	inputType := monitoring.InputTypeText
	if cmd.SourceURL != "" {
		inputType = monitoring.InputTypeURL
	}

	start := s.Clock.Now()

	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("analysis failed: %v", r)
			monitoring.RecordPrediction(0, s.Clock.Now().Sub(start), monitoring.StatusFailure, inputType)
			monitoring.CaptureAnalysisError(err, map[string]interface{}{
				"input_type":     inputType,
				"text_length":    len(cmd.Text),
				"sentence_count": len(textutil.Sentences(textutil.Preprocess(cmd.Text))),
				"device":         accel.Device(),
			})
			log.WithError(err).Error("analysis failed")
		}
	}()

	res = s.Engine.AnalyzeContent(cmd.Text)
	duration := s.Clock.Now().Sub(start)
	monitoring.RecordPrediction(res.Score, duration, monitoring.StatusSuccess, inputType)

	log.WithFields(log.Fields{
		"score":      res.Score,
		"input_type": inputType,
		"duration":   duration.String(),
	}).Debug("analysis complete")

	return res, nil
}
