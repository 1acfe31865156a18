// Package pareto estimates the number of latent topics in a
// document-term matrix without the caller specifying it in advance.
// The matrix is factorized at increasing topic counts until adding
// another topic no longer changes how many topics are needed to cover
// the content-rich majority of documents, following the Pareto
// principle: a minority of documents carries the majority of the
// token mass.
package pareto

import (
	"context"

	"gonum.org/v1/gonum/mat"

	"github.com/alexseong/BotBoosted/matrix"
	"github.com/alexseong/BotBoosted/nmf"
)

// contentFraction is the token-mass share used when deriving the
// noise fraction automatically (the 80 in 80:20).
const contentFraction = 0.8

// NoiseSetting is either an explicit noise fraction or the auto
// sentinel, resolved once at the start of a search. The zero value
// means "use the default".
type NoiseSetting struct {
	pct  float64
	auto bool
	set  bool
}

func Noise(pct float64) NoiseSetting { return NoiseSetting{pct: pct, set: true} }
func AutoNoise() NoiseSetting        { return NoiseSetting{auto: true, set: true} }

// StepSetting is either an explicit step size or the auto sentinel.
// The zero value means "use the default".
type StepSetting struct {
	size int
	auto bool
	set  bool
}

func Step(size int) StepSetting { return StepSetting{size: size, set: true} }
func AutoStep() StepSetting     { return StepSetting{auto: true, set: true} }

// Progress describes one search iteration for an observability hook.
type Progress struct {
	Step       int
	TopicCount int
	TopicSizes map[int]int
	RichTopics int
	Stable     bool
}

type ProgressFunc func(Progress)

// Config tunes the topic-count search. Factorization hyperparameters
// are passed through to the nmf package unchanged.
type Config struct {
	NoisePct NoiseSetting
	Step     StepSetting
	Start    int
	MaxSteps int
	NMF      nmf.Config
	// Progress, when set, is invoked once per iteration.
	Progress ProgressFunc
}

func (c Config) withDefaults() Config {
	if !c.NoisePct.set {
		c.NoisePct = Noise(0.2)
	}
	if !c.Step.set {
		c.Step = Step(2)
	}
	if c.Start <= 0 {
		c.Start = 2
	}
	if c.MaxSteps <= 0 {
		c.MaxSteps = 100
	}
	return c
}

// Result is the outcome of a topic-count search. An inconclusive
// result carries the last attempted topic count and the factorization
// computed there, flagged as not confidently stable.
type Result struct {
	TopicCount    int
	Factorization *nmf.Result
	Conclusive    bool
	Steps         int
}

// searchState is threaded through the loop iterations of one search.
type searchState struct {
	richTopics int
	previous   *nmf.Result
}

// Estimator drives the incremental factorization search. It is not
// safe for concurrent use; each Evaluate call owns its search state
// but the retained factorization is shared.
type Estimator struct {
	cfg    Config
	result *nmf.Result
}

func NewEstimator(cfg Config) *Estimator {
	return &Estimator{cfg: cfg.withDefaults()}
}

// Factorization returns the factor pair retained by the last
// Evaluate call.
func (e *Estimator) Factorization() *nmf.Result {
	return e.result
}

// Evaluate searches for the topic count of m. It resolves the auto
// parameters, then factorizes at start, start+step, ... until the
// stability detector fires, backing off one step and returning the
// cached previous factorization as the answer. Exhausting MaxSteps
// yields an inconclusive result rather than an error.
func (e *Estimator) Evaluate(ctx context.Context, m mat.Matrix) (Result, error) {
	if err := matrix.Validate(m); err != nil {
		return Result{}, err
	}

	noisePct := e.cfg.NoisePct.pct
	if e.cfg.NoisePct.auto {
		var err error
		noisePct, err = EstimateNoise(m, contentFraction)
		if err != nil {
			return Result{}, err
		}
	}

	step := e.cfg.Step.size
	if e.cfg.Step.auto {
		step = EstimateStep(m)
	}
	if step < 1 {
		step = 1
	}

	corpusCount, _ := m.Dims()
	richContent := int(float64(corpusCount) * (1 - noisePct))
	if richContent <= 0 {
		return Result{}, ErrInvalidInput
	}

	state := searchState{}
	topicCount := e.cfg.Start
	for i := 0; i < e.cfg.MaxSteps; i++ {
		res, err := nmf.Factorize(ctx, m, topicCount, e.cfg.NMF)
		if err != nil {
			return Result{}, err
		}

		sizes := matrix.TopicSizes(matrix.Assignments(res.W))
		rich, stable := Stable(sizes, richContent, state.richTopics)

		if e.cfg.Progress != nil {
			e.cfg.Progress(Progress{
				Step:       i + 1,
				TopicCount: topicCount,
				TopicSizes: sizes,
				RichTopics: rich,
				Stable:     stable,
			})
		}

		if stable {
			if state.previous == nil {
				return Result{}, ErrDegenerate
			}
			e.result = state.previous
			return Result{
				TopicCount:    topicCount - step,
				Factorization: state.previous,
				Conclusive:    true,
				Steps:         i + 1,
			}, nil
		}

		state.richTopics = rich
		state.previous = res
		topicCount += step
	}

	// the distribution never settled within MaxSteps
	e.result = state.previous
	return Result{
		TopicCount:    topicCount - step,
		Factorization: state.previous,
		Conclusive:    false,
		Steps:         e.cfg.MaxSteps,
	}, nil
}
