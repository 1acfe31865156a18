package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	log "github.com/golang/glog"
	"gonum.org/v1/gonum/mat"

	"github.com/alexseong/BotBoosted/corpus"
	"github.com/alexseong/BotBoosted/nmf"
	"github.com/alexseong/BotBoosted/pareto"
	"github.com/alexseong/BotBoosted/report"
)

var (
	input    = flag.String("input_file", "", "input corpus file")
	format   = flag.String("format", "text", "input format: text (one document per line) or bow")
	noisePct = flag.String("noise_pct", "0.2", "noise fraction in [0,1] or auto")
	step     = flag.String("step", "2", "topic count search step or auto")
	start    = flag.Int("start", 2, "first topic count to try")
	maxSteps = flag.Int("max_steps", 100, "maximum number of search iterations")

	initStrategy = flag.String("init", "nndsvdar", "factor initialization: random, nndsvd, nndsvda or nndsvdar")
	solver       = flag.String("solver", "cd", "factorization solver: cd or mu")
	tol          = flag.Float64("tol", 1e-4, "solver convergence tolerance")
	maxIter      = flag.Int("max_iter", 200, "solver iteration cap")
	alpha        = flag.Float64("alpha", 0, "regularization strength")
	l1Ratio      = flag.Float64("l1_ratio", 0, "l1/l2 regularization mix in [0,1]")
	shuffle      = flag.Bool("shuffle", false, "randomize coordinate order in the cd solver")
	seed         = flag.Int64("seed", 0, "random seed for the factorization")

	minWordFreq = flag.Int("min_word_freq", 4, "fold words occurring this often or less")
	topWords    = flag.Int("top_words", 10, "number of top words to report per topic")
	savePath    = flag.String("save", "", "path prefix to save the winning factorization")
)

func main() {
	flag.Parse()
	defer log.Flush()

	if *input == "" {
		log.Exit("input_file is required")
	}

	var (
		tm    mat.Matrix
		vocab map[string]int
		docs  []string
	)
	switch *format {
	case "bow":
		data, err := corpus.Load(*input)
		if err != nil {
			log.Exitf("loading corpus: %v", err)
		}
		tm = data.TermMatrix()
		if tm == nil {
			log.Exit("corpus has no documents")
		}
	case "text":
		var err error
		docs, err = readLines(*input)
		if err != nil {
			log.Exitf("reading documents: %v", err)
		}
		tokenized := make([][]string, len(docs))
		for i, doc := range docs {
			tokenized[i] = corpus.Tokenize(doc)
		}
		tokenized = corpus.FoldInfrequent(tokenized, *minWordFreq)
		tm, vocab, err = corpus.Vectorize(tokenized)
		if err != nil {
			log.Exitf("vectorizing documents: %v", err)
		}
	default:
		log.Exitf("format %s not supported", *format)
	}

	est := pareto.NewEstimator(pareto.Config{
		NoisePct: parseNoise(*noisePct),
		Step:     parseStep(*step),
		Start:    *start,
		MaxSteps: *maxSteps,
		NMF: nmf.Config{
			Init:    *initStrategy,
			Solver:  *solver,
			Tol:     *tol,
			MaxIter: *maxIter,
			Alpha:   *alpha,
			L1Ratio: *l1Ratio,
			Shuffle: *shuffle,
			Seed:    *seed,
		},
		Progress: func(p pareto.Progress) {
			log.Infof("step %d: extracted %d topics, %d with rich content, stable=%v, distribution %v",
				p.Step, p.TopicCount, p.RichTopics, p.Stable, p.TopicSizes)
		},
	})

	res, err := est.Evaluate(context.Background(), tm)
	if err != nil {
		log.Exitf("topic search failed: %v", err)
	}
	if !res.Conclusive {
		log.Warningf("search exhausted after %d steps without stabilizing", res.Steps)
		fmt.Printf("inconclusive after %d steps, last attempted topic count %d\n", res.Steps, res.TopicCount)
		return
	}

	fmt.Printf("heuristic topic count is %d\n", res.TopicCount)

	if vocab != nil {
		for _, topic := range report.Summarize(res.Factorization, tm, vocab, *topWords) {
			fmt.Printf("\ntopic #%d (%d documents, %.2f%% of corpus)\n",
				topic.Index+1, topic.Size, topic.Share*100)
			fmt.Printf("top words: %v\n", topic.TopWords)
			if topic.Exemplar >= 0 && topic.Exemplar < len(docs) {
				fmt.Printf("exemplary document: %s\n", docs[topic.Exemplar])
			}
		}
	}

	if *savePath != "" {
		if err := res.Factorization.Save(*savePath); err != nil {
			log.Exitf("saving factorization: %v", err)
		}
		log.Infof("factorization saved to %s.w and %s.h", *savePath, *savePath)
	}
}

func parseNoise(s string) pareto.NoiseSetting {
	if s == "auto" {
		return pareto.AutoNoise()
	}
	pct, err := strconv.ParseFloat(s, 64)
	if err != nil || pct < 0 || pct > 1 {
		log.Exitf("noise_pct %q must be a fraction in [0,1] or auto", s)
	}
	return pareto.Noise(pct)
}

func parseStep(s string) pareto.StepSetting {
	if s == "auto" {
		return pareto.AutoStep()
	}
	size, err := strconv.Atoi(s)
	if err != nil || size < 1 {
		log.Exitf("step %q must be a positive integer or auto", s)
	}
	return pareto.Step(size)
}

func readLines(fn string) ([]string, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}
