package corpus

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	log "github.com/golang/glog"
	"gonum.org/v1/gonum/mat"
)

// Corpus is a bag-of-words document collection.
type Corpus struct {
	VocabSize int
	DocNum    int
	Docs      map[int][]WordCount
}

type WordCount struct {
	WordID int
	Count  int
}

// Load reads a bag-of-words corpus file, one document per line:
// [docId wordId:wordCount wordId:wordCount ... wordId:wordCount]
// Malformed lines are logged and skipped.
func Load(fn string) (*Corpus, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c := &Corpus{Docs: make(map[int][]WordCount)}
	vocabMaxID := -1

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		doc := scanner.Text()
		vals := strings.Split(doc, " ")
		if len(vals) < 2 {
			log.Warningf("bad document: %s", doc)
			continue
		}

		docID, err := strconv.Atoi(vals[0])
		if err != nil {
			return nil, fmt.Errorf("corpus: bad doc id %q: %w", vals[0], err)
		}

		c.DocNum++

		for _, kv := range vals[1:] {
			wc := strings.Split(kv, ":")
			if len(wc) != 2 {
				log.Warningf("bad word count: %s", kv)
				continue
			}

			wordID, err := strconv.Atoi(wc[0])
			if err != nil {
				return nil, fmt.Errorf("corpus: bad word id %q: %w", wc[0], err)
			}
			count, err := strconv.Atoi(wc[1])
			if err != nil {
				return nil, fmt.Errorf("corpus: bad word count %q: %w", wc[1], err)
			}

			c.Docs[docID] = append(c.Docs[docID], WordCount{
				WordID: wordID,
				Count:  count,
			})
			if wordID > vocabMaxID {
				vocabMaxID = wordID
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	c.VocabSize = vocabMaxID + 1

	log.Infof("number of documents %d", c.DocNum)
	log.Infof("vocabulary size %d", c.VocabSize)
	return c, nil
}

// TermMatrix lays the corpus out as a documents x terms count matrix.
// Rows follow ascending document id order.
func (c *Corpus) TermMatrix() *mat.Dense {
	if c.DocNum == 0 || c.VocabSize == 0 {
		return nil
	}

	ids := make([]int, 0, len(c.Docs))
	for id := range c.Docs {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	m := mat.NewDense(len(ids), c.VocabSize, nil)
	for row, id := range ids {
		for _, wc := range c.Docs[id] {
			m.Set(row, wc.WordID, m.At(row, wc.WordID)+float64(wc.Count))
		}
	}
	return m
}
