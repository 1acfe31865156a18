package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeCorpusFile(t *testing.T, content string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), "corpus.txt")
	assert.NoError(t, os.WriteFile(fn, []byte(content), 0644))
	return fn
}

func TestLoad(t *testing.T) {
	fn := writeCorpusFile(t, "0 0:2 1:1\n1 1:3\n2 2:1 0:1\n")

	c, err := Load(fn)
	assert.NoError(t, err)
	assert.Equal(t, 3, c.DocNum)
	assert.Equal(t, 3, c.VocabSize)
	assert.Len(t, c.Docs[0], 2)
}

func TestLoadSkipsBadLines(t *testing.T) {
	fn := writeCorpusFile(t, "0 0:2\nnotadoc\n1 1:1\n")

	c, err := Load(fn)
	assert.NoError(t, err)
	assert.Equal(t, 2, c.DocNum)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}

func TestTermMatrix(t *testing.T) {
	fn := writeCorpusFile(t, "0 0:2 1:1\n1 1:3\n")

	c, err := Load(fn)
	assert.NoError(t, err)

	m := c.TermMatrix()
	r, cols := m.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 2, cols)
	assert.Equal(t, 2.0, m.At(0, 0))
	assert.Equal(t, 1.0, m.At(0, 1))
	assert.Equal(t, 0.0, m.At(1, 0))
	assert.Equal(t, 3.0, m.At(1, 1))
}
