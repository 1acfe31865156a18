package nmf

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Save serializes the factor pair to fn.w and fn.h in sparse text
// form: a "rows,cols" header line followed by "row,col,value" lines
// for the nonzero entries.
func (r *Result) Save(fn string) error {
	if err := writeDense(fn+".w", r.W); err != nil {
		return err
	}
	return writeDense(fn+".h", r.H)
}

// Load deserializes a factor pair written by Save.
func Load(fn string) (*Result, error) {
	w, err := readDense(fn + ".w")
	if err != nil {
		return nil, err
	}
	h, err := readDense(fn + ".h")
	if err != nil {
		return nil, err
	}

	_, k := w.Dims()
	hr, _ := h.Dims()
	if k != hr {
		return nil, fmt.Errorf("nmf: factor shape mismatch, W has %d topics but H has %d", k, hr)
	}
	return &Result{K: k, W: w, H: h}, nil
}

func writeDense(fn string, m *mat.Dense) error {
	out, err := os.OpenFile(fn, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	defer out.Close()

	buf := bufio.NewWriter(out)
	r, c := m.Dims()
	fmt.Fprintf(buf, "%d,%d\n", r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			// only write out nonzero values
			if v := m.At(i, j); v != 0 {
				fmt.Fprintf(buf, "%d,%d,%e\n", i, j, v)
			}
		}
	}
	return buf.Flush()
}

func readDense(fn string) (*mat.Dense, error) {
	file, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var m *mat.Dense
	lineIdx := 0

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		txt := scanner.Text()
		if lineIdx == 0 {
			shape := strings.Split(txt, ",")
			if len(shape) != 2 {
				return nil, fmt.Errorf("nmf: factor file %s corrupted, shape not found", fn)
			}
			row, err := strconv.Atoi(shape[0])
			if err != nil {
				return nil, err
			}
			col, err := strconv.Atoi(shape[1])
			if err != nil {
				return nil, err
			}
			m = mat.NewDense(row, col, nil)
			lineIdx++
			continue
		}

		value := strings.Split(txt, ",")
		if len(value) != 3 {
			return nil, fmt.Errorf("nmf: factor file %s corrupted, row %d, data %s", fn, lineIdx, txt)
		}
		ridx, err := strconv.Atoi(value[0])
		if err != nil {
			return nil, err
		}
		cidx, err := strconv.Atoi(value[1])
		if err != nil {
			return nil, err
		}
		val, err := strconv.ParseFloat(value[2], 64)
		if err != nil {
			return nil, err
		}
		m.Set(ridx, cidx, val)

		lineIdx++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("nmf: factor file %s is empty", fn)
	}
	return m, nil
}
