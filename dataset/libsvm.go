package dataset

import (
	"bufio"
	"io"
	"strconv"
)

// WriteLibSVM writes the dataset in LIBSVM format: one "label index:value ..." line per row with
// 1-based feature indices. Zero valued features are omitted.
func (d Dataset) WriteLibSVM(writer io.Writer) (int, error) {
	w := bufio.NewWriter(writer)
	n := 0
	for i, row := range d.X {
		line := strconv.FormatFloat(d.Y[i], 'g', -1, 64)
		for j, v := range row {
			if v == 0 {
				continue
			}
			line += " " + strconv.Itoa(j+1) + ":" + strconv.FormatFloat(v, 'g', -1, 64)
		}
		m, err := w.WriteString(line + "\n")
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, w.Flush()
}
