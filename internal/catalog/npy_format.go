// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"
)

var npyMagic = []byte("\x93NUMPY")

var (
	npyDescrRe   = regexp.MustCompile(`'descr'\s*:\s*'([^']*)'`)
	npyFortranRe = regexp.MustCompile(`'fortran_order'\s*:\s*(True|False)`)
	npyShapeRe   = regexp.MustCompile(`'shape'\s*:\s*\(([^)]*)\)`)
)

// maxNPYHeaderLen bounds the header dict; numpy writes a few hundred bytes.
const maxNPYHeaderLen = 1 << 20

type npyHeader struct {
	descr   string
	fortran bool
	shape   []int
	length  int64 // bytes from the start of the file to the first element
}

func readNPYMatrix(path string) (*SimilarityMatrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newStartupError(ErrBadMatrix, path, fmt.Errorf("open: %w", err))
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, newStartupError(ErrBadMatrix, path, fmt.Errorf("stat: %w", err))
	}

	m, err := decodeNPY(bufio.NewReader(f), info.Size())
	if err != nil {
		return nil, newStartupError(ErrBadMatrix, path, err)
	}
	return m, nil
}

// decodeNPY reads a 2-D little-endian float array in .npy format 1.0, 2.0 or
// 3.0. size is the total input length; the data section is checked against it
// before anything is allocated.
func decodeNPY(r io.Reader, size int64) (*SimilarityMatrix, error) {
	hdr, err := readNPYHeader(r)
	if err != nil {
		return nil, err
	}

	if len(hdr.shape) != 2 {
		return nil, fmt.Errorf("npy array has %d dimensions, want 2", len(hdr.shape))
	}
	rows, cols := hdr.shape[0], hdr.shape[1]
	if rows != cols {
		return nil, fmt.Errorf("npy array is %dx%d, not square", rows, cols)
	}
	n := rows

	var width int
	switch hdr.descr {
	case "<f8":
		width = 8
	case "<f4":
		width = 4
	default:
		return nil, fmt.Errorf("unsupported npy dtype %q (want <f8 or <f4)", hdr.descr)
	}

	if n > 0 && n > math.MaxInt/n/width {
		return nil, fmt.Errorf("npy shape (%d, %d) overflows", n, n)
	}
	need := int64(n) * int64(n) * int64(width)
	if avail := size - hdr.length; need > avail {
		return nil, fmt.Errorf("npy shape (%d, %d) needs %d data bytes, file has %d", n, n, need, max(avail, 0))
	}

	raw := make([]byte, need)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, fmt.Errorf("npy data truncated: %w", err)
	}

	data := make([]float64, n*n)
	for i := range data {
		off := i * width
		if width == 8 {
			data[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[off:]))
		} else {
			data[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(raw[off:])))
		}
	}

	if hdr.fortran {
		data = transpose(n, data)
	}

	return newDenseMatrix(n, data)
}

func readNPYHeader(r io.Reader) (npyHeader, error) {
	var hdr npyHeader

	prefix := make([]byte, len(npyMagic)+2)
	if _, err := io.ReadFull(r, prefix); err != nil {
		return hdr, fmt.Errorf("npy preamble: %w", err)
	}
	if !bytes.Equal(prefix[:len(npyMagic)], npyMagic) {
		return hdr, errors.New("not an npy file")
	}

	hdr.length = int64(len(prefix))
	var headerLen int
	switch major := prefix[len(npyMagic)]; major {
	case 1:
		var buf [2]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return hdr, fmt.Errorf("npy header length: %w", err)
		}
		headerLen = int(binary.LittleEndian.Uint16(buf[:]))
		hdr.length += 2
	case 2, 3:
		var buf [4]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return hdr, fmt.Errorf("npy header length: %w", err)
		}
		headerLen = int(binary.LittleEndian.Uint32(buf[:]))
		hdr.length += 4
	default:
		return hdr, fmt.Errorf("unsupported npy version %d", major)
	}

	if headerLen > maxNPYHeaderLen {
		return hdr, fmt.Errorf("npy header is %d bytes, limit %d", headerLen, maxNPYHeaderLen)
	}
	text := make([]byte, headerLen)
	if _, err := io.ReadFull(r, text); err != nil {
		return hdr, fmt.Errorf("npy header: %w", err)
	}
	hdr.length += int64(headerLen)

	parsed, err := parseNPYHeader(string(text))
	parsed.length = hdr.length
	return parsed, err
}

func parseNPYHeader(text string) (npyHeader, error) {
	var hdr npyHeader

	m := npyDescrRe.FindStringSubmatch(text)
	if m == nil {
		return hdr, errors.New("npy header has no descr")
	}
	hdr.descr = m[1]

	if m = npyFortranRe.FindStringSubmatch(text); m != nil {
		hdr.fortran = m[1] == "True"
	}

	m = npyShapeRe.FindStringSubmatch(text)
	if m == nil {
		return hdr, errors.New("npy header has no shape")
	}
	for _, part := range strings.Split(m[1], ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		dim, err := strconv.Atoi(strings.TrimSuffix(part, "L"))
		if err != nil || dim < 0 {
			return hdr, fmt.Errorf("npy shape entry %q is invalid", part)
		}
		hdr.shape = append(hdr.shape, dim)
	}

	return hdr, nil
}

func transpose(n int, data []float64) []float64 {
	out := make([]float64, len(data))
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out[i*n+j] = data[j*n+i]
		}
	}
	return out
}
