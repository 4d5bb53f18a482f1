package core

import (
	"io"
	"math"
	"strconv"
)

var (
	suffixes = [5]string{"B", "KB", "MB", "GB", "TB"}
)

func round(val float64, roundOn float64, places int) (newVal float64) {
	var round float64
	pow := math.Pow(10, float64(places))
	digit := pow * val
	_, div := math.Modf(digit)
	if div >= roundOn {
		round = math.Ceil(digit)
	} else {
		round = math.Floor(digit)
	}
	newVal = round / pow
	return
}

func humanFileSize(size float64) string {
	if size < 1 {
		return "0 B"
	}
	base := math.Log(size) / math.Log(1024)
	index := min(int(math.Floor(base)), len(suffixes)-1)
	getSize := round(size/math.Pow(1024, float64(index)), .5, 2)
	return strconv.FormatFloat(getSize, 'f', -1, 64) + " " + suffixes[index]
}

type downloadProgressCounter struct {
	written int64
	onClose func(written string)
}

func (this *downloadProgressCounter) Write(p []byte) (n int, e error) {
	n = len(p)
	this.written += int64(n)
	return
}

func (this *downloadProgressCounter) Close() error {
	this.onClose(humanFileSize(float64(this.written)))
	return nil
}

func newDownloadProgressCounter(onClose func(written string)) io.WriteCloser {
	return &downloadProgressCounter{onClose: onClose}
}
