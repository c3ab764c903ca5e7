package restcodec_test

import (
	"bytes"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/reoring/restcodec"
)

func benchPayload(n int) []byte {
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(`{"id":"item-` + strconv.Itoa(i) + `","count":` + strconv.Itoa(i) + `,"tags":["a","b"],"score":0.5}`)
	}
	b.WriteByte(']')
	return []byte(b.String())
}

func BenchmarkReadArray(b *testing.B) {
	data := benchPayload(1000)
	for name, d := range drivers() {
		b.Run(name, func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := restcodec.ReadArrayFrom(d.NewBytes(data), entityReader{}); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkWriteJSONArray(b *testing.B) {
	vals, err := restcodec.ReadArray(bytes.NewReader(benchPayload(1000)), entityReader{})
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := restcodec.WriteJSONArray(io.Discard, vals, entityWriter{}); err != nil {
			b.Fatal(err)
		}
	}
}
