package ontic_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/reoring/ontic"
)

// --- Fixtures ---

func wideSchemaJSON(n int) []byte {
	var b strings.Builder
	b.WriteByte('{')
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, `"p%d":{"type":"int","required":true,"default":%d,"min":0,"max":1000}`, i, i)
	}
	b.WriteByte('}')
	return []byte(b.String())
}

func loadWide(tb testing.TB, n int) *ontic.SchemaType {
	tb.Helper()
	s, err := ontic.LoadSchemaJSON(wideSchemaJSON(n))
	if err != nil {
		tb.Fatalf("load schema: %v", err)
	}
	return s
}

// --- Schema ---

func Benchmark_LoadSchemaJSON_Wide50(b *testing.B) {
	data := wideSchemaJSON(50)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ontic.LoadSchemaJSON(data); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_ValidateSchema_Wide50(b *testing.B) {
	s := loadWide(b, 50)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ontic.ValidateSchema(s); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_PerfectSchema_Wide50(b *testing.B) {
	s := loadWide(b, 50)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c := s.Clone()
		if err := ontic.PerfectSchema(c); err != nil {
			b.Fatal(err)
		}
	}
}

// --- Object ---

func Benchmark_ValidateObject_Wide50(b *testing.B) {
	ot, err := ontic.CreateObjectType("Wide", loadWide(b, 50))
	if err != nil {
		b.Fatal(err)
	}
	o := ot.NewObject()
	if err := ontic.PerfectObject(o); err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ontic.ValidateObject(o); err != nil {
			b.Fatal(err)
		}
	}
}
