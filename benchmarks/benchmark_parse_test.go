package sdf_test

import (
	"bytes"
	"fmt"
	"testing"

	sdf "github.com/robosim/sdf"
)

// ---- Helpers ----

func smallModelSDF() []byte {
	return []byte(`<sdf version="1.9">
  <model name="box_bot">
    <link name="chassis">
      <pose>1 0 0.5 0 0 0</pose>
      <collision name="hull">
        <geometry><box><size>2 1 0.5</size></box></geometry>
      </collision>
      <visual name="body">
        <geometry><box><size>2 1 0.5</size></box></geometry>
      </visual>
    </link>
  </model>
</sdf>`)
}

// generateHugeWorld returns a world of the form:
// <world name="bench"><model name="m_0"><link name="l_0_0">...</link>...</model>...</world>
func generateHugeWorld(numModels, linksPerModel int) []byte {
	var buf bytes.Buffer
	buf.Grow(numModels * linksPerModel * 96)
	buf.WriteString(`<sdf version="1.9"><world name="bench">`)
	for i := 0; i < numModels; i++ {
		fmt.Fprintf(&buf, `<model name="m_%d"><pose>%d 0 0 0 0 0</pose>`, i, i)
		for k := 0; k < linksPerModel; k++ {
			fmt.Fprintf(&buf, `<link name="l_%d_%d"><pose>0 %d 0 0 0 0</pose></link>`, i, k, k)
		}
		buf.WriteString(`</model>`)
	}
	buf.WriteString(`</world></sdf>`)
	return buf.Bytes()
}

// generateLinkChain returns a model whose links form one relative_to chain.
func generateLinkChain(depth int) []byte {
	var buf bytes.Buffer
	buf.Grow(depth * 96)
	buf.WriteString(`<sdf version="1.9"><model name="chain"><link name="l_0"><pose>1 0 0 0 0 0</pose></link>`)
	for i := 1; i < depth; i++ {
		fmt.Fprintf(&buf, `<link name="l_%d"><pose relative_to="l_%d">1 0 0 0 0 0</pose></link>`, i, i-1)
	}
	buf.WriteString(`</model></sdf>`)
	return buf.Bytes()
}

func loadRoot(tb testing.TB, data []byte) *sdf.Root {
	tb.Helper()
	var root sdf.Root
	if errs := root.LoadString(string(data), sdf.DefaultParserConfig()); len(errs) != 0 {
		tb.Fatalf("load failed: %v", errs)
	}
	return &root
}

// ---- Benchmarks ----

func Benchmark_ParseString_Model_Small(b *testing.B) {
	config := sdf.DefaultParserConfig()
	data := smallModelSDF()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, errs := sdf.ParseString(string(data), config); len(errs) != 0 {
			b.Fatal(errs)
		}
	}
}

func Benchmark_ParseString_World_Huge(b *testing.B) {
	config := sdf.DefaultParserConfig()
	data := generateHugeWorld(100, 10)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, errs := sdf.ParseString(string(data), config); len(errs) != 0 {
			b.Fatal(errs)
		}
	}
}

func Benchmark_Root_LoadString_Model_Small(b *testing.B) {
	config := sdf.DefaultParserConfig()
	data := smallModelSDF()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var root sdf.Root
		if errs := root.LoadString(string(data), config); len(errs) != 0 {
			b.Fatal(errs)
		}
	}
}

func Benchmark_Root_LoadString_World_Huge(b *testing.B) {
	config := sdf.DefaultParserConfig()
	data := generateHugeWorld(100, 10)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var root sdf.Root
		if errs := root.LoadString(string(data), config); len(errs) != 0 {
			b.Fatal(errs)
		}
	}
}

func Benchmark_ResolvePose_LinkChain(b *testing.B) {
	root := loadRoot(b, generateLinkChain(50))
	leaf := root.Model().LinkByName("l_49")
	if leaf == nil {
		b.Fatal("leaf link missing")
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, errs := leaf.SemanticPose().Resolve(""); len(errs) != 0 {
			b.Fatal(errs)
		}
	}
}

func Benchmark_ToString_World_Huge(b *testing.B) {
	root := loadRoot(b, generateHugeWorld(100, 10))
	config := sdf.DefaultPrintConfig()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := root.ToString(config); err != nil {
			b.Fatal(err)
		}
	}
}
