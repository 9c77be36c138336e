package network_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/equiflow/network"
	"github.com/katalvlaran/equiflow/parallel"
)

// ring builds a directed cycle of size locations with unit costs, plus a
// chord every 8 nodes, giving Dijkstra something nontrivial to chew on.
func ring(size int) *network.Network {
	n := network.New()
	ids := make([]string, size)
	for i := range ids {
		ids[i] = fmt.Sprintf("loc-%03d", i)
		_ = n.AddLocation(ids[i])
	}
	for i := range ids {
		_ = n.AddRoute(ids[i], ids[(i+1)%size], 1)
		if i%8 == 0 {
			_ = n.AddRoute(ids[i], ids[(i+size/2)%size], 3)
		}
	}
	return n
}

func BenchmarkCheapestPath(b *testing.B) {
	n := ring(128)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := n.CheapestPath("loc-000", "loc-100"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAllCheapestCosts_Serial(b *testing.B) {
	n := ring(128)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = n.AllCheapestCosts(nil)
	}
}

func BenchmarkAllCheapestCosts_Pooled(b *testing.B) {
	n := ring(128)
	p := parallel.NewPool(0)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = n.AllCheapestCosts(p)
	}
}
