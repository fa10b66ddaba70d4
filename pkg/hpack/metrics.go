//go:build prometheus

package hpack

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the HPACK codec, gated behind the "prometheus"
// build tag following the wider codebase's buffer pool instrumentation
// (pkg/shockwave/buffer_pool_prometheus.go).
var (
	encodeCalls = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "hpack",
		Name:      "encode_calls_total",
		Help:      "Total number of Encode calls",
	})

	decodeCalls = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "hpack",
		Name:      "decode_calls_total",
		Help:      "Total number of Decode/DecodeInto calls",
	})

	dynamicTableEvictions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "hpack",
		Name:      "dynamic_table_evictions_total",
		Help:      "Total number of dynamic table entry evictions",
	})

	huffmanBytesSaved = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "hpack",
		Name:      "huffman_bytes_saved_total",
		Help:      "Total bytes saved by choosing Huffman encoding over the literal octets",
	})
)

func recordEncode()                      { encodeCalls.Inc() }
func recordDecode()                      { decodeCalls.Inc() }
func recordEviction()                    { dynamicTableEvictions.Inc() }
func recordHuffmanBytesSaved(saved int) { huffmanBytesSaved.Add(float64(saved)) }
