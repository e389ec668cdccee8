// Package buffer provides a planar multi-channel sample block and a pool for
// allocation-friendly DSP processing. Kernels accept raw [][]float64 rows;
// Multi is an optional convenience that manages allocation and reuse, and the
// interleave helpers convert to and from the packed PCM layouts audio devices
// and decoders use.
package buffer
