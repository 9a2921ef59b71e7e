// Package reedsolomon implements erasure-only decoding for Galileo HAS's
// RS(255,k) code over GF(2^8). HAS pages are RS codewords evaluated at
// 255 distinct points (one per possible PID); once MS distinct pages
// have arrived for a message, decoding is a k x k linear solve rather
// than full Berlekamp-Massey, per the design note: "erasure-only
// decoding where the erasure pattern is all columns whose PID was not
// received ... simplifies to solving a linear system."
package reedsolomon

import "fmt"

// point returns the GF(256) evaluation point associated with codeword
// column idx (0-based; idx = PID-1 for HAS). Point 0 maps to the field
// element 1 so low-numbered PIDs are never the additive identity.
func point(idx int) byte {
	return expTable[idx%255]
}

// Decode recovers the k systematic message rows of a row-length-rowLen
// RS(255,k) code from k received codeword columns. received[i] is the
// rowLen-byte column received at evaluation point presentColumns[i]
// (0-based column index, i.e. PID-1 for HAS). The result is k rows of
// rowLen bytes each, concatenated in message order (row 0 first),
// giving the MS x rowLen bytes of HAS cleartext. Columns 0..k-1 are the
// code's systematic positions: when every one of them was received
// (no erasure among the first k pages), Decode returns them unchanged
// rather than solving a linear system.
func Decode(received [][]byte, presentColumns []int, rowLen int) ([]byte, error) {
	k := len(received)
	if k == 0 {
		return nil, fmt.Errorf("reedsolomon: no columns received")
	}
	if len(presentColumns) != k {
		return nil, fmt.Errorf("reedsolomon: %d columns but %d indices", k, len(presentColumns))
	}
	for i, row := range received {
		if len(row) != rowLen {
			return nil, fmt.Errorf("reedsolomon: column %d has length %d, want %d", i, len(row), rowLen)
		}
	}

	if allSystematic(presentColumns, k) {
		return orderSystematic(received, presentColumns, k, rowLen), nil
	}

	// Build the k x k Vandermonde matrix A where A[i][j] = x_i^j, x_i
	// being the evaluation point of the i-th received column.
	a := make([][]byte, k)
	for i := 0; i < k; i++ {
		x := point(presentColumns[i])
		a[i] = make([]byte, k)
		acc := byte(1)
		for j := 0; j < k; j++ {
			a[i][j] = acc
			acc = gfMul(acc, x)
		}
	}

	// A solves for the polynomial coefficients, not the systematic
	// message symbols. Composing with the inverse of the systematic
	// basis (the same Vandermonde submatrix evaluated at the k
	// systematic points 0..k-1) changes the unknowns from "coefficients"
	// to "message symbols at columns 0..k-1", which is what a
	// systematic code promises callers.
	gsysInv, err := invert(systematicBasis(k), k)
	if err != nil {
		return nil, fmt.Errorf("reedsolomon: systematic basis singular: %w", err)
	}
	b := matMul(a, gsysInv, k)

	inv, err := invert(b, k)
	if err != nil {
		return nil, fmt.Errorf("reedsolomon: RS decode failed: %w", err)
	}

	out := make([]byte, k*rowLen)
	for col := 0; col < rowLen; col++ {
		v := make([]byte, k)
		for i := 0; i < k; i++ {
			v[i] = received[i][col]
		}
		m := matVec(inv, v, k)
		for row := 0; row < k; row++ {
			out[row*rowLen+col] = m[row]
		}
	}
	return out, nil
}

// systematicBasis returns the k x k Vandermonde matrix evaluated at the
// code's k systematic points (column indices 0..k-1): basis[i][j] =
// point(i)^j.
func systematicBasis(k int) [][]byte {
	basis := make([][]byte, k)
	for i := 0; i < k; i++ {
		x := point(i)
		basis[i] = make([]byte, k)
		acc := byte(1)
		for j := 0; j < k; j++ {
			basis[i][j] = acc
			acc = gfMul(acc, x)
		}
	}
	return basis
}

// allSystematic reports whether presentColumns is exactly the set
// {0, ..., k-1} in some order, i.e. every systematic column (no
// erasure among the first k pages) was received.
func allSystematic(presentColumns []int, k int) bool {
	seen := make([]bool, k)
	for _, idx := range presentColumns {
		if idx < 0 || idx >= k || seen[idx] {
			return false
		}
		seen[idx] = true
	}
	return true
}

// orderSystematic places each received column at its systematic row
// position, undoing whatever arrival order the reassembler saw pages
// in.
func orderSystematic(received [][]byte, presentColumns []int, k, rowLen int) []byte {
	out := make([]byte, k*rowLen)
	for i, idx := range presentColumns {
		copy(out[idx*rowLen:(idx+1)*rowLen], received[i])
	}
	return out
}

// matMul multiplies two k x k matrices over GF(256).
func matMul(a, b [][]byte, k int) [][]byte {
	out := make([][]byte, k)
	for i := 0; i < k; i++ {
		out[i] = make([]byte, k)
		for j := 0; j < k; j++ {
			var acc byte
			for t := 0; t < k; t++ {
				acc ^= gfMul(a[i][t], b[t][j])
			}
			out[i][j] = acc
		}
	}
	return out
}

// invert computes the inverse of the k x k matrix m over GF(256) via
// Gauss-Jordan elimination with row-swap pivoting.
func invert(m [][]byte, k int) ([][]byte, error) {
	// augmented[i] = [row i of m | row i of identity]
	aug := make([][]byte, k)
	for i := 0; i < k; i++ {
		aug[i] = make([]byte, 2*k)
		copy(aug[i], m[i])
		aug[i][k+i] = 1
	}

	for col := 0; col < k; col++ {
		pivot := -1
		for row := col; row < k; row++ {
			if aug[row][col] != 0 {
				pivot = row
				break
			}
		}
		if pivot == -1 {
			return nil, fmt.Errorf("singular matrix: not enough independent received columns")
		}
		aug[col], aug[pivot] = aug[pivot], aug[col]

		inv := gfInv(aug[col][col])
		for c := 0; c < 2*k; c++ {
			aug[col][c] = gfMul(aug[col][c], inv)
		}

		for row := 0; row < k; row++ {
			if row == col {
				continue
			}
			factor := aug[row][col]
			if factor == 0 {
				continue
			}
			for c := 0; c < 2*k; c++ {
				aug[row][c] ^= gfMul(factor, aug[col][c])
			}
		}
	}

	result := make([][]byte, k)
	for i := 0; i < k; i++ {
		result[i] = append([]byte{}, aug[i][k:2*k]...)
	}
	return result, nil
}

func matVec(m [][]byte, v []byte, k int) []byte {
	out := make([]byte, k)
	for i := 0; i < k; i++ {
		var acc byte
		for j := 0; j < k; j++ {
			acc ^= gfMul(m[i][j], v[j])
		}
		out[i] = acc
	}
	return out
}
