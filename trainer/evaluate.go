package trainer

import "github.com/neurlang/nlu/parallel"

// confidence maps the largest error margin in percent to the z-score of its two
// sided confidence level.
var confidence = []struct {
	margin byte
	z      float64
}{
	{1, 2.576},
	{5, 1.96},
	{10, 1.645},
}

// SampleSize returns how many of n utterances to evaluate so that the measured
// success rate is within 100-significance percent of the true one. A significance
// of 0 or 100 evaluates all of them.
func SampleSize(n int, significance byte) int {
	if significance == 0 || significance >= 100 || n <= 1 {
		return n
	}
	margin := 100 - significance
	z := 1.96
	for _, c := range confidence {
		if margin <= c.margin {
			z = c.z
			break
		}
	}
	e := float64(margin) / 100
	// Cochran's estimate for a proportion of 0.5, then the finite population correction
	n0 := z * z / (4 * e * e)
	size := int(n0 * float64(n) / (n0 + float64(n) - 1))
	switch {
	case size > n:
		return n
	case size < 1:
		return 1
	}
	return size
}

// Evaluate predicts a statistically sufficient, evenly spread sample of length samples
// on threads goroutines. It returns the success rate in percent and the digest of all
// predictions, which identifies the behavior of the network on the dataset.
func Evaluate(length int, significance byte, threads int, predict func(i int) (predicted, expected uint16)) (success int, digest [32]byte) {
	l := SampleSize(length, significance)
	if l == 0 {
		return 0, digest
	}
	h := parallel.NewUint16Hasher(l)
	var correct = make([]bool, l)
	parallel.ForEach(l, threads, func(j int) {
		predicted, expected := predict(j * length / l)
		h.MustPutUint16(j, predicted)
		correct[j] = predicted == expected
	})
	for _, ok := range correct {
		if ok {
			success++
		}
	}
	return 100 * success / l, h.Sum()
}
