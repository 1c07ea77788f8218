package seqs

import "iter"

// Seq2 yields the items with no errors.
func Seq2[T any](items ...T) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for _, item := range items {
			if !yield(item, nil) {
				return
			}
		}
	}
}

// Collect reads the sequence until the end or the first error.
func Collect[T any](i iter.Seq2[T, error]) ([]T, error) {
	var items []T
	for item, err := range i {
		if err != nil {
			return items, err
		}

		items = append(items, item)
	}

	return items, nil
}

// Error2 yields a single error.
func Error2[T any](err error) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var empty T
		yield(empty, err)
	}
}

// Concat2 yields the sequences one after the other.
func Concat2[T any](seqs ...iter.Seq2[T, error]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for _, seq := range seqs {
			for item, err := range seq {
				if !yield(item, err) {
					return
				}
			}
		}
	}
}
