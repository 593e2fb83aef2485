package pipeline

import (
	"log/slog"
	"sync"
)

// Merge forwards all inputs into one channel. The output is closed once
// every input is closed.
func Merge[T any](inputs ...<-chan T) <-chan T {
	output := make(chan T)
	var wg sync.WaitGroup
	wg.Add(len(inputs))
	for _, input := range inputs {
		go func(input <-chan T) {
			defer wg.Done()
			for msg := range input {
				output <- msg
			}
		}(input)
	}
	go func() {
		wg.Wait()
		close(output)
	}()
	return output
}

// Broadcast sends every message to all outputs. Outputs which are not ready
// miss the message.
func Broadcast[T any](input <-chan T, outputs ...chan<- T) {
	go func() {
		for msg := range input {
			for _, output := range outputs {
				select {
				case output <- msg:
				default:
					// just swallow the error
					slog.Warn("could not write to channel")
				}
			}
		}
	}()
}

func Map[T any, R any](input <-chan T, transformFn func(input T) (R, error)) <-chan R {
	output := make(chan R)
	go func() {
		defer close(output)
		for msg := range input {
			tmp, err := transformFn(msg)
			if err != nil {
				// just swallow the error
				slog.Error("could not map", "err", err)
				continue
			}
			output <- tmp
		}
	}()
	return output
}
